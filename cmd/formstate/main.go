// formstate loads a form definition and fills, checks or serves it.
package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errInvalidValues) {
			fmt.Fprintln(os.Stderr, "formstate:", err)
		}
		os.Exit(1)
	}
}
