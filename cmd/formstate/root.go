package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formstate/pkg/definition"
)

type app struct {
	envFiles  []string
	openapi   string
	operation string
	logLevel  string
	logFormat string

	cfg    config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "formstate",
		Short:         "Fill, check and serve declarative forms",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			a.cfg = loadConfig(a.envFiles...)
			level := firstSet(a.logLevel, a.cfg.LogLevel)
			format := firstSet(a.logFormat, a.cfg.LogFormat)
			a.logger = newLogger(cmd.ErrOrStderr(), level, format)
		},
	}

	flags := root.PersistentFlags()
	flags.StringSliceVar(&a.envFiles, "env-file", nil, "env files to load (default .env)")
	flags.StringVar(&a.openapi, "openapi", "", "derive the form from an OpenAPI document instead of a definition file")
	flags.StringVar(&a.operation, "operation", "", "operation id used with --openapi")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error (env FORMSTATE_LOG_LEVEL)")
	flags.StringVar(&a.logFormat, "log-format", "", "log format: text or json (env FORMSTATE_LOG_FORMAT)")

	root.AddCommand(
		newPromptCmd(a),
		newCheckCmd(a),
		newServeCmd(a),
	)
	return root
}

// load resolves the definition from the positional argument or --openapi.
func (a *app) load(ctx context.Context, args []string) (*definition.Definition, *definition.Compiled, error) {
	var (
		def *definition.Definition
		err error
	)
	switch {
	case a.openapi != "":
		if strings.TrimSpace(a.operation) == "" {
			return nil, nil, errors.New("--operation is required with --openapi")
		}
		data, readErr := os.ReadFile(a.openapi)
		if readErr != nil {
			return nil, nil, fmt.Errorf("read openapi document: %w", readErr)
		}
		def, err = definition.FromOpenAPI(ctx, data, a.operation)
	case len(args) > 0:
		def, err = definition.Load(args[0])
	default:
		return nil, nil, errors.New("a definition file or --openapi is required")
	}
	if err != nil {
		return nil, nil, err
	}

	compiled, err := def.Compile()
	if err != nil {
		return nil, nil, err
	}
	a.logger.Debug("definition loaded", "form", compiled.Name, "fields", len(compiled.Fields))
	return def, compiled, nil
}

func firstSet(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
