package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/httpbind"
)

var errInvalidValues = errors.New("values are invalid")

type checkResult struct {
	Form   string              `json:"form"`
	Valid  bool                `json:"valid"`
	State  map[string]any      `json:"state"`
	Errors map[string][]string `json:"errors,omitempty"`
}

func newCheckCmd(a *app) *cobra.Command {
	var valuesPath string
	cmd := &cobra.Command{
		Use:   "check [definition] --values file.json",
		Short: "Validate a JSON object of values against a form",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, compiled, err := a.load(cmd.Context(), args)
			if err != nil {
				return err
			}
			values, err := readValues(valuesPath)
			if err != nil {
				return err
			}

			ctrl, err := compiled.NewController(nil, form.WithLogger(a.logger))
			if err != nil {
				return err
			}

			bindings := compiled.Bind(ctrl)
			keys := make([]string, 0, len(values))
			for key := range values {
				keys = append(keys, key)
			}
			sort.Strings(keys)
			for _, key := range keys {
				binding, ok := bindings[key]
				if !ok {
					a.logger.Warn("value for unknown field ignored", "field", key)
					continue
				}
				raw := normalizeValue(values[key], binding.Multiple)
				binding.OnChange(form.ChangeEvent{Value: raw})
				binding.OnBlur(form.BlurEvent{Value: raw})
				if got, _ := ctrl.Raw(key); form.Stringify(got) != form.Stringify(raw) {
					a.logger.Warn("value rejected by pattern", "field", key)
				}
			}

			valid := ctrl.Validate()
			result := checkResult{
				Form:   compiled.Name,
				Valid:  valid,
				State:  ctrl.State(),
				Errors: httpbind.ErrorPayload(ctrl.Errors()),
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(result); err != nil {
				return err
			}
			if !valid {
				return errInvalidValues
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&valuesPath, "values", "", "JSON file with the values to check")
	_ = cmd.MarkFlagRequired("values")
	return cmd
}

func readValues(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read values: %w", err)
	}
	var values map[string]any
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("decode values: %w", err)
	}
	return values, nil
}

// normalizeValue turns JSON lists of strings into []string for multi-value
// fields, matching what a browser form would post.
func normalizeValue(value any, multiple bool) any {
	list, ok := value.([]any)
	if !ok || !multiple {
		return value
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		out = append(out, form.Stringify(item))
	}
	return out
}
