package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/prompt"
)

func newPromptCmd(a *app) *cobra.Command {
	var (
		confirm     bool
		maxAttempts int
	)
	cmd := &cobra.Command{
		Use:   "prompt [definition]",
		Short: "Fill a form interactively and print the submitted values as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, compiled, err := a.load(ctx, args)
			if err != nil {
				return err
			}

			ctrl, err := compiled.NewController(nil, form.WithLogger(a.logger))
			if err != nil {
				return err
			}

			runner := prompt.New(
				prompt.WithDriver(prompt.NewSurveyDriver(cmd.ErrOrStderr())),
				prompt.WithLogger(a.logger),
				prompt.WithConfirm(confirm),
				prompt.WithMaxAttempts(maxAttempts),
			)
			values, err := runner.Run(ctx, ctrl, compiled)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(values)
		},
	}
	cmd.Flags().BoolVar(&confirm, "confirm", true, "ask for confirmation before submitting")
	cmd.Flags().IntVar(&maxAttempts, "max-attempts", 3, "attempts per field before giving up (0 = unlimited)")
	return cmd
}
