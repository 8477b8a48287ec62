package commands

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/dirsum/cmd/dirsum/opts"
	"github.com/walteh/dirsum/pkg/log"
	"github.com/walteh/dirsum/pkg/status"
	"github.com/walteh/dirsum/pkg/validate"
)

// NewCheckCmd creates a new check command
func NewCheckCmd(rootOpts *opts.RootOpts) *cobra.Command {
	var (
		input  string
		ignore []string
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the input folder without processing anything",
		Long: `Check runs only the precondition checks on the input folder.
It will:
1. Verify the folder exists, is a directory, and is readable
2. Verify it contains at least one candidate file
3. Verify every candidate file can be opened

No artifacts are written.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := rootOpts.LoadConfig(ctx)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("input") {
				cfg.Input = input
			}
			cfg.IgnorePatterns = append(cfg.IgnorePatterns, ignore...)
			if err := cfg.Validate(); err != nil {
				return errors.Errorf("validating config: %w", err)
			}

			// The collected log is discarded: check writes no artifacts, the
			// report below is the whole output.
			rl := log.New(io.Discard, zerolog.Disabled, false)
			v, err := validate.New(validate.Options{
				Dir:            cfg.Input,
				IgnorePatterns: cfg.IgnorePatterns,
				Log:            rl,
			})
			if err != nil {
				return errors.Errorf("creating validator: %w", err)
			}

			report, valErr := v.Run(ctx)

			out := cmd.OutOrStdout()
			for _, res := range report.Results {
				fmt.Fprintln(out, status.FormatCheck(res))
			}

			if valErr != nil {
				rootOpts.Printer.Validation(false, "Validation failed", valErr)
				return valErr
			}

			rootOpts.Printer.Validation(true, fmt.Sprintf("Validation passed - %d file(s) ready", len(report.Files)), nil)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "input folder to validate")
	cmd.Flags().StringArrayVar(&ignore, "ignore", nil, "glob pattern for entries to skip (repeatable)")

	return cmd
}
