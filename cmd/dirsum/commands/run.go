package commands

import (
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/dirsum/cmd/dirsum/opts"
	"github.com/walteh/dirsum/pkg/pipeline"
)

// NewRunCmd creates a new run command
func NewRunCmd(rootOpts *opts.RootOpts) *cobra.Command {
	var (
		input  string
		output string
		ignore []string
		jobs   int
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Validate the input folder and process its files",
		Long: `Run executes the full pipeline.
It will:
1. Create the output folder
2. Validate the input folder (fail-fast precondition checks)
3. Process every file: classify text/binary, measure size and lines
4. Write summary.json and processing.log into the output folder

A file that fails to read mid-run is logged and skipped; the run still
completes as long as at least one file was processed successfully.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := rootOpts.LoadConfig(ctx)
			if err != nil {
				return err
			}

			// Flags override config file values
			if cmd.Flags().Changed("input") {
				cfg.Input = input
			}
			if cmd.Flags().Changed("output") {
				cfg.Output = output
			}
			if cmd.Flags().Changed("jobs") {
				cfg.Jobs = jobs
			}
			cfg.IgnorePatterns = append(cfg.IgnorePatterns, ignore...)
			if err := cfg.Validate(); err != nil {
				return errors.Errorf("validating config: %w", err)
			}

			p, err := pipeline.New(pipeline.Options{
				Config:  cfg,
				Console: cmd.OutOrStdout(),
				Verbose: rootOpts.Verbose,
			})
			if err != nil {
				return errors.Errorf("creating pipeline: %w", err)
			}

			if _, err := p.Run(ctx); err != nil {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "input folder to process")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output folder for the artifacts")
	cmd.Flags().StringArrayVar(&ignore, "ignore", nil, "glob pattern for entries to skip (repeatable)")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "parallel workers for per-file processing (default 1)")

	return cmd
}
