package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/dirsum/cmd/dirsum/opts"
	"github.com/walteh/dirsum/pkg/status"
	"github.com/walteh/dirsum/pkg/summary"
)

// NewVerifyCmd creates a new verify command
func NewVerifyCmd(rootOpts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify <summary.json>",
		Short: "Check a summary document against its schema",
		Long: `Verify validates an existing summary.json against the embedded schema
and prints the statistics it contains.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			path := args[0]

			data, err := os.ReadFile(path)
			if err != nil {
				return errors.Errorf("reading summary: %w", err)
			}

			if err := summary.ValidateDocument(data); err != nil {
				rootOpts.Printer.Failure(fmt.Sprintf("%s is not a valid summary", path), err)
				return err
			}

			s, err := summary.Read(ctx, path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, rec := range s.Files {
				fmt.Fprintln(out, status.FormatFileRecord(rec))
			}
			fmt.Fprintln(out)
			for _, line := range status.FormatStats(s.Statistics) {
				fmt.Fprintln(out, line)
			}

			rootOpts.Printer.Validation(true, fmt.Sprintf("%s matches the summary schema", path), nil)
			return nil
		},
	}

	return cmd
}
