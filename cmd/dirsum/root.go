package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/walteh/dirsum/cmd/dirsum/commands"
	"github.com/walteh/dirsum/cmd/dirsum/opts"
	"github.com/walteh/dirsum/pkg/status"
)

var (
	// Flags
	configFile string
	debugMode  bool
	verbose    bool
)

// NewRootCmd assembles the dirsum command tree
func NewRootCmd() *cobra.Command {
	rootOpts := &opts.RootOpts{}

	cmd := &cobra.Command{
		Use:   "dirsum",
		Short: "Validate a folder of files and summarize its contents",
		Long: `dirsum validates an input folder, processes every file directly inside it,
and writes two artifacts into the output folder:
  - summary.json    machine-readable statistics for the run
  - processing.log  every validation check, per-file note, and the final status`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging()
			rootOpts.ConfigFile = configFile
			rootOpts.Verbose = verbose
			rootOpts.Printer = status.NewPrinter(cmd.Context(), cmd.ErrOrStderr())
		},
	}

	addRootFlags(cmd)

	cmd.AddCommand(
		commands.NewRunCmd(rootOpts),
		commands.NewCheckCmd(rootOpts),
		commands.NewVerifyCmd(rootOpts),
		newVersionCmd(),
	)

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path (default: probe .dirsum.{yaml,yml,hcl,json})")
	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "enable debug logging")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "echo debug detail to the console")
}

// setupLogging configures zerolog based on flags
func setupLogging() {
	level := zerolog.InfoLevel
	if debugMode {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log
}
