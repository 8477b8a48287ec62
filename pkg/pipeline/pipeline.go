// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/dirsum/pkg/config"
	"github.com/walteh/dirsum/pkg/log"
	"github.com/walteh/dirsum/pkg/process"
	"github.com/walteh/dirsum/pkg/status"
	"github.com/walteh/dirsum/pkg/summary"
	"github.com/walteh/dirsum/pkg/validate"
)

// 🚦 State identifies where a run is in its lifecycle. A run moves strictly
// forward; no state is ever re-entered.
type State int

const (
	StateStart State = iota
	StateValidating
	StateProcessing
	StateCompleted
	StateFailedValidation
	StateFailedProcessing
)

// String returns a string representation of the state
func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateValidating:
		return "validating"
	case StateProcessing:
		return "processing"
	case StateCompleted:
		return "completed"
	case StateFailedValidation:
		return "failed-validation"
	case StateFailedProcessing:
		return "failed-processing"
	default:
		return "unknown"
	}
}

// 💥 FatalError aborts a run outside the per-file recovery path: the output
// folder cannot be created, an artifact cannot be written, or nothing could be
// processed at all.
type FatalError struct {
	Stage string // Pipeline stage that gave up
	Err   error  // Underlying cause
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

// 🔧 Options configures a Pipeline
type Options struct {
	Config  *config.Config // Validated run configuration (required)
	Console io.Writer      // Live run output, defaults to os.Stdout
	Verbose bool           // Echo debug lines to the console
}

// 🎯 Pipeline drives one run through the state machine:
// START → VALIDATING → {PROCESSING | FAILED_VALIDATION} →
// {COMPLETED | FAILED_PROCESSING}.
type Pipeline struct {
	cfg     *config.Config
	console io.Writer
	verbose bool
	state   State
}

// 🏭 New creates a new pipeline from options
func New(opts Options) (*Pipeline, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}

	console := opts.Console
	if console == nil {
		console = os.Stdout
	}

	return &Pipeline{
		cfg:     opts.Config,
		console: console,
		verbose: opts.Verbose,
		state:   StateStart,
	}, nil
}

// 📦 Result describes a finished run
type Result struct {
	State       State               // Terminal state of the run
	Report      *validate.Report    // Check outcomes, nil if validation never ran
	Summary     *summary.RunSummary // Aggregate, nil unless the run completed
	Duration    time.Duration       // Wall time of the whole run
	SummaryPath string              // Where the summary artifact lives
	LogPath     string              // Where the log artifact lives
}

// 🏃 Run executes one pipeline pass: create the output folder, validate the
// input folder, process the validated files, write the artifacts.
//
// The summary artifact is written only when the run completes; the log
// artifact is written on every path, flushed exactly once. The single path
// with no log file is an output folder that cannot be created, which is
// reported on the console alone.
func (p *Pipeline) Run(ctx context.Context) (res *Result, err error) {
	start := time.Now()
	res = &Result{
		State:       p.state,
		SummaryPath: p.cfg.SummaryPath(),
		LogPath:     p.cfg.LogPath(),
	}

	absIn := absPath(p.cfg.Input)
	absOut := absPath(p.cfg.Output)

	// The output folder must exist before anything else: the log artifact
	// lives there, and a run without it has nowhere to report but the console.
	if mkErr := os.MkdirAll(p.cfg.Output, 0755); mkErr != nil {
		p.transition(ctx, StateFailedProcessing)
		res.State = p.state
		res.Duration = time.Since(start)
		return res, &FatalError{Stage: "creating output folder", Err: mkErr}
	}

	// The zerolog mirror inside the run log only speaks in debug runs; the
	// console echo covers everything else.
	mirror := zerolog.Disabled
	if zerolog.Ctx(ctx).GetLevel() <= zerolog.DebugLevel {
		mirror = zerolog.DebugLevel
	}
	rl := log.New(p.console, mirror, p.verbose)

	// The log artifact is flushed exactly once, on every path out of the run.
	defer func() {
		res.Duration = time.Since(start)
		if flushErr := rl.Flush(res.LogPath); flushErr != nil {
			fmt.Fprintf(p.console, "failed to write %s: %v\n", res.LogPath, flushErr)
			if err == nil {
				p.transition(ctx, StateFailedProcessing)
				res.State = p.state
				err = &FatalError{Stage: "writing log", Err: flushErr}
			}
		}
	}()

	rl.Banner("FILE PROCESSING SYSTEM")
	rl.Infof("Started: %s", start.Format(log.TimeFormat))
	rl.Separator()
	rl.Infof("📂 Input:  %s", absIn)
	rl.Infof("📂 Output: %s", absOut)
	rl.Separator()

	// Validate
	p.transition(ctx, StateValidating)
	v, vErr := validate.New(validate.Options{
		Dir:            p.cfg.Input,
		IgnorePatterns: p.cfg.IgnorePatterns,
		Log:            rl,
	})
	if vErr != nil {
		p.transition(ctx, StateFailedProcessing)
		res.State = p.state
		return res, &FatalError{Stage: "creating validator", Err: vErr}
	}

	report, valErr := v.Run(ctx)
	res.Report = report
	if valErr != nil {
		p.transition(ctx, StateFailedValidation)
		res.State = p.state
		rl.Newline()
		rl.Banner("VALIDATION FAILED")
		rl.Errorf("❌ %s", valErr.Error())
		rl.Banner("")
		rl.Error("Please fix the issues and try again.")
		rl.Infof("Duration: %.2f seconds", time.Since(start).Seconds())
		return res, valErr
	}

	// Process
	p.transition(ctx, StateProcessing)
	proc, pErr := process.New(process.Options{
		Log:            rl,
		LargeFileBytes: p.cfg.LargeFileBytes,
		Jobs:           p.cfg.Jobs,
	})
	if pErr != nil {
		p.transition(ctx, StateFailedProcessing)
		res.State = p.state
		failBanner(rl, procErrTitle, pErr, start)
		return res, &FatalError{Stage: "creating processor", Err: pErr}
	}

	sum, procErr := proc.Run(ctx, report.Files)
	if procErr != nil {
		p.transition(ctx, StateFailedProcessing)
		res.State = p.state
		failBanner(rl, procErrTitle, procErr, start)
		return res, &FatalError{Stage: "processing files", Err: procErr}
	}
	res.Summary = sum

	sum.ProcessingInfo = summary.RunInfo{
		Timestamp:    time.Now(),
		InputFolder:  absIn,
		OutputFolder: absOut,
	}

	// Write artifacts
	if wErr := summary.Write(ctx, res.SummaryPath, sum); wErr != nil {
		p.transition(ctx, StateFailedProcessing)
		res.State = p.state
		failBanner(rl, procErrTitle, wErr, start)
		return res, &FatalError{Stage: "writing summary", Err: wErr}
	}

	rl.Info("📝 Output files created:")
	rl.Infof("  • Summary: %s", config.SummaryFileName)
	rl.Infof("  • Log:     %s", config.LogFileName)

	rl.Separator()
	for _, line := range status.FormatStats(sum.Statistics) {
		rl.Info(line)
	}
	rl.Separator()

	p.transition(ctx, StateCompleted)
	res.State = p.state

	if n := len(sum.Errors); n > 0 {
		rl.Banner(fmt.Sprintf("COMPLETED WITH %d ERROR(S)", n))
	} else {
		rl.Banner("COMPLETED SUCCESSFULLY")
	}
	rl.Infof("Duration: %.2f seconds", time.Since(start).Seconds())
	rl.Infof("Output:   %s", absOut)
	rl.Banner("")

	return res, nil
}

// State returns the current state of the pipeline.
func (p *Pipeline) State() State {
	return p.state
}

const procErrTitle = "PROCESSING FAILED"

// transition advances the state machine.
func (p *Pipeline) transition(ctx context.Context, to State) {
	zerolog.Ctx(ctx).Debug().
		Stringer("from", p.state).
		Stringer("to", to).
		Msg("pipeline state change")
	p.state = to
}

// failBanner writes the closing banner for an aborted run.
func failBanner(rl *log.RunLog, title string, cause error, start time.Time) {
	rl.Newline()
	rl.Banner(title)
	rl.Errorf("❌ %s", cause.Error())
	rl.Banner("")
	rl.Infof("Duration: %.2f seconds", time.Since(start).Seconds())
}

// absPath resolves dir for display, falling back to the raw value.
func absPath(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return dir
	}
	return abs
}
