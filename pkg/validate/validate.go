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

package validate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/dirsum/pkg/log"
)

// MinFiles is the smallest number of candidate files an input folder may hold.
const MinFiles = 1

// 🏷️ Check names, in the order the checks run
const (
	CheckExists        = "input folder exists"
	CheckIsDir         = "path is a directory"
	CheckReadable      = "folder is readable"
	CheckHasFiles      = "found at least one file"
	CheckFilesReadable = "all files are readable"
)

// 📝 Result is the outcome of a single validation check
type Result struct {
	Name    string `json:"name"`    // Check name
	Passed  bool   `json:"passed"`  // Whether the check passed
	Message string `json:"message"` // Human-readable detail
}

// ❌ Error reports the first failing validation check. Checks after the failing
// one never run.
type Error struct {
	Check   string // Name of the failed check
	Message string // Failure detail, as logged
}

func (e *Error) Error() string {
	return e.Message
}

// 📊 Report holds the ordered check outcomes and, when every check passed, the
// validated file list in lexicographic order.
type Report struct {
	Results []Result // One entry per executed check
	Files   []string // Full paths of the validated files
}

// 🔧 Options configures a Validator
type Options struct {
	Dir            string      // Input folder to validate
	IgnorePatterns []string    // Glob patterns for entries to skip at discovery
	MinFiles       int         // Minimum candidate files required (defaults to MinFiles)
	Log            *log.RunLog // Run log receiving every check outcome
}

// 🔍 Validator runs the precondition checks on an input folder
type Validator struct {
	opts Options
}

// 🏭 New creates a new validator
func New(opts Options) (*Validator, error) {
	if opts.Dir == "" {
		return nil, errors.Errorf("dir is required")
	}
	if opts.Log == nil {
		return nil, errors.Errorf("run log is required")
	}
	if opts.MinFiles == 0 {
		opts.MinFiles = MinFiles
	}

	return &Validator{opts: opts}, nil
}

// 🏃 Run executes the checks in fixed order, fail-fast. Every executed check
// appends its outcome to the run log and to the report; on the first failure
// the remaining checks are skipped and the returned error names the check.
func (v *Validator) Run(ctx context.Context) (*Report, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("dir", v.opts.Dir).Msg("validating input folder")

	rl := v.opts.Log
	rl.Info("🔍 Validating inputs...")
	rl.Newline()

	report := &Report{}
	absDir := absPath(v.opts.Dir)

	// Check 1: input folder exists
	info, err := os.Stat(v.opts.Dir)
	if err != nil {
		return report, v.fail(report, CheckExists, fmt.Sprintf("Input folder not found: %s", absDir))
	}
	v.pass(report, CheckExists, "Input folder exists")

	// Check 2: path is a directory
	if !info.IsDir() {
		return report, v.fail(report, CheckIsDir, fmt.Sprintf("Path is not a directory: %s", absDir))
	}
	v.pass(report, CheckIsDir, "Path is a directory")

	// Check 3: folder is readable. Listing the folder is the probe; the sorted
	// entries feed the remaining checks.
	entries, err := os.ReadDir(v.opts.Dir)
	if err != nil {
		return report, v.fail(report, CheckReadable, fmt.Sprintf("Cannot read folder: %s", absDir))
	}
	v.pass(report, CheckReadable, "Folder is readable")

	// Check 4: folder contains at least MinFiles candidate files. Entries are
	// already sorted by name, so the validated list is lexicographic.
	var files, folders, ignored []string
	for _, entry := range entries {
		if entry.IsDir() {
			folders = append(folders, entry.Name())
			continue
		}
		if pattern := v.matchIgnore(entry.Name()); pattern != "" {
			ignored = append(ignored, entry.Name())
			rl.Infof("  ℹ Ignored %s (matches %q)", entry.Name(), pattern)
			continue
		}
		files = append(files, entry.Name())
	}

	if len(files) < v.opts.MinFiles {
		rl.Debugf("Contents of input folder: %v", entryNames(entries))
		return report, v.fail(report, CheckHasFiles, v.tooFewFilesMessage(absDir, files, folders, ignored))
	}
	v.pass(report, CheckHasFiles, fmt.Sprintf("Found %d file(s)", len(files)))
	if len(folders) > 0 {
		rl.Infof("  ℹ Also found %d subfolder(s) (will be ignored)", len(folders))
	}

	// Check 5: every candidate file can be opened for reading
	var unreadable []string
	for _, name := range files {
		f, err := os.Open(filepath.Join(v.opts.Dir, name))
		if err != nil {
			unreadable = append(unreadable, name)
			continue
		}
		f.Close()
	}
	if len(unreadable) > 0 {
		return report, v.fail(report, CheckFilesReadable, fmt.Sprintf("Cannot read files: %s", strings.Join(unreadable, ", ")))
	}
	v.pass(report, CheckFilesReadable, "All files are readable")

	for _, name := range files {
		report.Files = append(report.Files, filepath.Join(v.opts.Dir, name))
	}

	rl.Newline()
	rl.Successf("Validation passed - %d file(s) ready", len(report.Files))
	rl.Separator()

	return report, nil
}

// pass records a successful check in the report and the run log.
func (v *Validator) pass(report *Report, name, msg string) {
	report.Results = append(report.Results, Result{Name: name, Passed: true, Message: msg})
	v.opts.Log.Infof("  ✓ %s", msg)
}

// fail records the failing check in the report and the run log, and returns
// the error that halts validation.
func (v *Validator) fail(report *Report, name, msg string) error {
	report.Results = append(report.Results, Result{Name: name, Passed: false, Message: msg})
	v.opts.Log.Errorf("  ✗ %s", msg)
	return &Error{Check: name, Message: msg}
}

// matchIgnore returns the first ignore pattern matching name, or "".
func (v *Validator) matchIgnore(name string) string {
	for _, pattern := range v.opts.IgnorePatterns {
		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			return pattern
		}
	}
	return ""
}

// tooFewFilesMessage explains an empty (or effectively empty) input folder,
// pointing at subfolders when they are the likely culprit.
func (v *Validator) tooFewFilesMessage(absDir string, files, folders, ignored []string) string {
	parts := []string{
		fmt.Sprintf("Input folder must contain at least %d file(s).", v.opts.MinFiles),
		fmt.Sprintf("Found: %d file(s)", len(files)),
	}

	switch {
	case len(folders) > 0:
		names := folders
		if len(names) > 5 {
			names = append(names[:5:5], fmt.Sprintf("... and %d more", len(folders)-5))
		}
		parts = append(parts,
			fmt.Sprintf("Found %d subfolder(s): %s", len(folders), strings.Join(names, ", ")),
			"\nNote: only files in the root of the input folder are processed.",
			"Files inside subfolders are NOT processed.",
			"\nSuggestion: move files from the subfolders into the input folder root,",
			fmt.Sprintf("or run directly on a subfolder: dirsum run -i %q", filepath.Join(absDir, folders[0])))
	case len(ignored) > 0:
		parts = append(parts, fmt.Sprintf("All %d file(s) matched the ignore patterns.", len(ignored)))
	default:
		parts = append(parts, "The folder is completely empty.")
	}

	return strings.Join(parts, "\n")
}

// entryNames lists directory entry names for debug logging.
func entryNames(entries []os.DirEntry) []string {
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}

// absPath resolves dir for display, falling back to the raw value.
func absPath(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return dir
	}
	return abs
}
