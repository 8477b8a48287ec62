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
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/dirsum/pkg/config"
	"github.com/walteh/dirsum/pkg/summary"
	"github.com/walteh/dirsum/pkg/validate"
)

// testConfig returns a validated config pointing at fresh input/output folders.
func testConfig(t *testing.T) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := &config.Config{
		Input:  filepath.Join(base, "input"),
		Output: filepath.Join(base, "output"),
	}
	require.NoError(t, cfg.Validate(), "test config should validate")
	require.NoError(t, os.MkdirAll(cfg.Input, 0755), "creating input folder should succeed")
	return cfg
}

// writeInput populates the input folder with the given file contents.
func writeInput(t *testing.T, cfg *config.Config, files map[string]string) {
	t.Helper()

	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(cfg.Input, name), []byte(content), 0644),
			"writing input file %s should succeed", name)
	}
}

// runPipeline executes one run against cfg with the console captured.
func runPipeline(t *testing.T, cfg *config.Config) (*Result, *bytes.Buffer, error) {
	t.Helper()

	console := &bytes.Buffer{}
	p, err := New(Options{Config: cfg, Console: console})
	require.NoError(t, err, "New should succeed")

	res, err := p.Run(context.Background())
	return res, console, err
}

// readLog returns the flushed log artifact as text.
func readLog(t *testing.T, res *Result) string {
	t.Helper()

	data, err := os.ReadFile(res.LogPath)
	require.NoError(t, err, "log artifact should be readable")
	return string(data)
}

func TestNew(t *testing.T) {
	t.Run("missing_config", func(t *testing.T) {
		_, err := New(Options{})
		require.Error(t, err, "New should fail without config")
		assert.Contains(t, err.Error(), "config is required", "error should name the missing option")
	})

	t.Run("defaults", func(t *testing.T) {
		p, err := New(Options{Config: config.Default()})
		require.NoError(t, err, "New should succeed")
		assert.Equal(t, StateStart, p.State(), "a fresh pipeline should be at start")
		assert.NotNil(t, p.console, "console should default")
	})
}

func TestRunHappyPath(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	cfg := testConfig(t)

	// 10, 20, 30 bytes with 2, 4, 6 lines
	writeInput(t, cfg, map[string]string{
		"a.txt": "1234\n6789\n",
		"b.txt": strings.Repeat("aaaa\n", 4),
		"c.txt": strings.Repeat("cccc\n", 6),
	})

	res, console, err := runPipeline(t, cfg)
	require.NoError(t, err, "Run should succeed")

	assert.Equal(t, StateCompleted, res.State, "run should complete")
	assert.Positive(t, res.Duration, "duration should be recorded")
	require.NotNil(t, res.Report, "validation report should be returned")
	assert.Len(t, res.Report.Results, 5, "all checks should have run")

	// Aggregates
	require.NotNil(t, res.Summary, "summary should be returned")
	stats := res.Summary.Statistics
	assert.Equal(t, 3, stats.TotalFiles, "total files should match")
	assert.Equal(t, 3, stats.TextFiles, "text files should match")
	assert.Equal(t, 0, stats.BinaryFiles, "binary files should match")
	assert.Equal(t, int64(60), stats.TotalSizeBytes, "total size should match")
	assert.Equal(t, 12, stats.TotalLines, "total lines should match")

	// Discovery order
	require.Len(t, res.Summary.Files, 3, "every file should have a record")
	assert.Equal(t, "a.txt", res.Summary.Files[0].Name, "records should be lexicographic")
	assert.Equal(t, "b.txt", res.Summary.Files[1].Name, "records should be lexicographic")
	assert.Equal(t, "c.txt", res.Summary.Files[2].Name, "records should be lexicographic")

	// Summary artifact exists and satisfies the schema
	data, readErr := os.ReadFile(res.SummaryPath)
	require.NoError(t, readErr, "summary artifact should exist")
	assert.NoError(t, summary.ValidateDocument(data), "summary artifact should satisfy the schema")

	// Round-trip: artifact totals match the disk contents
	written, readErr := summary.Read(context.Background(), res.SummaryPath)
	require.NoError(t, readErr, "summary artifact should parse")
	assert.Equal(t, stats, written.Statistics, "artifact statistics should match the run")

	// Log artifact carries the full narrative
	logText := readLog(t, res)
	assert.Contains(t, logText, "FILE PROCESSING SYSTEM", "log should open with the banner")
	assert.Contains(t, logText, "✓ Found 3 file(s)", "log should carry check results")
	assert.Contains(t, logText, "[1/3] a.txt", "log should carry per-file progress")
	assert.Contains(t, logText, "📈 SUMMARY STATISTICS", "log should carry the stats block")
	assert.Contains(t, logText, "Total Lines:   12", "log should carry the line total")
	assert.Contains(t, logText, "COMPLETED SUCCESSFULLY", "log should close with the status banner")
	assert.Contains(t, logText, "Duration:", "log should report the duration")

	// The console saw the same narrative live
	assert.Contains(t, console.String(), "COMPLETED SUCCESSFULLY", "console should echo the run")
}

func TestRunMissingInputFolder(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.Remove(cfg.Input), "removing input folder should succeed")

	res, _, err := runPipeline(t, cfg)
	require.Error(t, err, "Run should fail")

	var verr *validate.Error
	require.ErrorAs(t, err, &verr, "error should be a validation error")
	assert.Equal(t, validate.CheckExists, verr.Check, "the existence check should fail")
	assert.Equal(t, StateFailedValidation, res.State, "run should end in failed validation")

	// Log written, summary not
	logText := readLog(t, res)
	assert.Contains(t, logText, "VALIDATION FAILED", "log should carry the failure banner")
	assert.Contains(t, logText, "Input folder not found", "log should carry the failing check message")
	assert.Contains(t, logText, "Please fix the issues and try again.", "log should carry the advice line")

	_, statErr := os.Stat(res.SummaryPath)
	assert.True(t, os.IsNotExist(statErr), "no summary should be written on validation failure")
}

func TestRunEmptyInputFolder(t *testing.T) {
	cfg := testConfig(t)

	res, _, err := runPipeline(t, cfg)
	require.Error(t, err, "Run should fail")

	var verr *validate.Error
	require.ErrorAs(t, err, &verr, "error should be a validation error")
	assert.Equal(t, validate.CheckHasFiles, verr.Check, "the file-count check should fail")
	assert.Equal(t, StateFailedValidation, res.State, "run should end in failed validation")

	logText := readLog(t, res)
	assert.Contains(t, logText, "VALIDATION FAILED", "log should carry the failure banner")
	assert.Contains(t, logText, "completely empty", "log should explain the empty folder")

	_, statErr := os.Stat(res.SummaryPath)
	assert.True(t, os.IsNotExist(statErr), "no summary should be written on validation failure")
}

func TestRunRecoversPerFileFailures(t *testing.T) {
	cfg := testConfig(t)
	writeInput(t, cfg, map[string]string{
		"a.txt": "alpha\nbeta\n",
		"z.txt": "omega\n",
	})

	// A symlink to a directory passes validation (it opens fine) but fails
	// during processing, standing in for a file that vanishes mid-run.
	target := filepath.Join(t.TempDir(), "dir")
	require.NoError(t, os.Mkdir(target, 0755), "creating symlink target should succeed")
	require.NoError(t, os.Symlink(target, filepath.Join(cfg.Input, "ghost.dat")), "creating symlink should succeed")

	res, _, err := runPipeline(t, cfg)
	require.NoError(t, err, "per-file failures should not fail the run")

	assert.Equal(t, StateCompleted, res.State, "run should still complete")

	// The failed file is excluded from statistics and recorded as an error
	stats := res.Summary.Statistics
	assert.Equal(t, 2, stats.TotalFiles, "only processed files should count")
	require.Len(t, res.Summary.Errors, 1, "the failed file should be recorded")
	assert.Equal(t, "ghost.dat", res.Summary.Errors[0].Name, "the error should name the file")

	for _, rec := range res.Summary.Files {
		assert.NotEqual(t, "ghost.dat", rec.Name, "failed files should have no record")
	}

	// Artifact still satisfies the schema with the errors section present
	data, readErr := os.ReadFile(res.SummaryPath)
	require.NoError(t, readErr, "summary artifact should exist")
	assert.NoError(t, summary.ValidateDocument(data), "summary artifact should satisfy the schema")

	logText := readLog(t, res)
	assert.Contains(t, logText, "❌ Failed to process ghost.dat", "log should carry the per-file failure")
	assert.Contains(t, logText, "COMPLETED WITH 1 ERROR(S)", "log should close with the partial banner")
}

func TestRunFailsWhenNothingProcesses(t *testing.T) {
	cfg := testConfig(t)

	target := filepath.Join(t.TempDir(), "dir")
	require.NoError(t, os.Mkdir(target, 0755), "creating symlink target should succeed")
	require.NoError(t, os.Symlink(target, filepath.Join(cfg.Input, "only.dat")), "creating symlink should succeed")

	res, _, err := runPipeline(t, cfg)
	require.Error(t, err, "a run with zero successes should fail")

	var ferr *FatalError
	require.ErrorAs(t, err, &ferr, "error should be fatal")
	assert.Equal(t, "processing files", ferr.Stage, "the processing stage should be blamed")
	assert.Equal(t, StateFailedProcessing, res.State, "run should end in failed processing")

	logText := readLog(t, res)
	assert.Contains(t, logText, "PROCESSING FAILED", "log should carry the failure banner")
	assert.Contains(t, logText, "no files processed successfully", "log should carry the cause")

	_, statErr := os.Stat(res.SummaryPath)
	assert.True(t, os.IsNotExist(statErr), "no summary should be written when processing fails")
}

func TestRunFailsWhenSummaryNotWritable(t *testing.T) {
	cfg := testConfig(t)
	writeInput(t, cfg, map[string]string{"a.txt": "fine\n"})

	// A directory squatting on the summary path defeats the atomic rename.
	require.NoError(t, os.MkdirAll(cfg.SummaryPath(), 0755), "creating blocking directory should succeed")

	res, _, err := runPipeline(t, cfg)
	require.Error(t, err, "Run should fail")

	var ferr *FatalError
	require.ErrorAs(t, err, &ferr, "error should be fatal")
	assert.Equal(t, "writing summary", ferr.Stage, "the summary stage should be blamed")
	assert.Equal(t, StateFailedProcessing, res.State, "run should end in failed processing")

	logText := readLog(t, res)
	assert.Contains(t, logText, "PROCESSING FAILED", "log should carry the failure banner")

	// The half-written temp file is cleaned up
	_, statErr := os.Stat(res.SummaryPath + ".tmp")
	assert.True(t, os.IsNotExist(statErr), "no temp file should be left behind")
}

func TestRunFailsWhenOutputFolderNotCreatable(t *testing.T) {
	cfg := testConfig(t)
	writeInput(t, cfg, map[string]string{"a.txt": "fine\n"})

	// A file squatting on the output path defeats MkdirAll. The output folder
	// itself does not exist yet; only the run creates it.
	require.NoError(t, os.WriteFile(cfg.Output, []byte("not a folder"), 0644), "creating blocking file should succeed")

	res, console, err := runPipeline(t, cfg)
	require.Error(t, err, "Run should fail")

	var ferr *FatalError
	require.ErrorAs(t, err, &ferr, "error should be fatal")
	assert.Equal(t, "creating output folder", ferr.Stage, "the setup stage should be blamed")
	assert.Equal(t, StateFailedProcessing, res.State, "run should end in failed processing")

	// The only path with no log artifact: there is nowhere to put it
	_, statErr := os.Stat(res.LogPath)
	assert.Error(t, statErr, "no log artifact can exist without an output folder")
	assert.Empty(t, console.String(), "nothing runs before the output folder exists")
}

func TestRunIdempotentAggregates(t *testing.T) {
	cfg := testConfig(t)
	writeInput(t, cfg, map[string]string{
		"a.txt":   "one\ntwo\nthree",
		"b.bin":   "bin\x00ary",
		"c.md":    strings.Repeat("line\n", 10),
		"d.empty": "",
	})

	first, _, err := runPipeline(t, cfg)
	require.NoError(t, err, "first run should succeed")

	second, _, err := runPipeline(t, cfg)
	require.NoError(t, err, "second run should succeed")

	assert.Equal(t, first.Summary.Statistics, second.Summary.Statistics,
		"unchanged input should aggregate identically")
	assert.Equal(t, first.Summary.Files, second.Summary.Files,
		"unchanged input should produce identical records")
}

func TestRunParallelMatchesSequential(t *testing.T) {
	seq := testConfig(t)
	writeInput(t, seq, map[string]string{
		"a.txt": "alpha\nbeta\ngamma\n",
		"b.bin": "\x00\x01\x02\x03",
		"c.txt": strings.Repeat("x\n", 100),
		"d.txt": "no trailing newline",
		"e.bin": "PNG\x00stub",
		"f.txt": "",
		"g.txt": "solo\n",
		"h.txt": strings.Repeat("wide line of text\n", 7),
	})

	par := &config.Config{Input: seq.Input, Output: filepath.Join(t.TempDir(), "out"), Jobs: 4}
	require.NoError(t, par.Validate(), "parallel config should validate")

	seqRes, _, err := runPipeline(t, seq)
	require.NoError(t, err, "sequential run should succeed")

	parRes, _, err := runPipeline(t, par)
	require.NoError(t, err, "parallel run should succeed")

	assert.Equal(t, seqRes.Summary.Statistics, parRes.Summary.Statistics,
		"parallel aggregates should match sequential")
	assert.Equal(t, seqRes.Summary.Files, parRes.Summary.Files,
		"parallel record order should match sequential")
}

func TestRunIgnorePatterns(t *testing.T) {
	cfg := testConfig(t)
	cfg.IgnorePatterns = []string{"*.tmp"}
	writeInput(t, cfg, map[string]string{
		"keep.txt": "kept\n",
		"drop.tmp": "dropped\n",
	})

	res, _, err := runPipeline(t, cfg)
	require.NoError(t, err, "Run should succeed")

	assert.Equal(t, 1, res.Summary.Statistics.TotalFiles, "ignored files should not count")
	require.Len(t, res.Summary.Files, 1, "only surviving files should have records")
	assert.Equal(t, "keep.txt", res.Summary.Files[0].Name, "the kept file should be recorded")
}

func TestRunExcludesSubfolders(t *testing.T) {
	cfg := testConfig(t)
	writeInput(t, cfg, map[string]string{"top.txt": "top\n"})
	require.NoError(t, os.Mkdir(filepath.Join(cfg.Input, "nested"), 0755), "creating subfolder should succeed")
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Input, "nested", "deep.txt"), []byte("deep\n"), 0644),
		"writing nested file should succeed")

	res, _, err := runPipeline(t, cfg)
	require.NoError(t, err, "Run should succeed")

	assert.Equal(t, 1, res.Summary.Statistics.TotalFiles, "nested files should not count")

	// The exclusion is noted in the collected log
	logText := readLog(t, res)
	assert.Contains(t, logText, "Also found 1 subfolder(s)", "log should note the excluded subfolder")
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateStart, "start"},
		{StateValidating, "validating"},
		{StateProcessing, "processing"},
		{StateCompleted, "completed"},
		{StateFailedValidation, "failed-validation"},
		{StateFailedProcessing, "failed-processing"},
		{State(42), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.state.String(), "state name should match")
		})
	}
}

func TestFatalError(t *testing.T) {
	cause := os.ErrPermission
	err := &FatalError{Stage: "writing summary", Err: cause}

	assert.Equal(t, "writing summary: permission denied", err.Error(), "message should name stage and cause")
	assert.ErrorIs(t, err, os.ErrPermission, "cause should unwrap")
}
