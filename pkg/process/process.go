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

package process

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"

	"github.com/walteh/dirsum/pkg/config"
	"github.com/walteh/dirsum/pkg/log"
	"github.com/walteh/dirsum/pkg/summary"
)

// 🔧 Options configures a Processor
type Options struct {
	Log            *log.RunLog // run log collector (required)
	LargeFileBytes int64       // warn threshold, 0 means the default
	Jobs           int         // worker count, 0 means sequential
}

// 🏭 Processor measures and classifies a validated file list
type Processor struct {
	rl         *log.RunLog
	largeBytes int64
	jobs       int
}

// 🆕 New creates a Processor from options
func New(opts Options) (*Processor, error) {
	if opts.Log == nil {
		return nil, errors.New("run log is required")
	}
	if opts.Jobs < 0 {
		return nil, errors.Errorf("jobs must not be negative, got %d", opts.Jobs)
	}

	jobs := opts.Jobs
	if jobs == 0 {
		jobs = config.DefaultJobs
	}
	largeBytes := opts.LargeFileBytes
	if largeBytes == 0 {
		largeBytes = config.DefaultLargeFileBytes
	}

	return &Processor{rl: opts.Log, largeBytes: largeBytes, jobs: jobs}, nil
}

// 📊 Run processes every file in order and aggregates the results.
//
// A file that fails to read is logged, recorded as a processing error, and
// skipped; the run itself only fails when nothing could be processed at all.
// With jobs > 1 files are processed concurrently but the aggregated record
// order stays identical to the sequential order.
func (p *Processor) Run(ctx context.Context, files []string) (*summary.RunSummary, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Int("files", len(files)).Int("jobs", p.jobs).Msg("starting processing")

	p.rl.Info("📊 Processing files...")
	p.rl.Newline()

	records := make([]*summary.FileRecord, len(files))
	failures := make([]error, len(files))

	var err error
	if p.jobs > 1 {
		err = p.runParallel(ctx, files, records, failures)
	} else {
		err = p.runSequential(ctx, files, records, failures)
	}
	if err != nil {
		return nil, err
	}

	// Merge in discovery order regardless of which worker finished first
	s := summary.New()
	processed := 0
	for i, rec := range records {
		if rec != nil {
			s.Add(*rec)
			processed++
			continue
		}
		s.AddError(filepath.Base(files[i]), failures[i])
	}

	p.rl.Newline()
	failed := len(files) - processed
	switch {
	case failed == 0:
		p.rl.Successf("Processed %d file(s) successfully", processed)
	case processed > 0:
		p.rl.Warningf("⚠️  Processed %d of %d file(s), %d failed", processed, len(files), failed)
	}
	p.rl.Separator()

	if processed == 0 && len(files) > 0 {
		return nil, errors.Errorf("no files processed successfully (%d attempted)", len(files))
	}

	logger.Debug().Int("processed", processed).Int("failed", failed).Msg("processing finished")
	return s, nil
}

func (p *Processor) runSequential(ctx context.Context, files []string, records []*summary.FileRecord, failures []error) error {
	for i, path := range files {
		if err := ctx.Err(); err != nil {
			return errors.Errorf("processing interrupted: %w", err)
		}
		records[i], failures[i] = p.processAndLog(i, len(files), path)
	}
	return nil
}

func (p *Processor) runParallel(ctx context.Context, files []string, records []*summary.FileRecord, failures []error) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.jobs)

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return errors.Errorf("processing interrupted: %w", err)
			}
			records[i], failures[i] = p.processAndLog(i, len(files), path)
			return nil
		})
	}

	return g.Wait()
}

// processAndLog measures one file and writes its progress lines. A nil record
// with a non-nil error means the file failed and was skipped.
func (p *Processor) processAndLog(idx, total int, path string) (*summary.FileRecord, error) {
	name := filepath.Base(path)
	p.rl.Infof("  [%d/%d] %s", idx+1, total, name)

	rec, err := p.processFile(path)
	if err != nil {
		p.rl.Errorf("        ❌ Failed to process %s: %v", name, err)
		return nil, err
	}

	if rec.IsText {
		p.rl.Debugf("        Type: text, Lines: %d, Size: %.2f KB", *rec.LineCount, rec.SizeKB)
	} else {
		p.rl.Debugf("        Type: binary, Size: %.2f KB", rec.SizeKB)
	}

	if rec.SizeBytes > p.largeBytes {
		p.rl.Warningf("        ⚠️  Large file: %.2f MB", summary.MB(rec.SizeBytes))
	}

	return rec, nil
}

func (p *Processor) processFile(path string) (*summary.FileRecord, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Errorf("stating file: %w", err)
	}
	if info.IsDir() {
		return nil, errors.Errorf("%s is a directory", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading file: %w", err)
	}

	size := int64(len(data))
	rec := &summary.FileRecord{
		Name:      filepath.Base(path),
		SizeBytes: size,
		SizeKB:    summary.KB(size),
		IsText:    Classify(data) == KindText,
		Modified:  info.ModTime(),
	}
	if rec.IsText {
		lines := CountLines(data)
		rec.LineCount = &lines
	}

	return rec, nil
}
