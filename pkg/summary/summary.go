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

package summary

import (
	"math"
	"time"
)

// 🧾 RunInfo describes the run that produced the summary
type RunInfo struct {
	Timestamp    time.Time `json:"timestamp"`     // When the run started
	InputFolder  string    `json:"input_folder"`  // Absolute input folder path
	OutputFolder string    `json:"output_folder"` // Absolute output folder path
}

// 📄 FileRecord is the metadata computed for one processed file. Records are
// immutable once added to a summary.
type FileRecord struct {
	Name      string    `json:"name"`       // Base name within the input folder
	SizeBytes int64     `json:"size_bytes"` // Content size in bytes
	SizeKB    float64   `json:"size_kb"`    // Content size in KB, two decimals
	IsText    bool      `json:"is_text"`    // Text or binary verdict
	LineCount *int      `json:"line_count"` // Lines for text files, null for binary
	Modified  time.Time `json:"modified"`   // Filesystem modification time
}

// 💥 FileError records a file that failed during processing and was excluded
// from the statistics.
type FileError struct {
	Name  string `json:"name"`
	Error string `json:"error"`
}

// 📊 Stats aggregates the processed files
type Stats struct {
	TotalFiles     int     `json:"total_files"`
	TextFiles      int     `json:"text_files"`
	BinaryFiles    int     `json:"binary_files"`
	TotalSizeBytes int64   `json:"total_size_bytes"`
	TotalSizeKB    float64 `json:"total_size_kb"`
	TotalSizeMB    float64 `json:"total_size_mb"`
	TotalLines     int     `json:"total_lines"`
}

// 📦 RunSummary is the machine-readable artifact of a completed run. It is
// built incrementally via Add and AddError and written once by the pipeline.
type RunSummary struct {
	ProcessingInfo RunInfo      `json:"processing_info"`
	Statistics     Stats        `json:"statistics"`
	Files          []FileRecord `json:"files"`
	Errors         []FileError  `json:"errors,omitempty"`
}

// 🏭 New creates an empty run summary
func New() *RunSummary {
	return &RunSummary{
		Files: []FileRecord{},
	}
}

// ➕ Add appends rec and folds it into the statistics
func (s *RunSummary) Add(rec FileRecord) {
	s.Files = append(s.Files, rec)

	s.Statistics.TotalFiles++
	s.Statistics.TotalSizeBytes += rec.SizeBytes
	if rec.IsText {
		s.Statistics.TextFiles++
		if rec.LineCount != nil {
			s.Statistics.TotalLines += *rec.LineCount
		}
	} else {
		s.Statistics.BinaryFiles++
	}

	s.Statistics.TotalSizeKB = KB(s.Statistics.TotalSizeBytes)
	s.Statistics.TotalSizeMB = MB(s.Statistics.TotalSizeBytes)
}

// ➕ AddError records a file that could not be processed
func (s *RunSummary) AddError(name string, err error) {
	s.Errors = append(s.Errors, FileError{Name: name, Error: err.Error()})
}

// KB converts bytes to kilobytes rounded to two decimals.
func KB(bytes int64) float64 {
	return math.Round(float64(bytes)/1024*100) / 100
}

// MB converts bytes to megabytes rounded to two decimals.
func MB(bytes int64) float64 {
	return math.Round(float64(bytes)/(1024*1024)*100) / 100
}
