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

/*
Package process measures and classifies the files of a validated input folder.

	+-------------+
	|  Processor  |
	| (Measuring) |
	+------+------+
	       |
	+------+------+
	|  RunSummary |
	| (Aggregate) |
	+-------------+

🎯 Purpose:
- Classifies each file as text or binary (NUL byte in the first 8000 bytes)
- Measures size and, for text files, newline-delimited line counts
- Aggregates per-file records into a summary.RunSummary
- Recovers per-file read failures without aborting the run

🔄 Flow:
1. Receives the validated file list in discovery order
2. Processes each file, sequentially or through a bounded worker pool
3. Writes progress and per-file detail to the run log
4. Merges records back in discovery order

⚡ Key Responsibilities:
- Content classification and line counting (pure, total functions)
- Per-file error recovery: a failed file becomes an errors[] entry, never a crash
- Large file warnings above the configured threshold
- Keeping parallel output order identical to sequential order

🤝 Interfaces:
- log.RunLog: collected run log, safe for concurrent appends
- summary.RunSummary: the aggregate the pipeline writes to disk

🔍 Example:

	proc, err := process.New(process.Options{Log: rl, Jobs: cfg.Jobs})
	if err != nil {
		return err
	}
	sum, err := proc.Run(ctx, report.Files)

The processor never touches the output folder. It turns a file list into an
aggregate; writing artifacts is the pipeline's job.
*/
package process
