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
Package pipeline drives one dirsum run through its state machine.

	START → VALIDATING → {PROCESSING | FAILED_VALIDATION}
	                   → {COMPLETED  | FAILED_PROCESSING}

	+-----------+     +-----------+     +-----------+
	| Validator | --> | Processor | --> | Artifacts |
	| (Checks)  |     | (Measure) |     | (Outputs) |
	+-----------+     +-----------+     +-----------+
	      \                 |                /
	       +------- RunLog (collector) -----+

🎯 Purpose:
- Executes the validate-then-process sequence exactly once per invocation
- Owns the run log collector and flushes it on every path
- Writes summary.json only when the run completes
- Surfaces the error taxonomy the CLI maps to exit codes

🔄 Flow:
1. Create the output folder (fatal if impossible; the only path with no log)
2. Run the five validation checks, fail-fast
3. Process the validated files, recovering per-file errors
4. Write summary.json atomically, log the statistics block
5. Close with a status banner and flush processing.log

⚡ Key Responsibilities:
- One-shot state machine; no state is ever re-entered
- Guaranteed log artifact on success and failure alike
- The summary/log invariant: summary only on COMPLETED, log always

🤝 Error taxonomy:
- *validate.Error: a precondition failed; exit code 1
- *FatalError: output folder, artifact writing, or zero files processed;
  exit code 2
- Per-file processing errors never surface here; they live in the summary's
  errors list and the run stays COMPLETED (as long as one file succeeded)

🔍 Example:

	p, err := pipeline.New(pipeline.Options{Config: cfg})
	if err != nil {
		return err
	}

	res, err := p.Run(ctx)
	if err != nil {
		return err // the CLI maps the taxonomy to exit codes
	}
	fmt.Println(res.State, res.Duration)
*/
package pipeline
