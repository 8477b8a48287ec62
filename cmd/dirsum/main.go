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

package main

import (
	"context"
	"fmt"
	"os"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/dirsum/pkg/validate"
)

// Exit codes for the different failure modes
const (
	ExitSuccess          = 0 // Run completed, partial per-file errors allowed
	ExitValidationFailed = 1 // A precondition check on the input folder failed
	ExitError            = 2 // Fatal processing failure, bad usage, or anything unexpected
)

func main() {
	ctx := context.Background()

	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)

		// Check error type to determine exit code
		var validationErr *validate.Error
		if errors.As(err, &validationErr) {
			os.Exit(ExitValidationFailed)
		}

		// All other errors are fatal processing or usage errors
		os.Exit(ExitError)
	}
}
