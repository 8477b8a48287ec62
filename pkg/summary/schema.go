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
	"bytes"
	_ "embed"
	"encoding/json"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gitlab.com/tozd/go/errors"
)

//go:embed summary.schema.json
var schemaJSON []byte

var (
	documentSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
)

// compileSchema compiles the embedded summary schema once.
func compileSchema() error {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
		if err != nil {
			compileErr = errors.Errorf("unmarshaling summary schema: %w", err)
			return
		}

		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("summary.schema.json", doc); err != nil {
			compileErr = errors.Errorf("adding summary schema resource: %w", err)
			return
		}

		documentSchema, err = compiler.Compile("summary.schema.json")
		if err != nil {
			compileErr = errors.Errorf("compiling summary schema: %w", err)
			return
		}
	})

	return compileErr
}

// 🔍 ValidateDocument checks raw JSON bytes against the summary schema
func ValidateDocument(data []byte) error {
	if err := compileSchema(); err != nil {
		return err
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return errors.Errorf("invalid JSON: %w", err)
	}

	if err := documentSchema.Validate(v); err != nil {
		return errors.Errorf("summary validation failed: %w", err)
	}

	return nil
}
