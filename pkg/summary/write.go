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
	"context"
	"encoding/json"
	"os"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 💾 Write marshals the summary and writes it atomically to path
func Write(ctx context.Context, path string, s *RunSummary) error {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Int("files", len(s.Files)).Msg("writing summary")

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return errors.Errorf("marshaling summary: %w", err)
	}
	data = append(data, '\n')

	if err := writeFileAtomic(path, data); err != nil {
		return errors.Errorf("writing summary: %w", err)
	}
	return nil
}

// 📖 Read loads a summary document from path
func Read(ctx context.Context, path string) (*RunSummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading summary: %w", err)
	}

	var s RunSummary
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.Errorf("parsing summary: %w", err)
	}
	return &s, nil
}

// writeFileAtomic writes content through a temp file so a crashed run never
// leaves a half-written artifact behind.
func writeFileAtomic(path string, content []byte) error {
	tempPath := path + ".tmp"

	// Write to temp file
	if err := os.WriteFile(tempPath, content, 0644); err != nil {
		return errors.Errorf("writing temp file: %w", err)
	}

	// Rename temp file to target (atomic operation)
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath) // Clean up temp file
		return errors.Errorf("renaming temp file: %w", err)
	}

	return nil
}
