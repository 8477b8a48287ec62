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

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// Defaults applied by Validate when a field is unset.
const (
	DefaultInput          = "input"
	DefaultOutput         = "output"
	DefaultLargeFileBytes = 100 << 20 // 100 MiB
	DefaultJobs           = 1
)

// Artifact names written into the output folder.
const (
	SummaryFileName = "summary.json"
	LogFileName     = "processing.log"
)

// DefaultFiles are the config file names probed when none is given explicitly.
var DefaultFiles = []string{".dirsum.yaml", ".dirsum.yml", ".dirsum.hcl", ".dirsum.json"}

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📚 Config represents the complete run configuration
type Config struct {
	Input          string   `json:"input" yaml:"input" hcl:"input,optional"`                                                              // Folder scanned for candidate files
	Output         string   `json:"output" yaml:"output" hcl:"output,optional"`                                                           // Folder receiving the summary and log artifacts
	IgnorePatterns []string `json:"ignore_patterns,omitempty" yaml:"ignore_patterns,omitempty" hcl:"ignore_patterns,optional"`            // Glob patterns for entries to skip
	LargeFileBytes int64    `json:"large_file_bytes,omitempty" yaml:"large_file_bytes,omitempty" hcl:"large_file_bytes,optional"`         // Size above which a file is logged as large
	Jobs           int      `json:"jobs,omitempty" yaml:"jobs,omitempty" hcl:"jobs,optional"`                                             // Parallel workers; 1 processes sequentially
}

// 🎁 Default returns a configuration with every field at its default
func Default() *Config {
	return &Config{
		Input:          DefaultInput,
		Output:         DefaultOutput,
		LargeFileBytes: DefaultLargeFileBytes,
		Jobs:           DefaultJobs,
	}
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	// Read config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	// Get parser
	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	// Parse config
	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🔭 Discover probes dir for the default config file names and loads the first
// match, falling back to Default when none exists
func Discover(ctx context.Context, dir string) (*Config, error) {
	logger := zerolog.Ctx(ctx)

	for _, name := range DefaultFiles {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return Load(ctx, path)
		}
	}

	logger.Debug().Str("dir", dir).Msg("no config file found, using defaults")
	return Default(), nil
}

// 🔍 Validate applies defaults and checks that the configuration is usable
func (cfg *Config) Validate() error {
	// Set defaults
	if cfg.Input == "" {
		cfg.Input = DefaultInput
	}
	if cfg.Output == "" {
		cfg.Output = DefaultOutput
	}
	if cfg.LargeFileBytes == 0 {
		cfg.LargeFileBytes = DefaultLargeFileBytes
	}
	if cfg.Jobs == 0 {
		cfg.Jobs = DefaultJobs
	}

	// Check bounds
	if cfg.LargeFileBytes < 0 {
		return errors.Errorf("large_file_bytes must not be negative: %d", cfg.LargeFileBytes)
	}
	if cfg.Jobs < 0 {
		return errors.Errorf("jobs must not be negative: %d", cfg.Jobs)
	}
	for _, pattern := range cfg.IgnorePatterns {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("invalid ignore pattern: %q", pattern)
		}
	}

	// Clean up paths
	cfg.Input = filepath.Clean(cfg.Input)
	cfg.Output = filepath.Clean(cfg.Output)

	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("%s -> %s (jobs=%d)", cfg.Input, cfg.Output, cfg.Jobs)
}

// 🧾 SummaryPath returns the path of the summary artifact
func (cfg *Config) SummaryPath() string {
	return filepath.Join(cfg.Output, SummaryFileName)
}

// 🧾 LogPath returns the path of the log artifact
func (cfg *Config) LogPath() string {
	return filepath.Join(cfg.Output, LogFileName)
}

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

func init() {
	Register(&YAMLParser{})
}

func (p *YAMLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml")
}

func (p *YAMLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(strings.NewReader(string(data)))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

