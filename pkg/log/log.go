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

package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🎨 Display configuration
const (
	// TimeFormat is the timestamp layout used for flushed log lines.
	TimeFormat = "2006-01-02 15:04:05"

	// BannerWidth is the width of banner and separator lines.
	BannerWidth = 60
)

// 🏷️ Level identifies the severity of a collected entry
type Level string

const (
	LevelDebug   Level = "DEBUG"
	LevelInfo    Level = "INFO"
	LevelWarning Level = "WARNING"
	LevelError   Level = "ERROR"
)

// 📝 Entry is one collected log line
type Entry struct {
	Time    time.Time // When the entry was appended
	Level   Level     // Severity
	Message string    // Verbatim message, may span multiple lines
}

// String renders the entry the way it appears in the log artifact.
func (e Entry) String() string {
	return fmt.Sprintf("%s - %s - %s", e.Time.Format(TimeFormat), e.Level, e.Message)
}

// 🎯 RunLog collects the ordered log entries of one run and echoes them to the
// console as they arrive. The pipeline owns the RunLog and flushes it to the
// log artifact exactly once, on every path through the run.
type RunLog struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
	entries []Entry
	verbose bool
}

// 🏭 New creates a new run log. Debug entries are always collected; they are
// echoed to the console only when verbose is set. The zerolog mirror shares
// the console writer, so mirrored lines never bypass it.
func New(console io.Writer, level zerolog.Level, verbose bool) *RunLog {
	zlog := zerolog.New(zerolog.ConsoleWriter{Out: console}).With().Timestamp().Logger().Level(level)
	return &RunLog{
		zlog:    zlog,
		console: console,
		mu:      sync.Mutex{},
		verbose: verbose,
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the run log from context
func FromContext(ctx context.Context) *RunLog {
	rl, ok := ctx.Value(contextKey{}).(*RunLog)
	if !ok {
		panic("run log not found in context")
	}
	return rl
}

// 🎯 NewContext adds the run log to context
func NewContext(ctx context.Context, l *RunLog) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// append collects the entry and echoes it to the console.
func (l *RunLog) append(level Level, msg string, echo bool, c *color.Color) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, Entry{Time: time.Now(), Level: level, Message: msg})

	if echo {
		if c != nil {
			fmt.Fprintln(l.console, c.Sprint(msg))
		} else {
			fmt.Fprintln(l.console, msg)
		}
	}

	// Mirror to zerolog
	switch level {
	case LevelDebug:
		l.zlog.Debug().Msg(msg)
	case LevelWarning:
		l.zlog.Warn().Msg(msg)
	case LevelError:
		l.zlog.Error().Msg(msg)
	default:
		l.zlog.Info().Msg(msg)
	}
}

// 📝 Debug collects a debug message, echoed only in verbose mode
func (l *RunLog) Debug(msg string) {
	l.append(LevelDebug, msg, l.verbose, color.New(color.Faint))
}

// 📝 Info collects an info message
func (l *RunLog) Info(msg string) {
	l.append(LevelInfo, msg, true, nil)
}

// 📝 Warning collects a warning message
func (l *RunLog) Warning(msg string) {
	l.append(LevelWarning, msg, true, color.New(color.FgYellow))
}

// 📝 Error collects an error message
func (l *RunLog) Error(msg string) {
	l.append(LevelError, msg, true, color.New(color.FgRed))
}

// 📝 Success collects an info message marked as a success
func (l *RunLog) Success(msg string) {
	l.append(LevelInfo, "✅ "+msg, true, color.New(color.FgGreen))
}

// 📝 Debugf collects a formatted debug message
func (l *RunLog) Debugf(format string, args ...interface{}) {
	l.Debug(fmt.Sprintf(format, args...))
}

// 📝 Infof collects a formatted info message
func (l *RunLog) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf collects a formatted warning message
func (l *RunLog) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf collects a formatted error message
func (l *RunLog) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf collects a formatted success message
func (l *RunLog) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}

// 📣 Banner collects a three-line banner framing text
func (l *RunLog) Banner(text string) {
	l.Info(strings.Repeat("=", BannerWidth))
	l.Info(center(text, BannerWidth))
	l.Info(strings.Repeat("=", BannerWidth))
}

// 📣 Separator collects a separator line
func (l *RunLog) Separator() {
	l.Info(strings.Repeat("-", BannerWidth))
}

// 📣 Newline collects an empty line
func (l *RunLog) Newline() {
	l.Info("")
}

// 📚 Entries returns a copy of the collected entries in order
func (l *RunLog) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// 💾 Flush writes every collected entry to path as plain text lines
func (l *RunLog) Flush(path string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var b strings.Builder
	for _, e := range l.entries {
		b.WriteString(e.String())
		b.WriteByte('\n')
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return errors.Errorf("writing log file: %w", err)
	}
	return nil
}

// center pads s with spaces to width, text in the middle.
func center(s string, width int) string {
	gap := width - len(s)
	if gap <= 0 {
		return s
	}
	left := gap / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
}
