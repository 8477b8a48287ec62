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

package status

import (
	"context"
	"io"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 📢 Printer gives user-friendly feedback about command outcomes. In-run
// progress lives in the run log; the printer only speaks at the edges of a
// command, so its lines never end up in the log artifact.
type Printer struct {
	log zerolog.Logger // for debug/error logging
	out io.Writer
}

// 🎯 NewPrinter creates a new printer writing to out
func NewPrinter(ctx context.Context, out io.Writer) *Printer {
	return &Printer{
		log: *zerolog.Ctx(ctx),
		out: out,
	}
}

// 🔍 Validation reports a validation verdict with appropriate emoji
func (p *Printer) Validation(passed bool, description string, err error) {
	if passed {
		pterm.Success.WithWriter(p.out).WithPrefix(pterm.Prefix{Text: "✅"}).Println(description)
		p.log.Info().Msg(description)
		return
	}

	if err != nil {
		pterm.Error.WithWriter(p.out).WithPrefix(pterm.Prefix{Text: "❌"}).Println(description)
		pterm.Error.WithWriter(p.out).Println(err)
		p.log.Error().Err(err).Msg(description)
		return
	}

	pterm.Warning.WithWriter(p.out).WithPrefix(pterm.Prefix{Text: "⚠️"}).Println(description)
	p.log.Warn().Msg(description)
}

// 💥 Failure reports a failed command
func (p *Printer) Failure(description string, err error) {
	pterm.Error.WithWriter(p.out).WithPrefix(pterm.Prefix{Text: "❌"}).Println(description)
	if err != nil {
		pterm.Error.WithWriter(p.out).Println(err)
	}
	p.log.Error().Err(err).Msg(description)
}

// 📦 Note reports a neutral progress line
func (p *Printer) Note(description string) {
	pterm.Info.WithWriter(p.out).WithPrefix(pterm.Prefix{Text: "📦"}).Println(description)
	p.log.Info().Msg(description)
}
