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

package opts

import (
	"context"
	"io"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/walteh/tidy/pkg/status"
)

// 📢 UserLogger provides user-friendly feedback about sort outcomes
type UserLogger struct {
	log       zerolog.Logger // for debug/error logging
	out       io.Writer
	formatter status.FileFormatter
}

// 🎯 NewUserLogger creates a new user logger writing to out
func NewUserLogger(ctx context.Context, out io.Writer) *UserLogger {
	return &UserLogger{
		log:       *zerolog.Ctx(ctx),
		out:       out,
		formatter: status.NewDefaultFileFormatter(),
	}
}

// 📊 LogOutcome prints the result of sorting one root. With several roots
// the message is prefixed by the root. Failed roots are left to the console
// logger, which prints the error itself.
func (u *UserLogger) LogOutcome(s status.Summary, multi bool) {
	msg := u.formatter.FormatOutcome(s)
	if multi {
		msg = s.Root + ": " + msg
	}

	switch s.State {
	case status.StateSorted:
		pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).WithWriter(u.out).Println(msg)
		u.log.Info().Str("root", s.Root).Dur("took", s.Duration()).Msg(msg)
	case status.StateNotFound:
		pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️"}).WithWriter(u.out).Println(msg)
		u.log.Warn().Str("root", s.Root).Msg(msg)
	}
}

// ⏳ LogProgress prints how many roots ended up sorted
func (u *UserLogger) LogProgress(summaries []status.Summary) {
	sorted := 0
	for _, s := range summaries {
		if s.State == status.StateSorted {
			sorted++
		}
	}
	pterm.Info.WithPrefix(pterm.Prefix{Text: "📦"}).WithWriter(u.out).
		Println(u.formatter.FormatProgress(sorted, len(summaries)))
}

// 📋 LogSummary prints the summary table
func (u *UserLogger) LogSummary(summaries []status.Summary) {
	if table := u.formatter.FormatSummary(summaries); table != "" {
		pterm.Fprintln(u.out, table)
	}
}

// 🔍 LogValidation reports the result of validating description. Success
// only reaches the debug log.
func (u *UserLogger) LogValidation(description string, err error) {
	if err == nil {
		u.log.Debug().Msgf("%s: ok", description)
		return
	}
	pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).WithWriter(u.out).Println("invalid " + description)
	pterm.Error.WithWriter(u.out).Println(err)
	u.log.Error().Err(err).Msg("invalid " + description)
}
