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
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/walteh/tidy/pkg/sorter"
)

// FileFormatter defines how progress, outcomes and summaries are formatted
type FileFormatter interface {
	// FormatProgress formats a progress message
	FormatProgress(current, total int) string

	// FormatOutcome formats the one-line result of sorting a root
	FormatOutcome(s Summary) string

	// FormatError formats an error message
	FormatError(err error) string

	// FormatSummary renders a table of summaries
	FormatSummary(summaries []Summary) string
}

// DefaultFileFormatter provides a default implementation of FileFormatter
type DefaultFileFormatter struct{}

// NewDefaultFileFormatter creates a new DefaultFileFormatter
func NewDefaultFileFormatter() *DefaultFileFormatter {
	return &DefaultFileFormatter{}
}

// FormatProgress formats a progress message with percentage
func (f *DefaultFileFormatter) FormatProgress(current, total int) string {
	var percentage float64
	if total == 0 {
		percentage = 0
		if current > 0 {
			percentage = 100
		}
	} else {
		percentage = float64(current) / float64(total) * 100
	}

	if current >= total {
		return fmt.Sprintf("✅ Progress: %d/%d (%.0f%%)", current, total, percentage)
	}
	return fmt.Sprintf("⏳ Progress: %d/%d (%.0f%%)", current, total, percentage)
}

// FormatOutcome returns "Folder is sorted", "Path does not exist. Try again." or the error
func (f *DefaultFileFormatter) FormatOutcome(s Summary) string {
	switch s.State {
	case StateSorted:
		return "Folder is sorted"
	case StateNotFound:
		return "Path does not exist. Try again."
	case StateFailed:
		return f.FormatError(s.Error)
	default:
		return fmt.Sprintf("Folder is %s", s.State)
	}
}

// FormatError formats an error message with emoji
func (f *DefaultFileFormatter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("❌ Error: %v", err)
}

var summaryKinds = []sorter.EventKind{
	sorter.EventRenamed,
	sorter.EventMoved,
	sorter.EventExtracted,
	sorter.EventPruned,
	sorter.EventOverwrote,
	sorter.EventUnclassified,
}

// FormatSummary renders one row per root with event counts
func (f *DefaultFileFormatter) FormatSummary(summaries []Summary) string {
	if len(summaries) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := table.Row{"root"}
	for _, kind := range summaryKinds {
		header = append(header, kind.String())
	}
	header = append(header, "status")
	tw.AppendHeader(header)

	for _, s := range summaries {
		row := table.Row{s.Root}
		for _, kind := range summaryKinds {
			row = append(row, strconv.Itoa(s.Count(kind)))
		}
		row = append(row, s.State.String())
		tw.AppendRow(row)
	}

	configs := make([]table.ColumnConfig, 0, len(summaryKinds))
	for i := range summaryKinds {
		configs = append(configs, table.ColumnConfig{
			Number:      i + 2,
			Align:       text.AlignRight,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}
