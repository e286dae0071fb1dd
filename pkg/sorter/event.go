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

package sorter

import "context"

// 📣 EventKind is the kind of change a sort pass made (or declined to make).
type EventKind int

const (
	EventRenamed EventKind = iota
	EventRenameBlocked
	EventMoved
	EventOverwrote
	EventExtracted
	EventPruned
	EventSkippedReserved
	EventIgnored
	EventUnclassified
)

// String returns a string representation of EventKind
func (k EventKind) String() string {
	switch k {
	case EventRenamed:
		return "renamed"
	case EventRenameBlocked:
		return "rename-blocked"
	case EventMoved:
		return "moved"
	case EventOverwrote:
		return "overwrote"
	case EventExtracted:
		return "extracted"
	case EventPruned:
		return "pruned"
	case EventSkippedReserved:
		return "skipped-reserved"
	case EventIgnored:
		return "ignored"
	case EventUnclassified:
		return "unclassified"
	default:
		return "unknown"
	}
}

// Event describes one step of a sort pass.
type Event struct {
	Kind     EventKind
	Path     string   // entry the step applied to
	Dest     string   // destination, for renames, moves and extractions
	Category Category // category, for moves and extractions
}

// Reporter receives events as a sort pass runs. Implementations must not
// touch the tree being sorted.
type Reporter interface {
	Report(ctx context.Context, ev Event)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(ctx context.Context, ev Event)

func (f ReporterFunc) Report(ctx context.Context, ev Event) { f(ctx, ev) }

// MultiReporter fans events out to every reporter in order.
type MultiReporter []Reporter

func (m MultiReporter) Report(ctx context.Context, ev Event) {
	for _, r := range m {
		if r != nil {
			r.Report(ctx, ev)
		}
	}
}

type nopReporter struct{}

func (nopReporter) Report(context.Context, Event) {}
