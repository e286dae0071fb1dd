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
	"sync"
	"time"

	"github.com/walteh/tidy/pkg/sorter"
)

// 📊 State is where a root is in its sort pass
type State int

const (
	StateUnknown State = iota
	StateRunning
	StateSorted
	StateNotFound
	StateFailed
)

// String returns a string representation of State
func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateSorted:
		return "sorted"
	case StateNotFound:
		return "not found"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// 📄 Summary collects what happened to one root
type Summary struct {
	Root       string
	State      State
	Counts     map[sorter.EventKind]int
	ByCategory map[sorter.Category]int // files moved per category
	Overwrites []string                // destinations that replaced an existing file
	Error      error
	Started    time.Time
	Finished   time.Time
}

// Count returns how many events of kind were reported
func (s Summary) Count(kind sorter.EventKind) int {
	return s.Counts[kind]
}

// Duration returns how long the pass took
func (s Summary) Duration() time.Duration {
	if s.Finished.IsZero() {
		return 0
	}
	return s.Finished.Sub(s.Started)
}

// 📈 Tracker aggregates sort events per root. It is safe for concurrent use
// so several roots may be sorted at once.
type Tracker struct {
	mu    sync.RWMutex
	roots map[string]*Summary
	order []string
	now   func() time.Time
}

// 🏭 NewTracker creates an empty tracker
func NewTracker() *Tracker {
	return &Tracker{
		roots: make(map[string]*Summary),
		now:   time.Now,
	}
}

// Start marks root as running and returns a reporter bound to it
func (t *Tracker) Start(root string) sorter.Reporter {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.roots[root]; !ok {
		t.order = append(t.order, root)
	}
	t.roots[root] = &Summary{
		Root:       root,
		State:      StateRunning,
		Counts:     make(map[sorter.EventKind]int),
		ByCategory: make(map[sorter.Category]int),
		Started:    t.now(),
	}

	return sorter.ReporterFunc(func(ctx context.Context, ev sorter.Event) {
		t.record(root, ev)
	})
}

func (t *Tracker) record(root string, ev sorter.Event) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, ok := t.roots[root]
	if !ok {
		return
	}

	s.Counts[ev.Kind]++
	switch ev.Kind {
	case sorter.EventMoved:
		s.ByCategory[ev.Category]++
	case sorter.EventOverwrote:
		s.Overwrites = append(s.Overwrites, ev.Dest)
	}
}

// Finish records the outcome of root's pass
func (t *Tracker) Finish(root string, state State, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, ok := t.roots[root]
	if !ok {
		s = &Summary{
			Root:       root,
			Counts:     make(map[sorter.EventKind]int),
			ByCategory: make(map[sorter.Category]int),
			Started:    t.now(),
		}
		t.roots[root] = s
		t.order = append(t.order, root)
	}
	s.State = state
	s.Error = err
	s.Finished = t.now()
}

// Summary returns a copy of root's summary
func (t *Tracker) Summary(root string) (Summary, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	s, ok := t.roots[root]
	if !ok {
		return Summary{}, false
	}
	return copySummary(s), true
}

// Summaries returns every summary in the order roots were started
func (t *Tracker) Summaries() []Summary {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]Summary, 0, len(t.order))
	for _, root := range t.order {
		out = append(out, copySummary(t.roots[root]))
	}
	return out
}

func copySummary(s *Summary) Summary {
	c := *s
	c.Counts = make(map[sorter.EventKind]int, len(s.Counts))
	for k, v := range s.Counts {
		c.Counts[k] = v
	}
	c.ByCategory = make(map[sorter.Category]int, len(s.ByCategory))
	for k, v := range s.ByCategory {
		c.ByCategory[k] = v
	}
	c.Overwrites = append([]string(nil), s.Overwrites...)
	return c
}
