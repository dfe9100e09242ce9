package slots

import (
	"cmp"
	"slices"
	"sync"
)

// ResultLog is the append-only record of harvested results, in harvest order.
// Harvest order follows dispatch: a worker's result is collected only when the
// coordinator next addresses that worker, or during the drain.
type ResultLog struct {
	mu      sync.RWMutex
	entries []Result
}

func newResultLog() *ResultLog { return &ResultLog{} }

// append adds r and returns the new length.
func (l *ResultLog) append(r Result) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, r)
	return len(l.entries)
}

func (l *ResultLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Entries returns a copy of the log in harvest order.
func (l *ResultLog) Entries() []Result {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.entries)
}

// BySubmission returns a copy of the log ordered by submission sequence.
func (l *ResultLog) BySubmission() []Result {
	out := l.Entries()
	slices.SortFunc(out, func(a, b Result) int { return cmp.Compare(a.Seq, b.Seq) })
	return out
}
