package slots

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResultLog(t *testing.T) {
	l := newResultLog()
	require.Equal(t, 0, l.Len())
	require.Empty(t, l.Entries())

	require.Equal(t, 1, l.append(Result{Seq: 2, Value: 20}))
	require.Equal(t, 2, l.append(Result{Seq: 0, Value: 0}))
	require.Equal(t, 3, l.append(Result{Seq: 1, Value: 10}))

	entries := l.Entries()
	require.Equal(t, []uint64{2, 0, 1}, seqs(entries))

	entries[0].Value = -1
	require.Equal(t, 20, l.Entries()[0].Value, "Entries returns a copy")

	require.Equal(t, []uint64{0, 1, 2}, seqs(l.BySubmission()))
	require.Equal(t, []uint64{2, 0, 1}, seqs(l.Entries()), "BySubmission leaves the log untouched")
}

func TestResultLog_ConcurrentReaders(t *testing.T) {
	l := newResultLog()
	var wg sync.WaitGroup
	for i := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				_ = l.Len()
				_ = l.Entries()
			}
		}()
		l.append(Result{Seq: uint64(i)})
	}
	wg.Wait()
	require.Equal(t, 4, l.Len())
}

func seqs(rs []Result) []uint64 {
	out := make([]uint64, len(rs))
	for i, r := range rs {
		out[i] = r.Seq
	}
	return out
}
