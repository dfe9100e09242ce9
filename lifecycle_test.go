package slots

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/ygrebnov/slots/metrics"
)

func newTestWorkers(n int) []*worker {
	instr := newInstruments(metrics.NewNoopProvider())
	out := make([]*worker, n)
	for i := range n {
		out[i] = newWorker(context.Background(), i, nil, zerolog.Nop(), instr)
	}
	return out
}

func TestShutdown_OrderAndSentinel(t *testing.T) {
	workers := newTestWorkers(3)
	var steps []string

	s := newShutdown(
		workers,
		func(_ context.Context, w *worker) error {
			steps = append(steps, fmt.Sprintf("claim %d", w.index))
			return nil
		},
		func(w *worker) { steps = append(steps, fmt.Sprintf("harvest %d", w.index)) },
		func(i int) { steps = append(steps, fmt.Sprintf("join %d", i)) },
		func() { steps = append(steps, "abort") },
		zerolog.Nop(),
	)
	require.False(t, s.started())

	require.NoError(t, s.run(context.Background()))
	require.True(t, s.started())
	require.Equal(t, []string{
		"claim 0", "harvest 0", "join 0",
		"claim 1", "harvest 1", "join 1",
		"claim 2", "harvest 2", "join 2",
	}, steps)

	for _, w := range workers {
		require.Equal(t, opTerminate, w.slot.job.Operator)
		require.True(t, w.signals.full.TryAcquire(1), "full is signalled after the sentinel")
	}

	// A second run is a no-op.
	require.NoError(t, s.run(context.Background()))
	require.Len(t, steps, 9)
}

func TestShutdown_ClaimErrors(t *testing.T) {
	workers := newTestWorkers(3)
	workers[1].kill(fmt.Errorf("%w: dead", ErrWorkerFailed))

	stuck := errors.New("stuck")
	var steps []string

	s := newShutdown(
		workers,
		func(_ context.Context, w *worker) error {
			switch w.index {
			case 1:
				return w.failure()
			case 2:
				return stuck
			}
			return nil
		},
		func(w *worker) { steps = append(steps, fmt.Sprintf("harvest %d", w.index)) },
		func(i int) { steps = append(steps, fmt.Sprintf("join %d", i)) },
		func() { steps = append(steps, "abort") },
		zerolog.Nop(),
	)

	err := s.run(context.Background())
	require.ErrorIs(t, err, ErrWorkerFailed)
	require.ErrorIs(t, err, stuck)
	require.Equal(t, []string{
		"harvest 0", "join 0",
		"join 1",
		"abort", "join 2",
	}, steps, "a dead worker is only joined; a live unreachable one is aborted first")
	require.Equal(t, err, s.err)
}
