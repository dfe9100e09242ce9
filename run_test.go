package slots

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	results, err := Run(testCtx(t), 3, Jobs(
		job(AnyWorker, 1, OpAdd, 2),
		job(3, 4, OpMul, 5),
		job(AnyWorker, 9, OpSub, 10),
	), WithBackoff(time.Millisecond))
	require.NoError(t, err)
	require.ElementsMatch(t, []triple{
		{a: 1, op: OpAdd, b: 2, v: 3},
		{a: 4, op: OpMul, b: 5, v: 20},
		{a: 9, op: OpSub, b: 10, v: -1},
	}, triples(results))
}

func TestRun_EmptySource(t *testing.T) {
	results, err := Run(testCtx(t), 2, Jobs())
	require.NoError(t, err)
	require.Empty(t, results)
}

func TestRun_InvalidSize(t *testing.T) {
	results, err := Run(testCtx(t), 0, Jobs(job(0, 1, OpAdd, 1)))
	require.ErrorIs(t, err, ErrInvalidConfig)
	require.Nil(t, results)
}

func TestRun_SourceErrorStillDrains(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	src := JobSourceFunc(func() (Job, error) {
		calls++
		switch calls {
		case 1, 2:
			return job(AnyWorker, calls, OpAdd, calls), nil
		case 3:
			return Job{}, boom
		}
		return Job{}, io.EOF
	})

	results, err := Run(testCtx(t), 2, src, WithBackoff(time.Millisecond))
	require.ErrorIs(t, err, boom)
	require.Len(t, results, 2, "jobs submitted before the error are still harvested")
	require.Equal(t, 3, calls, "the source is not read past its error")
}

func TestRun_WorkerFailure(t *testing.T) {
	results, err := Run(testCtx(t), 1, Jobs(
		job(1, 8, OpDiv, 2),
		job(1, 8, OpDiv, 0),
		job(1, 1, OpAdd, 1),
	))
	require.ErrorIs(t, err, ErrWorkerFailed)
	require.ErrorIs(t, err, ErrDivisionByZero)
	require.Equal(t, []triple{{a: 8, op: OpDiv, b: 2, v: 4}}, triples(results))
}

func TestJobs_IsExhaustedOnce(t *testing.T) {
	src := Jobs(job(0, 1, OpAdd, 1))
	_, err := src.Next()
	require.NoError(t, err)
	for range 2 {
		_, err = src.Next()
		require.ErrorIs(t, err, io.EOF)
	}
}
