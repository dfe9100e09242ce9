package slots

import "errors"

const Namespace = "slots"

var (
	ErrInvalidConfig = errors.New(Namespace + ": invalid configuration")
	ErrInvalidState  = errors.New(Namespace + ": coordinator already drained")
	ErrInvalidJob    = errors.New(Namespace + ": invalid job")
	ErrInvalidTarget = errors.New(Namespace + ": job targets a worker outside the pool")

	ErrLaunch = errors.New(Namespace + ": cannot launch worker")
	ErrSync   = errors.New(Namespace + ": synchronization failed")

	ErrDivisionByZero  = errors.New(Namespace + ": integer division by zero")
	ErrUnknownOperator = errors.New(Namespace + ": unknown operator")

	ErrWorkerFailed  = errors.New(Namespace + ": worker exited with a failure")
	ErrNoLiveWorkers = errors.New(Namespace + ": no live workers left in the pool")
)
