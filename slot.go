package slots

// slot is the single-job mailbox shared by the coordinator and one worker.
//
// The coordinator writes job and seq while it holds the worker's empty signal.
// The worker writes result and ready while it holds the full signal.
// Neither side touches the slot outside of those windows, so no lock is needed.
type slot struct {
	job Job
	seq uint64

	result int
	ready  bool
}

// put stores the next job. The caller must hold the empty signal and must have harvested first.
func (s *slot) put(j Job, seq uint64) {
	s.job = j
	s.seq = seq
}

// terminate stores the sentinel. Operands of the previous job are left as they were.
func (s *slot) terminate() {
	s.job.Operator = opTerminate
}

// publish records a computed value and marks it ready for harvest.
func (s *slot) publish(v int) {
	s.result = v
	s.ready = true
}

// harvest copies out a ready result and consumes the ready state, so the same value
// is never returned twice.
func (s *slot) harvest(worker int) (Result, bool) {
	if !s.ready {
		return Result{}, false
	}
	s.ready = false
	return Result{
		Operand1: s.job.Operand1,
		Operator: s.job.Operator,
		Operand2: s.job.Operand2,
		Value:    s.result,
		Worker:   worker,
		Seq:      s.seq,
	}, true
}
