package slots

import (
	"fmt"
	"strconv"

	"github.com/ygrebnov/errorc"
)

// Operator is the arithmetic operation carried by a Job.
type Operator byte

const (
	OpAdd Operator = '+'
	OpSub Operator = '-'
	OpMul Operator = '*'
	OpDiv Operator = '/'

	// opTerminate travels through a slot like any other operator and tells the worker to exit.
	opTerminate Operator = 'K'
)

func (o Operator) String() string { return string(rune(o)) }

// Valid reports whether o is one of the four arithmetic operators.
func (o Operator) Valid() bool {
	switch o {
	case OpAdd, OpSub, OpMul, OpDiv:
		return true
	}
	return false
}

// ParseOperator converts a single-character token into an Operator.
func ParseOperator(s string) (Operator, error) {
	if len(s) != 1 || !Operator(s[0]).Valid() {
		return 0, errorc.With(ErrUnknownOperator, errorc.String("operator", s))
	}
	return Operator(s[0]), nil
}

// AnyWorker as a Job target lets the coordinator pick the first free worker.
const AnyWorker = 0

// Job is one arithmetic request. Target is 1-based: n means worker n-1, AnyWorker means any free worker.
type Job struct {
	Target   int
	Operand1 int
	Operator Operator
	Operand2 int
}

// NewJob builds a validated Job.
func NewJob(target, operand1 int, op Operator, operand2 int) (Job, error) {
	j := Job{Target: target, Operand1: operand1, Operator: op, Operand2: operand2}
	if err := j.validate(); err != nil {
		return Job{}, err
	}
	return j, nil
}

func (j Job) validate() error {
	if j.Target < 0 {
		return errorc.With(ErrInvalidJob, errorc.String("target", strconv.Itoa(j.Target)))
	}
	if !j.Operator.Valid() {
		return errorc.With(ErrInvalidJob, errorc.String("operator", j.Operator.String()))
	}
	return nil
}

func (j Job) String() string {
	return fmt.Sprintf("%d %s %d", j.Operand1, j.Operator, j.Operand2)
}

// Compute applies op to a and b. Division by zero is reported as ErrDivisionByZero, never as a value.
func Compute(a int, op Operator, b int) (int, error) {
	switch op {
	case OpAdd:
		return a + b, nil
	case OpSub:
		return a - b, nil
	case OpMul:
		return a * b, nil
	case OpDiv:
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		return a / b, nil
	default:
		return 0, errorc.With(ErrUnknownOperator, errorc.String("operator", op.String()))
	}
}

// Result is a harvested snapshot of a slot. It does not change when the slot is reused.
type Result struct {
	Operand1 int
	Operator Operator
	Operand2 int
	Value    int

	// Worker is the 0-based index of the worker that computed the value.
	Worker int
	// Seq is the 0-based submission sequence of the job.
	Seq uint64
}

func (r Result) String() string {
	return fmt.Sprintf("%d %s %d = %d", r.Operand1, r.Operator, r.Operand2, r.Value)
}
