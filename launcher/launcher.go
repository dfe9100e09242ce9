// Package launcher starts and joins the numbered units of execution that back a worker pool.
package launcher

import (
	"errors"
	"fmt"
	"sync"
)

var (
	ErrAlreadyStarted = errors.New("launcher: unit already started")
	ErrInvalidIndex   = errors.New("launcher: invalid unit index")
)

// Launcher is the capability the coordinator needs from an execution environment:
// start unit i running fn, and block until unit i has returned.
type Launcher interface {
	// Start runs fn as unit index. It must not block on fn.
	Start(index int, fn func()) error

	// Join blocks until unit index has returned. Joining a unit that was never started returns at once.
	Join(index int)
}

type goroutines struct {
	mu   sync.Mutex
	done map[int]chan struct{}
}

// NewGoroutines returns a Launcher that runs each unit on its own goroutine.
func NewGoroutines() Launcher {
	return &goroutines{done: make(map[int]chan struct{})}
}

func (l *goroutines) Start(index int, fn func()) error {
	if index < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidIndex, index)
	}

	l.mu.Lock()
	if _, ok := l.done[index]; ok {
		l.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrAlreadyStarted, index)
	}
	done := make(chan struct{})
	l.done[index] = done
	l.mu.Unlock()

	go func() {
		defer close(done)
		fn()
	}()
	return nil
}

func (l *goroutines) Join(index int) {
	l.mu.Lock()
	done, ok := l.done[index]
	l.mu.Unlock()
	if !ok {
		return
	}
	<-done
}
