// internal/worker/pool.go
package worker

import (
	"sync"
)

// Pool bounds the number of concurrently running tasks.
type Pool struct {
	wg    sync.WaitGroup
	slots chan struct{}
}

// NewPool creates a worker pool with the given number of slots.
func NewPool(size int) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{slots: make(chan struct{}, size)}
}

// Submit blocks until a slot is free, then runs the task on its own
// goroutine.
func (p *Pool) Submit(task func()) {
	p.slots <- struct{}{} // acquire a slot
	p.wg.Add(1)

	go func() {
		defer func() {
			<-p.slots
			p.wg.Done()
		}()

		task()
	}()
}

// Wait blocks until every submitted task has finished.
func (p *Pool) Wait() {
	p.wg.Wait()
}
