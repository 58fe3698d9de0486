// Package workerpool runs submitted funcs on a fixed set of goroutines.
package workerpool

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
)

// ErrStopped is returned by Submit after Stop.
var ErrStopped = errors.New("workerpool: stopped")

type Pool struct {
	tasks   chan func()
	quit    chan struct{}
	mu      sync.RWMutex // held for reading while submitting, for writing by Stop
	stopped bool
	wg      sync.WaitGroup
	size    int
	workers int32
}

// New starts size workers sharing a queue of queueCapacity pending tasks.
func New(size, queueCapacity int) *Pool {
	if size < 1 {
		size = 1
	}
	if queueCapacity < 0 {
		queueCapacity = 0
	}
	p := &Pool{
		tasks: make(chan func(), queueCapacity),
		quit:  make(chan struct{}),
		size:  size,
	}
	p.wg.Add(size)
	for range size {
		go p.worker()
	}
	return p
}

// Submit queues task, blocking while the queue is full.
func (p *Pool) Submit(ctx context.Context, task func()) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		return ErrStopped
	}
	select {
	case p.tasks <- task:
		log.Debug().Int("queued", len(p.tasks)).Int32("workers", atomic.LoadInt32(&p.workers)).Msg("task submitted")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Pool) worker() {
	atomic.AddInt32(&p.workers, 1)
	defer func() {
		atomic.AddInt32(&p.workers, -1)
		p.wg.Done()
	}()
	for {
		select {
		case task := <-p.tasks:
			task()
		case <-p.quit:
			// Nothing can be submitted any more; finish what is queued.
			for {
				select {
				case task := <-p.tasks:
					task()
				default:
					return
				}
			}
		}
	}
}

// Size returns the number of workers.
func (p *Pool) Size() int { return p.size }

// Stop rejects new tasks, runs the queued ones and waits for all workers.
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.quit)
	p.mu.Unlock()
	p.wg.Wait()
}
