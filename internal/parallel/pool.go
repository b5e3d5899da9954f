// Package parallel runs independent render work, such as the rows of an
// escape-time image, across a fixed set of goroutines.
package parallel

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool is a fixed set of goroutines executing work items.
//
// Each worker owns a queue and steals from the others when its own queue is
// empty, so slow items (bands deep inside the Mandelbrot set) do not leave
// workers idle.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers int
	queues  []chan func()
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool
}

// NewWorkerPool starts a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	queueSize := max(workers*4, 8)

	p := &WorkerPool{
		workers: workers,
		queues:  make([]chan func(), workers),
		done:    make(chan struct{}),
	}
	for i := range p.queues {
		p.queues[i] = make(chan func(), queueSize)
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}
	return p
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	own := p.queues[id]
	for {
		select {
		case <-p.done:
			drain(own)
			return
		case work := <-own:
			work()
			continue
		default:
		}

		if work := p.steal(id); work != nil {
			work()
			continue
		}

		select {
		case <-p.done:
			drain(own)
			return
		case work := <-own:
			work()
		}
	}
}

func drain(queue chan func()) {
	for {
		select {
		case work := <-queue:
			work()
		default:
			return
		}
	}
}

// steal takes one item from another worker's queue, or returns nil.
func (p *WorkerPool) steal(id int) func() {
	for i := range p.workers {
		if i == id {
			continue
		}
		select {
		case work := <-p.queues[i]:
			return work
		default:
		}
	}
	return nil
}

// ExecuteAll distributes work round-robin and waits for all of it.
// If the pool is closed, this is a no-op.
func (p *WorkerPool) ExecuteAll(work []func()) {
	if len(work) == 0 || !p.running.Load() {
		return
	}

	var wg sync.WaitGroup
	wg.Add(len(work))
	for i, fn := range work {
		wrapped := func() {
			defer wg.Done()
			fn()
		}
		select {
		case p.queues[i%p.workers] <- wrapped:
		case <-p.done:
			wg.Done()
		}
	}
	wg.Wait()
}

// ErrClosed is returned by Run when the pool stopped before all work ran.
var ErrClosed = errors.New("parallel: pool closed")

// Run executes work like ExecuteAll, but items that have not started when ctx
// is canceled are skipped. Items return ctx.Err() when they stop early.
//
// Run returns nil when every item ran and returned nil, even if ctx ends
// afterwards. Otherwise it returns the first error: ctx.Err() for skipped
// items, the item's own error, or ErrClosed.
func (p *WorkerPool) Run(ctx context.Context, work []func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !p.running.Load() {
		return ErrClosed
	}

	var (
		once     sync.Once
		firstErr error
		finished atomic.Int64
	)
	fail := func(err error) {
		once.Do(func() { firstErr = err })
	}

	wrapped := make([]func(), len(work))
	for i, fn := range work {
		wrapped[i] = func() {
			defer finished.Add(1)
			if err := ctx.Err(); err != nil {
				fail(err)
				return
			}
			if err := fn(ctx); err != nil {
				fail(err)
			}
		}
	}
	p.ExecuteAll(wrapped)

	once.Do(func() {
		if finished.Load() != int64(len(work)) {
			firstErr = ErrClosed
		}
	})
	return firstErr
}

// Close stops accepting work, finishes queued items and stops the workers.
// Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool still accepts work.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}
