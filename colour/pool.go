package colour

import (
	"runtime"
	"sync"
)

// WorkerPool fans per-channel work out across a fixed set of
// goroutines during multi-mode blocks. Construct one pool at startup
// and thread it through to every Engine that needs it; the workers are
// started on first use and repeated starts are idempotent.
type WorkerPool struct {
	workers int
	tasks   chan func()
	start   sync.Once
}

// NewWorkerPool returns a pool with the given number of workers;
// workers <= 0 selects GOMAXPROCS.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &WorkerPool{
		workers: workers,
		tasks:   make(chan func(), workers),
	}
}

// Workers returns the pool size.
func (p *WorkerPool) Workers() int { return p.workers }

func (p *WorkerPool) spawn() {
	for i := 0; i < p.workers; i++ {
		go func() {
			for task := range p.tasks {
				task()
			}
		}()
	}
}

// Run executes fn(0..n-1) across the pool and returns when every call
// has completed. There is no cancellation: a batch either completes or
// the process is torn down with the hosting stream.
func (p *WorkerPool) Run(n int, fn func(i int)) {
	if n <= 0 {
		return
	}
	p.start.Do(p.spawn)

	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		i := i
		p.tasks <- func() {
			defer wg.Done()
			fn(i)
		}
	}
	wg.Wait()
}
