package colour

import (
	"sync/atomic"
	"testing"
)

func TestWorkerPoolRunsAllTasks(t *testing.T) {
	p := NewWorkerPool(3)
	var hits int64
	p.Run(100, func(i int) {
		atomic.AddInt64(&hits, 1)
	})
	if hits != 100 {
		t.Errorf("ran %d tasks, want 100", hits)
	}
}

func TestWorkerPoolPassesIndices(t *testing.T) {
	p := NewWorkerPool(4)
	seen := make([]int64, 16)
	p.Run(len(seen), func(i int) {
		atomic.AddInt64(&seen[i], 1)
	})
	for i, n := range seen {
		if n != 1 {
			t.Errorf("index %d executed %d times, want 1", i, n)
		}
	}
}

func TestWorkerPoolRepeatedRuns(t *testing.T) {
	p := NewWorkerPool(2)
	var hits int64
	for round := 0; round < 10; round++ {
		p.Run(8, func(i int) {
			atomic.AddInt64(&hits, 1)
		})
	}
	if hits != 80 {
		t.Errorf("ran %d tasks across rounds, want 80", hits)
	}
}

func TestWorkerPoolDefaultsWorkers(t *testing.T) {
	p := NewWorkerPool(0)
	if p.Workers() < 1 {
		t.Errorf("Workers() = %d, want >= 1", p.Workers())
	}
	p.Run(0, func(i int) {
		t.Error("zero-task batch must not execute anything")
	})
}
