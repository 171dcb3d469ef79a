package worker

import (
	"context"
	"sync"
)

// Budget coordinates the two stop conditions of a bounded scan over a list
// of candidates: stop once enough candidates have been retained, or once a
// hard cap of candidates has been examined, whichever triggers first. Both
// checks happen atomically when a worker claims the next candidate, so the
// conditions hold across any number of workers.
type Budget struct {
	mu          sync.Mutex
	total       int
	maxExamined int
	want        int
	examined    int
	retained    int
}

// NewBudget creates a budget over total candidates, capped at maxExamined
// examinations, aiming for want retained.
func NewBudget(total, maxExamined, want int) *Budget {
	if maxExamined < 0 {
		maxExamined = 0
	}
	return &Budget{total: total, maxExamined: maxExamined, want: want}
}

// Claim reserves the next candidate index. It returns false once the list is
// exhausted, the examination cap is reached, or enough candidates have been
// retained.
func (b *Budget) Claim() (int, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.examined >= b.total || b.examined >= b.maxExamined || b.retained >= b.want {
		return 0, false
	}
	idx := b.examined
	b.examined++
	return idx, true
}

// Retain records that a claimed candidate was kept.
func (b *Budget) Retain() {
	b.mu.Lock()
	b.retained++
	b.mu.Unlock()
}

// Examined returns how many candidates have been claimed so far.
func (b *Budget) Examined() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.examined
}

// Retained returns how many candidates have been kept so far.
func (b *Budget) Retained() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.retained
}

// Process runs fn over budget-claimed indices with the given number of
// workers. fn calls budget.Retain for candidates it keeps. Process returns
// once every worker has drained the budget or the context is done. With one
// worker the scan is strictly sequential in candidate order.
func Process(ctx context.Context, workers int, budget *Budget, fn func(ctx context.Context, idx int)) {
	if workers <= 0 {
		workers = 1
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				if ctx.Err() != nil {
					return
				}
				idx, ok := budget.Claim()
				if !ok {
					return
				}
				fn(ctx, idx)
			}
		}()
	}
	wg.Wait()
}
