package worker

import (
	"context"
	"sync"
	"testing"
)

func TestBudget_StopsAtTotal(t *testing.T) {
	budget := NewBudget(3, 20, 10)

	for i := 0; i < 3; i++ {
		idx, ok := budget.Claim()
		if !ok {
			t.Fatalf("Claim %d unexpectedly refused", i)
		}
		if idx != i {
			t.Errorf("Expected index %d, got %d", i, idx)
		}
	}

	if _, ok := budget.Claim(); ok {
		t.Error("Expected refusal after list exhausted")
	}
	if budget.Examined() != 3 {
		t.Errorf("Expected 3 examined, got %d", budget.Examined())
	}
}

func TestBudget_StopsAtMaxExamined(t *testing.T) {
	budget := NewBudget(100, 20, 50)

	claims := 0
	for {
		if _, ok := budget.Claim(); !ok {
			break
		}
		claims++
	}
	if claims != 20 {
		t.Errorf("Expected examination cap at 20, got %d", claims)
	}
}

func TestBudget_StopsWhenEnoughRetained(t *testing.T) {
	budget := NewBudget(100, 20, 3)

	for i := 0; i < 3; i++ {
		if _, ok := budget.Claim(); !ok {
			t.Fatalf("Claim %d unexpectedly refused", i)
		}
		budget.Retain()
	}

	if _, ok := budget.Claim(); ok {
		t.Error("Expected refusal once enough candidates retained")
	}
	if budget.Retained() != 3 {
		t.Errorf("Expected 3 retained, got %d", budget.Retained())
	}
}

func TestBudget_UnretainedClaimsKeepScanning(t *testing.T) {
	budget := NewBudget(10, 20, 2)

	// Candidates 0-4 rejected, 5 and 6 retained
	seen := 0
	for {
		idx, ok := budget.Claim()
		if !ok {
			break
		}
		seen++
		if idx >= 5 {
			budget.Retain()
		}
	}
	if seen != 7 {
		t.Errorf("Expected scan to cover 7 candidates, got %d", seen)
	}
}

func TestProcess_SingleWorkerSequential(t *testing.T) {
	budget := NewBudget(5, 20, 5)

	var order []int
	Process(context.Background(), 1, budget, func(ctx context.Context, idx int) {
		order = append(order, idx)
		budget.Retain()
	})

	if len(order) != 5 {
		t.Fatalf("Expected 5 candidates processed, got %d", len(order))
	}
	for i, idx := range order {
		if idx != i {
			t.Errorf("Position %d: expected index %d, got %d", i, i, idx)
		}
	}
}

func TestProcess_MultipleWorkersCoverBudget(t *testing.T) {
	budget := NewBudget(50, 50, 50)

	var mu sync.Mutex
	seen := make(map[int]bool)
	Process(context.Background(), 4, budget, func(ctx context.Context, idx int) {
		mu.Lock()
		if seen[idx] {
			t.Errorf("Index %d claimed twice", idx)
		}
		seen[idx] = true
		mu.Unlock()
		budget.Retain()
	})

	if len(seen) != 50 {
		t.Errorf("Expected 50 distinct candidates processed, got %d", len(seen))
	}
}

func TestProcess_ContextCancelStopsWorkers(t *testing.T) {
	budget := NewBudget(1000, 1000, 1000)
	ctx, cancel := context.WithCancel(context.Background())

	processed := 0
	Process(ctx, 1, budget, func(ctx context.Context, idx int) {
		processed++
		if processed == 3 {
			cancel()
		}
	})

	if processed != 3 {
		t.Errorf("Expected processing to stop after cancel, got %d", processed)
	}
}
