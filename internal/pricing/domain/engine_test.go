package domain

import (
	"context"
	"errors"
	"sync"
	"testing"

	"golang.org/x/exp/rand"
)

func TestChunkSizesSumsToN(t *testing.T) {
	sizes := chunkSizes(17, 5)
	if len(sizes) != 5 {
		t.Fatalf("expected 5 chunks, got %d", len(sizes))
	}
	total := 0
	for _, s := range sizes {
		total += s
		if s < 3 || s > 4 {
			t.Errorf("chunk size %d out of expected [3,4] range for 17/5", s)
		}
	}
	if total != 17 {
		t.Errorf("chunk sizes sum to %d, want 17", total)
	}
}

func TestRunParallelRejectsNonPositiveInputs(t *testing.T) {
	noop := func(ctx context.Context, workerIndex, start, count int, rng *rand.Rand) error { return nil }
	if err := runParallel(context.Background(), 0, 4, 1, nil, noop); err == nil {
		t.Fatal("expected error for n <= 0")
	}
	if err := runParallel(context.Background(), 10, 0, 1, nil, noop); err == nil {
		t.Fatal("expected error for w <= 0")
	}
}

func TestRunParallelDisjointRowRanges(t *testing.T) {
	const n = 1000
	seen := make([]int32, n)
	err := runParallel(context.Background(), n, 8, 7, nil, func(ctx context.Context, workerIndex, start, count int, rng *rand.Rand) error {
		for i := 0; i < count; i++ {
			seen[start+i]++
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range seen {
		if v != 1 {
			t.Fatalf("row %d visited %d times, want exactly 1", i, v)
		}
	}
}

func TestRunParallelPropagatesWorkerFailure(t *testing.T) {
	sentinel := errors.New("boom")
	err := runParallel(context.Background(), 100, 4, 1, nil, func(ctx context.Context, workerIndex, start, count int, rng *rand.Rand) error {
		if workerIndex == 2 {
			return sentinel
		}
		return nil
	})
	if err == nil {
		t.Fatal("expected worker failure to propagate")
	}
	de, ok := err.(*Error)
	if !ok || de.Kind != WorkerFailure {
		t.Fatalf("expected WorkerFailure, got %v", err)
	}
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped sentinel error, got %v", err)
	}
}

func TestRunParallelReportsProgress(t *testing.T) {
	var mu sync.Mutex
	maxFraction := 0.0
	err := runParallel(context.Background(), 100, 4, 1, func(f float64) {
		mu.Lock()
		defer mu.Unlock()
		if f > maxFraction {
			maxFraction = f
		}
	}, func(ctx context.Context, workerIndex, start, count int, rng *rand.Rand) error {
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if maxFraction != 1.0 {
		t.Errorf("expected progress to reach fraction 1.0, got %v", maxFraction)
	}
}
