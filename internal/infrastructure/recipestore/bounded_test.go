package recipestore

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/wasfeines/wasfeines/internal/domain/model"
	"github.com/wasfeines/wasfeines/internal/infrastructure/storage"
)

// countingRepository wraps a Repository to observe call concurrency.
type countingRepository struct {
	*Repository
	inFlight    int64
	maxInFlight int64
}

func (c *countingRepository) ListRecipes(ctx context.Context) ([]model.Recipe, error) {
	cur := atomic.AddInt64(&c.inFlight, 1)
	defer atomic.AddInt64(&c.inFlight, -1)
	for {
		prev := atomic.LoadInt64(&c.maxInFlight)
		if cur <= prev || atomic.CompareAndSwapInt64(&c.maxInFlight, prev, cur) {
			break
		}
	}
	return c.Repository.ListRecipes(ctx)
}

func TestBounded_LimitsConcurrency(t *testing.T) {
	repo, store := testRepository(t)
	mustPut(t, store, "recipes/Lasagne.html", "a", "text/html")

	counting := &countingRepository{Repository: repo}
	bounded := NewBounded(counting, 2)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := bounded.ListRecipes(ctx); err != nil {
				t.Errorf("ListRecipes failed: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := atomic.LoadInt64(&counting.maxInFlight); got > 2 {
		t.Errorf("observed %d concurrent calls, limit is 2", got)
	}
}

func TestBounded_CancelledContext(t *testing.T) {
	repo, _ := testRepository(t)
	bounded := NewBounded(repo, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := bounded.ListRecipes(ctx); err == nil {
		t.Error("expected error acquiring slot with cancelled context")
	}
}

func TestBounded_PassesThrough(t *testing.T) {
	store := storage.NewMemory()
	repo := New(store, DefaultConfig())
	bounded := NewBounded(repo, 4)
	ctx := context.Background()

	recipes, err := bounded.ListRecipes(ctx)
	if err != nil {
		t.Fatalf("ListRecipes failed: %v", err)
	}
	if len(recipes) != 0 {
		t.Errorf("expected empty list, got %v", recipes)
	}
}
