package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/aether-dashboard/aether-api/internal/core/domain"
)

type recordingRepo struct {
	mu     sync.Mutex
	events []domain.OrderEvent
	block  chan struct{}
	err    error
}

func (r *recordingRepo) Insert(_ context.Context, e domain.OrderEvent) error {
	if r.block != nil {
		<-r.block
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return r.err
}

func (r *recordingRepo) ListByOrder(_ context.Context, orderID string) ([]domain.OrderEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.OrderEvent
	for _, e := range r.events {
		if e.OrderID == orderID {
			out = append(out, e)
		}
	}
	return out, nil
}

func TestDispatcher_PreservesPerOrderSequence(t *testing.T) {
	repo := &recordingRepo{}
	d := NewDispatcher(4, repo, zerolog.Nop())
	d.Start(context.Background())

	for i := 0; i < 50; i++ {
		for _, id := range []string{"ORD-A", "ORD-B", "ORD-C"} {
			d.Publish(domain.OrderEvent{OrderID: id, Amount: fmt.Sprint(i)})
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := d.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}

	for _, id := range []string{"ORD-A", "ORD-B", "ORD-C"} {
		got, _ := repo.ListByOrder(context.Background(), id)
		if len(got) != 50 {
			t.Fatalf("%s: expected 50 events, got %d", id, len(got))
		}
		for i, e := range got {
			if e.Amount != fmt.Sprint(i) {
				t.Fatalf("%s: event %d out of order (%s)", id, i, e.Amount)
			}
		}
	}
}

func TestDispatcher_DropsWhenQueueFull(t *testing.T) {
	repo := &recordingRepo{block: make(chan struct{})}
	d := NewDispatcher(1, repo, zerolog.Nop())
	d.Start(context.Background())

	done := make(chan struct{})
	go func() {
		for i := 0; i < channelBuffer+10; i++ {
			d.Publish(domain.OrderEvent{OrderID: "ORD-1"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a full queue")
	}

	close(repo.block)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := d.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()
	if n := len(repo.events); n >= channelBuffer+10 || n < channelBuffer {
		t.Fatalf("expected some events dropped, wrote %d", n)
	}
}

func TestDispatcher_WriteErrorsAreSwallowed(t *testing.T) {
	repo := &recordingRepo{err: errors.New("mongo down")}
	d := NewDispatcher(2, repo, zerolog.Nop())
	d.Start(context.Background())

	d.Publish(domain.OrderEvent{OrderID: "ORD-1"})
	if err := d.Close(context.Background()); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if len(repo.events) != 1 {
		t.Fatalf("expected one attempted write, got %d", len(repo.events))
	}

	// publishing after Close is a no-op
	d.Publish(domain.OrderEvent{OrderID: "ORD-2"})
}

func TestDispatcher_ShardIndexStable(t *testing.T) {
	d := NewDispatcher(8, &recordingRepo{}, zerolog.Nop())
	for _, id := range []string{"ORD-1", "ORD-2", "#ORD-7829"} {
		first := d.shardIndex(id)
		if first < 0 || first >= 8 {
			t.Fatalf("index %d out of range", first)
		}
		if d.shardIndex(id) != first {
			t.Fatalf("shard for %s not stable", id)
		}
	}
}
