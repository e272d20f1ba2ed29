package portfolio

import (
	"context"
	"testing"
	"time"

	"github.com/dlow/fd-tracker/internal/domain"
	"github.com/dlow/fd-tracker/internal/logger"
)

// fakeSubscription replays pre-canned deposit sets.
type fakeSubscription struct {
	sets [][]domain.Deposit
}

func (f *fakeSubscription) Watch(ctx context.Context, ownerID string) (<-chan []domain.Deposit, error) {
	ch := make(chan []domain.Deposit, len(f.sets))
	for _, set := range f.sets {
		ch <- set
	}
	close(ch)
	return ch, nil
}

func TestStream_EmitsOneSnapshotPerDelivery(t *testing.T) {
	sub := &fakeSubscription{
		sets: [][]domain.Deposit{
			{activeDeposit("A", 1000, 3.0, "2024-01-01", "2024-07-01")},
			{
				activeDeposit("A", 1000, 3.0, "2024-01-01", "2024-07-01"),
				activeDeposit("B", 2000, 3.5, "2024-01-01", "2025-01-01"),
			},
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	snaps, err := Stream(ctx, sub, "owner-1", logger.New())
	if err != nil {
		t.Fatalf("Stream failed: %v", err)
	}

	var got []domain.AggregateSnapshot
	for snap := range snaps {
		got = append(got, snap)
	}

	if len(got) != 2 {
		t.Fatalf("received %d snapshots, want 2", len(got))
	}
	if got[0].TotalPrincipal != 1000 {
		t.Errorf("first snapshot TotalPrincipal = %v, want 1000", got[0].TotalPrincipal)
	}
	if got[1].TotalPrincipal != 3000 {
		t.Errorf("second snapshot TotalPrincipal = %v, want 3000", got[1].TotalPrincipal)
	}
	if got[1].ActiveCount != 2 {
		t.Errorf("second snapshot ActiveCount = %d, want 2", got[1].ActiveCount)
	}
}

func TestStream_ClosesWhenSubscriptionCloses(t *testing.T) {
	sub := &fakeSubscription{}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	snaps, err := Stream(ctx, sub, "owner-1", logger.New())
	if err != nil {
		t.Fatalf("Stream failed: %v", err)
	}

	select {
	case _, ok := <-snaps:
		if ok {
			t.Error("expected closed channel, got a snapshot")
		}
	case <-time.After(time.Second):
		t.Error("snapshot channel never closed")
	}
}
