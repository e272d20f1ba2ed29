package portfolio

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/dlow/fd-tracker/internal/domain"
)

// Subscription delivers the full ordered deposit set for one owner whenever
// the backing store changes. Implemented by the Firestore repository.
type Subscription interface {
	Watch(ctx context.Context, ownerID string) (<-chan []domain.Deposit, error)
}

// Stream bridges the push-based store subscription and the pure Summarize
// computation: one AggregateSnapshot out per deposit-set delivery. The
// aggregate is recomputed from scratch each time; portfolios are small and
// full recomputation avoids any cache-invalidation state.
func Stream(ctx context.Context, sub Subscription, ownerID string, log zerolog.Logger) (<-chan domain.AggregateSnapshot, error) {
	deposits, err := sub.Watch(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	out := make(chan domain.AggregateSnapshot, 1)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case set, ok := <-deposits:
				if !ok {
					log.Warn().Str("owner_id", ownerID).Msg("Deposit subscription closed")
					return
				}
				select {
				case out <- Summarize(set):
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
