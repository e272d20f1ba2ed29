// Package firestore implements the deposit record store on Cloud Firestore.
// Documents live in a single collection keyed by store-assigned IDs; the
// live dashboard feed comes from Firestore query snapshot listeners.
package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/rs/zerolog"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dlow/fd-tracker/internal/domain"
)

// DepositRepository is the record-store collaborator contract. All reads are
// scoped to one owner; a deposit belonging to another owner behaves exactly
// like a missing one.
type DepositRepository interface {
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Deposit, error)
	Get(ctx context.Context, ownerID, id string) (domain.Deposit, error)
	Create(ctx context.Context, d domain.Deposit) (domain.Deposit, error)
	Update(ctx context.Context, ownerID string, d domain.Deposit) error
	SetStatus(ctx context.Context, id string, s domain.Status) error
	Delete(ctx context.Context, ownerID, id string) error

	// ListDue returns every active deposit, across owners, whose maturity
	// date is on or before the given ISO date. Used by the maturity sweep.
	ListDue(ctx context.Context, date string) ([]domain.Deposit, error)

	// Watch delivers the full ordered deposit set for one owner whenever
	// the collection changes, ordered by maturity date ascending. The
	// channel closes when the subscription fails or ctx is cancelled.
	Watch(ctx context.Context, ownerID string) (<-chan []domain.Deposit, error)

	Close() error
}

// Repository is the Firestore-backed implementation of DepositRepository.
// It holds a shared client to avoid a new connection per operation.
type Repository struct {
	client     *firestore.Client
	collection string
	log        zerolog.Logger
}

// NewRepository connects to Firestore in the given project. Credentials are
// resolved by the client library (ADC).
func NewRepository(ctx context.Context, projectID, collection string, log zerolog.Logger) (*Repository, error) {
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("NewRepository: creating firestore client: %w", err)
	}
	return &Repository{client: client, collection: collection, log: log}, nil
}

// Close closes the underlying Firestore client.
func (r *Repository) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}

func (r *Repository) col() *firestore.CollectionRef {
	return r.client.Collection(r.collection)
}

// ownerQuery is the canonical per-owner view: the owner's deposits ordered
// by maturity date ascending (ISO date strings order lexicographically).
func (r *Repository) ownerQuery(ownerID string) firestore.Query {
	return r.col().
		Where("ownerId", "==", ownerID).
		OrderBy("maturityDate", firestore.Asc)
}

// ListByOwner returns the owner's deposits ordered by maturity date.
func (r *Repository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Deposit, error) {
	docs := r.ownerQuery(ownerID).Documents(ctx)
	defer docs.Stop()
	return collect(docs)
}

// Get fetches one deposit, enforcing ownership.
func (r *Repository) Get(ctx context.Context, ownerID, id string) (domain.Deposit, error) {
	snap, err := r.col().Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return domain.Deposit{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Deposit{}, fmt.Errorf("Get: fetching deposit %s: %w", id, err)
	}

	d, err := decode(snap)
	if err != nil {
		return domain.Deposit{}, err
	}
	if d.OwnerID != ownerID {
		return domain.Deposit{}, domain.ErrNotFound
	}
	return d, nil
}

// Create validates and inserts a new deposit, letting Firestore assign the
// ID. CreatedAt is stamped server-side here, not by the caller.
func (r *Repository) Create(ctx context.Context, d domain.Deposit) (domain.Deposit, error) {
	if err := d.ValidateNew(); err != nil {
		return domain.Deposit{}, err
	}
	d.CreatedAt = time.Now().UTC()

	ref, _, err := r.col().Add(ctx, d)
	if err != nil {
		return domain.Deposit{}, fmt.Errorf("Create: inserting deposit: %w", err)
	}
	d.ID = ref.ID
	return d, nil
}

// Update replaces a deposit's mutable fields. OwnerID and CreatedAt are
// immutable and carried over from the stored document; status changes must
// be legal transitions.
func (r *Repository) Update(ctx context.Context, ownerID string, d domain.Deposit) error {
	existing, err := r.Get(ctx, ownerID, d.ID)
	if err != nil {
		return err
	}
	if err := d.ValidateNew(); err != nil {
		return err
	}
	if !domain.CanTransition(existing.Status, d.Status) {
		return fmt.Errorf("%w: %s -> %s", domain.ErrBadTransition, existing.Status, d.Status)
	}

	d.OwnerID = existing.OwnerID
	d.CreatedAt = existing.CreatedAt

	if _, err := r.col().Doc(d.ID).Set(ctx, d); err != nil {
		return fmt.Errorf("Update: writing deposit %s: %w", d.ID, err)
	}
	return nil
}

// SetStatus flips a deposit's status field. Only the sweep calls this, so
// it trusts the caller on ownership but still guards the transition.
func (r *Repository) SetStatus(ctx context.Context, id string, s domain.Status) error {
	snap, err := r.col().Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("SetStatus: fetching deposit %s: %w", id, err)
	}
	d, err := decode(snap)
	if err != nil {
		return err
	}
	if !domain.CanTransition(d.Status, s) {
		return fmt.Errorf("%w: %s -> %s", domain.ErrBadTransition, d.Status, s)
	}

	_, err = r.col().Doc(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: s},
	})
	if err != nil {
		return fmt.Errorf("SetStatus: updating deposit %s: %w", id, err)
	}
	return nil
}

// Delete removes a deposit after an ownership check. Hard delete: the app
// has no soft-delete or audit trail.
func (r *Repository) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := r.Get(ctx, ownerID, id); err != nil {
		return err
	}
	if _, err := r.col().Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("Delete: deleting deposit %s: %w", id, err)
	}
	return nil
}

// ListDue returns active deposits maturing on or before the given ISO date.
func (r *Repository) ListDue(ctx context.Context, date string) ([]domain.Deposit, error) {
	docs := r.col().
		Where("status", "==", string(domain.StatusActive)).
		Where("maturityDate", "<=", date).
		Documents(ctx)
	defer docs.Stop()
	return collect(docs)
}

// Watch subscribes to the owner's deposit set. Each snapshot from Firestore
// is decoded in full and pushed to the channel; the consumer recomputes its
// aggregates from scratch per delivery.
func (r *Repository) Watch(ctx context.Context, ownerID string) (<-chan []domain.Deposit, error) {
	snaps := r.ownerQuery(ownerID).Snapshots(ctx)

	out := make(chan []domain.Deposit, 1)
	go func() {
		defer close(out)
		defer snaps.Stop()
		for {
			snap, err := snaps.Next()
			if err != nil {
				if status.Code(err) != codes.Canceled {
					r.log.Error().Err(err).Str("owner_id", ownerID).Msg("Deposit snapshot listener failed")
				}
				return
			}
			set, err := collect(snap.Documents)
			if err != nil {
				r.log.Error().Err(err).Str("owner_id", ownerID).Msg("Failed to decode deposit snapshot")
				continue
			}
			select {
			case out <- set:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

func collect(docs *firestore.DocumentIterator) ([]domain.Deposit, error) {
	var out []domain.Deposit
	for {
		snap, err := docs.Next()
		if err == iterator.Done {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("collect: iterating deposits: %w", err)
		}
		d, err := decode(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
}

func decode(snap *firestore.DocumentSnapshot) (domain.Deposit, error) {
	var d domain.Deposit
	if err := snap.DataTo(&d); err != nil {
		return domain.Deposit{}, fmt.Errorf("decode: deposit %s: %w", snap.Ref.ID, err)
	}
	d.ID = snap.Ref.ID
	return d, nil
}
