package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dlow/fd-tracker/internal/domain"
)

// DepositSource is the slice of the record store the sweep needs.
type DepositSource interface {
	ListDue(ctx context.Context, date string) ([]domain.Deposit, error)
	SetStatus(ctx context.Context, id string, s domain.Status) error
}

// OwnerDirectory resolves an owner ID to a notification address. Identity
// lives with the external auth provider; this is the narrow slice the sweep
// needs from it.
type OwnerDirectory interface {
	Lookup(ctx context.Context, ownerID string) (Owner, error)
}

// Owner is a notification recipient.
type Owner struct {
	Name  string
	Email string
}

// StaticDirectory is an env-configured OwnerDirectory for deployments
// without a queryable auth backend. Entries parse from a comma-separated
// "ownerID:email" list.
type StaticDirectory map[string]Owner

// ParseStaticDirectory builds a StaticDirectory from "uid:email,uid:email".
// Malformed entries are skipped.
func ParseStaticDirectory(spec string) StaticDirectory {
	dir := StaticDirectory{}
	for _, entry := range strings.Split(spec, ",") {
		parts := strings.SplitN(strings.TrimSpace(entry), ":", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			continue
		}
		dir[parts[0]] = Owner{Name: parts[0], Email: parts[1]}
	}
	return dir
}

// Lookup implements OwnerDirectory.
func (d StaticDirectory) Lookup(ctx context.Context, ownerID string) (Owner, error) {
	owner, ok := d[ownerID]
	if !ok {
		return Owner{}, fmt.Errorf("no notification address for owner %s", ownerID)
	}
	return owner, nil
}

// Sweeper runs the maturity sweep.
type Sweeper struct {
	deposits DepositSource
	mailer   Mailer
	dir      OwnerDirectory
	log      zerolog.Logger
}

// NewSweeper wires a sweeper from its collaborators.
func NewSweeper(deposits DepositSource, mailer Mailer, dir OwnerDirectory, log zerolog.Logger) *Sweeper {
	return &Sweeper{deposits: deposits, mailer: mailer, dir: dir, log: log}
}

// Run sweeps every active deposit maturing on or before date (ISO).
// Semantics are at-least-once: the status flip happens even when the email
// fails, so an unreachable mailbox can't re-notify the owner forever. Only
// a store failure aborts the run. Returns the number of deposits flipped.
func (s *Sweeper) Run(ctx context.Context, date string) (int, error) {
	due, err := s.deposits.ListDue(ctx, date)
	if err != nil {
		return 0, fmt.Errorf("sweep: listing due deposits: %w", err)
	}

	matured := 0
	for _, d := range due {
		if err := s.notifyOwner(ctx, d); err != nil {
			s.log.Warn().Err(err).Str("deposit_id", d.ID).Str("bank", d.BankName).Msg("Maturity notification failed")
		}

		if err := s.deposits.SetStatus(ctx, d.ID, domain.StatusMatured); err != nil {
			s.log.Error().Err(err).Str("deposit_id", d.ID).Msg("Failed to mark deposit matured")
			continue
		}
		matured++
	}

	s.log.Info().Str("date", date).Int("due", len(due)).Int("matured", matured).Msg("Maturity sweep finished")
	return matured, nil
}

func (s *Sweeper) notifyOwner(ctx context.Context, d domain.Deposit) error {
	owner, err := s.dir.Lookup(ctx, d.OwnerID)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Your FD at %s has matured", d.BankName)
	body := fmt.Sprintf(
		"Hi %s,\n\nYour fixed deposit has matured today.\n\nBank: %s\nPrincipal: RM %.2f\nMaturity date: %s\n\nLog in to FD Tracker to decide what to do next.\n",
		owner.Name, d.BankName, d.Principal, d.MaturityDate,
	)

	return s.mailer.Send(ctx, owner.Email, subject, body)
}
