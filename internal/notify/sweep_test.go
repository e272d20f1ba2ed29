package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/dlow/fd-tracker/internal/domain"
	"github.com/dlow/fd-tracker/internal/logger"
)

type fakeDepositSource struct {
	due        []domain.Deposit
	listErr    error
	setErr     error
	statusSets map[string]domain.Status
}

func (f *fakeDepositSource) ListDue(ctx context.Context, date string) ([]domain.Deposit, error) {
	return f.due, f.listErr
}

func (f *fakeDepositSource) SetStatus(ctx context.Context, id string, s domain.Status) error {
	if f.setErr != nil {
		return f.setErr
	}
	if f.statusSets == nil {
		f.statusSets = map[string]domain.Status{}
	}
	f.statusSets[id] = s
	return nil
}

type fakeMailer struct {
	sent []string
	err  error
}

func (f *fakeMailer) Send(ctx context.Context, to, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, to)
	return nil
}

func dueDeposit(id, owner, bank string) domain.Deposit {
	return domain.Deposit{
		ID:           id,
		OwnerID:      owner,
		BankName:     bank,
		Principal:    10000,
		MaturityDate: "2025-01-01",
		Status:       domain.StatusActive,
	}
}

func TestSweeperRun_NotifiesAndFlips(t *testing.T) {
	src := &fakeDepositSource{due: []domain.Deposit{
		dueDeposit("d1", "u1", "Maybank"),
		dueDeposit("d2", "u1", "CIMB"),
	}}
	mailer := &fakeMailer{}
	dir := StaticDirectory{"u1": {Name: "u1", Email: "u1@example.com"}}

	sweeper := NewSweeper(src, mailer, dir, logger.New())
	matured, err := sweeper.Run(context.Background(), "2025-01-01")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if matured != 2 {
		t.Errorf("matured = %d, want 2", matured)
	}
	if len(mailer.sent) != 2 {
		t.Errorf("sent %d emails, want 2", len(mailer.sent))
	}
	for _, id := range []string{"d1", "d2"} {
		if src.statusSets[id] != domain.StatusMatured {
			t.Errorf("deposit %s status = %q, want matured", id, src.statusSets[id])
		}
	}
}

func TestSweeperRun_FlipsEvenWhenMailFails(t *testing.T) {
	src := &fakeDepositSource{due: []domain.Deposit{dueDeposit("d1", "u1", "Maybank")}}
	mailer := &fakeMailer{err: errors.New("smtp: connection refused")}
	dir := StaticDirectory{"u1": {Name: "u1", Email: "u1@example.com"}}

	sweeper := NewSweeper(src, mailer, dir, logger.New())
	matured, err := sweeper.Run(context.Background(), "2025-01-01")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if matured != 1 {
		t.Errorf("matured = %d, want 1 despite mail failure", matured)
	}
	if src.statusSets["d1"] != domain.StatusMatured {
		t.Error("deposit not flipped after mail failure")
	}
}

func TestSweeperRun_FlipsEvenWhenOwnerUnknown(t *testing.T) {
	src := &fakeDepositSource{due: []domain.Deposit{dueDeposit("d1", "stranger", "Maybank")}}
	mailer := &fakeMailer{}

	sweeper := NewSweeper(src, mailer, StaticDirectory{}, logger.New())
	matured, err := sweeper.Run(context.Background(), "2025-01-01")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if matured != 1 {
		t.Errorf("matured = %d, want 1", matured)
	}
	if len(mailer.sent) != 0 {
		t.Errorf("sent %d emails, want 0", len(mailer.sent))
	}
}

func TestSweeperRun_ListFailureAborts(t *testing.T) {
	src := &fakeDepositSource{listErr: errors.New("store unavailable")}

	sweeper := NewSweeper(src, &fakeMailer{}, StaticDirectory{}, logger.New())
	if _, err := sweeper.Run(context.Background(), "2025-01-01"); err == nil {
		t.Error("expected error when listing due deposits fails")
	}
}

func TestSweeperRun_StatusFailureSkipsCount(t *testing.T) {
	src := &fakeDepositSource{
		due:    []domain.Deposit{dueDeposit("d1", "u1", "Maybank")},
		setErr: errors.New("write denied"),
	}
	dir := StaticDirectory{"u1": {Name: "u1", Email: "u1@example.com"}}

	sweeper := NewSweeper(src, &fakeMailer{}, dir, logger.New())
	matured, err := sweeper.Run(context.Background(), "2025-01-01")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if matured != 0 {
		t.Errorf("matured = %d, want 0 when the flip fails", matured)
	}
}

func TestParseStaticDirectory(t *testing.T) {
	tests := []struct {
		name string
		spec string
		want int
	}{
		{"two entries", "u1:a@example.com,u2:b@example.com", 2},
		{"spaces tolerated", " u1:a@example.com , u2:b@example.com ", 2},
		{"malformed skipped", "u1:a@example.com,borked,:x@example.com,u3:", 1},
		{"empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := ParseStaticDirectory(tt.spec)
			if len(dir) != tt.want {
				t.Errorf("got %d entries, want %d: %+v", len(dir), tt.want, dir)
			}
		})
	}
}
