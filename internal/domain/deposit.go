package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Status of a fixed deposit. The only legal transition is active -> matured,
// performed by the maturity sweep. Imports default to active.
type Status string

const (
	StatusActive  Status = "active"
	StatusMatured Status = "matured"
)

// DateLayout is the calendar-date format used in the store and over the API.
const DateLayout = "2006-01-02"

var (
	// ErrNotFound is returned when a deposit does not exist or belongs to
	// another owner.
	ErrNotFound = errors.New("deposit not found")

	// ErrInvalidDeposit is returned when creation-time validation fails.
	ErrInvalidDeposit = errors.New("invalid deposit")

	// ErrBadTransition is returned for any status change other than
	// active -> matured.
	ErrBadTransition = errors.New("illegal status transition")
)

// Deposit represents one fixed-deposit placement owned by a single user.
// Dates are stored as ISO "YYYY-MM-DD" strings; malformed dates are tolerated
// and contribute zero interest rather than failing the dashboard.
type Deposit struct {
	ID           string    `json:"id" firestore:"-"`
	OwnerID      string    `json:"ownerId" firestore:"ownerId"`
	BankName     string    `json:"bankName" firestore:"bankName"`
	Principal    float64   `json:"principal" firestore:"principal"`
	InterestRate float64   `json:"interestRate" firestore:"interestRate"`
	StartDate    string    `json:"startDate" firestore:"startDate"`
	MaturityDate string    `json:"maturityDate" firestore:"maturityDate"`
	Status       Status    `json:"status" firestore:"status"`
	CreatedAt    time.Time `json:"createdAt" firestore:"createdAt"`
}

// ValidateNew checks the creation-time contract: a non-empty bank name and a
// non-negative principal. Everything else may be empty; projections degrade
// to zero instead of blocking the write.
func (d *Deposit) ValidateNew() error {
	if strings.TrimSpace(d.BankName) == "" {
		return fmt.Errorf("%w: bank name is required", ErrInvalidDeposit)
	}
	if d.Principal < 0 {
		return fmt.Errorf("%w: principal must be non-negative", ErrInvalidDeposit)
	}
	if d.Status == "" {
		d.Status = StatusActive
	}
	if d.Status != StatusActive && d.Status != StatusMatured {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidDeposit, d.Status)
	}
	return nil
}

// ValidateDateOrder is the opt-in strict check for inverted date ranges.
// The default policy is lenient: an inverted range is accepted and the
// absolute day count yields a positive projection. Callers that want
// strict ordering call this explicitly.
func (d *Deposit) ValidateDateOrder() error {
	start, err1 := time.Parse(DateLayout, d.StartDate)
	end, err2 := time.Parse(DateLayout, d.MaturityDate)
	if err1 != nil || err2 != nil {
		return nil // unparseable dates fall under the lenient zero-default policy
	}
	if end.Before(start) {
		return fmt.Errorf("%w: maturity date precedes start date", ErrInvalidDeposit)
	}
	return nil
}

// CanTransition reports whether a status change is legal. Identity
// transitions are allowed so full-document updates don't trip the guard.
func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	return from == StatusActive && to == StatusMatured
}
