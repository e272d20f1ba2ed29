package domain

import (
	"errors"
	"testing"
	"time"
)

func TestValidateNew(t *testing.T) {
	tests := []struct {
		name    string
		deposit Deposit
		wantErr bool
	}{
		{
			name:    "valid",
			deposit: Deposit{BankName: "Maybank", Principal: 10000, Status: StatusActive},
		},
		{
			name:    "zero principal allowed",
			deposit: Deposit{BankName: "Maybank", Principal: 0},
		},
		{
			name:    "empty dates allowed",
			deposit: Deposit{BankName: "Maybank", Principal: 1000},
		},
		{
			name:    "missing bank",
			deposit: Deposit{Principal: 10000},
			wantErr: true,
		},
		{
			name:    "whitespace bank",
			deposit: Deposit{BankName: "   ", Principal: 10000},
			wantErr: true,
		},
		{
			name:    "negative principal",
			deposit: Deposit{BankName: "Maybank", Principal: -1},
			wantErr: true,
		},
		{
			name:    "unknown status",
			deposit: Deposit{BankName: "Maybank", Principal: 1000, Status: Status("closed")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.deposit.ValidateNew()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDeposit) {
					t.Errorf("err = %v, want ErrInvalidDeposit", err)
				}
				return
			}
			if err != nil {
				t.Errorf("ValidateNew failed: %v", err)
			}
		})
	}
}

func TestValidateNew_DefaultsStatusActive(t *testing.T) {
	d := Deposit{BankName: "Maybank", Principal: 1000}
	if err := d.ValidateNew(); err != nil {
		t.Fatalf("ValidateNew failed: %v", err)
	}
	if d.Status != StatusActive {
		t.Errorf("Status = %q, want active", d.Status)
	}
}

func TestValidateDateOrder(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		maturity string
		wantErr  bool
	}{
		{"ordered", "2024-01-01", "2025-01-01", false},
		{"same day", "2024-01-01", "2024-01-01", false},
		{"inverted", "2025-01-01", "2024-01-01", true},
		{"unparseable start tolerated", "soon", "2024-01-01", false},
		{"both empty tolerated", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Deposit{StartDate: tt.start, MaturityDate: tt.maturity}
			err := d.ValidateDateOrder()
			if tt.wantErr && !errors.Is(err, ErrInvalidDeposit) {
				t.Errorf("err = %v, want ErrInvalidDeposit", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidateDateOrder failed: %v", err)
			}
		})
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusActive, StatusMatured, true},
		{StatusActive, StatusActive, true},
		{StatusMatured, StatusMatured, true},
		{StatusMatured, StatusActive, false},
		{StatusMatured, Status("closed"), false},
		{Status("closed"), StatusMatured, false},
	}

	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestDraftFromOffer(t *testing.T) {
	today := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	offer := RateOffer{
		Bank:       "Maybank",
		Rate:       3.5,
		Tenure:     "12 months",
		MinDeposit: "RM10,000",
	}

	d := DraftFromOffer(offer, "owner-1", today)

	if d.OwnerID != "owner-1" {
		t.Errorf("OwnerID = %q", d.OwnerID)
	}
	if d.BankName != "Maybank" || d.InterestRate != 3.5 {
		t.Errorf("bank/rate = %q/%v", d.BankName, d.InterestRate)
	}
	if d.StartDate != "2024-03-15" {
		t.Errorf("StartDate = %q, want 2024-03-15", d.StartDate)
	}
	if d.MaturityDate != "2025-03-15" {
		t.Errorf("MaturityDate = %q, want 2025-03-15", d.MaturityDate)
	}
	if d.Status != StatusActive {
		t.Errorf("Status = %q, want active", d.Status)
	}
	if d.Principal != 0 {
		t.Errorf("Principal = %v, want 0 until the user fills it in", d.Principal)
	}
}
