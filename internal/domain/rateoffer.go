package domain

import "time"

// RateOffer is one extracted market rate quote. Offers are transient: they
// are surfaced to the user and optionally copied into a deposit draft, never
// persisted. Rate is always a machine number in the normalized form; display
// fields like MinDeposit stay strings (e.g. "RM10,000").
type RateOffer struct {
	Bank        string  `json:"bank"`
	Product     string  `json:"product"`
	Rate        float64 `json:"rate"`
	Tenure      string  `json:"tenure"`
	MinDeposit  string  `json:"min_deposit"`
	Description string  `json:"description"`
	ValidUntil  string  `json:"valid_until"`
}

// DraftFromOffer seeds a new deposit from a selected market offer. Only the
// bank name and rate carry over; tenure defaults to one year starting today.
func DraftFromOffer(offer RateOffer, ownerID string, today time.Time) Deposit {
	return Deposit{
		OwnerID:      ownerID,
		BankName:     offer.Bank,
		InterestRate: offer.Rate,
		StartDate:    today.Format(DateLayout),
		MaturityDate: today.AddDate(1, 0, 0).Format(DateLayout),
		Status:       StatusActive,
	}
}
