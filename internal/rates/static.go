package rates

import "github.com/dlow/fd-tracker/internal/domain"

// staticOffers is the terminal fallback dataset: board rates for the major
// Malaysian banks, served when both model strategies fail. Figures track
// published board rates, not promotions.
var staticOffers = []domain.RateOffer{
	{
		Bank:        "Maybank",
		Product:     "eFD",
		Rate:        3.50,
		Tenure:      "12 months",
		MinDeposit:  "RM1,000",
		Description: "Board rate, placement via Maybank2u",
	},
	{
		Bank:        "CIMB",
		Product:     "eFixed Return Income Account",
		Rate:        3.45,
		Tenure:      "12 months",
		MinDeposit:  "RM1,000",
		Description: "Board rate, online placement",
	},
	{
		Bank:        "Public Bank",
		Product:     "PLUS Fixed Deposit",
		Rate:        3.40,
		Tenure:      "12 months",
		MinDeposit:  "RM5,000",
		Description: "Board rate",
	},
	{
		Bank:        "RHB",
		Product:     "Ordinary Fixed Deposit",
		Rate:        3.45,
		Tenure:      "12 months",
		MinDeposit:  "RM1,000",
		Description: "Board rate",
	},
	{
		Bank:        "Hong Leong Bank",
		Product:     "eFD/i",
		Rate:        3.55,
		Tenure:      "12 months",
		MinDeposit:  "RM10,000",
		Description: "Board rate, online placement",
	},
}

// StaticOffers returns a copy of the fallback dataset so callers can sort
// freely without mutating the package-level slice.
func StaticOffers() []domain.RateOffer {
	out := make([]domain.RateOffer, len(staticOffers))
	copy(out, staticOffers)
	return out
}
