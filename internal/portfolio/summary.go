// Package portfolio turns a set of deposit records into the derived figures
// the dashboard renders: headline totals, the per-bank allocation, and the
// per-maturity-month interest breakdown.
package portfolio

import (
	"sort"
	"time"

	"github.com/dlow/fd-tracker/internal/domain"
	"github.com/dlow/fd-tracker/internal/interest"
)

// UnknownBank is the allocation bucket for records without a bank name.
const UnknownBank = "Unknown"

// Summarize computes the aggregate view over the given records. Only active
// deposits count. It is a pure function: no I/O, no mutation of the input,
// and the same input always yields identical output.
func Summarize(records []domain.Deposit) domain.AggregateSnapshot {
	snap := domain.AggregateSnapshot{
		AllocationByBank:        map[string]float64{},
		InterestByMaturityMonth: []domain.MonthBucket{},
	}

	byMonth := map[string]float64{}

	for _, d := range records {
		if d.Status != domain.StatusActive {
			continue
		}
		principal := interest.ParseAmount(d.Principal)

		snap.ActiveCount++
		snap.TotalPrincipal += principal

		earned := recordInterest(d)
		snap.TotalProjectedInterest += earned

		bank := d.BankName
		if bank == "" {
			bank = UnknownBank
		}
		snap.AllocationByBank[bank] += principal

		if maturity, ok := interest.ParseDate(d.MaturityDate); ok {
			byMonth[maturity.Format("2006-01")] += earned
		}
	}

	keys := make([]string, 0, len(byMonth))
	for k := range byMonth {
		keys = append(keys, k)
	}
	// Sort on the ISO year-month key, never the display label, so December
	// of one year orders before January of the next.
	sort.Strings(keys)

	for _, k := range keys {
		snap.InterestByMaturityMonth = append(snap.InterestByMaturityMonth, domain.MonthBucket{
			Key:      k,
			Label:    monthLabel(k),
			Interest: byMonth[k],
		})
	}

	return snap
}

// MaturityValue is the final value of a single deposit at maturity:
// principal plus its simple-interest projection.
func MaturityValue(d domain.Deposit) float64 {
	return interest.ParseAmount(d.Principal) + recordInterest(d)
}

// recordInterest is the per-record term of the projected-interest sum.
// Missing or malformed dates contribute zero by policy.
func recordInterest(d domain.Deposit) float64 {
	start, okStart := interest.ParseDate(d.StartDate)
	end, okEnd := interest.ParseDate(d.MaturityDate)
	if !okStart || !okEnd {
		return 0
	}
	return interest.SimpleInterest(
		interest.ParseAmount(d.Principal),
		interest.ParseAmount(d.InterestRate),
		interest.YearsBetween(start, end),
	)
}

func monthLabel(isoKey string) string {
	t, err := time.Parse("2006-01", isoKey)
	if err != nil {
		return isoKey
	}
	return t.Format("Jan 06")
}
