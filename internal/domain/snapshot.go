package domain

// MonthBucket is one entry of the per-maturity-month interest breakdown.
// Key is the ISO year-month ("2025-12") and is always the sort key; Label is
// display-only ("Dec 25") so month names never drive ordering.
type MonthBucket struct {
	Key      string  `json:"key"`
	Label    string  `json:"label"`
	Interest float64 `json:"interest"`
}

// AggregateSnapshot is the fully derived view over the current active set.
// It has no identity of its own and is recomputed from scratch on every
// store change.
type AggregateSnapshot struct {
	TotalPrincipal          float64            `json:"totalPrincipal"`
	TotalProjectedInterest  float64            `json:"totalProjectedInterest"`
	ActiveCount             int                `json:"activeCount"`
	AllocationByBank        map[string]float64 `json:"allocationByBank"`
	InterestByMaturityMonth []MonthBucket      `json:"interestByMaturityMonth"`
}
