package rates

import (
	"regexp"
	"sort"
	"strconv"

	"github.com/dlow/fd-tracker/internal/domain"
)

// SortKey is a user-selected ordering for the offer list.
type SortKey string

const (
	SortRateDesc    SortKey = "rate_desc"
	SortRateAsc     SortKey = "rate_asc"
	SortDepositAsc  SortKey = "deposit_asc"
	SortBankAsc     SortKey = "bank_asc"
	DefaultSortKey          = SortRateDesc
)

var nonDigits = regexp.MustCompile(`[^0-9]`)

// SortOffers orders offers by the given key. Unknown keys leave the input
// order untouched. Sorting is stable so ties keep extraction order.
func SortOffers(offers []domain.RateOffer, key SortKey) {
	switch key {
	case SortRateDesc:
		sort.SliceStable(offers, func(i, j int) bool { return offers[i].Rate > offers[j].Rate })
	case SortRateAsc:
		sort.SliceStable(offers, func(i, j int) bool { return offers[i].Rate < offers[j].Rate })
	case SortBankAsc:
		sort.SliceStable(offers, func(i, j int) bool { return offers[i].Bank < offers[j].Bank })
	case SortDepositAsc:
		sort.SliceStable(offers, func(i, j int) bool {
			return minDepositValue(offers[i].MinDeposit) < minDepositValue(offers[j].MinDeposit)
		})
	}
}

// minDepositValue parses a display string like "RM10,000" by stripping every
// non-digit character. Unparseable values sort as zero.
func minDepositValue(display string) int {
	n, err := strconv.Atoi(nonDigits.ReplaceAllString(display, ""))
	if err != nil {
		return 0
	}
	return n
}
