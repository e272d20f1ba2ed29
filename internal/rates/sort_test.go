package rates

import (
	"testing"

	"github.com/dlow/fd-tracker/internal/domain"
)

func sampleOffers() []domain.RateOffer {
	return []domain.RateOffer{
		{Bank: "Maybank", Rate: 3.50, MinDeposit: "RM10,000"},
		{Bank: "CIMB", Rate: 3.45, MinDeposit: "RM5,000"},
		{Bank: "Hong Leong", Rate: 3.55, MinDeposit: "RM1,000"},
		{Bank: "RHB", Rate: 3.45, MinDeposit: "RM500"},
	}
}

func banks(offers []domain.RateOffer) []string {
	out := make([]string, len(offers))
	for i, o := range offers {
		out[i] = o.Bank
	}
	return out
}

func TestSortOffers(t *testing.T) {
	tests := []struct {
		name string
		key  SortKey
		want []string
	}{
		{
			name: "rate descending",
			key:  SortRateDesc,
			want: []string{"Hong Leong", "Maybank", "CIMB", "RHB"},
		},
		{
			name: "rate ascending keeps tie order",
			key:  SortRateAsc,
			want: []string{"CIMB", "RHB", "Maybank", "Hong Leong"},
		},
		{
			name: "minimum deposit ascending",
			key:  SortDepositAsc,
			want: []string{"RHB", "Hong Leong", "CIMB", "Maybank"},
		},
		{
			name: "bank name ascending",
			key:  SortBankAsc,
			want: []string{"CIMB", "Hong Leong", "Maybank", "RHB"},
		},
		{
			name: "unknown key leaves input order",
			key:  SortKey("principal_desc"),
			want: []string{"Maybank", "CIMB", "Hong Leong", "RHB"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offers := sampleOffers()
			SortOffers(offers, tt.key)

			got := banks(offers)
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("order = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestMinDepositValue(t *testing.T) {
	tests := []struct {
		display string
		want    int
	}{
		{"RM10,000", 10000},
		{"RM 5,000", 5000},
		{"1000", 1000},
		{"No minimum", 0},
		{"", 0},
	}

	for _, tt := range tests {
		if got := minDepositValue(tt.display); got != tt.want {
			t.Errorf("minDepositValue(%q) = %d, want %d", tt.display, got, tt.want)
		}
	}
}
