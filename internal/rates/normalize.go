package rates

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dlow/fd-tracker/internal/domain"
)

// Normalize validates a decoded payload against the RateOffer contract.
//
// The payload must be a sequence of objects. Per element, "bank" must be a
// non-empty string and "rate" must already be a machine number: a
// numeric-looking string like "3.5" is rejected, not coerced, because
// downstream sorting and formatting assume a real number. Optional display
// fields default to empty strings so the renderer never sees null.
//
// Invalid elements are skipped individually; the batch as a whole fails only
// when the payload is not a sequence or yields zero valid offers. Input
// order is preserved; sorting is the caller's concern.
func Normalize(payload any) ([]domain.RateOffer, error) {
	items, ok := payload.([]any)
	if !ok {
		return nil, fmt.Errorf("normalize: payload is %T, want array", payload)
	}

	offers := make([]domain.RateOffer, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}

		bank, ok := obj["bank"].(string)
		if !ok || strings.TrimSpace(bank) == "" {
			continue
		}
		rate, ok := obj["rate"].(float64)
		if !ok {
			continue
		}

		offers = append(offers, domain.RateOffer{
			Bank:        bank,
			Rate:        rate,
			Product:     optionalString(obj, "product"),
			Tenure:      optionalString(obj, "tenure"),
			MinDeposit:  optionalString(obj, "min_deposit"),
			Description: optionalString(obj, "description"),
			ValidUntil:  optionalString(obj, "valid_until"),
		})
	}

	if len(offers) == 0 {
		return nil, fmt.Errorf("normalize: no valid offers in payload of %d elements", len(items))
	}
	return offers, nil
}

// NormalizeJSON decodes raw JSON and normalizes it in one step.
func NormalizeJSON(raw []byte) ([]domain.RateOffer, error) {
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("normalize: unmarshal JSON: %w", err)
	}
	return Normalize(payload)
}

func optionalString(m map[string]any, key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}
