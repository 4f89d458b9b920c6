package pricing

import "fmt"

// PricingError is returned when no estimate could be produced at all. It still
// carries a price the booking flow can use.
type PricingError struct {
	Message       string  `json:"message"`
	FallbackPrice float64 `json:"fallbackPrice"`
}

func (e *PricingError) Error() string {
	return fmt.Sprintf("pricing: %s (fallback %.2f)", e.Message, e.FallbackPrice)
}
