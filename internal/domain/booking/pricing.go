package booking

import "fmt"

// PricingStrategy defines the interface for calculating booking prices.
type PricingStrategy interface {
	// Calculate returns the total price in cents for the given parameters.
	Calculate(params PricingParams) (int64, error)
}

// PricingParams holds the inputs for price calculation.
type PricingParams struct {
	Nights           int
	NightlyRateCents int64
}

// NightlyRatePricingStrategy prices a stay as nights times the property's
// flat per-night rate. The only strategy the platform currently offers.
type NightlyRatePricingStrategy struct{}

// NewNightlyRatePricingStrategy creates a NightlyRatePricingStrategy.
func NewNightlyRatePricingStrategy() *NightlyRatePricingStrategy {
	return &NightlyRatePricingStrategy{}
}

// Calculate computes nights x nightly rate in cents.
func (s *NightlyRatePricingStrategy) Calculate(params PricingParams) (int64, error) {
	if params.Nights <= 0 {
		return 0, fmt.Errorf("stay must cover at least one night, got %d", params.Nights)
	}
	if params.NightlyRateCents < 0 {
		return 0, fmt.Errorf("nightly rate cannot be negative")
	}
	return int64(params.Nights) * params.NightlyRateCents, nil
}
