package services

import (
	"math"

	"courier/internal/core/domain/model/delivery"
	"courier/internal/pkg/errs"
)

// Default tariff constants in whole currency units.
const (
	DefaultBaseFee      float64 = 300
	DefaultDistanceRate float64 = 50
	DefaultWeightRate   float64 = 10
	DefaultSizeRate     float64 = 2
)

// PricingCalculator is a pure domain service that quotes a delivery price
// from its physical attributes:
//
//	price = base_fee + distance_km*distance_rate + weight_kg*weight_rate + size_cm*size_rate
//
// rounded to the nearest whole currency unit. The quote is deterministic:
// identical attributes always yield an identical price. The calculator has
// no side effects and is safe for concurrent use without synchronization.
type PricingCalculator struct {
	baseFee      float64
	distanceRate float64
	weightRate   float64
	sizeRate     float64
}

// NewPricingCalculator creates a calculator with the default tariff.
func NewPricingCalculator() PricingCalculator {
	return PricingCalculator{
		baseFee:      DefaultBaseFee,
		distanceRate: DefaultDistanceRate,
		weightRate:   DefaultWeightRate,
		sizeRate:     DefaultSizeRate,
	}
}

// NewPricingCalculatorWithTariff creates a calculator with custom rates.
// Every rate must be finite and non-negative.
func NewPricingCalculatorWithTariff(baseFee, distanceRate, weightRate, sizeRate float64) (PricingCalculator, error) {
	for name, v := range map[string]float64{
		"base_fee":      baseFee,
		"distance_rate": distanceRate,
		"weight_rate":   weightRate,
		"size_rate":     sizeRate,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return PricingCalculator{}, errs.NewInvalidInputError(name)
		}
	}

	return PricingCalculator{
		baseFee:      baseFee,
		distanceRate: distanceRate,
		weightRate:   weightRate,
		sizeRate:     sizeRate,
	}, nil
}

// Quote computes the price for the given attributes in whole currency units.
// Fails with an InvalidInput error when the attributes bypassed their
// constructor (negative or non-finite values can only enter that way).
func (p PricingCalculator) Quote(attributes delivery.PhysicalAttributes) (int64, error) {
	if err := attributes.Validate(); err != nil {
		return 0, err
	}

	total := p.baseFee +
		attributes.DistanceKm()*p.distanceRate +
		attributes.WeightKg()*p.weightRate +
		attributes.SizeCm()*p.sizeRate

	return int64(math.Round(total)), nil
}
