package delivery

import (
	"fmt"
	"math"

	"courier/internal/pkg/errs"
	"courier/internal/pkg/guard"
)

// PhysicalAttributes captures the quoted dimensions of a delivery:
// the routing distance in kilometres (supplied by an external routing
// provider), the package weight in kilograms and its size in centimetres
// (sum of two linear dimensions). Immutable after creation; the price quote
// is a deterministic function of these values.
type PhysicalAttributes struct { //nolint:recvcheck //using for validation
	distanceKm float64
	weightKg   float64
	sizeCm     float64

	guard guard.ConstructorGuard
}

// ErrPhysicalAttributesAreNotConstructed is returned when validating
// attributes that bypassed NewPhysicalAttributes.
var ErrPhysicalAttributesAreNotConstructed = errs.NewInvalidInputError(
	"physical attributes must be created via NewPhysicalAttributes")

// NewPhysicalAttributes validates and creates the attribute set.
// Every argument must be finite and non-negative; the distance is a trusted
// input from the routing provider, so only range validation applies.
func NewPhysicalAttributes(distanceKm, weightKg, sizeCm float64) (PhysicalAttributes, error) {
	attrs := PhysicalAttributes{
		guard: guard.NewConstructorGuard(),
	}

	if err := attrs.setDistanceKm(distanceKm); err != nil {
		return PhysicalAttributes{}, err
	}
	if err := attrs.setWeightKg(weightKg); err != nil {
		return PhysicalAttributes{}, err
	}
	if err := attrs.setSizeCm(sizeCm); err != nil {
		return PhysicalAttributes{}, err
	}

	return attrs, nil
}

// Validate ensures the attributes were created through the constructor.
func (p PhysicalAttributes) Validate() error {
	return p.guard.Validate(ErrPhysicalAttributesAreNotConstructed)
}

// DistanceKm returns the routed distance in kilometres.
func (p PhysicalAttributes) DistanceKm() float64 {
	return p.distanceKm
}

// WeightKg returns the package weight in kilograms.
func (p PhysicalAttributes) WeightKg() float64 {
	return p.weightKg
}

// SizeCm returns the package size in centimetres.
func (p PhysicalAttributes) SizeCm() float64 {
	return p.sizeCm
}

func validRange(paramName string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return errs.NewInvalidInputErrorWithCause(paramName, fmt.Errorf("%v is not finite", v))
	}
	if v < 0 {
		return errs.NewInvalidInputErrorWithCause(paramName, fmt.Errorf("%v is negative", v))
	}
	return nil
}

func (p *PhysicalAttributes) setDistanceKm(v float64) error {
	if err := validRange("distance_km", v); err != nil {
		return err
	}
	p.distanceKm = v
	return nil
}

func (p *PhysicalAttributes) setWeightKg(v float64) error {
	if err := validRange("weight_kg", v); err != nil {
		return err
	}
	p.weightKg = v
	return nil
}

func (p *PhysicalAttributes) setSizeCm(v float64) error {
	if err := validRange("size_cm", v); err != nil {
		return err
	}
	p.sizeCm = v
	return nil
}
