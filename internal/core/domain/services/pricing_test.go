package services_test

import (
	"math"
	"testing"

	"courier/internal/core/domain/model/delivery"
	"courier/internal/core/domain/services"
	"courier/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPricingCalculator_Quote(t *testing.T) {
	calc := services.NewPricingCalculator()

	t.Run("documented scenario: 10km, 5kg, 40cm costs 930", func(t *testing.T) {
		attrs, err := delivery.NewPhysicalAttributes(10, 5, 40)
		require.NoError(t, err)

		price, err := calc.Quote(attrs)

		require.NoError(t, err)
		// 300 + 10*50 + 5*10 + 40*2
		assert.Equal(t, int64(930), price)
	})

	t.Run("zero attributes cost the base fee", func(t *testing.T) {
		attrs, err := delivery.NewPhysicalAttributes(0, 0, 0)
		require.NoError(t, err)

		price, err := calc.Quote(attrs)

		require.NoError(t, err)
		assert.Equal(t, int64(300), price)
	})

	t.Run("rounds to the nearest whole unit", func(t *testing.T) {
		attrs, err := delivery.NewPhysicalAttributes(0.01, 0, 0)
		require.NoError(t, err)

		price, err := calc.Quote(attrs)

		require.NoError(t, err)
		// 300 + 0.5 rounds up
		assert.Equal(t, int64(301), price)
	})

	t.Run("quote is deterministic", func(t *testing.T) {
		attrs, err := delivery.NewPhysicalAttributes(12.34, 5.67, 89.1)
		require.NoError(t, err)

		first, err := calc.Quote(attrs)
		require.NoError(t, err)

		for range 100 {
			again, quoteErr := calc.Quote(attrs)
			require.NoError(t, quoteErr)
			assert.Equal(t, first, again)
		}
	})

	t.Run("unconstructed attributes are rejected", func(t *testing.T) {
		_, err := calc.Quote(delivery.PhysicalAttributes{})
		require.ErrorIs(t, err, errs.ErrInvalidInput)
	})
}

func TestNewPricingCalculatorWithTariff(t *testing.T) {
	t.Run("custom tariff is applied", func(t *testing.T) {
		calc, err := services.NewPricingCalculatorWithTariff(100, 1, 1, 1)
		require.NoError(t, err)

		attrs, err := delivery.NewPhysicalAttributes(2, 3, 4)
		require.NoError(t, err)

		price, err := calc.Quote(attrs)
		require.NoError(t, err)
		assert.Equal(t, int64(109), price)
	})

	t.Run("negative rates are invalid input", func(t *testing.T) {
		_, err := services.NewPricingCalculatorWithTariff(-1, 1, 1, 1)
		require.ErrorIs(t, err, errs.ErrInvalidInput)
	})

	t.Run("non-finite rates are invalid input", func(t *testing.T) {
		_, err := services.NewPricingCalculatorWithTariff(100, math.Inf(1), 1, 1)
		require.ErrorIs(t, err, errs.ErrInvalidInput)

		_, err = services.NewPricingCalculatorWithTariff(100, 1, math.NaN(), 1)
		require.ErrorIs(t, err, errs.ErrInvalidInput)
	})
}
