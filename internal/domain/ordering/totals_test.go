package ordering_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/foodorder-api/internal/domain/entity"
	"github.com/jhoicas/foodorder-api/internal/domain/ordering"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestDeliveryFee_PorModo(t *testing.T) {
	cases := map[string]int64{
		entity.DeliveryModeDelivery: 500,
		entity.DeliveryModePickup:   0,
		entity.DeliveryModeTaftaf:   1000,
	}
	for mode, want := range cases {
		fee, ok := ordering.DeliveryFee(mode)
		require.True(t, ok, mode)
		assert.True(t, fee.Equal(dec(want)), "%s: %s", mode, fee)
	}
	_, ok := ordering.DeliveryFee("drone")
	assert.False(t, ok)
}

func TestComputeTotals_Escenario2500MasEnvio(t *testing.T) {
	lines := []ordering.Line{
		{UnitPrice: dec(1000), Quantity: 2},
		{UnitPrice: dec(500), Quantity: 1},
	}
	got := ordering.ComputeTotals(lines, entity.DeliveryModeDelivery)

	assert.True(t, got.Subtotal.Equal(dec(2500)))
	assert.True(t, got.DeliveryFee.Equal(dec(500)))
	assert.True(t, got.Total.Equal(dec(3000)))
	assert.Equal(t, 3, got.PointsEarned)
}

func TestComputeTotals_TotalEsSubtotalMasEnvio(t *testing.T) {
	for _, mode := range []string{entity.DeliveryModeDelivery, entity.DeliveryModePickup, entity.DeliveryModeTaftaf} {
		lines := []ordering.Line{{UnitPrice: decimal.RequireFromString("1250.50"), Quantity: 3}}
		got := ordering.ComputeTotals(lines, mode)
		assert.True(t, got.Total.Equal(got.Subtotal.Add(got.DeliveryFee)), mode)
		assert.Equal(t, ordering.PointsFor(got.Total), got.PointsEarned, mode)
	}
}

func TestPointsFor_Redondeo(t *testing.T) {
	assert.Equal(t, 0, ordering.PointsFor(dec(999)))
	assert.Equal(t, 1, ordering.PointsFor(dec(1000)))
	assert.Equal(t, 1, ordering.PointsFor(decimal.RequireFromString("1999.99")))
	assert.Equal(t, 12, ordering.PointsFor(dec(12500)))
	assert.Equal(t, 0, ordering.PointsFor(dec(-5000)))
}

func TestHasMoneyScale(t *testing.T) {
	assert.True(t, ordering.HasMoneyScale(dec(2500)))
	assert.True(t, ordering.HasMoneyScale(decimal.RequireFromString("999.50")))
	assert.True(t, ordering.HasMoneyScale(decimal.RequireFromString("12.340")))
	assert.False(t, ordering.HasMoneyScale(decimal.RequireFromString("999.999")))
	assert.False(t, ordering.HasMoneyScale(decimal.RequireFromString("0.001")))
}
