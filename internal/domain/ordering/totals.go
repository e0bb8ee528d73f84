package ordering

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/foodorder-api/internal/domain/entity"
)

// EstimatedDeliveryDelay tiempo estimado de entrega desde la creación del pedido.
const EstimatedDeliveryDelay = 30 * time.Minute

// MaxLineQuantity tope de unidades por línea de pedido o de carrito.
const MaxLineQuantity = 99

// MoneyScale decimales de las columnas de importes (NUMERIC(12,2)).
const MoneyScale = 2

// pointsDivisor: 1 punto por cada 1000 FCFA del total (incluye envío).
var pointsDivisor = decimal.NewFromInt(1000)

var deliveryFees = map[string]decimal.Decimal{
	entity.DeliveryModeDelivery: decimal.NewFromInt(500),
	entity.DeliveryModePickup:   decimal.Zero,
	entity.DeliveryModeTaftaf:   decimal.NewFromInt(1000),
}

// Line entrada mínima para el cálculo de totales.
type Line struct {
	UnitPrice decimal.Decimal
	Quantity  int
}

// Totals resultado del cálculo de un pedido.
type Totals struct {
	Subtotal     decimal.Decimal
	DeliveryFee  decimal.Decimal
	Total        decimal.Decimal
	PointsEarned int
}

// DeliveryFee tarifa fija por modo de entrega. ok=false si el modo no existe.
func DeliveryFee(mode string) (decimal.Decimal, bool) {
	fee, ok := deliveryFees[mode]
	return fee, ok
}

// HasMoneyScale true si el importe se guarda sin redondeo (a lo sumo MoneyScale decimales).
func HasMoneyScale(amount decimal.Decimal) bool {
	return amount.Equal(amount.Round(MoneyScale))
}

// PointsFor puntos ganados por un total: floor(total / 1000). Nunca negativo.
func PointsFor(total decimal.Decimal) int {
	if total.LessThanOrEqual(decimal.Zero) {
		return 0
	}
	return int(total.Div(pointsDivisor).Floor().IntPart())
}

// ComputeTotals Subtotal = Σ UnitPrice × Quantity; Total = Subtotal + DeliveryFee.
// El llamador valida líneas y modo antes de invocar.
func ComputeTotals(lines []Line, mode string) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	fee, _ := DeliveryFee(mode)
	total := subtotal.Add(fee)
	return Totals{
		Subtotal:     subtotal,
		DeliveryFee:  fee,
		Total:        total,
		PointsEarned: PointsFor(total),
	}
}
