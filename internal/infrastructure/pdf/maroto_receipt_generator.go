// Package pdf genera el recibo del pedido con Maroto v2.
//
// Layout de la página A5:
//
//	┌───────────────────────────────────────────┐
//	│  HEADER: marca │ N° de pedido + fecha      │
//	│  CLIENTE: nombre, teléfono, entrega        │
//	│  TABLA: Qté | Article | P.U. | Total       │
//	│  TOTALES: sous-total / livraison / total   │
//	│  FOOTER: puntos ganados + QR de seguimiento │
//	└───────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/foodorder-api/internal/application/ordering"
	"github.com/jhoicas/foodorder-api/internal/domain/entity"
)

var _ ordering.ReceiptGenerator = (*MarotoReceiptGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 196, Green: 69, Blue: 34}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var deliveryLabels = map[string]string{
	entity.DeliveryModeDelivery: "Livraison",
	entity.DeliveryModePickup:   "À emporter",
	entity.DeliveryModeTaftaf:   "Taftaf (express)",
}

var paymentLabels = map[string]string{
	entity.PaymentOrangeMoney: "Orange Money",
	entity.PaymentWave:        "Wave",
	entity.PaymentCard:        "Carte bancaire",
	entity.PaymentCash:        "Espèces",
}

// MarotoReceiptGenerator implementa ordering.ReceiptGenerator.
type MarotoReceiptGenerator struct {
	brand       string
	trackingURL string // prefijo del enlace de seguimiento; vacío = sin QR
}

// NewMarotoReceiptGenerator construye el generador. trackingURL se concatena con el ID del pedido en el QR.
func NewMarotoReceiptGenerator(brand, trackingURL string) *MarotoReceiptGenerator {
	return &MarotoReceiptGenerator{brand: brand, trackingURL: trackingURL}
}

// GenerateReceipt genera el PDF y devuelve sus bytes.
func (g *MarotoReceiptGenerator) GenerateReceipt(
	_ context.Context,
	order *entity.Order,
	customer *entity.User,
	pointsEarned int,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(8).WithBottomMargin(8).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reçu de commande", true).
		WithAuthor(g.brand, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(order, customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(itemRows(order.Items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(order))
	m.AddRows(line.NewRow(3))
	m.AddRows(g.footerRows(order, pointsEarned)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar recibo: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *MarotoReceiptGenerator) headerRow(order *entity.Order) core.Row {
	return row.New(16).Add(
		col.New(6).Add(
			text.New(g.brand, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
		),
		col.New(6).Add(
			text.New("Commande #"+shortID(order.ID), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1,
			}),
			text.New(order.CreatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func customerRow(order *entity.Order, customer *entity.User) core.Row {
	delivery := labelOr(deliveryLabels, order.DeliveryMode)
	if order.DeliveryAddress != "" {
		delivery += " - " + order.DeliveryAddress
	}
	return row.New(18).Add(
		col.New(12).Add(
			text.New(customer.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 1}),
			text.New("Tél : "+customer.Phone, props.Text{Size: 8, Top: 7, Color: colorGray}),
			text.New(delivery+"   |   Paiement : "+labelOr(paymentLabels, order.PaymentMethod), props.Text{
				Size: 8, Top: 12, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 1,
		}))
	}
	return row.New(7).Add(
		h("Qté", 1, align.Center),
		h("Article", 6, align.Left),
		h("P.U.", 2, align.Right),
		h("Total", 3, align.Right),
	)
}

func itemRows(items []entity.OrderItem) []core.Row {
	rows := make([]core.Row, 0, len(items))
	for _, it := range items {
		desc := it.MenuItemName
		if it.VariantName != "" {
			desc += " (" + it.VariantName + ")"
		}
		if len(it.Customizations) > 0 {
			names := make([]string, 0, len(it.Customizations))
			for _, c := range it.Customizations {
				names = append(names, c.Name)
			}
			desc += " + " + strings.Join(names, ", ")
		}
		rows = append(rows, row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprintf("%d", it.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(6).Add(text.New(desc, props.Text{Size: 8, Top: 1})),
			col.New(2).Add(text.New(FormatFCFA(it.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(3).Add(text.New(FormatFCFA(it.TotalPrice), props.Text{Size: 8, Align: align.Right, Top: 1})),
		))
	}
	return rows
}

func totalsRow(order *entity.Order) core.Row {
	label := func(s string, top float64, bold bool) core.Component {
		p := props.Text{Size: 9, Align: align.Right, Top: top, Right: 2}
		if bold {
			p.Style = fontstyle.Bold
			p.Color = colorPrimary
		}
		return text.New(s, p)
	}
	return row.New(20).Add(
		col.New(5),
		col.New(4).Add(
			label("Sous-total :", 1, false),
			label("Livraison :", 7, false),
			label("TOTAL :", 13, true),
		),
		col.New(3).Add(
			label(FormatFCFA(order.Subtotal), 1, false),
			label(FormatFCFA(order.DeliveryFee), 7, false),
			label(FormatFCFA(order.Total), 13, true),
		),
	)
}

func (g *MarotoReceiptGenerator) footerRows(order *entity.Order, pointsEarned int) []core.Row {
	points := fmt.Sprintf("Vous avez gagné %d point(s) de fidélité avec cette commande.", pointsEarned)
	if pointsEarned == 0 {
		points = "Cette commande ne rapporte pas de points de fidélité."
	}
	if g.trackingURL == "" {
		return []core.Row{row.New(8).Add(col.New(12).Add(
			text.New(points, props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 2}),
		))}
	}
	return []core.Row{row.New(32).Add(
		col.New(4).Add(code.NewQr(g.trackingURL+order.ID, props.Rect{Percent: 95, Center: true})),
		col.New(8).Add(
			text.New(points, props.Text{Size: 8, Top: 4, Left: 3, Color: colorGray}),
			text.New("Scannez le code pour suivre votre commande.", props.Text{
				Style: fontstyle.Bold, Size: 8, Top: 16, Left: 3, Color: colorPrimary,
			}),
		),
	)}
}

// ── helpers ───────────────────────────────────────────────────────────────────

var frenchPrinter = message.NewPrinter(language.French)

// FormatFCFA formatea un monto entero con agrupación francesa: 12500 -> "12 500 FCFA".
// El separador de miles del locale (espacio fino) se reemplaza por un espacio normal,
// que sí existe en las fuentes estándar del PDF.
func FormatFCFA(amount decimal.Decimal) string {
	s := frenchPrinter.Sprintf("%d", amount.Round(0).IntPart())
	s = strings.NewReplacer("\u202f", " ", "\u00a0", " ").Replace(s)
	return s + " FCFA"
}

func shortID(id string) string {
	if len(id) > 8 {
		return strings.ToUpper(id[:8])
	}
	return strings.ToUpper(id)
}

func labelOr(labels map[string]string, key string) string {
	if l, ok := labels[key]; ok {
		return l
	}
	return key
}
