// Package pdf genera los documentos imprimibles de Core Stock con Maroto v2:
// la orden de compra que se envía al proveedor y las hojas de etiquetas.
//
// Layout de la orden de compra (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Core Stock          │  N° Orden + Fecha + Estado   │
//	│  PROVEEDOR: Nombre + email + lead time                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Descripción | Cant | Recibido | P.Unit | Subt. │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL  +  QR con el número de la orden                     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"

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

	"github.com/jhoicas/core-stock/internal/application/purchasing"
	"github.com/jhoicas/core-stock/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// PurchaseOrderGenerator implementa purchasing.PurchaseOrderDocumentGenerator.
type PurchaseOrderGenerator struct{}

// NewPurchaseOrderGenerator construye el generador.
func NewPurchaseOrderGenerator() *PurchaseOrderGenerator { return &PurchaseOrderGenerator{} }

var _ purchasing.PurchaseOrderDocumentGenerator = (*PurchaseOrderGenerator)(nil)

// GeneratePurchaseOrderPDF genera el PDF de la orden. supplier puede ser nil.
func (g *PurchaseOrderGenerator) GeneratePurchaseOrderPDF(po *entity.PurchaseOrder, supplier *entity.Supplier) ([]byte, error) {
	if supplier == nil {
		supplier = &entity.Supplier{ID: po.SupplierID, Name: po.SupplierID}
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Orden de compra "+po.Number, true).
		WithAuthor("Core Stock", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(po))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(supplierRow(supplier))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableDetailRows(po.Lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(footerRow(po))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar orden de compra: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

var statusLabels = map[string]string{
	entity.POStatusDraft:             "BORRADOR",
	entity.POStatusOrdered:           "ENVIADA",
	entity.POStatusPartiallyReceived: "RECIBIDA PARCIAL",
	entity.POStatusReceived:          "RECIBIDA",
	entity.POStatusCancelled:         "ANULADA",
}

func headerRow(po *entity.PurchaseOrder) core.Row {
	fecha := po.CreatedAt.Format("02/01/2006")
	if po.SubmittedAt != nil {
		fecha = po.SubmittedAt.Format("02/01/2006")
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New("Core Stock", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Orden de compra a proveedor", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ORDEN DE COMPRA · "+nonEmpty(statusLabels[po.Status], po.Status), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(po.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func supplierRow(s *entity.Supplier) core.Row {
	lead := "—"
	if s.LeadTimeDays > 0 {
		lead = strconv.Itoa(s.LeadTimeDays) + " días"
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("PROVEEDOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(s.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Código: %s   |   Email: %s   |   Lead time: %s",
				s.ID, nonEmpty(s.Email, "—"), lead,
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		h("SKU", 2, align.Left),
		h("Descripción", 4, align.Left),
		h("Cant.", 1, align.Center),
		h("Recib.", 1, align.Center),
		h("Precio Unit.", 2, align.Right),
		h("Subtotal", 2, align.Right),
	)
}

func tableDetailRows(lines []entity.PurchaseOrderLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		subtotal := l.UnitCost.Mul(decimal.NewFromInt(int64(l.Quantity)))
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(l.SKU, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(l.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(strconv.Itoa(l.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(strconv.Itoa(l.ReceivedQty), props.Text{Size: 8, Align: align.Center, Top: 1, Color: colorGray})),
			col.New(2).Add(text.New("$"+formatMoney(l.UnitCost.StringFixed(0)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New("$"+formatMoney(subtotal.StringFixed(0)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// footerRow: QR con el número de la orden (lo escanea bodega al recibir) y total.
func footerRow(po *entity.PurchaseOrder) core.Row {
	units := 0
	for _, l := range po.Lines {
		units += l.Quantity
	}
	return row.New(34).Add(
		col.New(3).Add(code.NewQr(po.Number, props.Rect{Percent: 90, Center: true})),
		col.New(3).Add(text.New("Presente este código al\nentregar la mercancía.", props.Text{
			Size: 7.5, Top: 6, Left: 2, Color: colorGray,
		})),
		col.New(3).Add(
			text.New("Unidades:", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 6}),
			text.New("TOTAL ESTIMADO:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 13,
			}),
		),
		col.New(3).Add(
			text.New(strconv.Itoa(units), props.Text{Size: 9, Align: align.Right, Right: 1, Top: 6}),
			text.New("$"+formatMoney(po.Total().StringFixed(0)), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 13,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	neg := len(s) > 0 && s[0] == '-'
	if neg {
		s = s[1:]
	}
	n := len(s)
	if n <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}
	buf := make([]byte, 0, n+n/3+1)
	if neg {
		buf = append(buf, '-')
	}
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
