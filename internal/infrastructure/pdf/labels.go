package pdf

import (
	"fmt"
	"time"

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

	"github.com/jhoicas/core-stock/internal/application/labels"
)

// labelsPerRow etiquetas por fila; cada una ocupa QR (2 cols) + texto (2 cols).
const labelsPerRow = 3

// LabelGenerator implementa labels.LabelGenerator con Maroto v2.
type LabelGenerator struct {
	now func() time.Time
}

// NewLabelGenerator construye el generador.
func NewLabelGenerator() *LabelGenerator { return &LabelGenerator{now: time.Now} }

var _ labels.LabelGenerator = (*LabelGenerator)(nil)

// GenerateLabels hoja A4 con las etiquetas en filas de tres.
func (g *LabelGenerator) GenerateLabels(ls []labels.Label) ([]byte, error) {
	if len(ls) == 0 {
		return nil, fmt.Errorf("pdf: no hay etiquetas")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(8).WithBottomMargin(8).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Etiquetas Core Stock", true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(row.New(8).Add(
		col.New(8).Add(text.New("ETIQUETAS DE ESTANTERÍA", props.Text{
			Style: fontstyle.Bold, Size: 11, Color: colorPrimary, Top: 1,
		})),
		col.New(4).Add(text.New("Generado: "+g.now().Format("02/01/2006 15:04"), props.Text{
			Size: 7, Align: align.Right, Color: colorGray, Top: 2,
		})),
	))
	m.AddRows(line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.4}))

	for i := 0; i < len(ls); i += labelsPerRow {
		end := i + labelsPerRow
		if end > len(ls) {
			end = len(ls)
		}
		m.AddRows(labelRow(ls[i:end]))
		m.AddRows(line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.1}))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar etiquetas: %w", err)
	}
	return doc.GetBytes(), nil
}

func labelRow(ls []labels.Label) core.Row {
	cols := make([]core.Col, 0, labelsPerRow*2)
	for _, l := range ls {
		cols = append(cols,
			col.New(2).Add(code.NewQr(l.SKU, props.Rect{Percent: 90, Center: true})),
			col.New(2).Add(
				text.New(l.Name, props.Text{Style: fontstyle.Bold, Size: 8, Top: 2}),
				text.New(l.SKU, props.Text{Size: 10, Top: 11, Color: colorPrimary, Style: fontstyle.Bold}),
				text.New(nonEmpty(l.SupplierName, "—"), props.Text{Size: 6.5, Top: 17, Color: colorGray}),
				text.New(fmt.Sprintf("Pack %d · Mín %d · $%s", l.PackSize, l.Min, formatMoney(l.UnitCost.StringFixed(0))),
					props.Text{Size: 6.5, Top: 21, Color: colorGray}),
			),
		)
	}
	// completar la fila para mantener el ancho de las etiquetas
	for len(cols) < labelsPerRow*2 {
		cols = append(cols, col.New(2))
	}
	return row.New(28).Add(cols...)
}
