// Package excel exporta las sugerencias de reorden a .xlsx con excelize.
package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/core-stock/internal/application/dto"
	appreorder "github.com/jhoicas/core-stock/internal/application/reorder"
)

// Nombres de las hojas generadas.
const (
	SheetSuggestions = "Sugerencias"
	SheetSuppliers   = "Proveedores"
)

var suggestionHeaders = []string{
	"SKU", "Nombre", "Proveedor", "Stock", "Mínimo", "Pack", "Lead time (días)",
	"Uso 30d", "Uso 90d", "Demanda diaria", "Stock seguridad", "Punto de reorden",
	"Proyectado", "Sugerido", "Costo unitario", "Costo estimado", "Candidato",
}

var supplierHeaders = []string{"Proveedor", "Nombre", "SKUs", "Unidades", "Costo estimado"}

// SuggestionsExporter implementa reorder.SpreadsheetExporter.
type SuggestionsExporter struct{}

// NewSuggestionsExporter construye el exportador.
func NewSuggestionsExporter() *SuggestionsExporter { return &SuggestionsExporter{} }

var _ appreorder.SpreadsheetExporter = (*SuggestionsExporter)(nil)

// ExportSuggestions libro con una hoja de sugerencias (todas) y otra con el resumen por proveedor.
func (e *SuggestionsExporter) ExportSuggestions(rows []dto.ReorderSuggestionDTO, groups []dto.SupplierGroupDTO) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(SheetSuggestions); err != nil {
		return nil, fmt.Errorf("excel: crear hoja: %w", err)
	}
	if _, err := f.NewSheet(SheetSuppliers); err != nil {
		return nil, fmt.Errorf("excel: crear hoja: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("excel: borrar hoja por defecto: %w", err)
	}
	if idx, err := f.GetSheetIndex(SheetSuggestions); err == nil {
		f.SetActiveSheet(idx)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D3D3D3"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo de encabezado: %w", err)
	}
	candidateStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#FFF2CC"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo de candidato: %w", err)
	}

	if err := writeHeader(f, SheetSuggestions, suggestionHeaders, headerStyle); err != nil {
		return nil, err
	}
	for i, r := range rows {
		candidate := "no"
		if r.Candidate {
			candidate = "sí"
		}
		values := []any{
			r.SKU, r.Name, r.SupplierID, r.Stock, r.Min, r.PackSize, r.LeadTimeDays,
			r.Usage30, r.Usage90, r.MovingAvg, r.SafetyStock, r.ReorderPoint,
			r.Projected, r.SuggestQty, r.UnitCost.InexactFloat64(), r.EstimatedCost.InexactFloat64(), candidate,
		}
		if err := writeRow(f, SheetSuggestions, i+2, values); err != nil {
			return nil, err
		}
		if r.Candidate {
			first, _ := excelize.CoordinatesToCellName(1, i+2)
			last, _ := excelize.CoordinatesToCellName(len(values), i+2)
			if err := f.SetCellStyle(SheetSuggestions, first, last, candidateStyle); err != nil {
				return nil, fmt.Errorf("excel: estilo fila %d: %w", i+2, err)
			}
		}
	}

	if err := writeHeader(f, SheetSuppliers, supplierHeaders, headerStyle); err != nil {
		return nil, err
	}
	for i, g := range groups {
		values := []any{g.SupplierID, g.SupplierName, len(g.Lines), g.TotalUnits, g.EstimatedCost.InexactFloat64()}
		if err := writeRow(f, SheetSuppliers, i+2, values); err != nil {
			return nil, err
		}
	}

	if err := f.SetPanes(SheetSuggestions, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("excel: congelar encabezado: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

func writeHeader(f *excelize.File, sheet string, headers []string, style int) error {
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("excel: celda: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("excel: encabezado %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return fmt.Errorf("excel: estilo %s: %w", cell, err)
		}
		col, _ := excelize.ColumnNumberToName(i + 1)
		width := 14.0
		if i == 1 {
			width = 36
		}
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return fmt.Errorf("excel: ancho de columna: %w", err)
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("excel: celda: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("excel: fila %d: %w", row, err)
	}
	return nil
}
