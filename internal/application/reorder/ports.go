package reorder

import "github.com/jhoicas/core-stock/internal/application/dto"

// SpreadsheetExporter genera la hoja de cálculo de sugerencias (una fila por SKU).
type SpreadsheetExporter interface {
	ExportSuggestions(rows []dto.ReorderSuggestionDTO, groups []dto.SupplierGroupDTO) ([]byte, error)
}
