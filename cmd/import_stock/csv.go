package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/core-stock/internal/domain/reorder"
)

// columnas esperadas en el encabezado (en cualquier orden).
var requiredColumns = []string{"sku", "name", "supplier_id", "stock", "min", "pack_size", "lead_time_days", "unit_cost"}

// rowError fila descartada con su número de línea.
type rowError struct {
	Line int
	Err  error
}

func (e rowError) Error() string { return fmt.Sprintf("línea %d: %v", e.Line, e.Err) }

// parseStockCSV lee el export del sistema anterior (separador ';').
// Con latin1 el contenido se decodifica desde ISO-8859-1.
// Las filas inválidas no detienen la lectura: se devuelven aparte.
func parseStockCSV(r io.Reader, latin1 bool) ([]reorder.StockSnapshot, []rowError, error) {
	if latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("leer encabezado: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, nil, fmt.Errorf("falta la columna %q", col)
		}
	}

	var (
		out  []reorder.StockSnapshot
		bad  []rowError
		line = 1
	)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			bad = append(bad, rowError{Line: line, Err: err})
			continue
		}
		snap, err := toSnapshot(rec, idx)
		if err == nil {
			err = snap.Validate()
		}
		if err != nil {
			bad = append(bad, rowError{Line: line, Err: err})
			continue
		}
		out = append(out, snap)
	}
	return out, bad, nil
}

func toSnapshot(rec []string, idx map[string]int) (reorder.StockSnapshot, error) {
	get := func(col string) string {
		i := idx[col]
		if i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}
	var s reorder.StockSnapshot
	s.SKU = reorder.NormalizeSKU(get("sku"))
	s.Name = get("name")
	s.SupplierID = get("supplier_id")

	ints := []struct {
		col string
		dst *int
	}{
		{"stock", &s.Stock},
		{"min", &s.Min},
		{"pack_size", &s.PackSize},
		{"lead_time_days", &s.LeadTimeDays},
	}
	for _, f := range ints {
		n, err := strconv.Atoi(get(f.col))
		if err != nil {
			return s, fmt.Errorf("%s: %q no es entero", f.col, get(f.col))
		}
		*f.dst = n
	}

	cost, err := parseCost(get("unit_cost"))
	if err != nil {
		return s, err
	}
	s.UnitCost = cost
	return s, nil
}

// parseCost acepta "15900.50", "15900,50" y "15.900,50".
func parseCost(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	v := raw
	if strings.Contains(v, ",") {
		v = strings.ReplaceAll(v, ".", "")
		v = strings.ReplaceAll(v, ",", ".")
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("unit_cost: %q inválido", raw)
	}
	return d, nil
}
