// Package importer reads load lists from spreadsheets.
package importer

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"Cabina/internal/calc/loads"
)

// ErrEmptySheet is returned when the first sheet has no data rows.
var ErrEmptySheet = errors.New("empty sheet")

type RowError struct {
	Row    int    `json:"row"` // 1-based, as shown by spreadsheet tools
	Reason string `json:"reason"`
}

type Import struct {
	Loads   []loads.Load `json:"loads"`
	Skipped []RowError   `json:"skipped"`
}

// ParseLoads reads the first sheet of an XLSX workbook. The first row is a
// header; columns are name, category, power_kw, quantity, ku, cos_phi,
// voltage_v. Only name and power are required. Rows that cannot be parsed or
// fail validation are skipped and reported.
func ParseLoads(r io.Reader) (Import, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Import{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return Import{}, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) < 2 {
		return Import{}, ErrEmptySheet
	}

	out := Import{Loads: []loads.Load{}, Skipped: []RowError{}}
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if blank(row) {
			continue
		}
		l, err := parseRow(row)
		if err == nil {
			err = l.Validate()
		}
		if err != nil {
			out.Skipped = append(out.Skipped, RowError{Row: i + 1, Reason: err.Error()})
			continue
		}
		out.Loads = append(out.Loads, l)
	}
	return out, nil
}

func parseRow(row []string) (loads.Load, error) {
	if len(row) < 3 {
		return loads.Load{}, errors.New("name, category and power are required")
	}
	l := loads.Load{
		Name:     strings.TrimSpace(row[0]),
		Category: strings.TrimSpace(row[1]),
		Quantity: 1,
		Ku:       1,
		CosPhi:   loads.DefaultCosPhi,
		VoltageV: loads.DefaultVoltage,
		Phases:   3,
	}
	if l.Name == "" {
		return loads.Load{}, errors.New("missing name")
	}

	var err error
	if l.PowerKW, err = toFloat(row[2]); err != nil {
		return loads.Load{}, fmt.Errorf("power_kw: %w", err)
	}
	if v := cell(row, 3); v != "" {
		q, err := toFloat(v)
		if err != nil {
			return loads.Load{}, fmt.Errorf("quantity: %w", err)
		}
		if q != math.Trunc(q) {
			return loads.Load{}, fmt.Errorf("quantity: %v is not a whole number", q)
		}
		l.Quantity = int(q)
	}
	for _, c := range []struct {
		idx  int
		name string
		dst  *float64
	}{
		{4, "ku", &l.Ku},
		{5, "cos_phi", &l.CosPhi},
		{6, "voltage_v", &l.VoltageV},
	} {
		v := cell(row, c.idx)
		if v == "" {
			continue
		}
		if *c.dst, err = toFloat(v); err != nil {
			return loads.Load{}, fmt.Errorf("%s: %w", c.name, err)
		}
	}
	if l.VoltageV < 300 {
		l.Phases = 1
	}
	return l, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// toFloat accepts a decimal comma. NaN and infinities are refused.
func toFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", s)
	}
	return v, nil
}
