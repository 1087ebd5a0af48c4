// Package report renders a completed substation project as a PDF technical
// report or an XLSX bill of materials.
package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"Cabina/internal/wizard"
)

// Line is one row of the bill of materials. Costs are estimates in EUR.
type Line struct {
	Section     string  `json:"section"`
	Item        string  `json:"item"`
	ProductCode string  `json:"product_code"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	UnitCost    float64 `json:"unit_cost"`
	Total       float64 `json:"total"`
}

func line(section, item, code string, qty float64, unit string, unitCost float64) Line {
	return Line{Section: section, Item: item, ProductCode: code, Quantity: qty, Unit: unit, UnitCost: unitCost, Total: qty * unitCost}
}

// BOM lists every selected item of the completed steps of s.
func BOM(s wizard.State) []Line {
	out := []Line{}

	if s.Done(wizard.StepTransformers) {
		t := s.Transformers.Unit.Item
		out = append(out, line("Transformers", fmt.Sprintf("%s %d kVA", t.Series, t.PowerKVA), t.ProductCode,
			float64(s.Transformers.Count), "pcs", float64(t.CostEstimate)))
	}
	if s.Done(wizard.StepEarthSwitch) {
		es := s.EarthSwitch.Switch.Item
		out = append(out, line("Earth switch", fmt.Sprintf("%s %s", es.Series, es.Kind), es.ProductCode,
			1, "pcs", float64(es.CostEstimate)))
	}
	if s.Done(wizard.StepMVSwitchgear) {
		for _, u := range s.MV.Units {
			sec := "MV " + u.Name
			b := u.Breaker.Item
			out = append(out,
				line(sec, fmt.Sprintf("Cubicle %s", u.Cubicle.Item.Key), u.Cubicle.Item.ProductCode, 1, "pcs", float64(u.Cubicle.Item.CostBase)),
				line(sec, fmt.Sprintf("Breaker %s %.0f A %.0f kA", b.Series, b.RatedCurrentA, b.BreakingKA), b.ProductCode, 1, "pcs", b.CostEstimate),
				line(sec, "Relay "+u.Relay.Series, u.Relay.ProductCode, 1, "pcs", float64(u.Relay.CostEstimate)),
			)
			for _, d := range u.Devices {
				out = append(out, line(sec, fmt.Sprintf("%s %s", d.Kind, d.Rating), d.ProductCode, float64(d.Quantity), "pcs", d.UnitCost))
			}
		}
	}
	if s.Done(wizard.StepLVSwitchgear) {
		lv := s.LV
		ms, mb := lv.MainSwitch.Item, lv.MainBreaker.Item
		out = append(out,
			line("LV main", fmt.Sprintf("Switch %s %.0f A", ms.Series, ms.RatedCurrentA), ms.ProductCode, 1, "pcs", float64(ms.CostEstimate)),
			line("LV main", fmt.Sprintf("Breaker %s %s %.0f A", mb.Series, mb.Frame, mb.RatedCurrentA), mb.ProductCode, 1, "pcs", mb.CostEstimate),
		)
		for _, f := range lv.Feeders {
			fb, fs := f.Breaker.Item, f.Switch.Item
			out = append(out,
				line("LV "+f.Name, fmt.Sprintf("Breaker %s %s %.0f A", fb.Series, fb.Frame, fb.RatedCurrentA), fb.ProductCode, 1, "pcs", fb.CostEstimate),
				line("LV "+f.Name, fmt.Sprintf("Switch %s %.0f A", fs.Series, fs.RatedCurrentA), fs.ProductCode, 1, "pcs", float64(fs.CostEstimate)),
			)
		}
		out = append(out, line("LV main", "Accessories and wiring", "", 1, "lot", lv.Costs.Accessories))
	}
	if s.Done(wizard.StepEarthing) {
		for _, m := range s.Earthing.Materials {
			out = append(out, line("Earthing", m.Item, "", m.Quantity, m.Unit, m.UnitCost))
		}
	}
	return out
}

// Total sums the line totals.
func Total(lines []Line) float64 {
	var sum float64
	for _, l := range lines {
		sum += l.Total
	}
	return sum
}

const bomSheet = "BOM"

var bomHeader = []interface{}{"Section", "Item", "Product code", "Qty", "Unit", "Unit cost (EUR)", "Total (EUR)"}

// WriteXLSX writes the bill of materials of s as a single-sheet workbook.
func WriteXLSX(w io.Writer, s wizard.State) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), bomSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	title := s.Params.Name
	if title == "" {
		title = s.ID
	}
	if err := f.SetCellValue(bomSheet, "A1", "Bill of materials: "+title); err != nil {
		return err
	}
	if err := f.SetSheetRow(bomSheet, "A3", &bomHeader); err != nil {
		return err
	}

	lines := BOM(s)
	row := 4
	for _, l := range lines {
		cell, _ := excelize.CoordinatesToCellName(1, row)
		vals := []interface{}{l.Section, l.Item, l.ProductCode, l.Quantity, l.Unit, l.UnitCost, l.Total}
		if err := f.SetSheetRow(bomSheet, cell, &vals); err != nil {
			return err
		}
		row++
	}
	totalLabel, _ := excelize.CoordinatesToCellName(6, row)
	totalCell, _ := excelize.CoordinatesToCellName(7, row)
	if err := f.SetCellValue(bomSheet, totalLabel, "Total"); err != nil {
		return err
	}
	if err := f.SetCellValue(bomSheet, totalCell, Total(lines)); err != nil {
		return err
	}
	if err := f.SetColWidth(bomSheet, "A", "B", 28); err != nil {
		return err
	}
	if err := f.SetColWidth(bomSheet, "C", "G", 16); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
