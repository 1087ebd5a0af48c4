package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/phpdave11/gofpdf"

	"Cabina/internal/wizard"
)

const (
	lineH    = 6.0
	pageBody = 180.0 // A4 width minus margins, mm
)

type pdfDoc struct {
	*gofpdf.Fpdf
	tr func(string) string // UTF-8 to the core fonts' cp1252
}

func (d pdfDoc) heading(text string) {
	d.Ln(4)
	d.SetFont("Helvetica", "B", 13)
	d.Cell(0, 8, d.tr(text))
	d.Ln(9)
	d.SetFont("Helvetica", "", 10)
}

func (d pdfDoc) kv(key, value string) {
	d.SetFont("Helvetica", "B", 10)
	d.Cell(60, lineH, d.tr(key))
	d.SetFont("Helvetica", "", 10)
	d.Cell(0, lineH, d.tr(value))
	d.Ln(lineH)
}

// table draws a header row and body rows with the given column widths.
func (d pdfDoc) table(widths []float64, header []string, rows [][]string) {
	d.SetFont("Helvetica", "B", 9)
	for i, h := range header {
		d.CellFormat(widths[i], lineH, h, "1", 0, "C", false, 0, "")
	}
	d.Ln(-1)
	d.SetFont("Helvetica", "", 9)
	for _, r := range rows {
		for i, c := range r {
			align := "L"
			if i > 0 {
				align = "R"
			}
			d.CellFormat(widths[i], lineH, d.tr(c), "1", 0, align, false, 0, "")
		}
		d.Ln(-1)
	}
}

func yesNo(ok bool) string {
	if ok {
		return "yes"
	}
	return "NO"
}

// WritePDF renders the technical report of s. Sections for steps that were
// not completed are left out.
func WritePDF(w io.Writer, s wizard.State) error {
	f := gofpdf.New("P", "mm", "A4", "")
	d := pdfDoc{Fpdf: f, tr: f.UnicodeTranslatorFromDescriptor("")}
	d.SetTitle("Substation technical report", false)
	d.SetFooterFunc(func() {
		d.SetY(-15)
		d.SetFont("Helvetica", "I", 8)
		d.CellFormat(0, 10, fmt.Sprintf("Project %s - page %d", s.ID, d.PageNo()), "", 0, "C", false, 0, "")
	})
	d.AddPage()

	d.SetFont("Helvetica", "B", 18)
	d.Cell(0, 12, "MV/LV substation technical report")
	d.Ln(14)
	d.SetFont("Helvetica", "", 10)
	name := s.Params.Name
	if name == "" {
		name = "-"
	}
	d.kv("Project", name)
	d.kv("Project ID", s.ID)
	d.kv("Date", s.CreatedAt.Format("2006-01-02"))
	d.kv("Installation", s.Params.Installation)
	d.kv("Service continuity", string(s.Params.Continuity))

	if s.Done(wizard.StepDistributor) {
		dist := s.Distributor
		d.heading("1. Distributor data")
		d.kv("Rated voltage", fmt.Sprintf("%.1f kV", dist.VoltageKV))
		d.kv("Three-phase short circuit", fmt.Sprintf("%.1f kA", dist.IccKA))
		d.kv("Neutral", string(dist.NeutralState))
		d.kv("Earth fault current", fmt.Sprintf("%.0f A for %.2f s", dist.EarthFaultCurrentA, dist.EarthFaultTimeS))
	}

	if s.Done(wizard.StepLoads) {
		d.heading("2. Loads")
		rows := make([][]string, 0, len(s.LoadResult.Breakdown))
		for _, l := range s.LoadResult.Breakdown {
			rows = append(rows, []string{
				l.Name,
				fmt.Sprintf("%.1f", l.NominalKW),
				fmt.Sprintf("%.2f", l.Ku),
				fmt.Sprintf("%.2f", l.Kc),
				fmt.Sprintf("%.2f", l.CosPhi),
				fmt.Sprintf("%.1f", l.EffectiveKW),
				fmt.Sprintf("%.1f", l.ApparentKVA),
			})
		}
		d.table([]float64{50, 22, 18, 18, 22, 25, 25},
			[]string{"Load", "Pn kW", "Ku", "Kc", "cos phi", "P kW", "S kVA"}, rows)
		d.Ln(2)
		d.kv("Total", fmt.Sprintf("%.1f kW, %.1f kVA, cos phi %.2f",
			s.LoadResult.TotalKW, s.LoadResult.TotalKVA, s.LoadResult.AverageCosPhi))
	}

	if s.Done(wizard.StepTransformers) {
		b := s.Transformers
		t := b.Unit.Item
		d.heading("3. Transformers")
		d.kv("Configuration", fmt.Sprintf("%d x %d kVA %s", b.Count, t.PowerKVA, t.Series))
		d.kv("Product code", t.ProductCode)
		d.kv("Connection / Ucc", fmt.Sprintf("%s / %.1f %%", t.Connection, t.UccPercent))
		d.kv("Load factor", fmt.Sprintf("%.1f %%", b.LoadFactor*100))
		d.kv("Losses", fmt.Sprintf("%d W no load, %d W load", b.LossesNoLoadW, b.LossesLoadW))
		d.kv("Recommendation", b.Recommendation.Reason)
	}

	if s.Done(wizard.StepEarthSwitch) {
		es := s.EarthSwitch
		d.heading("4. Earth switch")
		d.kv("Device", fmt.Sprintf("%s (%s)", es.Switch.Item.Series, es.Switch.Item.Kind))
		d.kv("Rating", fmt.Sprintf("%.0f kV, %.0f A, %.0f kA", es.Switch.Item.RatedVoltageKV, es.Switch.Item.RatedCurrentA, es.Switch.Item.ShortCircuitKA))
		d.kv("Reason", es.Reason)
	}

	if s.Done(wizard.StepMVSwitchgear) {
		mv := s.MV
		d.heading("5. MV switchgear")
		rows := make([][]string, 0, len(mv.Units))
		for _, u := range mv.Units {
			rows = append(rows, []string{
				u.Name,
				fmt.Sprintf("%s %.0f A", u.Breaker.Item.Series, u.Breaker.Item.RatedCurrentA),
				u.Relay.Series,
				u.CT.Item.Ratio,
				fmt.Sprintf("%.0f", u.Cost),
			})
		}
		d.table([]float64{40, 50, 30, 30, 30}, []string{"Unit", "Breaker", "Relay", "CT", "Cost EUR"}, rows)
		d.Ln(2)
		d.kv("Panel", fmt.Sprintf("%s, %d units, %d mm", mv.Series, mv.UnitCount, mv.WidthMM))
	}

	if s.Done(wizard.StepProtection) {
		p := s.Protection
		d.heading("6. Protection coordination")
		d.kv("DG I>> / t>>", fmt.Sprintf("%.0f A / %.2f s", p.DG.I2A, p.DG.T2S))
		d.kv("DG I>>> / t>>>", fmt.Sprintf("%.0f A / %.2f s", p.DG.I3A, p.DG.T3S))
		d.kv("DG Io> / to>", fmt.Sprintf("%.0f A / %.2f s", p.DG.Io1A, p.DG.To1S))
		d.kv("DG Io>> / to>>", fmt.Sprintf("%.0f A / %.2f s", p.DG.Io2A, p.DG.To2S))
		d.kv("Transformer I>> / t>>", fmt.Sprintf("%.0f A / %.2f s", p.Transformer.I2A, p.Transformer.T2S))
		d.kv("CEI 0-16 compliant", yesNo(p.CEI016Compliant))
		d.kv("Selective", yesNo(p.Selective))
	}

	if s.Done(wizard.StepLVSwitchgear) {
		lv := s.LV
		d.heading("7. LV switchgear")
		d.kv("Main breaker", fmt.Sprintf("%s %s %.0f A", lv.MainBreaker.Item.Series, lv.MainBreaker.Item.Frame, lv.MainBreaker.Item.RatedCurrentA))
		d.kv("Utilization", fmt.Sprintf("%.1f %% (%s)", lv.UtilizationPct, lv.Utilization))
		rows := make([][]string, 0, len(lv.Feeders))
		for _, f := range lv.Feeders {
			rows = append(rows, []string{
				f.Name,
				fmt.Sprintf("%.1f", f.PowerKW),
				fmt.Sprintf("%.1f", f.CurrentA),
				fmt.Sprintf("%s %.0f A", f.Breaker.Item.Frame, f.Breaker.Item.RatedCurrentA),
				f.Priority,
			})
		}
		d.table([]float64{50, 25, 25, 50, 30}, []string{"Feeder", "P kW", "I A", "Breaker", "Priority"}, rows)
		d.Ln(2)
		d.kv("Selectivity", yesNo(lv.Selectivity.Selective))
	}

	if s.Done(wizard.StepEarthing) {
		e := s.Earthing.Design
		d.heading("8. Earthing")
		d.kv("Configuration", string(e.Configuration))
		d.kv("Resistance", fmt.Sprintf("%.3f Ohm (required %.3f Ohm)", e.ResistanceOhm, e.RequiredResistanceOhm))
		d.kv("Soil resistivity", fmt.Sprintf("%.0f Ohm m", e.ResistivityOhm))
		d.kv("Conductor", e.ConductorType)
		d.kv("Electrodes", fmt.Sprintf("%d, %.1f m total", e.ElectrodeCount, e.ElectrodeLengthM))
		d.kv("Touch / step voltage", fmt.Sprintf("%.1f V / %.1f V", e.TouchVoltageV, e.StepVoltageV))
	}

	d.heading("Compliance summary")
	d.kv("Completed steps", fmt.Sprintf("%d of %d", int(s.Completed), int(wizard.StepEarthing)))
	d.kv("Bill of materials", fmt.Sprintf("%.0f EUR", Total(BOM(s))))
	if s.Compliant() {
		d.MultiCell(pageBody, lineH, "No warnings were raised.", "", "L", false)
	} else {
		var sb strings.Builder
		for _, warn := range s.Warnings {
			fmt.Fprintf(&sb, "- [%s] %s\n", warn.Step, warn.Message)
		}
		d.MultiCell(pageBody, lineH, d.tr(sb.String()), "", "L", false)
	}

	if err := d.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}
