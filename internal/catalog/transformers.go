package catalog

import "fmt"

type TransformerSeries string

const (
	SeriesHiTPlus  TransformerSeries = "hi_t_plus"
	SeriesResibloc TransformerSeries = "resibloc"
	SeriesONAN     TransformerSeries = "onan"
)

type Transformer struct {
	PowerKVA          int               `json:"power_kva"`
	SeriesKey         TransformerSeries `json:"series_key"`
	Series            string            `json:"series"`
	ProductCode       string            `json:"product_code"`
	VoltagePrimaryV   int               `json:"voltage_primary_v"`
	VoltageSecondaryV int               `json:"voltage_secondary_v"`
	UccPercent        float64           `json:"ucc_percent"`
	Connection        string            `json:"connection"`
	LossesNoLoadW     int               `json:"losses_no_load_w"`
	LossesLoadW       int               `json:"losses_load_w"`
	EfficiencyClass   string            `json:"efficiency_class"`
	InsulationClass   string            `json:"insulation_class"`
	CostEstimate      int               `json:"cost_estimate"`
	Dimensions        Dimensions        `json:"dimensions"`
	WeightKg          int               `json:"weight_kg"`
	// nudo (bare, needs barriers) or involucro_proprio (own metal enclosure)
	ProtectionType  string `json:"protection_type"`
	BarrierRequired bool   `json:"barrier_required"`
	Manufacturer    string `json:"manufacturer"`
	Description     string `json:"description"`
}

type TransformerFamily struct {
	StandardPowers   Ladder
	PrimaryVoltages  []int
	SecondaryVoltage []int
	series           map[TransformerSeries]map[int]Transformer
}

// Lookup returns the unit of a series at a standard power.
func (f TransformerFamily) Lookup(series TransformerSeries, powerKVA int) (Transformer, bool) {
	s, ok := f.series[series]
	if !ok {
		return Transformer{}, false
	}
	t, ok := s[powerKVA]
	return t, ok
}

func (f TransformerFamily) HasSeries(series TransformerSeries) bool {
	_, ok := f.series[series]
	return ok
}

func (f TransformerFamily) Powers() Ladder { return f.StandardPowers.clone() }

func (f TransformerFamily) validate() error {
	if err := f.StandardPowers.validate("transformer powers"); err != nil {
		return err
	}
	for key, units := range f.series {
		for _, p := range f.StandardPowers {
			t, ok := units[int(p)]
			if !ok {
				return fmt.Errorf("transformer series %s: missing %v kVA", key, p)
			}
			if t.ProductCode == "" || t.CostEstimate <= 0 {
				return fmt.Errorf("transformer %s %d kVA: incomplete record", key, t.PowerKVA)
			}
		}
	}
	return nil
}

// Reg. UE 548/2014 class Ak maximum losses (no-load W, load W) up to 630 kVA.
var ecoLosses = map[int][2]int{
	160: {460, 2150}, 250: {650, 3250}, 315: {750, 3900},
	400: {930, 4600}, 500: {1100, 5500}, 630: {1350, 6750},
}

func buildTransformers() TransformerFamily {
	powers := []int{160, 250, 315, 400, 500, 630, 800, 1000, 1250, 1600, 2000, 2500}

	hit := make(map[int]Transformer, len(powers))
	resibloc := make(map[int]Transformer, len(powers))
	onan := make(map[int]Transformer, len(powers))
	ladder := make(Ladder, 0, len(powers))

	for _, p := range powers {
		ladder = append(ladder, float64(p))
		pf := float64(p)

		var po, pk int
		if l, ok := ecoLosses[p]; ok {
			po, pk = l[0], l[1]
		} else {
			po = int(pf*1.2 + 300)
			pk = int(pf*8 + 1200)
		}

		var dims Dimensions
		var weight float64
		switch {
		case p <= 315:
			dims = Dimensions{1200, 800, 1400}
			weight = pf*2.5 + 200
		case p <= 630:
			dims = Dimensions{1400, 900, 1600}
			weight = pf*3.0 + 300
		default:
			dims = Dimensions{1600, 1000, 1800}
			weight = pf*3.5 + 400
		}

		base := Transformer{
			PowerKVA:          p,
			SeriesKey:         SeriesHiTPlus,
			Series:            "hi-T Plus",
			ProductCode:       fmt.Sprintf("11/%dkVA-20/0.4kV-HTP", p),
			VoltagePrimaryV:   20000,
			VoltageSecondaryV: 400,
			UccPercent:        4.0,
			Connection:        "Dyn11",
			LossesNoLoadW:     po,
			LossesLoadW:       pk,
			EfficiencyClass:   "Ak",
			InsulationClass:   "F1-E2-C2",
			CostEstimate:      int(25000 + pf*85),
			Dimensions:        dims,
			WeightKg:          int(weight),
			ProtectionType:    "nudo",
			BarrierRequired:   true,
			Manufacturer:      "ABB",
			Description:       fmt.Sprintf("Cast resin transformer %d kVA hi-T Plus", p),
		}
		hit[p] = base

		rb := base
		rb.SeriesKey = SeriesResibloc
		rb.Series = "RESIBLOC"
		rb.ProductCode = fmt.Sprintf("11/%dkVA-20/0.4kV-RBC", p)
		rb.LossesNoLoadW = int(float64(po) * 0.85)
		rb.LossesLoadW = int(float64(pk) * 0.85)
		rb.EfficiencyClass = "Ak+"
		rb.CostEstimate = int(float64(base.CostEstimate) * 1.25)
		rb.Description = fmt.Sprintf("Vacuum cast resin transformer %d kVA RESIBLOC", p)
		resibloc[p] = rb

		oil := base
		oil.SeriesKey = SeriesONAN
		oil.Series = "ONAN Oil-immersed"
		oil.ProductCode = fmt.Sprintf("11/%dkVA-20/0.4kV-ONAN", p)
		oil.LossesNoLoadW = int(float64(po) * 0.80)
		oil.LossesLoadW = int(float64(pk) * 0.80)
		oil.EfficiencyClass = "Ao"
		oil.InsulationClass = "Tradizionale"
		oil.CostEstimate = int(float64(base.CostEstimate) * 0.75)
		oil.Dimensions = Dimensions{dims.LengthMM + 200, dims.WidthMM + 200, dims.HeightMM + 300}
		oil.WeightKg = int(float64(base.WeightKg)*1.5 + 500)
		oil.ProtectionType = "involucro_proprio"
		oil.BarrierRequired = false
		oil.Description = fmt.Sprintf("Mineral oil transformer %d kVA with metal tank", p)
		onan[p] = oil
	}

	return TransformerFamily{
		StandardPowers:   ladder,
		PrimaryVoltages:  []int{10000, 15000, 20000, 25000, 30000, 36000},
		SecondaryVoltage: []int{400, 690},
		series: map[TransformerSeries]map[int]Transformer{
			SeriesHiTPlus:  hit,
			SeriesResibloc: resibloc,
			SeriesONAN:     onan,
		},
	}
}
