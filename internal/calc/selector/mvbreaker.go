package selector

import (
	"fmt"

	"Cabina/internal/catalog"
)

type MVBreaker struct {
	Key               string             `json:"key"`
	Series            string             `json:"series"`
	ProductCode       string             `json:"product_code"`
	RatedCurrentA     float64            `json:"rated_current_a"`
	RatedVoltageKV    float64            `json:"rated_voltage_kv"`
	BreakingKA        float64            `json:"breaking_capacity_ka"`
	MakingKA          float64            `json:"making_capacity_ka"`
	Insulation        string             `json:"insulation_medium"`
	Dimensions        catalog.Dimensions `json:"dimensions"`
	CostEstimate      float64            `json:"cost_estimate"`
	ArcClassification string             `json:"arc_classification"`
	Manufacturer      string             `json:"manufacturer"`
	Description       string             `json:"description"`
}

// MVBreaker picks a breaker for the network. Vacuum units cover indoor
// installations up to 24 kV, SF6 everything else. Current, breaking
// capacity and voltage are each resolved on their own ladder.
func (s *Selector) MVBreaker(currentA, voltageKV, breakingKA float64, indoor bool) (Selection[MVBreaker], error) {
	if err := positive("current_a", currentA); err != nil {
		return Selection[MVBreaker]{}, err
	}
	if err := positive("voltage_kv", voltageKV); err != nil {
		return Selection[MVBreaker]{}, err
	}
	if err := nonNegative("breaking_ka", breakingKA); err != nil {
		return Selection[MVBreaker]{}, err
	}

	key := catalog.MVSF6Indoor
	if indoor && voltageKV <= 24 {
		key = catalog.MVVacuumIndoor
	}
	series, ok := s.cat.MVBreaker(key)
	if !ok {
		return Selection[MVBreaker]{}, fmt.Errorf("catalog has no MV breaker series %s", key)
	}

	sel := newSelection[MVBreaker](currentA, 1)
	current := axis(&sel, series.CurrentsA, currentA, "current", "A")
	breaking := axis(&sel, series.BreakingKA, breakingKA, "breaking capacity", "kA")
	voltage := axis(&sel, series.VoltagesKV, voltageKV, "voltage", "kV")

	code, ok := series.ProductCodes[catalog.MVBreakerCodeKey(voltage, current)]
	if !ok {
		code = fmt.Sprintf("%s-%skV-%sA", series.Series, catalog.FormatRating(voltage), catalog.FormatRating(current))
	}

	sel.Item = MVBreaker{
		Key:               series.Key,
		Series:            series.Series,
		ProductCode:       code,
		RatedCurrentA:     current,
		RatedVoltageKV:    voltage,
		BreakingKA:        breaking,
		MakingKA:          breaking * 2.5,
		Insulation:        series.Insulation,
		Dimensions:        catalog.Dimensions{LengthMM: 400, WidthMM: 600, HeightMM: 300},
		CostEstimate:      series.CostBase + current*series.CostPerAmp,
		ArcClassification: "IAC AFLR 25kA 1s",
		Manufacturer:      series.Manufacturer,
		Description:       series.Description,
	}
	return sel, nil
}
