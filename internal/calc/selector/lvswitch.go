package selector

import (
	"fmt"

	"Cabina/internal/catalog"
)

const SwitchMargin = 1.1

type LVSwitch struct {
	Series        string             `json:"series"`
	ProductCode   string             `json:"product_code"`
	RatedCurrentA float64            `json:"rated_current_a"`
	RatedVoltageV int                `json:"rated_voltage_v"`
	Type          string             `json:"type"`
	Poles         int                `json:"poles"`
	Dimensions    catalog.Dimensions `json:"dimensions"`
	WeightKg      float64            `json:"weight_kg"`
	CostEstimate  int                `json:"cost_estimate"`
	BreakingKA    float64            `json:"breaking_capacity_ka"`
	Applications  []string           `json:"applications"`
	Standards     []string           `json:"standards"`
	Manufacturer  string             `json:"manufacturer"`
	Description   string             `json:"description"`
}

// LVSwitch picks an OS load break switch or an OTM isolator.
func (s *Selector) LVSwitch(currentA float64, loadBreak bool) (Selection[LVSwitch], error) {
	if err := positive("current_a", currentA); err != nil {
		return Selection[LVSwitch]{}, err
	}
	series := s.cat.LVSwitch(loadBreak)
	sel := newSelection[LVSwitch](currentA, SwitchMargin)
	a := axis(&sel, series.CurrentsA, sel.Required, "required current", "A")

	code, ok := series.ProductCodes[catalog.LVBreakerCodeKey(a)]
	if !ok {
		code = fmt.Sprintf("%s-%sA", series.Series, catalog.FormatRating(a))
	}
	sel.Item = LVSwitch{
		Series:        series.Series,
		ProductCode:   code,
		RatedCurrentA: a,
		RatedVoltageV: series.VoltageV,
		Type:          series.Type,
		Poles:         4,
		Dimensions:    catalog.Dimensions{LengthMM: 150, WidthMM: 200, HeightMM: 120},
		WeightKg:      a*0.01 + 2,
		CostEstimate:  int(series.CostBase + a*series.CostPerAmp),
		BreakingKA:    series.BreakingKA,
		Applications:  append([]string{}, series.Applications...),
		Standards:     append([]string{}, series.Standards...),
		Manufacturer:  series.Manufacturer,
		Description:   series.Description,
	}
	return sel, nil
}
