package selector

import (
	"fmt"

	"Cabina/internal/catalog"
)

const (
	MainBreakerMargin   = 1.25
	FeederBreakerMargin = 1.25
	DefaultLVBreakingKA = 50.0

	// secondary voltage used for the transformer current
	lvSecondaryV = 415.0
	sqrt3        = 1.732

	tmaxLimitA = 800.0
)

type LVBreaker struct {
	Series           string             `json:"series"`
	Frame            string             `json:"frame"`
	ProductCode      string             `json:"product_code"`
	RatedCurrentA    float64            `json:"rated_current_a"`
	BreakingKA       float64            `json:"breaking_capacity_ka"`
	Type             string             `json:"type"`
	ProtectionUnit   string             `json:"protection_unit"`
	Dimensions       catalog.Dimensions `json:"dimensions"`
	WeightKg         float64            `json:"weight_kg"`
	CostEstimate     float64            `json:"cost_estimate"`
	SelectivityClass string             `json:"selectivity_class"`
	Applications     []string           `json:"applications"`
	Manufacturer     string             `json:"manufacturer"`
	Description      string             `json:"description"`
}

// LVBreaker picks an Emax 2 air circuit breaker for a current, skipping
// frames whose best breaking capacity is below breakingKA.
func (s *Selector) LVBreaker(currentA, breakingKA float64) (Selection[LVBreaker], error) {
	if err := positive("current_a", currentA); err != nil {
		return Selection[LVBreaker]{}, err
	}
	if err := nonNegative("breaking_ka", breakingKA); err != nil {
		return Selection[LVBreaker]{}, err
	}
	sel := newSelection[LVBreaker](currentA, 1)
	s.emax(&sel, breakingKA)
	return sel, nil
}

// LVMainBreaker sizes the main breaker on the transformer secondary current
// with a 1.25 margin.
func (s *Selector) LVMainBreaker(transformerKVA, breakingKA float64) (Selection[LVBreaker], error) {
	if err := positive("transformer_kva", transformerKVA); err != nil {
		return Selection[LVBreaker]{}, err
	}
	if err := nonNegative("breaking_ka", breakingKA); err != nil {
		return Selection[LVBreaker]{}, err
	}
	in := transformerKVA * 1000 / (lvSecondaryV * sqrt3)
	sel := newSelection[LVBreaker](in, MainBreakerMargin)
	s.emax(&sel, breakingKA)
	return sel, nil
}

// LVFeederBreaker sizes an outgoing breaker: Tmax moulded case below 800 A,
// Emax 2 above.
func (s *Selector) LVFeederBreaker(loadCurrentA float64) (Selection[LVBreaker], error) {
	if err := positive("load_current_a", loadCurrentA); err != nil {
		return Selection[LVBreaker]{}, err
	}
	sel := newSelection[LVBreaker](loadCurrentA, FeederBreakerMargin)
	if sel.Required >= tmaxLimitA {
		s.emax(&sel, DefaultLVBreakingKA)
		return sel, nil
	}

	tmax := s.cat.Tmax
	for _, f := range tmax.Frames {
		if a, ok := f.CurrentsA.Ceil(sel.Required); ok {
			sel.Item = lvBreaker(tmax, f, a, "PR221DS/P", "C")
			return sel, nil
		}
	}
	f := tmax.Largest()
	sel.Item = lvBreaker(tmax, f, f.CurrentsA.Max(), "PR221DS/P", "C")
	sel.fail("required current %s A exceeds Tmax range", catalog.FormatRating(round2(sel.Required)))
	return sel, nil
}

func (s *Selector) emax(sel *Selection[LVBreaker], breakingKA float64) {
	emax := s.cat.Emax
	for _, f := range emax.Frames {
		if f.MaxBreakingKA() < breakingKA {
			continue
		}
		if a, ok := f.CurrentsA.Ceil(sel.Required); ok {
			sel.Item = lvBreaker(emax, f, a, "PR331/P", "A")
			return
		}
	}

	f := emax.Largest()
	sel.Item = lvBreaker(emax, f, f.CurrentsA.Max(), "PR333/P", "A")
	if sel.Required > f.CurrentsA.Max() {
		sel.fail("required current %s A exceeds largest rating %s A",
			catalog.FormatRating(round2(sel.Required)), catalog.FormatRating(f.CurrentsA.Max()))
	}
	if f.MaxBreakingKA() < breakingKA {
		sel.fail("required breaking capacity %s kA exceeds %s kA",
			catalog.FormatRating(breakingKA), catalog.FormatRating(f.MaxBreakingKA()))
	}
}

func lvBreaker(series catalog.LVBreakerSeries, f catalog.LVBreakerFrame, currentA float64, unit, class string) LVBreaker {
	code, ok := f.ProductCodes[catalog.LVBreakerCodeKey(currentA)]
	if !ok {
		code = fmt.Sprintf("%s-%s-%sA", series.Series, f.Name, catalog.FormatRating(currentA))
	}
	apps := append([]string{}, f.Applications...)
	return LVBreaker{
		Series:           series.Series,
		Frame:            f.Name,
		ProductCode:      code,
		RatedCurrentA:    currentA,
		BreakingKA:       f.MaxBreakingKA(),
		Type:             series.Type,
		ProtectionUnit:   unit,
		Dimensions:       f.Dimensions,
		WeightKg:         f.WeightKg,
		CostEstimate:     series.CostBase + currentA*series.CostPerAmp,
		SelectivityClass: class,
		Applications:     apps,
		Manufacturer:     series.Manufacturer,
		Description:      series.Description,
	}
}
