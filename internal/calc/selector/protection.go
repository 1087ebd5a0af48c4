package selector

import (
	"Cabina/internal/calc/calcerr"
	"Cabina/internal/catalog"
)

// ProtectionRelay returns the relay model for an application label.
func (s *Selector) ProtectionRelay(application string) catalog.ProtectionRelay {
	r := s.cat.RelayFor(application)
	r.Functions = append([]string{}, r.Functions...)
	r.Applications = append([]string{}, r.Applications...)
	r.Communication = append([]string{}, r.Communication...)
	return r
}

type CurrentTransformer struct {
	PrimaryA     int     `json:"primary_a"`
	SecondaryA   int     `json:"secondary_a"`
	Ratio        string  `json:"ratio"`
	ProductCode  string  `json:"product_code"`
	CostEstimate float64 `json:"cost_estimate"`
}

// CurrentTransformer picks the standard CT primary for a current. A zero
// margin means none.
func (s *Selector) CurrentTransformer(primaryA, margin float64) (Selection[CurrentTransformer], error) {
	if err := positive("primary_a", primaryA); err != nil {
		return Selection[CurrentTransformer]{}, err
	}
	margin, err := marginOr(margin, 1)
	if err != nil {
		return Selection[CurrentTransformer]{}, err
	}
	sel := newSelection[CurrentTransformer](primaryA, margin)
	p := int(axis(&sel, s.cat.CTs.StandardRatios, sel.Required, "primary current", "A"))
	code, cost := s.cat.CTs.CT(p)
	sel.Item = CurrentTransformer{
		PrimaryA:     p,
		SecondaryA:   5,
		Ratio:        catalog.FormatRating(float64(p)) + "/5A",
		ProductCode:  code,
		CostEstimate: cost,
	}
	return sel, nil
}

// UniSecUnit picks the switchgear cubicle of a type for a current.
func (s *Selector) UniSecUnit(t catalog.UnitType, currentA float64) (Selection[catalog.UniSecUnit], error) {
	if err := nonNegative("current_a", currentA); err != nil {
		return Selection[catalog.UniSecUnit]{}, err
	}
	u, err := s.cat.UniSecFor(t, currentA)
	if err != nil {
		return Selection[catalog.UniSecUnit]{}, calcerr.Invalid("unit_type", "%v", err)
	}
	sel := newSelection[catalog.UniSecUnit](currentA, 1)
	sel.Item = u
	if currentA > float64(u.MaxCurrentA) {
		sel.fail("current %s A exceeds unit %s rating %d A", catalog.FormatRating(round2(currentA)), u.Key, u.MaxCurrentA)
	}
	return sel, nil
}
