package selector

import (
	"Cabina/internal/calc/calcerr"
	"Cabina/internal/catalog"
)

const DefaultTransformerMargin = 1.15

// Transformer picks the standard power for a load. A zero margin means the
// default 1.15; an unknown series falls back to hi-T Plus.
func (s *Selector) Transformer(kva float64, series catalog.TransformerSeries, margin float64) (Selection[catalog.Transformer], error) {
	if err := positive("kva", kva); err != nil {
		return Selection[catalog.Transformer]{}, err
	}
	margin, err := marginOr(margin, DefaultTransformerMargin)
	if err != nil {
		return Selection[catalog.Transformer]{}, err
	}

	sel := newSelection[catalog.Transformer](kva, margin)
	if series == "" {
		series = catalog.SeriesHiTPlus
	}
	if !s.cat.Transformers.HasSeries(series) {
		sel.Notes = append(sel.Notes, "unknown series "+string(series)+", using hi-T Plus")
		series = catalog.SeriesHiTPlus
	}
	power := axis(&sel, s.cat.Transformers.StandardPowers, sel.Required, "required power", "kVA")
	sel.Item, _ = s.cat.Transformers.Lookup(series, int(power))
	return sel, nil
}

type Continuity string

const (
	ContinuityNormal     Continuity = "normale"
	ContinuityPrivileged Continuity = "privilegiata"
	ContinuityEssential  Continuity = "essenziale"
)

func (c Continuity) Valid() bool {
	switch c {
	case ContinuityNormal, ContinuityPrivileged, ContinuityEssential:
		return true
	}
	return false
}

type Recommendation struct {
	Double bool   `json:"double"`
	Reason string `json:"reason"`
}

// RecommendTransformerConfig decides between one transformer and two in
// parallel. Service continuity dominates, then technical and economic
// power thresholds.
func RecommendTransformerConfig(totalKVA float64, continuity Continuity) Recommendation {
	switch {
	case continuity == ContinuityEssential:
		return Recommendation{true, "essential service requires redundancy"}
	case totalKVA > 1200:
		return Recommendation{true, "above 1200 kVA a single transformer reaches its technical limits"}
	case totalKVA < 300:
		return Recommendation{false, "below 300 kVA a single transformer is cheaper"}
	case continuity == ContinuityPrivileged && totalKVA > 500:
		return Recommendation{true, "privileged service at medium power: redundancy pays off"}
	case continuity == ContinuityPrivileged:
		return Recommendation{false, "contained power: a single unit is acceptable for privileged service"}
	case totalKVA > 800:
		return Recommendation{true, "high power: better part-load efficiency with two units"}
	case totalKVA > 500:
		return Recommendation{false, "economic band: a single unit is convenient for normal service"}
	default:
		return Recommendation{false, "low power: a single unit is always convenient"}
	}
}

type TransformerBank struct {
	Count          int                            `json:"count"`
	Unit           Selection[catalog.Transformer] `json:"unit"`
	TotalKVA       float64                        `json:"total_kva"`
	InstalledKVA   float64                        `json:"installed_kva"`
	LoadFactor     float64                        `json:"load_factor"`
	LossesNoLoadW  int                            `json:"losses_no_load_w"`
	LossesLoadW    int                            `json:"losses_load_w"`
	TotalCost      int                            `json:"total_cost"`
	Recommendation Recommendation                 `json:"recommendation"`
	Concordant     bool                           `json:"concordant"`
}

// TransformerBank sizes one or two transformers for the total load. With two
// units each one is sized for half of it.
func (s *Selector) TransformerBank(totalKVA float64, double bool, series catalog.TransformerSeries, continuity Continuity) (TransformerBank, error) {
	if err := positive("total_kva", totalKVA); err != nil {
		return TransformerBank{}, err
	}
	if continuity == "" {
		continuity = ContinuityNormal
	}
	if !continuity.Valid() {
		return TransformerBank{}, calcerr.Invalid("service_continuity", "unknown value %q", continuity)
	}

	n := 1
	if double {
		n = 2
	}
	unit, err := s.Transformer(totalKVA/float64(n), series, 0)
	if err != nil {
		return TransformerBank{}, err
	}
	installed := float64(unit.Item.PowerKVA * n)
	rec := RecommendTransformerConfig(totalKVA, continuity)
	return TransformerBank{
		Count:          n,
		Unit:           unit,
		TotalKVA:       totalKVA,
		InstalledKVA:   installed,
		LoadFactor:     totalKVA / installed,
		LossesNoLoadW:  unit.Item.LossesNoLoadW * n,
		LossesLoadW:    unit.Item.LossesLoadW * n,
		TotalCost:      unit.Item.CostEstimate * n,
		Recommendation: rec,
		Concordant:     rec.Double == double,
	}, nil
}
