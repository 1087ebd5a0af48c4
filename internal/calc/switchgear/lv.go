package switchgear

import (
	"fmt"
	"math"

	"Cabina/internal/calc/calcerr"
	"Cabina/internal/calc/loads"
	"Cabina/internal/calc/selectivity"
	"Cabina/internal/calc/selector"
	"Cabina/internal/catalog"
)

const (
	lvVoltageV            = 415.0
	accessoriesCostPerKVA = 15.0
)

type Utilization string

const (
	UtilizationOverload Utilization = "overload"
	UtilizationHigh     Utilization = "high"
	UtilizationLow      Utilization = "low"
	UtilizationOptimal  Utilization = "optimal"
)

// UtilizationStatus classifies the installed power usage in percent.
func UtilizationStatus(pct float64) Utilization {
	switch {
	case pct > 100:
		return UtilizationOverload
	case pct > 85:
		return UtilizationHigh
	case pct < 50:
		return UtilizationLow
	}
	return UtilizationOptimal
}

type Feeder struct {
	Name     string                                 `json:"name"`
	Category string                                 `json:"category"`
	PowerKW  float64                                `json:"power_kw"`
	CosPhi   float64                                `json:"cos_phi"`
	CurrentA float64                                `json:"current_a"`
	Priority string                                 `json:"priority"`
	Breaker  selector.Selection[selector.LVBreaker] `json:"breaker"`
	Switch   selector.Selection[selector.LVSwitch]  `json:"switch"`
}

type LVCosts struct {
	MainSwitch     float64 `json:"main_switch"`
	MainBreaker    float64 `json:"main_breaker"`
	FeederBreakers float64 `json:"feeder_breakers"`
	FeederSwitches float64 `json:"feeder_switches"`
	Accessories    float64 `json:"accessories"`
	Total          float64 `json:"total"`
}

type LVBoard struct {
	TransformerKVA    float64                                `json:"transformer_kva"`
	SecondaryCurrentA float64                                `json:"secondary_current_a"`
	MainSwitch        selector.Selection[selector.LVSwitch]  `json:"main_switch"`
	MainBreaker       selector.Selection[selector.LVBreaker] `json:"main_breaker"`
	Feeders           []Feeder                               `json:"feeders"`
	DistributedKW     float64                                `json:"distributed_kw"`
	LoadsKVA          float64                                `json:"loads_kva"`
	UtilizationPct    float64                                `json:"utilization_percent"`
	Utilization       Utilization                            `json:"utilization_status"`
	AverageCosPhi     float64                                `json:"cos_phi_average"`
	TmaxCount         int                                    `json:"tmax_count"`
	EmaxCount         int                                    `json:"emax_count"`
	Selectivity       selectivity.Result                     `json:"selectivity"`
	Costs             LVCosts                                `json:"costs"`
	Compliant         bool                                   `json:"compliant"`
	Notes             []string                               `json:"notes"`
}

// DesignLV sizes the main switch and breaker on the installed power and one
// breaker plus isolator per load. Loads are taken at power x quantity x Ku,
// without the coincidence factor, on the 415 V secondary.
func (d *Designer) DesignLV(transformerKVA float64, lds []loads.Load) (LVBoard, error) {
	if err := positive("transformer_kva", transformerKVA); err != nil {
		return LVBoard{}, err
	}
	if len(lds) == 0 {
		return LVBoard{}, calcerr.Invalid("loads", "at least one load is required")
	}

	b := LVBoard{
		TransformerKVA:    transformerKVA,
		SecondaryCurrentA: transformerKVA * 1000 / (lvVoltageV * sqrt3),
		Feeders:           make([]Feeder, 0, len(lds)),
		Notes:             []string{},
	}
	var err error
	if b.MainSwitch, err = d.sel.LVSwitch(b.SecondaryCurrentA, true); err != nil {
		return LVBoard{}, err
	}
	if b.MainBreaker, err = d.sel.LVMainBreaker(transformerKVA, selector.DefaultLVBreakingKA); err != nil {
		return LVBoard{}, err
	}

	var weighted float64
	downstream := make([]selectivity.Breaker, 0, len(lds))
	for i, l := range lds {
		f, err := d.feeder(l)
		if err != nil {
			return LVBoard{}, fmt.Errorf("load %d (%s): %w", i, l.Name, err)
		}
		b.Feeders = append(b.Feeders, f)
		b.DistributedKW += f.PowerKW
		b.LoadsKVA += f.PowerKW / f.CosPhi
		weighted += f.CosPhi * f.PowerKW
		b.Costs.FeederBreakers += f.Breaker.Item.CostEstimate
		b.Costs.FeederSwitches += float64(f.Switch.Item.CostEstimate)
		if f.Breaker.Item.Series == d.sel.Catalog().Emax.Series {
			b.EmaxCount++
		} else {
			b.TmaxCount++
		}
		downstream = append(downstream, selectivity.Breaker{Series: f.Breaker.Item.Series, Frame: f.Breaker.Item.Frame})
	}

	b.UtilizationPct = b.LoadsKVA / transformerKVA * 100
	b.Utilization = UtilizationStatus(b.UtilizationPct)
	b.AverageCosPhi = weighted / b.DistributedKW
	b.Selectivity = d.checker.Verify(
		selectivity.Breaker{Series: b.MainBreaker.Item.Series, Frame: b.MainBreaker.Item.Frame},
		downstream,
	)

	b.Costs.MainSwitch = float64(b.MainSwitch.Item.CostEstimate)
	b.Costs.MainBreaker = b.MainBreaker.Item.CostEstimate
	b.Costs.Accessories = float64(int(transformerKVA * accessoriesCostPerKVA))
	b.Costs.Total = b.Costs.MainSwitch + b.Costs.MainBreaker + b.Costs.FeederBreakers +
		b.Costs.FeederSwitches + b.Costs.Accessories

	b.Compliant = b.MainSwitch.Compliant && b.MainBreaker.Compliant && b.Selectivity.Selective &&
		b.Utilization != UtilizationOverload
	if b.Utilization == UtilizationOverload {
		b.Notes = append(b.Notes, fmt.Sprintf("transformer overloaded by %.1f kVA", b.LoadsKVA-transformerKVA))
	}
	for _, f := range b.Feeders {
		if !f.Breaker.Compliant || !f.Switch.Compliant {
			b.Compliant = false
			b.Notes = append(b.Notes, "feeder "+f.Name+" has a non-compliant selection")
		}
	}
	b.Notes = append(b.Notes, b.Selectivity.Issues...)
	return b, nil
}

func (d *Designer) feeder(l loads.Load) (Feeder, error) {
	if err := l.Validate(); err != nil {
		return Feeder{}, err
	}
	kw := l.PowerKW * float64(l.Quantity) * l.Ku
	f := Feeder{
		Name:     l.Name,
		Category: l.Category,
		PowerKW:  kw,
		CosPhi:   l.CosPhi,
		CurrentA: kw * 1000 / (sqrt3 * lvVoltageV * l.CosPhi),
		Priority: priority(kw),
	}
	var err error
	if f.Breaker, err = d.sel.LVFeederBreaker(f.CurrentA); err != nil {
		return Feeder{}, err
	}
	if f.Switch, err = d.sel.LVSwitch(f.CurrentA, false); err != nil {
		return Feeder{}, err
	}
	return f, nil
}

func priority(kw float64) string {
	switch {
	case kw > 50:
		return "high"
	case kw > 20:
		return "medium"
	}
	return "low"
}

// TemplateLoads turns the catalog's typical distribution for the installed
// power into loads, with the typical Ku and power factor of each load type.
func (d *Designer) TemplateLoads(transformerKVA float64) []loads.Load {
	tpl := d.sel.Catalog().TemplateFor(transformerKVA)
	out := make([]loads.Load, 0, len(tpl.Feeders))
	for _, f := range tpl.Feeders {
		fac := catalog.Factors(f.Type)
		out = append(out, loads.Load{
			Name:     f.Name,
			Category: string(f.Type),
			PowerKW:  math.Round(f.PowerKW*10) / 10,
			Quantity: 1,
			Ku:       fac.Ku,
			CosPhi:   fac.CosPhi,
			VoltageV: 400,
			Phases:   3,
		})
	}
	return out
}
