package wizard

import (
	"slices"

	"Cabina/internal/calc/calcerr"
	"Cabina/internal/calc/earthing"
	"Cabina/internal/calc/loads"
	"Cabina/internal/calc/selectivity"
	"Cabina/internal/calc/selector"
	"Cabina/internal/calc/switchgear"
	"Cabina/internal/catalog"
)

const (
	sqrt3 = 1.732
	// network current margin over the installed primary current
	networkMargin = 1.25
)

type Pipeline struct {
	sel      *selector.Selector
	designer *switchgear.Designer
}

func New(cat *catalog.Catalog) *Pipeline {
	sel := selector.New(cat)
	return &Pipeline{sel: sel, designer: switchgear.New(sel, selectivity.New(cat))}
}

// Distributor validates and records the network data (step 1).
func (p *Pipeline) Distributor(s State, d Distributor) (State, error) {
	switch {
	case d.VoltageKV < 10 || d.VoltageKV > 36:
		return State{}, calcerr.Invalid("voltage_kv", "must be between 10 and 36 kV, got %v", d.VoltageKV)
	case d.IccKA < 5 || d.IccKA > 50:
		return State{}, calcerr.Invalid("icc_3phase_ka", "must be between 5 and 50 kA, got %v", d.IccKA)
	case d.NeutralState == "":
		return State{}, calcerr.Invalid("neutral_state", "is required")
	case d.NeutralState != NeutralCompensated && d.NeutralState != NeutralIsolated && d.NeutralState != NeutralEarthed:
		return State{}, calcerr.Invalid("neutral_state", "unknown value %q", d.NeutralState)
	case d.EarthFaultCurrentA <= 0:
		return State{}, calcerr.Invalid("earth_fault_current_a", "must be positive, got %v", d.EarthFaultCurrentA)
	case d.EarthFaultTimeS < 0:
		return State{}, calcerr.Invalid("earth_fault_time_s", "must not be negative, got %v", d.EarthFaultTimeS)
	}
	next, err := s.advance(StepDistributor)
	if err != nil {
		return State{}, err
	}
	next.Distributor = d
	return next, nil
}

// Loads aggregates the declared loads (step 2).
func (p *Pipeline) Loads(s State, in []loads.Load) (State, error) {
	if len(in) == 0 {
		return State{}, calcerr.Invalid("loads", "at least one load is required")
	}
	next, err := s.advance(StepLoads)
	if err != nil {
		return State{}, err
	}
	res, err := loads.Aggregate(in)
	if err != nil {
		return State{}, err
	}
	if res.TotalKVA <= 0 {
		return State{}, calcerr.Invalid("loads", "total apparent power is zero")
	}
	next.Loads = slices.Clone(in)
	next.LoadResult = res
	return next, nil
}

type TransformerChoice struct {
	Double *bool `json:"double"` // nil follows the recommendation
}

// Transformers sizes the bank on the aggregated apparent power (step 3).
func (p *Pipeline) Transformers(s State, c TransformerChoice) (State, error) {
	next, err := s.advance(StepTransformers)
	if err != nil {
		return State{}, err
	}
	total := s.LoadResult.TotalKVA
	rec := selector.RecommendTransformerConfig(total, next.Params.Continuity)
	double := rec.Double
	if c.Double != nil {
		double = *c.Double
	}
	bank, err := p.sel.TransformerBank(total, double, next.Params.TransformerSeries, next.Params.Continuity)
	if err != nil {
		return State{}, err
	}
	next.Transformers = bank
	if !bank.Concordant {
		if double {
			next.warn(StepTransformers, "two transformers chosen against a single unit recommendation: %s", rec.Reason)
		} else {
			next.warn(StepTransformers, "single transformer chosen against a redundancy recommendation: %s", rec.Reason)
		}
	}
	if !bank.Unit.Compliant {
		next.warnNotes(StepTransformers, bank.Unit.Notes)
	}
	return next, nil
}

type EarthSwitchChoice struct {
	Kind selector.EarthSwitchKind `json:"kind"` // empty follows the recommendation
}

// EarthSwitch designs the delivery room earthing switch (step 4).
func (p *Pipeline) EarthSwitch(s State, c EarthSwitchChoice) (State, error) {
	next, err := s.advance(StepEarthSwitch)
	if err != nil {
		return State{}, err
	}
	kv := next.Distributor.VoltageKV
	maxI := next.primaryCurrent()
	sys, err := p.sel.EarthSwitchSystem(kv, maxI, next.Params.Continuity)
	if err != nil {
		return State{}, err
	}
	if c.Kind == selector.EarthSwitchNone {
		return State{}, calcerr.Invalid("kind", "an earthing device is mandatory on the delivery side")
	}
	if c.Kind != "" && c.Kind != sys.RecommendedKind {
		sw, err := p.sel.EarthSwitch(kv, maxI, c.Kind)
		if err != nil {
			return State{}, err
		}
		sys.Switch = sw
		sys.Guide = selector.GuideFor(sw.Item)
		next.warn(StepEarthSwitch, "%s earthing chosen instead of recommended %s", c.Kind, sys.RecommendedKind)
	}
	next.EarthSwitch = sys
	if !sys.Switch.Compliant {
		next.warnNotes(StepEarthSwitch, sys.Switch.Notes)
	}
	return next, nil
}

// MVSwitchgear composes the MV panel (step 5).
func (p *Pipeline) MVSwitchgear(s State) (State, error) {
	next, err := s.advance(StepMVSwitchgear)
	if err != nil {
		return State{}, err
	}
	bank := next.Transformers
	feeds := make([]switchgear.TransformerFeed, bank.Count)
	for i := range feeds {
		feeds[i] = switchgear.TransformerFeed{PowerKVA: float64(bank.Unit.Item.PowerKVA), PrimaryKV: next.Distributor.VoltageKV}
	}
	panel, err := p.designer.DesignMV(switchgear.Network{
		VoltageKV:   next.Distributor.VoltageKV,
		MaxCurrentA: next.primaryCurrent() * networkMargin,
		BreakingKA:  next.Distributor.IccKA,
	}, feeds)
	if err != nil {
		return State{}, err
	}
	next.MV = panel
	next.warnNotes(StepMVSwitchgear, panel.Notes)
	return next, nil
}

type ProtectionChoice struct {
	DG          *RelaySettings `json:"dg"`
	Transformer *RelaySettings `json:"transformer"`
}

// Protection checks the relay settings against CEI 0-16 (step 6).
func (p *Pipeline) Protection(s State, c ProtectionChoice) (State, error) {
	next, err := s.advance(StepProtection)
	if err != nil {
		return State{}, err
	}
	dg := DefaultDGSettings(next.Distributor.EarthFaultCurrentA)
	if c.DG != nil {
		dg = *c.DG
	}
	tr := DefaultTransformerSettings()
	if c.Transformer != nil {
		tr = *c.Transformer
	}
	next.Protection = CheckProtection(dg, tr, next.Distributor.EarthFaultCurrentA)
	next.warnNotes(StepProtection, next.Protection.Issues)
	if next.Params.CEI016Required && len(next.MV.Units) > 0 && !next.MV.Units[0].Relay.CEI016 {
		next.warn(StepProtection, "DG relay %s is not CEI 0-16 certified", next.MV.Units[0].Relay.Series)
	}
	return next, nil
}

// LVSwitchgear designs the LV board on the installed power (step 7).
func (p *Pipeline) LVSwitchgear(s State) (State, error) {
	next, err := s.advance(StepLVSwitchgear)
	if err != nil {
		return State{}, err
	}
	board, err := p.designer.DesignLV(next.Transformers.InstalledKVA, next.Loads)
	if err != nil {
		return State{}, err
	}
	next.LV = board
	next.warnNotes(StepLVSwitchgear, board.Notes)
	next.warnNotes(StepLVSwitchgear, board.Selectivity.Recommendations)
	return next, nil
}

type EarthingInput struct {
	Soil              earthing.Soil `json:"soil"`
	LengthM           float64       `json:"length_m"`
	WidthM            float64       `json:"width_m"`
	MaxResistanceOhm  float64       `json:"max_earth_resistance_ohm"`
	MaxTouchVoltageV  float64       `json:"max_touch_voltage_v"`
	ConductorMaterial string        `json:"conductor_material"`
}

// Earthing sizes the earth electrode for the distributor's earth fault
// (step 8).
func (p *Pipeline) Earthing(s State, in EarthingInput) (State, error) {
	next, err := s.advance(StepEarthing)
	if err != nil {
		return State{}, err
	}
	req := earthing.Requirements{
		FaultCurrentA:     next.Distributor.EarthFaultCurrentA,
		FaultDurationS:    next.Distributor.EarthFaultTimeS,
		MaxResistanceOhm:  in.MaxResistanceOhm,
		MaxTouchVoltageV:  in.MaxTouchVoltageV,
		ConductorMaterial: in.ConductorMaterial,
	}
	res, err := earthing.DesignForEnclosure(in.Soil, req, in.LengthM, in.WidthM)
	if err != nil {
		return State{}, err
	}
	items := earthing.Materials(res)
	next.Earthing = EarthingDesign{
		Design:         res,
		Materials:      items,
		MaterialsTotal: earthing.MaterialsTotal(items),
		LengthM:        in.LengthM,
		WidthM:         in.WidthM,
	}
	if !res.Compliant {
		next.warn(StepEarthing, "earthing %s reaches %.3f ohm against %.3f ohm required", res.Configuration, res.ResistanceOhm, res.RequiredResistanceOhm)
		next.warnNotes(StepEarthing, res.Notes)
	}
	return next, nil
}

// primaryCurrent is the MV current drawn by the installed transformers.
func (s State) primaryCurrent() float64 {
	return s.Transformers.InstalledKVA * 1000 / (sqrt3 * s.Distributor.VoltageKV * 1000)
}

func (s *State) warnNotes(step Step, notes []string) {
	for _, n := range notes {
		s.warn(step, "%s", n)
	}
}
