package selector

import (
	"fmt"
	"math"
	"sort"

	"Cabina/internal/calc/calcerr"
	"Cabina/internal/catalog"
)

type EarthSwitchKind string

const (
	EarthSwitchNone   EarthSwitchKind = "none"
	EarthSwitchFixed  EarthSwitchKind = "fixed"
	EarthSwitchMobile EarthSwitchKind = "mobile"
)

type EarthSwitch struct {
	Kind                     EarthSwitchKind `json:"kind"`
	Series                   string          `json:"series"`
	Position                 string          `json:"position"`
	RatedVoltageKV           float64         `json:"rated_voltage_kv"`
	RatedCurrentA            float64         `json:"rated_current_a"`
	ShortCircuitKA           float64         `json:"short_circuit_ka"`
	Poles                    int             `json:"poles"`
	KeyInterlock             bool            `json:"key_interlock"`
	WarningSign              bool            `json:"warning_sign"`
	CEI1127                  bool            `json:"cei_11_27_compliant"`
	ProductCode              string          `json:"product_code"`
	CostEstimate             int             `json:"cost_estimate"`
	InstallationRequirements []string        `json:"installation_requirements"`
	IECStandard              string          `json:"iec_standard"`
	IPRating                 string          `json:"ip_rating"`
}

// ShortCircuitEstimate derives the short-circuit rating from the maximum
// network current when no measured value is available: 40 kA per kA of
// load current, clamped to 25..100 kA.
func ShortCircuitEstimate(maxCurrentA float64) float64 {
	return math.Max(25, math.Min(100, maxCurrentA/1000*40))
}

// EarthSwitch designs a fixed earthing switch (cheapest suitable of EK6
// and OJWN) or a set of CEI EN 61230 mobile earthing devices.
func (s *Selector) EarthSwitch(voltageKV, maxCurrentA float64, kind EarthSwitchKind) (Selection[EarthSwitch], error) {
	if err := positive("voltage_kv", voltageKV); err != nil {
		return Selection[EarthSwitch]{}, err
	}
	if err := positive("max_current_a", maxCurrentA); err != nil {
		return Selection[EarthSwitch]{}, err
	}
	switch kind {
	case EarthSwitchFixed, "":
		return s.fixedEarthSwitch(voltageKV, maxCurrentA)
	case EarthSwitchMobile:
		return s.mobileEarth(voltageKV, maxCurrentA), nil
	default:
		return Selection[EarthSwitch]{}, calcerr.Invalid("kind", "unknown earth switch kind %q", kind)
	}
}

func (s *Selector) fixedEarthSwitch(voltageKV, maxCurrentA float64) (Selection[EarthSwitch], error) {
	sc := ShortCircuitEstimate(maxCurrentA)
	series, err := s.optimalEarthSeries(voltageKV, sc)
	if err != nil {
		return Selection[EarthSwitch]{}, err
	}

	sel := newSelection[EarthSwitch](sc, 1)
	v := axis(&sel, series.VoltagesKV, voltageKV, "voltage", "kV")
	cc := axis(&sel, series.ShortCircuitKA, sc, "short-circuit current", "kA")
	normal := axis(&sel, series.NormalCurrentsA, maxCurrentA, "normal current", "A")

	code, ok := series.ProductCodes[catalog.EarthSwitchCodeKey(v, cc)]
	if !ok {
		if series.FaultMaking {
			code = fmt.Sprintf("%s %s/%d", series.Key, catalog.FormatRating(v), int(cc))
		} else {
			code = fmt.Sprintf("%s-%s-%d", series.Key, catalog.FormatRating(v), int(cc))
		}
	}

	sel.Item = EarthSwitch{
		Kind:                     EarthSwitchFixed,
		Series:                   series.Series,
		Position:                 "delivery_room",
		RatedVoltageKV:           v,
		RatedCurrentA:            normal,
		ShortCircuitKA:           cc,
		Poles:                    3,
		KeyInterlock:             true,
		WarningSign:              true,
		CEI1127:                  true,
		ProductCode:              code,
		CostEstimate:             int(series.CostBase + cc*series.CostPerKA),
		InstallationRequirements: append([]string{}, series.InstallationRequirements...),
		IECStandard:              series.IECStandard,
		IPRating:                 series.IPRating,
	}
	return sel, nil
}

// optimalEarthSeries returns the cheapest series rated for the voltage and
// short-circuit current. Ties go to the fault-making series. With no
// suitable series EK6 is used.
func (s *Selector) optimalEarthSeries(voltageKV, sc float64) (catalog.EarthSwitchSeries, error) {
	type candidate struct {
		series catalog.EarthSwitchSeries
		cost   float64
	}
	var suitable []candidate
	var ek6 *catalog.EarthSwitchSeries
	for i, es := range s.cat.EarthSwitches {
		if es.Key == "EK6" {
			ek6 = &s.cat.EarthSwitches[i]
		}
		if voltageKV <= es.VoltagesKV.Max() && sc <= es.ShortCircuitKA.Max() {
			suitable = append(suitable, candidate{es, es.CostBase + sc*es.CostPerKA})
		}
	}
	if len(suitable) > 0 {
		sort.SliceStable(suitable, func(i, j int) bool {
			if suitable[i].cost != suitable[j].cost {
				return suitable[i].cost < suitable[j].cost
			}
			return suitable[i].series.FaultMaking && !suitable[j].series.FaultMaking
		})
		return suitable[0].series, nil
	}
	if ek6 == nil {
		return catalog.EarthSwitchSeries{}, fmt.Errorf("catalog has no EK6 earthing switch series")
	}
	return *ek6, nil
}

func (s *Selector) mobileEarth(voltageKV, maxCurrentA float64) Selection[EarthSwitch] {
	m := s.cat.MobileEarth
	sc := math.Max(25, maxCurrentA/1000*40)
	need := math.Max(m.ShortCircuitA[0], sc*1000)

	sel := newSelection[EarthSwitch](sc, 1)
	v := axis(&sel, m.VoltagesKV, voltageKV, "voltage", "kV")
	cc := axis(&sel, m.ShortCircuitA, need, "short-circuit current", "A")

	sel.Item = EarthSwitch{
		Kind:                     EarthSwitchMobile,
		Series:                   m.Series,
		Position:                 "cable_termination",
		RatedVoltageKV:           v,
		RatedCurrentA:            cc,
		ShortCircuitKA:           sc,
		Poles:                    3,
		WarningSign:              true,
		CEI1127:                  true,
		ProductCode:              fmt.Sprintf("EN61230-%dkV-%dA", int(v), int(cc)),
		CostEstimate:             int(m.CostBase + m.CostPerSet),
		InstallationRequirements: append([]string{}, m.InstallationRequirements...),
		IECStandard:              "IEC 61230",
		IPRating:                 "IP54",
	}
	return sel
}

type InstallationGuide struct {
	Location     string   `json:"location"`
	Position     string   `json:"position,omitempty"`
	Interlocks   string   `json:"interlocks,omitempty"`
	Signage      string   `json:"signage,omitempty"`
	Testing      string   `json:"testing,omitempty"`
	Requirements []string `json:"requirements"`
	Standards    []string `json:"standards"`
}

type EarthSwitchSystem struct {
	Switch          Selection[EarthSwitch] `json:"switch"`
	RecommendedKind EarthSwitchKind        `json:"recommended_kind"`
	Reason          string                 `json:"reason"`
	Guide           InstallationGuide      `json:"installation_guide"`
}

// EarthSwitchSystem recommends and designs the earthing switch for the
// delivery room. Permanent installations always get a fixed switch; the
// reason depends on service continuity and voltage.
func (s *Selector) EarthSwitchSystem(voltageKV, maxCurrentA float64, continuity Continuity) (EarthSwitchSystem, error) {
	var reason string
	switch {
	case continuity == ContinuityEssential || continuity == ContinuityPrivileged:
		reason = "critical service requires a reliable fixed earthing switch"
	case voltageKV >= 24:
		reason = "high voltage requires a fixed earthing switch for safety"
	default:
		reason = "fixed earthing switch recommended for permanent installations"
	}
	sel, err := s.EarthSwitch(voltageKV, maxCurrentA, EarthSwitchFixed)
	if err != nil {
		return EarthSwitchSystem{}, err
	}
	return EarthSwitchSystem{
		Switch:          sel,
		RecommendedKind: EarthSwitchFixed,
		Reason:          reason,
		Guide:           GuideFor(sel.Item),
	}, nil
}

// GuideFor returns the installation guide for a designed earth switch.
func GuideFor(es EarthSwitch) InstallationGuide {
	if es.Kind == EarthSwitchMobile {
		return InstallationGuide{
			Location:     "Attachment points on the cable terminations",
			Requirements: append([]string{}, es.InstallationRequirements...),
			Standards:    []string{"CEI EN 61230", "IEC 61230", "CEI 11-27"},
		}
	}
	return InstallationGuide{
		Location:     "Delivery room separated from the MV switchgear",
		Position:     "Immediately downstream of the distributor cable terminations",
		Interlocks:   "Distributor key interlock mandatory per CEI 11-27",
		Signage:      "OPERATE ONLY AFTER DISTRIBUTOR INTERVENTION",
		Testing:      "Interlock verification with the distributor per CEI 11-27",
		Requirements: append([]string{}, es.InstallationRequirements...),
		Standards:    []string{"IEC 62271-102", "CEI 11-27", "CEI 11-1"},
	}
}
