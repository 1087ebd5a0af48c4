// Package wizard threads a substation project through the design steps.
// A State is never modified in place: every step returns a new one.
package wizard

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"Cabina/internal/calc/earthing"
	"Cabina/internal/calc/loads"
	"Cabina/internal/calc/selector"
	"Cabina/internal/calc/switchgear"
	"Cabina/internal/catalog"
)

type Step int

const (
	StepDistributor Step = iota + 1
	StepLoads
	StepTransformers
	StepEarthSwitch
	StepMVSwitchgear
	StepProtection
	StepLVSwitchgear
	StepEarthing
)

var stepNames = map[Step]string{
	StepDistributor:  "distributor data",
	StepLoads:        "loads",
	StepTransformers: "transformers",
	StepEarthSwitch:  "earth switch",
	StepMVSwitchgear: "MV switchgear",
	StepProtection:   "protection coordination",
	StepLVSwitchgear: "LV switchgear",
	StepEarthing:     "earthing",
}

func (s Step) String() string {
	if n, ok := stepNames[s]; ok {
		return n
	}
	return fmt.Sprintf("step %d", int(s))
}

// ErrStepOrder is returned when a step runs before its predecessor.
var ErrStepOrder = errors.New("step out of order")

type Neutral string

const (
	NeutralCompensated Neutral = "compensato"
	NeutralIsolated    Neutral = "isolato"
	NeutralEarthed     Neutral = "a terra"
)

// Distributor holds the network data from the distributor's information
// letter.
type Distributor struct {
	VoltageKV             float64 `json:"voltage_kv"`
	IccKA                 float64 `json:"icc_3phase_ka"`
	NeutralState          Neutral `json:"neutral_state"`
	EarthFaultCurrentA    float64 `json:"earth_fault_current_a"`
	EarthFaultTimeS       float64 `json:"earth_fault_time_s"`
	DoubleEarthFaultTimeS float64 `json:"double_earth_fault_time_s"`
}

type Params struct {
	Name              string                    `json:"name"`
	Installation      string                    `json:"installation_type"` // indoor or outdoor
	Continuity        selector.Continuity       `json:"service_continuity"`
	TransformerSeries catalog.TransformerSeries `json:"transformer_series"`
	CEI016Required    bool                      `json:"cei_016_required"`
}

type Warning struct {
	Step    Step   `json:"step"`
	Message string `json:"message"`
}

type EarthingDesign struct {
	Design         earthing.Result     `json:"design"`
	Materials      []earthing.Material `json:"materials"`
	MaterialsTotal float64             `json:"materials_total_eur"`
	LengthM        float64             `json:"length_m,omitempty"`
	WidthM         float64             `json:"width_m,omitempty"`
}

type State struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Params    Params    `json:"params"`
	Completed Step      `json:"completed_step"`

	Distributor  Distributor                `json:"distributor"`
	Loads        []loads.Load               `json:"loads"`
	LoadResult   loads.Result               `json:"load_result"`
	Transformers selector.TransformerBank   `json:"transformers"`
	EarthSwitch  selector.EarthSwitchSystem `json:"earth_switch"`
	MV           switchgear.MVPanel         `json:"mv_switchgear"`
	Protection   Protection                 `json:"protection"`
	LV           switchgear.LVBoard         `json:"lv_switchgear"`
	Earthing     EarthingDesign             `json:"earthing"`

	Warnings []Warning `json:"warnings"`
}

// NewState starts a project with a fresh identifier.
func NewState(p Params) State {
	if p.Continuity == "" {
		p.Continuity = selector.ContinuityNormal
	}
	if p.Installation == "" {
		p.Installation = "indoor"
	}
	return State{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Params:    p,
		Loads:     []loads.Load{},
		Warnings:  []Warning{},
	}
}

func (s State) Done(step Step) bool { return s.Completed >= step }

// Compliant reports whether the completed steps produced no warnings.
func (s State) Compliant() bool { return len(s.Warnings) == 0 }

// WarningsFor returns the warnings raised by one step.
func (s State) WarningsFor(step Step) []Warning {
	out := []Warning{}
	for _, w := range s.Warnings {
		if w.Step == step {
			out = append(out, w)
		}
	}
	return out
}

// advance checks ordering and returns a copy of s ready for step. Warnings
// from a previous run of the same or later steps are dropped.
func (s State) advance(step Step) (State, error) {
	if s.Completed < step-1 {
		return State{}, fmt.Errorf("%w: %s requires %s", ErrStepOrder, step, step-1)
	}
	next := s
	next.Loads = slices.Clone(s.Loads)
	next.Warnings = make([]Warning, 0, len(s.Warnings))
	for _, w := range s.Warnings {
		if w.Step < step {
			next.Warnings = append(next.Warnings, w)
		}
	}
	next.Completed = step
	return next, nil
}

func (s *State) warn(step Step, format string, args ...any) {
	s.Warnings = append(s.Warnings, Warning{Step: step, Message: fmt.Sprintf(format, args...)})
}
