package wizard

import (
	"fmt"

	"Cabina/internal/calc/loads"
)

// Request carries the inputs of every step for a one-shot design.
type Request struct {
	Params      Params            `json:"params"`
	Distributor Distributor       `json:"distributor"`
	Loads       []loads.Load      `json:"loads"`
	Transformer TransformerChoice `json:"transformer"`
	EarthSwitch EarthSwitchChoice `json:"earth_switch"`
	Protection  ProtectionChoice  `json:"protection"`
	Earthing    EarthingInput     `json:"earthing"`
}

// Run executes all steps in order and returns the completed project. The
// first failing step stops the run.
func (p *Pipeline) Run(req Request) (State, error) {
	s := NewState(req.Params)
	steps := []func(State) (State, error){
		func(s State) (State, error) { return p.Distributor(s, req.Distributor) },
		func(s State) (State, error) { return p.Loads(s, req.Loads) },
		func(s State) (State, error) { return p.Transformers(s, req.Transformer) },
		func(s State) (State, error) { return p.EarthSwitch(s, req.EarthSwitch) },
		p.MVSwitchgear,
		func(s State) (State, error) { return p.Protection(s, req.Protection) },
		p.LVSwitchgear,
		func(s State) (State, error) { return p.Earthing(s, req.Earthing) },
	}
	for i, step := range steps {
		var err error
		if s, err = step(s); err != nil {
			return State{}, fmt.Errorf("%s: %w", Step(i+1), err)
		}
	}
	return s, nil
}
