package catalog

import (
	"errors"
	"fmt"
)

// TripSettings are the I1/t1 (long time), I2/t2 (short time) and I3/t3
// (instantaneous) points of a trip unit, currents in multiples of In.
type TripSettings struct {
	I1 float64 `json:"i1"`
	T1 float64 `json:"t1"`
	I2 float64 `json:"i2"`
	T2 float64 `json:"t2"`
	I3 float64 `json:"i3"`
	T3 float64 `json:"t3"`
}

type SelectivityRules struct {
	Emax              map[string]TripSettings
	Tmax              map[string]TripSettings
	DefaultUpstream   TripSettings
	DefaultDownstream TripSettings
	TimeMargin        float64 // s
	CurrentMargin     float64 // ratio
	MinTimeDifference float64 // s
	Standards         []string
}

// Upstream returns the settings for a main breaker frame.
func (r SelectivityRules) Upstream(frame string) TripSettings {
	if s, ok := r.Emax[frame]; ok {
		return s
	}
	return r.DefaultUpstream
}

// Downstream returns the settings for a feeder breaker frame.
func (r SelectivityRules) Downstream(frame string) TripSettings {
	if s, ok := r.Tmax[frame]; ok {
		return s
	}
	return r.DefaultDownstream
}

func (r SelectivityRules) validate() error {
	if r.TimeMargin <= 0 || r.CurrentMargin <= 0 {
		return errors.New("selectivity: margins must be positive")
	}
	for name, s := range r.Emax {
		if s.T1 <= 0 || s.I1 <= 0 {
			return fmt.Errorf("selectivity: invalid settings for %s", name)
		}
	}
	for name, s := range r.Tmax {
		if s.T1 <= 0 || s.I1 <= 0 {
			return fmt.Errorf("selectivity: invalid settings for %s", name)
		}
	}
	return nil
}

func selectivityRules() SelectivityRules {
	return SelectivityRules{
		Emax: map[string]TripSettings{
			"E1.2": {0.9, 0.4, 5, 0.1, 10, 0.02},
			"E2.2": {0.9, 0.5, 5, 0.15, 10, 0.03},
			"E4.2": {0.9, 0.6, 5, 0.2, 10, 0.05},
			"E6.2": {0.9, 0.8, 5, 0.3, 10, 0.1},
		},
		Tmax: map[string]TripSettings{
			"T4": {0.9, 0.1, 3, 0.05, 8, 0.01},
			"T5": {0.9, 0.15, 3, 0.05, 8, 0.015},
			"T6": {0.9, 0.2, 4, 0.05, 8, 0.02},
			"T7": {0.9, 0.3, 4, 0.08, 8, 0.02},
			"T8": {0.9, 0.3, 4, 0.08, 8, 0.02},
		},
		DefaultUpstream:   TripSettings{0.9, 0.8, 5, 0.3, 10, 0.1},
		DefaultDownstream: TripSettings{0.9, 0.1, 3, 0.05, 8, 0.01},
		TimeMargin:        0.1,
		CurrentMargin:     1.6,
		MinTimeDifference: 0.05,
		Standards:         []string{"IEC 60947-2", "CEI 23-51", "CEI 17-50"},
	}
}
