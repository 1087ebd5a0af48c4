// Package selectivity checks time-current coordination between an LV main
// breaker and its feeders.
package selectivity

import (
	"fmt"

	"Cabina/internal/catalog"
)

type Breaker struct {
	Series string `json:"series"`
	Frame  string `json:"frame"`
}

// Check is the comparison against one downstream breaker.
type Check struct {
	Downstream     Breaker              `json:"downstream"`
	Upstream       catalog.TripSettings `json:"upstream_settings"`
	Settings       catalog.TripSettings `json:"downstream_settings"`
	TimeMarginS    float64              `json:"time_margin_s"`
	CurrentRatio   float64              `json:"current_ratio"`
	TimeSelective  bool                 `json:"time_selective"`
	CurrentOK      bool                 `json:"current_ok"`
	DefaultedFrame bool                 `json:"defaulted_frame"`
}

type Result struct {
	Selective       bool     `json:"selective"`
	Issues          []string `json:"issues"`
	Recommendations []string `json:"recommendations"`
	Checks          []Check  `json:"checks"`
	Standards       []string `json:"standards"`
}

type Checker struct {
	rules catalog.SelectivityRules
}

func New(cat *catalog.Catalog) *Checker {
	return &Checker{rules: cat.Selectivity}
}

// Verify never fails: unknown frames get the generic settings. A short time
// margin makes the result non-selective, a low current ratio only adds a
// recommendation.
func (c *Checker) Verify(upstream Breaker, downstream []Breaker) Result {
	res := Result{
		Selective:       true,
		Issues:          []string{},
		Recommendations: []string{},
		Checks:          make([]Check, 0, len(downstream)),
		Standards:       append([]string{}, c.rules.Standards...),
	}
	up := c.rules.Upstream(upstream.Frame)

	for _, d := range downstream {
		_, known := c.rules.Tmax[d.Frame]
		ds := c.rules.Downstream(d.Frame)
		ch := Check{
			Downstream:     d,
			Upstream:       up,
			Settings:       ds,
			TimeMarginS:    up.T1 - ds.T1,
			CurrentRatio:   up.I2 / ds.I2,
			DefaultedFrame: !known,
		}
		ch.TimeSelective = ch.TimeMarginS >= c.rules.TimeMargin
		ch.CurrentOK = ch.CurrentRatio >= c.rules.CurrentMargin

		if !ch.TimeSelective {
			res.Selective = false
			res.Issues = append(res.Issues, fmt.Sprintf(
				"insufficient time margin between %s and %s: %.2f s < %.2f s",
				label(upstream), label(d), ch.TimeMarginS, c.rules.TimeMargin))
		}
		if !ch.CurrentOK {
			res.Recommendations = append(res.Recommendations, fmt.Sprintf(
				"check current margin between %s and %s: ratio %.2f < %.2f",
				label(upstream), label(d), ch.CurrentRatio, c.rules.CurrentMargin))
		}
		res.Checks = append(res.Checks, ch)
	}
	return res
}

func label(b Breaker) string {
	switch {
	case b.Series == "":
		return b.Frame
	case b.Frame == "":
		return b.Series
	}
	return b.Series + " " + b.Frame
}
