// Package catalog holds the equipment families used to size a substation.
// Tables are built once, validated at construction and never mutated.
package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
)

// Ladder is an ascending list of standard ratings.
type Ladder []float64

// Ceil returns the smallest rating >= v. When v exceeds every rating the
// largest one is returned with ok=false.
func (l Ladder) Ceil(v float64) (rating float64, ok bool) {
	for _, r := range l {
		if r >= v {
			return r, true
		}
	}
	return l.Max(), false
}

func (l Ladder) Max() float64 {
	if len(l) == 0 {
		return 0
	}
	return l[len(l)-1]
}

func (l Ladder) validate(name string) error {
	if len(l) == 0 {
		return fmt.Errorf("%s: empty ladder", name)
	}
	for i := 1; i < len(l); i++ {
		if l[i] <= l[i-1] {
			return fmt.Errorf("%s: ladder not strictly ascending at %v", name, l[i])
		}
	}
	return nil
}

func (l Ladder) clone() Ladder {
	out := make(Ladder, len(l))
	copy(out, l)
	return out
}

// FormatRating renders a rating the way product code keys spell it: 12, 17.5, 31.5.
func FormatRating(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

type Dimensions struct {
	LengthMM float64 `json:"length_mm"`
	WidthMM  float64 `json:"width_mm"`
	HeightMM float64 `json:"height_mm"`
}

// Catalog is the full equipment store.
type Catalog struct {
	Transformers  TransformerFamily
	MVBreakers    []MVBreakerSeries
	Emax          LVBreakerSeries
	Tmax          LVBreakerSeries
	LVSwitches    []LVSwitchSeries
	EarthSwitches []EarthSwitchSeries
	MobileEarth   MobileEarthSeries
	Relays        []ProtectionRelay
	CTs           CTFamily
	UniSec        []UniSecUnit
	Selectivity   SelectivityRules
	Templates     []LoadTemplate
}

// New builds the catalog from the static tables and validates it.
func New() (*Catalog, error) {
	c := &Catalog{
		Transformers:  buildTransformers(),
		MVBreakers:    mvBreakers(),
		Emax:          emaxSeries(),
		Tmax:          tmaxSeries(),
		LVSwitches:    lvSwitches(),
		EarthSwitches: earthSwitches(),
		MobileEarth:   mobileEarth(),
		Relays:        protectionRelays(),
		CTs:           currentTransformers(),
		UniSec:        unisecUnits(),
		Selectivity:   selectivityRules(),
		Templates:     loadTemplates(),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
)

// Default returns the process-wide catalog. It panics if the static tables
// are inconsistent, which can only happen after a bad edit of this package.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := New()
		if err != nil {
			panic(fmt.Sprintf("catalog: %v", err))
		}
		defaultCat = c
	})
	return defaultCat
}

// Validate checks every family. It is called by New.
func (c *Catalog) Validate() error {
	var errs []error
	errs = append(errs, c.Transformers.validate())
	for _, s := range c.MVBreakers {
		errs = append(errs, s.validate())
	}
	errs = append(errs, c.Emax.validate(), c.Tmax.validate())
	for _, s := range c.LVSwitches {
		errs = append(errs, s.validate())
	}
	for _, s := range c.EarthSwitches {
		errs = append(errs, s.validate())
	}
	errs = append(errs, c.MobileEarth.validate())
	for _, r := range c.Relays {
		if r.Key == "" || r.ProductCode == "" {
			errs = append(errs, fmt.Errorf("relay %q: missing key or product code", r.Series))
		}
	}
	errs = append(errs, c.CTs.validate())
	for _, u := range c.UniSec {
		if u.ProductCode == "" || u.CostBase < 0 {
			errs = append(errs, fmt.Errorf("unisec %s: invalid unit", u.Key))
		}
	}
	errs = append(errs, c.Selectivity.validate())
	return errors.Join(errs...)
}

func checkCost(name string, base, perUnit float64) error {
	if base < 0 || perUnit < 0 {
		return fmt.Errorf("%s: negative cost coefficients", name)
	}
	return nil
}
