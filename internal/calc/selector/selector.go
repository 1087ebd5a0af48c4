// Package selector picks standard equipment from the catalog for a required
// rating. Every pick is the smallest standard rating at or above the
// margin-adjusted requirement; when none exists the largest rating is
// returned and the selection is marked non-compliant.
package selector

import (
	"fmt"
	"math"

	"Cabina/internal/calc/calcerr"
	"Cabina/internal/catalog"
)

// Selection wraps a chosen item with the requirement it was chosen for.
type Selection[T any] struct {
	Item        T        `json:"item"`
	Requirement float64  `json:"requirement"`
	Margin      float64  `json:"margin"`
	Required    float64  `json:"required"`
	Compliant   bool     `json:"compliant"`
	Notes       []string `json:"notes"`
}

func newSelection[T any](requirement, margin float64) Selection[T] {
	return Selection[T]{
		Requirement: requirement,
		Margin:      margin,
		Required:    requirement * margin,
		Compliant:   true,
		Notes:       []string{},
	}
}

func (s *Selection[T]) fail(format string, args ...any) {
	s.Compliant = false
	s.Notes = append(s.Notes, fmt.Sprintf(format, args...))
}

type Selector struct {
	cat *catalog.Catalog
}

func New(cat *catalog.Catalog) *Selector {
	return &Selector{cat: cat}
}

func (s *Selector) Catalog() *catalog.Catalog { return s.cat }

// axis resolves one independent constraint against its ladder.
func axis[T any](sel *Selection[T], l catalog.Ladder, need float64, what, unit string) float64 {
	r, ok := l.Ceil(need)
	if !ok {
		sel.fail("%s %s %s exceeds largest rating %s %s",
			what, catalog.FormatRating(round2(need)), unit, catalog.FormatRating(r), unit)
	}
	return r
}

func positive(field string, v float64) error {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return calcerr.Invalid(field, "must be a positive number, got %v", v)
	}
	return nil
}

func nonNegative(field string, v float64) error {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return calcerr.Invalid(field, "must not be negative, got %v", v)
	}
	return nil
}

func marginOr(margin, def float64) (float64, error) {
	if margin == 0 {
		return def, nil
	}
	if err := positive("margin", margin); err != nil {
		return 0, err
	}
	return margin, nil
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
