package service

import (
	"fmt"
	"sort"

	"github.com/sergiomillane/motor-decisiones/internal/domain/valueobject"
)

// Built-in bureau table names.
const (
	BureauTableVariantA = "variant-a"
	BureauTableVariantB = "variant-b"
)

// Band is a score interval that awards a fixed number of points.
type Band struct {
	Min          int
	Max          int
	Points       int
	MinInclusive bool
	MaxInclusive bool
	NoMin        bool
	NoMax        bool
}

// Contains reports whether v falls inside the band.
func (b Band) Contains(v int) bool {
	if !b.NoMin {
		if b.MinInclusive && v < b.Min {
			return false
		}
		if !b.MinInclusive && v <= b.Min {
			return false
		}
	}
	if !b.NoMax {
		if b.MaxInclusive && v > b.Max {
			return false
		}
		if !b.MaxInclusive && v >= b.Max {
			return false
		}
	}
	return true
}

// BandSet is an ordered list of bands with a fallback for uncovered scores.
type BandSet struct {
	Bands    []Band
	Fallback int
}

// Lookup returns the points of the first band containing v, else the fallback.
func (s BandSet) Lookup(v int) int {
	for _, b := range s.Bands {
		if b.Contains(v) {
			return b.Points
		}
	}
	return s.Fallback
}

// BureauTable holds the boundaries for both sides of the bureau rule.
type BureauTable struct {
	Name   string
	NoHit  BandSet
	Bureau BandSet
}

// bureauBands are shared by both built-in tables.
var bureauBands = BandSet{
	Bands: []Band{
		{Min: 500, Max: 570, MaxInclusive: true, Points: 20},
		{Min: 570, Max: 600, MaxInclusive: true, Points: 10},
		{Min: 600, NoMax: true, Points: 0},
	},
	Fallback: 20,
}

// VariantA is the audited production table.
var VariantA = BureauTable{
	Name: BureauTableVariantA,
	NoHit: BandSet{
		Bands: []Band{
			{Min: 500, Max: 610, MinInclusive: true, MaxInclusive: true, Points: 20},
			{Min: 610, Max: 640, Points: 10},
			{Min: 640, Max: 800, MinInclusive: true, Points: 0},
		},
		Fallback: 20,
	},
	Bureau: bureauBands,
}

// VariantB collapses the no-hit side into two bands.
var VariantB = BureauTable{
	Name: BureauTableVariantB,
	NoHit: BandSet{
		Bands: []Band{
			{Min: 500, Max: 600, MinInclusive: true, MaxInclusive: true, Points: 20},
			{Min: 600, NoMax: true, Points: 0},
		},
		Fallback: 20,
	},
	Bureau: bureauBands,
}

var builtinTables = map[string]BureauTable{
	BureauTableVariantA: VariantA,
	BureauTableVariantB: VariantB,
}

// BureauTableByName returns a built-in table.
func BureauTableByName(name string) (BureauTable, error) {
	t, ok := builtinTables[name]
	if !ok {
		return BureauTable{}, fmt.Errorf("%w: unknown bureau table %q", ErrInvalidInput, name)
	}
	return t, nil
}

// BuiltinBureauTables lists the built-in tables sorted by name.
func BuiltinBureauTables() []BureauTable {
	out := make([]BureauTable, 0, len(builtinTables))
	for _, t := range builtinTables {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Validate checks that every band is well formed.
func (t BureauTable) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("bureau table name is required")
	}
	for side, set := range map[string]BandSet{"no_hit": t.NoHit, "bureau": t.Bureau} {
		if set.Fallback < 0 {
			return fmt.Errorf("%s: fallback points must be non-negative", side)
		}
		for i, b := range set.Bands {
			if b.Points < 0 {
				return fmt.Errorf("%s band %d: points must be non-negative", side, i)
			}
			if !b.NoMin && !b.NoMax && b.Min > b.Max {
				return fmt.Errorf("%s band %d: min %d exceeds max %d", side, i, b.Min, b.Max)
			}
		}
	}
	return nil
}

// ClassifyBureau picks the branch of the bureau rule for a pair of scores.
func ClassifyBureau(bureau, noHit valueobject.Score) valueobject.BureauBranch {
	switch {
	case !bureau.Present():
		return valueobject.BranchNoData
	case bureau.Value() == 0:
		return valueobject.BranchNoHit
	case noHit.IsZeroValue():
		return valueobject.BranchBureau
	default:
		return valueobject.BranchInconsistent
	}
}

// Score applies the table to a pair of scores.
func (t BureauTable) Score(bureau, noHit valueobject.Score) (valueobject.BureauBranch, valueobject.PartialScore) {
	branch := ClassifyBureau(bureau, noHit)
	switch branch {
	case valueobject.BranchNoHit:
		return branch, valueobject.PointsOf(t.NoHit.Lookup(noHit.Value()))
	case valueobject.BranchBureau:
		return branch, valueobject.PointsOf(t.Bureau.Lookup(bureau.Value()))
	case valueobject.BranchInconsistent:
		return branch, valueobject.InconsistentScore
	default:
		return branch, valueobject.NoHistoryScore
	}
}
