package frontend

import (
	"errors"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/plonkish/constraint"
	"github.com/consensys/plonkish/logger"
	"github.com/consensys/plonkish/profile"
)

// ErrNotEnoughRows is returned when a region does not fit in the rows left on
// the grid; synthesize with a larger size parameter k.
var ErrNotEnoughRows = errors.New("not enough rows available")

// Layouter places regions onto the grid.
type Layouter interface {
	// AssignRegion runs fn against a fresh region and commits its writes at
	// the rows the layouter chooses. Regions assigned through one layouter
	// never overlap.
	AssignRegion(name string, fn func(region *Region) error) error
}

// singleChip is the single-pass floor planner: regions are placed in call
// order, each starting at the row after the previous one ended. The row
// cursor only moves forward, so two well-formed regions cannot collide.
type singleChip struct {
	grid   *constraint.Grid
	cursor int // first free row
}

func newSingleChip(grid *constraint.Grid) *singleChip {
	return &singleChip{grid: grid}
}

func (l *singleChip) AssignRegion(name string, fn func(region *Region) error) error {
	region := &Region{name: name}
	if err := fn(region); err != nil {
		return fmt.Errorf("region %q: %w", name, err)
	}

	if l.cursor+region.span > l.grid.NbRows() {
		return fmt.Errorf("region %q needs rows [%d, %d) of %d: %w",
			name, l.cursor, l.cursor+region.span, l.grid.NbRows(), ErrNotEnoughRows)
	}

	// translate local offsets to absolute rows; the grid rejects any cell
	// assigned twice, staged duplicates included
	for _, w := range region.writes {
		cell := constraint.Cell{Column: w.col, Row: l.cursor + w.offset}
		if err := l.grid.Assign(cell, w.value); err != nil {
			return fmt.Errorf("region %q: %w", name, err)
		}
	}

	logger.Logger().Debug().
		Str("region", name).
		Int("firstRow", l.cursor).
		Int("nbRows", region.span).
		Int("nbCells", len(region.writes)).
		Msg("committed region")

	l.cursor += region.span
	return nil
}

// Region stages assignments at offsets local to the region. When the region
// body returns, the layouter sizes the region to its highest offset plus one
// and commits the staged writes at absolute rows.
type Region struct {
	name   string
	writes []regionWrite
	span   int
}

type regionWrite struct {
	col    constraint.Column
	offset int
	value  fr.Element
}

// AssignAdvice stages value for the advice column col at the given local
// offset. It accepts the types fr.Element.SetInterface does.
func (r *Region) AssignAdvice(col constraint.Column, offset int, value any) error {
	return r.assign(constraint.Advice, col, offset, value)
}

// AssignFixed stages value for the fixed column col at the given local offset.
func (r *Region) AssignFixed(col constraint.Column, offset int, value any) error {
	return r.assign(constraint.Fixed, col, offset, value)
}

func (r *Region) assign(kind constraint.ColumnKind, col constraint.Column, offset int, value any) error {
	if col.Kind() != kind {
		return fmt.Errorf("assigning %s as %s", col, kind)
	}
	if offset < 0 {
		return fmt.Errorf("negative offset %d for %s", offset, col)
	}
	var v fr.Element
	if _, err := v.SetInterface(value); err != nil {
		return fmt.Errorf("value for %s at offset %d: %w", col, offset, err)
	}
	profile.RecordCellAssignment()

	r.writes = append(r.writes, regionWrite{col: col, offset: offset, value: v})
	if offset+1 > r.span {
		r.span = offset + 1
	}
	return nil
}
