package constraint

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Grid holds the assignment of one circuit instance: dense value storage for
// every advice and fixed column, plus a per-column mask of the cells that were
// actually assigned. Blank cells read as zero; a cell may be assigned at most
// once, whatever path the write takes.
//
// Instance columns are not part of the grid; their values travel with the
// verifier.
type Grid struct {
	nbRows int

	advice []fr.Vector
	fixed  []fr.Vector

	adviceSet []*bitset.BitSet
	fixedSet  []*bitset.BitSet

	usedRows int
}

// NewGrid allocates a blank grid of nbRows rows for the columns of s.
func NewGrid(s *System, nbRows int) *Grid {
	g := &Grid{
		nbRows:    nbRows,
		advice:    make([]fr.Vector, s.NbColumns(Advice)),
		fixed:     make([]fr.Vector, s.NbColumns(Fixed)),
		adviceSet: make([]*bitset.BitSet, s.NbColumns(Advice)),
		fixedSet:  make([]*bitset.BitSet, s.NbColumns(Fixed)),
	}
	for i := range g.advice {
		g.advice[i] = make(fr.Vector, nbRows)
		g.adviceSet[i] = bitset.New(uint(nbRows))
	}
	for i := range g.fixed {
		g.fixed[i] = make(fr.Vector, nbRows)
		g.fixedSet[i] = bitset.New(uint(nbRows))
	}
	return g
}

// NbRows returns the grid height.
func (g *Grid) NbRows() int { return g.nbRows }

// UsedRows returns one past the highest assigned row index; zero for a blank
// grid.
func (g *Grid) UsedRows() int { return g.usedRows }

// Assign writes v into the cell. It fails with *AssignmentConflict if the
// cell already carries a value.
func (g *Grid) Assign(cell Cell, v fr.Element) error {
	values, set, err := g.column(cell.Column)
	if err != nil {
		return err
	}
	if cell.Row < 0 || cell.Row >= g.nbRows {
		return fmt.Errorf("cell %s outside the %d-row grid", cell, g.nbRows)
	}
	if set.Test(uint(cell.Row)) {
		return &AssignmentConflict{Cell: cell}
	}
	values[cell.Row] = v
	set.Set(uint(cell.Row))
	if cell.Row+1 > g.usedRows {
		g.usedRows = cell.Row + 1
	}
	return nil
}

// IsAssigned reports whether the cell carries a value.
func (g *Grid) IsAssigned(cell Cell) bool {
	_, set, err := g.column(cell.Column)
	if err != nil || cell.Row < 0 || cell.Row >= g.nbRows {
		return false
	}
	return set.Test(uint(cell.Row))
}

// CellValue returns the value at (col, row). Blank cells and rows outside the
// grid read as zero, so a Grid is a Trace.
func (g *Grid) CellValue(col Column, row int) fr.Element {
	var zero fr.Element
	values, _, err := g.column(col)
	if err != nil || row < 0 || row >= g.nbRows {
		return zero
	}
	return values[row]
}

// NbAssigned returns the total number of assigned cells.
func (g *Grid) NbAssigned() int {
	n := uint(0)
	for _, set := range g.adviceSet {
		n += set.Count()
	}
	for _, set := range g.fixedSet {
		n += set.Count()
	}
	return int(n)
}

func (g *Grid) column(col Column) (fr.Vector, *bitset.BitSet, error) {
	switch col.Kind() {
	case Advice:
		if col.Index() < 0 || col.Index() >= len(g.advice) {
			return nil, nil, fmt.Errorf("column %s is not in the grid", col)
		}
		return g.advice[col.Index()], g.adviceSet[col.Index()], nil
	case Fixed:
		if col.Index() < 0 || col.Index() >= len(g.fixed) {
			return nil, nil, fmt.Errorf("column %s is not in the grid", col)
		}
		return g.fixed[col.Index()], g.fixedSet[col.Index()], nil
	default:
		return nil, nil, fmt.Errorf("column %s is not grid assignable", col)
	}
}

// AssignmentConflict reports a second write to an already assigned cell.
type AssignmentConflict struct {
	Cell Cell
}

func (e *AssignmentConflict) Error() string {
	return fmt.Sprintf("cell %s assigned twice", e.Cell)
}
