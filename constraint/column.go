package constraint

import "fmt"

// ColumnKind partitions the columns of a system by their role.
type ColumnKind uint8

const (
	// Advice columns hold private witness values, assigned at synthesis time.
	Advice ColumnKind = iota
	// Fixed columns hold circuit constants; their content is part of the
	// circuit description, not of a particular witness.
	Fixed
	// Instance columns hold public values supplied by the verifier. They are
	// never assigned through the grid.
	Instance
)

func (k ColumnKind) String() string {
	switch k {
	case Advice:
		return "advice"
	case Fixed:
		return "fixed"
	case Instance:
		return "instance"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Column is a handle on one column of a system. Handles are minted by the
// frontend registry; two handles are equal if and only if they designate the
// same column. User code treats them as opaque values.
type Column struct {
	kind  ColumnKind
	index int
}

// NewColumn returns the handle of the index-th column of the given kind.
// It is exported for the frontend registry; handles forged with indices the
// registry never returned are rejected by System.CheckColumn.
func NewColumn(kind ColumnKind, index int) Column {
	return Column{kind: kind, index: index}
}

// Kind returns the column role.
func (c Column) Kind() ColumnKind { return c.kind }

// Index returns the per-kind index of the column.
func (c Column) Index() int { return c.index }

func (c Column) String() string {
	return fmt.Sprintf("%s[%d]", c.kind, c.index)
}

// Cell designates one slot of the assignment grid.
type Cell struct {
	Column Column
	Row    int
}

func (c Cell) String() string {
	return fmt.Sprintf("%s@%d", c.Column, c.Row)
}
