package constraint

import (
	"fmt"
	"strings"
)

// System is the immutable description of a circuit: how many columns of each
// kind exist and which gates constrain them. It carries no values; a Grid
// holds the assignment of one instance.
type System struct {
	nbColumns [3]int
	gates     []Gate

	bounds          Bounds
	queriesInstance bool
	instanceRotMax  Rotation
}

// NewSystem builds a system description from the column counts and the gate
// list. The frontend registry guarantees the gates only query registered
// columns; NewSystem derives the aggregate query information the checker
// needs.
func NewSystem(nbAdvice, nbFixed, nbInstance int, gates []Gate) *System {
	s := &System{
		nbColumns: [3]int{nbAdvice, nbFixed, nbInstance},
		gates:     gates,
	}
	for _, g := range gates {
		s.bounds.union(g.Expr.Bounds())
		for _, q := range Queries(g.Expr) {
			if q.Column.Kind() != Instance {
				continue
			}
			s.queriesInstance = true
			if q.Rotation > s.instanceRotMax {
				s.instanceRotMax = q.Rotation
			}
		}
	}
	return s
}

// NbColumns returns the number of registered columns of the given kind.
func (s *System) NbColumns(kind ColumnKind) int {
	return s.nbColumns[kind]
}

// NbGates returns the number of gates.
func (s *System) NbGates() int { return len(s.gates) }

// Gates returns the gate list in registration order. The slice is shared;
// callers must not modify it.
func (s *System) Gates() []Gate { return s.gates }

// Bounds returns the union of the rotation envelopes of every gate.
func (s *System) Bounds() Bounds { return s.bounds }

// QueriesInstance reports whether any gate reads an instance column.
func (s *System) QueriesInstance() bool { return s.queriesInstance }

// MaxInstanceRotation returns the largest non-negative rotation applied to an
// instance query across all gates; zero when no instance column is queried.
func (s *System) MaxInstanceRotation() Rotation { return s.instanceRotMax }

// CheckColumn returns an error if the handle does not designate a column of
// this system.
func (s *System) CheckColumn(col Column) error {
	if col.Kind() > Instance {
		return fmt.Errorf("column of unknown kind %d", uint8(col.Kind()))
	}
	if col.Index() < 0 || col.Index() >= s.nbColumns[col.Kind()] {
		return fmt.Errorf("column %s is not registered in the system", col)
	}
	return nil
}

// String returns a human readable summary of the system.
func (s *System) String() string {
	var sbb strings.Builder
	fmt.Fprintf(&sbb, "%d advice, %d fixed, %d instance, %d gate(s)\n",
		s.nbColumns[Advice], s.nbColumns[Fixed], s.nbColumns[Instance], len(s.gates))
	for _, g := range s.gates {
		sbb.WriteByte('\t')
		sbb.WriteString(g.String())
		sbb.WriteByte('\n')
	}
	return sbb.String()
}
