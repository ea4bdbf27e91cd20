package frontend

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/plonkish/constraint"
)

// ConstraintSystem is the registry a circuit's Configure method writes into:
// it mints column handles and collects gates. Configure freezes it into a
// *constraint.System; it has no role after that.
//
// Structural misuse (querying a column that was never registered, building a
// gate with no expression) panics; the Configure entry point recovers those
// panics into errors.
type ConstraintSystem struct {
	nbColumns [3]int
	gates     []constraint.Gate
}

func newConstraintSystem() *ConstraintSystem {
	return &ConstraintSystem{}
}

// AdviceColumn registers a new advice column and returns its handle.
func (cs *ConstraintSystem) AdviceColumn() constraint.Column {
	return cs.addColumn(constraint.Advice)
}

// FixedColumn registers a new fixed column and returns its handle.
func (cs *ConstraintSystem) FixedColumn() constraint.Column {
	return cs.addColumn(constraint.Fixed)
}

// InstanceColumn registers a new instance column and returns its handle.
func (cs *ConstraintSystem) InstanceColumn() constraint.Column {
	return cs.addColumn(constraint.Instance)
}

func (cs *ConstraintSystem) addColumn(kind constraint.ColumnKind) constraint.Column {
	col := constraint.NewColumn(kind, cs.nbColumns[kind])
	cs.nbColumns[kind]++
	return col
}

// CreateGate invokes build once with a query facility and stores the returned
// expression under the given name. The expression tree is retained, not the
// closure; it must evaluate to zero at every row for the circuit to be
// satisfied.
func (cs *ConstraintSystem) CreateGate(name string, build func(cells *VirtualCells) constraint.Expression) {
	if build == nil {
		panic(fmt.Sprintf("gate %q: nil builder", name))
	}
	expr := build(&VirtualCells{cs: cs})
	if expr == nil {
		panic(fmt.Sprintf("gate %q: builder returned no expression", name))
	}
	cs.gates = append(cs.gates, constraint.Gate{Name: name, Expr: expr})
}

func (cs *ConstraintSystem) finalize() *constraint.System {
	return constraint.NewSystem(
		cs.nbColumns[constraint.Advice],
		cs.nbColumns[constraint.Fixed],
		cs.nbColumns[constraint.Instance],
		cs.gates,
	)
}

// VirtualCells lets a gate builder query columns of the system at relative
// rotations. It is only valid for the duration of the CreateGate call.
type VirtualCells struct {
	cs *ConstraintSystem
}

// QueryAdvice returns a term reading an advice column at the given rotation.
func (v *VirtualCells) QueryAdvice(col constraint.Column, rot constraint.Rotation) constraint.Expression {
	return v.query(constraint.Advice, col, rot)
}

// QueryFixed returns a term reading a fixed column at the given rotation.
func (v *VirtualCells) QueryFixed(col constraint.Column, rot constraint.Rotation) constraint.Expression {
	return v.query(constraint.Fixed, col, rot)
}

// QueryInstance returns a term reading an instance column at the given
// rotation.
func (v *VirtualCells) QueryInstance(col constraint.Column, rot constraint.Rotation) constraint.Expression {
	return v.query(constraint.Instance, col, rot)
}

// Constant returns a constant term. It accepts the types
// fr.Element.SetInterface does: field elements, integers, *big.Int, decimal
// strings, byte slices.
func (v *VirtualCells) Constant(value any) constraint.Expression {
	var e fr.Element
	if _, err := e.SetInterface(value); err != nil {
		panic(fmt.Sprintf("constant %v: %v", value, err))
	}
	return constraint.NewConstant(e)
}

func (v *VirtualCells) query(kind constraint.ColumnKind, col constraint.Column, rot constraint.Rotation) constraint.Expression {
	if col.Kind() != kind {
		panic(fmt.Sprintf("querying %s as %s", col, kind))
	}
	if col.Index() < 0 || col.Index() >= v.cs.nbColumns[kind] {
		panic(fmt.Sprintf("column %s is not registered", col))
	}
	return constraint.NewQuery(col, rot)
}
