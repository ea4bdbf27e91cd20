// Package r1cs provides a product chip: it binds an instance column to the
// row-wise product of two advice columns, the plonkish rendering of a rank-1
// constraint a*b = c.
//
// The chip synthesizes its witness in one of two layouts. SelectorGated lays
// every product in its own single-row region and arms a fixed selector on that
// row, so the gate is vacuous wherever the selector is off. Unconditional
// packs all products into one region and lets the gate range over the whole
// grid; it stays satisfiable on the rows past the witness because blank cells
// read zero.
package r1cs

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/plonkish/constraint"
	"github.com/consensys/plonkish/frontend"
)

// GateMode selects how the chip lays out its witness and guards its gate.
type GateMode uint8

const (
	// SelectorGated assigns each product to its own single-row region and
	// multiplies the gate by a fixed selector column.
	SelectorGated GateMode = iota

	// Unconditional assigns all products in a single region and leaves the
	// gate unguarded on every row of the grid.
	Unconditional
)

func (m GateMode) String() string {
	switch m {
	case SelectorGated:
		return "selector-gated"
	case Unconditional:
		return "unconditional"
	default:
		return "unknown"
	}
}

// Circuit asserts instance[i] == A[i]*B[i] for every witness pair.
type Circuit struct {
	Mode GateMode
	A, B []fr.Element

	a, b constraint.Column
	sel  constraint.Column
	out  constraint.Column
}

func (circuit *Circuit) Configure(cs *frontend.ConstraintSystem) error {
	circuit.a = cs.AdviceColumn()
	circuit.b = cs.AdviceColumn()
	circuit.out = cs.InstanceColumn()
	if circuit.Mode == SelectorGated {
		circuit.sel = cs.FixedColumn()
	}

	cs.CreateGate("product", func(cells *frontend.VirtualCells) constraint.Expression {
		a := cells.QueryAdvice(circuit.a, constraint.RotationCur)
		b := cells.QueryAdvice(circuit.b, constraint.RotationCur)
		out := cells.QueryInstance(circuit.out, constraint.RotationCur)
		expr := constraint.Subtract(out, constraint.Product(a, b))
		if circuit.Mode == SelectorGated {
			expr = constraint.Product(cells.QueryFixed(circuit.sel, constraint.RotationCur), expr)
		}
		return expr
	})
	return nil
}

func (circuit *Circuit) Synthesize(api frontend.Layouter) error {
	if len(circuit.A) != len(circuit.B) {
		return fmt.Errorf("mismatched witness lengths: %d a value(s), %d b value(s)", len(circuit.A), len(circuit.B))
	}

	if circuit.Mode == Unconditional {
		return api.AssignRegion("products", func(region *frontend.Region) error {
			for i := range circuit.A {
				if err := region.AssignAdvice(circuit.a, i, circuit.A[i]); err != nil {
					return err
				}
				if err := region.AssignAdvice(circuit.b, i, circuit.B[i]); err != nil {
					return err
				}
			}
			return nil
		})
	}

	for i := range circuit.A {
		err := api.AssignRegion(fmt.Sprintf("product-%d", i), func(region *frontend.Region) error {
			if err := region.AssignAdvice(circuit.a, 0, circuit.A[i]); err != nil {
				return err
			}
			if err := region.AssignAdvice(circuit.b, 0, circuit.B[i]); err != nil {
				return err
			}
			return region.AssignFixed(circuit.sel, 0, 1)
		})
		if err != nil {
			return err
		}
	}
	return nil
}
