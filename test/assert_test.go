package test

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/plonkish/constraint"
	"github.com/consensys/plonkish/frontend"
)

// doublerCircuit binds instance[i] == 2*x[i] on every row.
type doublerCircuit struct {
	X []fr.Element

	x, out constraint.Column
}

func (circuit *doublerCircuit) Configure(cs *frontend.ConstraintSystem) error {
	circuit.x = cs.AdviceColumn()
	circuit.out = cs.InstanceColumn()
	cs.CreateGate("double", func(cells *frontend.VirtualCells) constraint.Expression {
		x := cells.QueryAdvice(circuit.x, constraint.RotationCur)
		out := cells.QueryInstance(circuit.out, constraint.RotationCur)
		return constraint.Subtract(out, constraint.Product(cells.Constant(2), x))
	})
	return nil
}

func (circuit *doublerCircuit) Synthesize(api frontend.Layouter) error {
	return api.AssignRegion("doubling", func(region *frontend.Region) error {
		for i := range circuit.X {
			if err := region.AssignAdvice(circuit.x, i, circuit.X[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

func elements(vs ...uint64) []fr.Element {
	r := make([]fr.Element, len(vs))
	for i, v := range vs {
		r[i] = fr.NewElement(v)
	}
	return r
}

func TestCheckCircuit(t *testing.T) {
	assert := NewAssert(t)

	assert.CheckCircuit(&doublerCircuit{},
		WithSize(4),
		WithValidAssignment(&doublerCircuit{X: elements(0, 1, 21)}, elements(0, 2, 42)),
		WithValidAssignment(&doublerCircuit{X: elements(7)}, elements(14)),
		WithInvalidAssignment(&doublerCircuit{X: elements(1, 2)}, elements(2, 5)),
	)
}

func TestCheckCircuitDefaultSize(t *testing.T) {
	assert := NewAssert(t)

	assert.CheckCircuit(&doublerCircuit{},
		WithValidAssignment(&doublerCircuit{X: elements(3)}, elements(6)),
	)
}
