package mock_test

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/plonkish/constraint"
	"github.com/consensys/plonkish/frontend"
	"github.com/consensys/plonkish/mock"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// squareCircuit constrains instance[i] == x[i]^2 on every row, with no
// selector: the identity must hold on blank rows too, where both sides read
// zero.
type squareCircuit struct {
	X []fr.Element

	colX   constraint.Column
	colOut constraint.Column
}

func (c *squareCircuit) Configure(cs *frontend.ConstraintSystem) error {
	c.colX = cs.AdviceColumn()
	c.colOut = cs.InstanceColumn()

	cs.CreateGate("square", func(v *frontend.VirtualCells) constraint.Expression {
		x := v.QueryAdvice(c.colX, constraint.RotationCur)
		out := v.QueryInstance(c.colOut, constraint.RotationCur)
		return constraint.Subtract(out, constraint.Product(x, x))
	})
	return nil
}

func (c *squareCircuit) Synthesize(api frontend.Layouter) error {
	return api.AssignRegion("squares", func(region *frontend.Region) error {
		for i, x := range c.X {
			if err := region.AssignAdvice(c.colX, i, x); err != nil {
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

func TestProverSatisfied(t *testing.T) {
	assert := require.New(t)

	p, err := mock.Run(4, &squareCircuit{X: elements(2, 3, 4)}, elements(4, 9, 16))
	assert.NoError(err)

	assert.NoError(p.AssertSatisfied())

	report, err := p.Verify()
	assert.NoError(err)
	assert.Empty(report)
}

func TestProverViolation(t *testing.T) {
	assert := require.New(t)

	// 3*3 != 8
	p, err := mock.Run(4, &squareCircuit{X: elements(2, 3, 4)}, elements(4, 8, 16))
	assert.NoError(err)

	report, err := p.Verify()
	assert.NoError(err)
	assert.Equal([]mock.Violation{{Gate: "square", GateIndex: 0, Row: 1}}, report)

	err = p.AssertSatisfied()
	assert.Error(err)
	assert.ErrorIs(err, mock.ErrUnsatisfiedConstraint)

	var v *mock.Violation
	assert.ErrorAs(err, &v)
	assert.Equal(report[0], *v)
}

func TestProverStrictReturnsFirst(t *testing.T) {
	assert := require.New(t)

	// every row fails; strict mode must report the lowest one
	p, err := mock.Run(4, &squareCircuit{X: elements(2, 3, 4)}, elements(5, 8, 17))
	assert.NoError(err)

	report, err := p.Verify()
	assert.NoError(err)
	assert.Len(report, 3)

	var v *mock.Violation
	assert.ErrorAs(p.AssertSatisfied(), &v)
	assert.Equal(report[0], *v)
	assert.Equal(0, v.Row)
}

func TestProverIdempotent(t *testing.T) {
	assert := require.New(t)

	p, err := mock.Run(4, &squareCircuit{X: elements(2, 3, 4)}, elements(4, 8, 17))
	assert.NoError(err)

	first, err := p.Verify()
	assert.NoError(err)
	second, err := p.Verify()
	assert.NoError(err)
	assert.Empty(cmp.Diff(first, second))

	// strict mode does not disturb the report either
	_ = p.AssertSatisfied()
	third, err := p.Verify()
	assert.NoError(err)
	assert.Empty(cmp.Diff(first, third))
}

func TestProverInstanceLengthMismatch(t *testing.T) {
	assert := require.New(t)

	// three assigned rows, two public values
	p, err := mock.Run(4, &squareCircuit{X: elements(2, 3, 4)}, elements(4, 9))
	assert.NoError(err)

	var mismatch *mock.InstanceLengthMismatch
	assert.ErrorAs(p.AssertSatisfied(), &mismatch)
	assert.Equal(3, mismatch.Needed)
	assert.Equal(2, mismatch.Got)

	_, err = p.Verify()
	assert.ErrorAs(err, &mismatch)
}

func TestProverInstanceCount(t *testing.T) {
	assert := require.New(t)

	_, err := mock.Run(4, &squareCircuit{X: elements(2)})
	assert.Error(err)
	assert.Contains(err.Error(), "instance vector")

	_, err = mock.Run(4, &squareCircuit{X: elements(2)}, elements(4), elements(4))
	assert.Error(err)
}

// sumProductCircuit binds two instance columns at once: sum[i] == a[i]+b[i]
// and product[i] == a[i]*b[i].
type sumProductCircuit struct {
	A, B []fr.Element

	colA, colB constraint.Column
	sum, prod  constraint.Column
}

func (c *sumProductCircuit) Configure(cs *frontend.ConstraintSystem) error {
	c.colA = cs.AdviceColumn()
	c.colB = cs.AdviceColumn()
	c.sum = cs.InstanceColumn()
	c.prod = cs.InstanceColumn()

	cs.CreateGate("sum", func(v *frontend.VirtualCells) constraint.Expression {
		a := v.QueryAdvice(c.colA, constraint.RotationCur)
		b := v.QueryAdvice(c.colB, constraint.RotationCur)
		return constraint.Subtract(v.QueryInstance(c.sum, constraint.RotationCur), constraint.Sum(a, b))
	})
	cs.CreateGate("product", func(v *frontend.VirtualCells) constraint.Expression {
		a := v.QueryAdvice(c.colA, constraint.RotationCur)
		b := v.QueryAdvice(c.colB, constraint.RotationCur)
		return constraint.Subtract(v.QueryInstance(c.prod, constraint.RotationCur), constraint.Product(a, b))
	})
	return nil
}

func (c *sumProductCircuit) Synthesize(api frontend.Layouter) error {
	return api.AssignRegion("pairs", func(region *frontend.Region) error {
		for i := range c.A {
			if err := region.AssignAdvice(c.colA, i, c.A[i]); err != nil {
				return err
			}
			if err := region.AssignAdvice(c.colB, i, c.B[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

func TestProverTwoInstanceColumns(t *testing.T) {
	assert := require.New(t)

	p, err := mock.Run(3, &sumProductCircuit{A: elements(2, 5), B: elements(3, 7)},
		elements(5, 12), elements(6, 35))
	assert.NoError(err)
	assert.NoError(p.AssertSatisfied())

	// wrong product in the second column only
	p, err = mock.Run(3, &sumProductCircuit{A: elements(2, 5), B: elements(3, 7)},
		elements(5, 12), elements(6, 36))
	assert.NoError(err)

	report, err := p.Verify()
	assert.NoError(err)
	assert.Equal([]mock.Violation{{Gate: "product", GateIndex: 1, Row: 1}}, report)
}

// chainCircuit constrains a[r] == a[r+1] on every row of the grid, without a
// selector. With every row assigned the same nonzero value, only the last row
// can fail: its neighbour is past the grid and reads zero.
type chainCircuit struct {
	Value uint64
	Rows  int

	col constraint.Column
}

func (c *chainCircuit) Configure(cs *frontend.ConstraintSystem) error {
	c.col = cs.AdviceColumn()
	cs.CreateGate("chain", func(v *frontend.VirtualCells) constraint.Expression {
		return constraint.Subtract(
			v.QueryAdvice(c.col, constraint.RotationCur),
			v.QueryAdvice(c.col, constraint.RotationNext),
		)
	})
	return nil
}

func (c *chainCircuit) Synthesize(api frontend.Layouter) error {
	return api.AssignRegion("chain", func(region *frontend.Region) error {
		for i := 0; i < c.Rows; i++ {
			if err := region.AssignAdvice(c.col, i, c.Value); err != nil {
				return err
			}
		}
		return nil
	})
}

func TestQueryPastLastRowReadsZero(t *testing.T) {
	assert := require.New(t)

	// fill all 8 rows of a k=3 grid
	p, err := mock.Run(3, &chainCircuit{Value: 6, Rows: 8})
	assert.NoError(err)

	report, err := p.Verify()
	assert.NoError(err)
	assert.Equal([]mock.Violation{{Gate: "chain", GateIndex: 0, Row: 7}}, report)
}
