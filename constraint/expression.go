package constraint

import (
	"fmt"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Trace is the read side of an assignment; expressions evaluate against it.
// Implementations return zero for blank cells and for rows outside their
// domain.
type Trace interface {
	CellValue(col Column, row int) fr.Element
}

// Expression is a gate polynomial, stored as a tree of terms. Expressions are
// immutable once built; the same tree may be evaluated at many rows and
// against many traces.
type Expression interface {
	// EvalAt computes the value of the expression at the given row; column
	// queries resolve at row+rotation.
	EvalAt(row int, tr Trace) fr.Element

	// Bounds returns the rotation envelope of the expression.
	Bounds() Bounds

	// Degree returns the multiplicative degree of the expression, counting
	// each column query as degree one.
	Degree() int

	String() string
}

// Bounds is the rotation envelope of an expression: the most negative and the
// most positive rotation any of its queries applies. The zero value is the
// envelope of an expression with no queries.
type Bounds struct {
	Min Rotation
	Max Rotation
}

func (b *Bounds) union(o Bounds) {
	if o.Min < b.Min {
		b.Min = o.Min
	}
	if o.Max > b.Max {
		b.Max = o.Max
	}
}

func boundsOf(args []Expression) Bounds {
	var r Bounds
	for _, a := range args {
		r.union(a.Bounds())
	}
	return r
}

// ============================================================================
// Constant
// ============================================================================

// Constant is a field element literal.
type Constant struct {
	Value fr.Element
}

// NewConstant returns a constant term.
func NewConstant(v fr.Element) *Constant {
	return &Constant{Value: v}
}

func (e *Constant) EvalAt(int, Trace) fr.Element { return e.Value }

func (e *Constant) Bounds() Bounds { return Bounds{} }

func (e *Constant) Degree() int { return 0 }

func (e *Constant) String() string { return e.Value.String() }

// ============================================================================
// Column query
// ============================================================================

// Query reads a column at a rotation relative to the evaluation row.
type Query struct {
	Column   Column
	Rotation Rotation
}

// NewQuery returns a column query term.
func NewQuery(col Column, rot Rotation) *Query {
	return &Query{Column: col, Rotation: rot}
}

func (e *Query) EvalAt(row int, tr Trace) fr.Element {
	return tr.CellValue(e.Column, row+int(e.Rotation))
}

func (e *Query) Bounds() Bounds {
	if e.Rotation >= 0 {
		return Bounds{Max: e.Rotation}
	}
	return Bounds{Min: e.Rotation}
}

func (e *Query) Degree() int { return 1 }

func (e *Query) String() string {
	if e.Rotation == 0 {
		return e.Column.String()
	}
	return fmt.Sprintf("%s@%+d", e.Column, int(e.Rotation))
}

// ============================================================================
// Addition
// ============================================================================

// Add is the sum of its arguments. An empty sum evaluates to zero.
type Add struct {
	Args []Expression
}

// Sum returns the sum of the given terms.
func Sum(args ...Expression) Expression {
	if len(args) == 1 {
		return args[0]
	}
	return &Add{Args: args}
}

func (e *Add) EvalAt(row int, tr Trace) fr.Element {
	var res fr.Element
	for _, a := range e.Args {
		v := a.EvalAt(row, tr)
		res.Add(&res, &v)
	}
	return res
}

func (e *Add) Bounds() Bounds { return boundsOf(e.Args) }

func (e *Add) Degree() int { return maxDegree(e.Args) }

func (e *Add) String() string { return infix(" + ", e.Args) }

// ============================================================================
// Subtraction
// ============================================================================

// Sub subtracts every argument after the first from the first.
type Sub struct {
	Args []Expression
}

// Subtract returns from minus the sum of the given terms.
func Subtract(from Expression, args ...Expression) Expression {
	if len(args) == 0 {
		return from
	}
	return &Sub{Args: append([]Expression{from}, args...)}
}

func (e *Sub) EvalAt(row int, tr Trace) fr.Element {
	res := e.Args[0].EvalAt(row, tr)
	for _, a := range e.Args[1:] {
		v := a.EvalAt(row, tr)
		res.Sub(&res, &v)
	}
	return res
}

func (e *Sub) Bounds() Bounds { return boundsOf(e.Args) }

func (e *Sub) Degree() int { return maxDegree(e.Args) }

func (e *Sub) String() string { return infix(" - ", e.Args) }

// ============================================================================
// Multiplication
// ============================================================================

// Mul is the product of its arguments. An empty product evaluates to one.
type Mul struct {
	Args []Expression
}

// Product returns the product of the given terms.
func Product(args ...Expression) Expression {
	if len(args) == 1 {
		return args[0]
	}
	return &Mul{Args: args}
}

func (e *Mul) EvalAt(row int, tr Trace) fr.Element {
	res := fr.One()
	for _, a := range e.Args {
		v := a.EvalAt(row, tr)
		res.Mul(&res, &v)
		if res.IsZero() {
			break
		}
	}
	return res
}

func (e *Mul) Bounds() Bounds { return boundsOf(e.Args) }

func (e *Mul) Degree() int {
	d := 0
	for _, a := range e.Args {
		d += a.Degree()
	}
	return d
}

func (e *Mul) String() string { return infix(" * ", e.Args) }

// ============================================================================
// Walks
// ============================================================================

// Queries returns every column query appearing in the expression, in
// depth-first order. Duplicates are not removed.
func Queries(e Expression) []Query {
	return appendQueries(nil, e)
}

func appendQueries(dst []Query, e Expression) []Query {
	switch v := e.(type) {
	case *Query:
		return append(dst, *v)
	case *Add:
		for _, a := range v.Args {
			dst = appendQueries(dst, a)
		}
	case *Sub:
		for _, a := range v.Args {
			dst = appendQueries(dst, a)
		}
	case *Mul:
		for _, a := range v.Args {
			dst = appendQueries(dst, a)
		}
	}
	return dst
}

func maxDegree(args []Expression) int {
	d := 0
	for _, a := range args {
		if ad := a.Degree(); ad > d {
			d = ad
		}
	}
	return d
}

func infix(op string, args []Expression) string {
	var sbb strings.Builder
	sbb.WriteByte('(')
	for i, a := range args {
		if i > 0 {
			sbb.WriteString(op)
		}
		sbb.WriteString(a.String())
	}
	sbb.WriteByte(')')
	return sbb.String()
}
