package mock

import (
	"errors"
	"fmt"

	"github.com/consensys/plonkish/constraint"
)

// ErrUnsatisfiedConstraint is wrapped by every Violation.
var ErrUnsatisfiedConstraint = errors.New("constraint is not satisfied")

// Violation identifies one gate failing at one row. It is both a report entry
// of Prover.Verify and the error returned by Prover.AssertSatisfied.
type Violation struct {
	Gate      string // gate name
	GateIndex int    // position in the system's gate list
	Row       int
}

func (v *Violation) Error() string {
	return fmt.Sprintf("gate %q at row %d: %s", v.Gate, v.Row, ErrUnsatisfiedConstraint)
}

func (v *Violation) Unwrap() error { return ErrUnsatisfiedConstraint }

// InstanceLengthMismatch is returned when an instance vector is shorter than
// the rows the circuit's instance queries reach.
type InstanceLengthMismatch struct {
	Column constraint.Column
	Needed int
	Got    int
}

func (e *InstanceLengthMismatch) Error() string {
	return fmt.Sprintf("instance column %s needs %d value(s), got %d", e.Column, e.Needed, e.Got)
}
