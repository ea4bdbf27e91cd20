package frontend

// Circuit must be implemented by user-defined circuits. The usual way is to
// define a type which holds the witness values and the column handles as
// fields, declare the columns and gates in `Configure` and keep the handles on
// the struct for `Synthesize` to use.
//
// For example, a circuit proving knowledge of a square root:
//
//	type SquareCircuit struct {
//	    X fr.Element // witness
//
//	    colX constraint.Column
//	    colY constraint.Column
//	}
//
//	func (c *SquareCircuit) Configure(cs *frontend.ConstraintSystem) error {
//	    c.colX = cs.AdviceColumn()
//	    c.colY = cs.InstanceColumn()
//	    cs.CreateGate("square", func(v *frontend.VirtualCells) constraint.Expression {
//	        x := v.QueryAdvice(c.colX, constraint.RotationCur)
//	        y := v.QueryInstance(c.colY, constraint.RotationCur)
//	        return constraint.Subtract(y, constraint.Product(x, x))
//	    })
//	    return nil
//	}
//
//	func (c *SquareCircuit) Synthesize(api frontend.Layouter) error {
//	    return api.AssignRegion("x", func(region *frontend.Region) error {
//	        return region.AssignAdvice(c.colX, 0, c.X)
//	    })
//	}
type Circuit interface {
	// Configure declares the circuit's columns and gates
	Configure(cs *ConstraintSystem) error

	// Synthesize assigns one instance of the witness into regions
	Synthesize(api Layouter) error
}
