package constraint

// Gate is a named vanishing identity: the circuit is satisfied when the gate
// polynomial evaluates to zero at every row of the grid.
type Gate struct {
	Name string
	Expr Expression
}

func (g Gate) String() string {
	return g.Name + ": " + g.Expr.String() + " == 0"
}
