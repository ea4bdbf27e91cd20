package constraint

// Rotation is a row offset applied by a column query, relative to the row the
// enclosing gate is evaluated at. Arbitrary offsets are allowed; the named
// constants cover the common cases.
type Rotation int

const (
	RotationPrev Rotation = -1
	RotationCur  Rotation = 0
	RotationNext Rotation = 1
)
