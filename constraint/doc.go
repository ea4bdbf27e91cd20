// Package constraint provides constructs needed to describe a plonkish circuit
// and hold its assignments.
//
// A circuit description is a System: typed columns and a list of gates;
//   - Each gate is a named polynomial identity over cells of the column grid
//   - A gate polynomial is an Expression, a tree of sums, products and column queries
//
// A Grid holds the values of one instance of the circuit.
package constraint
