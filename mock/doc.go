// Package mock implements a mock prover: it checks a synthesized witness grid
// against every gate of a circuit without producing a proof.
//
// The mock prover is a development tool. It reports which gate fails at which
// row, where a real prover would only fail to produce a valid proof.
package mock
