package test

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/plonkish/frontend"
)

// DefaultSize is the size parameter CheckCircuit synthesizes with unless
// WithSize overrides it; the grid has 2^k rows.
const DefaultSize = 6

// TestingOption defines option for altering the behavior of Assert methods.
// See the descriptions of functions returning instances of this type for
// particular options.
type TestingOption func(*testingConfig) error

type testingConfig struct {
	k int

	validAssignments   []_witness
	invalidAssignments []_witness
}

type _witness struct {
	circuit   frontend.Circuit
	instances [][]fr.Element
}

// default options
func (assert *Assert) options(opts ...TestingOption) testingConfig {
	opt := testingConfig{k: DefaultSize}
	for _, option := range opts {
		err := option(&opt)
		assert.NoError(err, "parsing TestingOption")
	}
	return opt
}

// WithSize sets the size parameter k assignments are synthesized with.
func WithSize(k int) TestingOption {
	return func(opt *testingConfig) error {
		if k < 0 {
			return fmt.Errorf("invalid size parameter k=%d", k)
		}
		opt.k = k
		return nil
	}
}

// WithValidAssignment adds an assignment the circuit must be satisfied on,
// with one instance vector per instance column.
func WithValidAssignment(assignment frontend.Circuit, instances ...[]fr.Element) TestingOption {
	return func(opt *testingConfig) error {
		opt.validAssignments = append(opt.validAssignments, _witness{circuit: assignment, instances: instances})
		return nil
	}
}

// WithInvalidAssignment adds an assignment the circuit must reject, with one
// instance vector per instance column.
func WithInvalidAssignment(assignment frontend.Circuit, instances ...[]fr.Element) TestingOption {
	return func(opt *testingConfig) error {
		opt.invalidAssignments = append(opt.invalidAssignments, _witness{circuit: assignment, instances: instances})
		return nil
	}
}
