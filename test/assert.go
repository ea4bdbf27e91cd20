package test

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/consensys/plonkish/constraint"
	"github.com/consensys/plonkish/frontend"
	"github.com/consensys/plonkish/mock"
	"github.com/stretchr/testify/require"
)

var (
	// ErrConfigurationNotDeterministic is returned when configuring a circuit
	// twice yields different descriptions.
	ErrConfigurationNotDeterministic = errors.New("circuit configuration is not deterministic")
)

// Assert is a helper to test circuits
type Assert struct {
	t *testing.T
	*require.Assertions
}

// NewAssert returns an Assert helper embedding a testify/require object for convenience
func NewAssert(t *testing.T) *Assert {
	return &Assert{t: t, Assertions: require.New(t)}
}

// Run runs the test function fn as a subtest. The subtest is parametrized by
// the description strings descs.
func (a *Assert) Run(fn func(assert *Assert), descs ...string) {
	desc := strings.Join(descs, "/")
	a.t.Run(desc, func(t *testing.T) {
		assert := &Assert{t, require.New(t)}
		fn(assert)
	})
}

// Log logs using the test instance logger.
func (assert *Assert) Log(v ...interface{}) {
	assert.t.Log(v...)
}

// CheckCircuit performs a series of checks on the circuit:
//
//  1. configures the circuit twice and ensures the descriptions are identical
//  2. for every valid assignment: synthesizes it and asserts that both check
//     modes pass
//  3. for every invalid assignment: synthesizes it and asserts that both
//     check modes fail, on the same first violation
//
// Assignments are circuit values of the same type carrying the witness; see
// available TestingOption.
func (assert *Assert) CheckCircuit(circuit frontend.Circuit, opts ...TestingOption) {
	// get the testing configuration
	opt := assert.options(opts...)

	// ensure the description is well formed and deterministic
	_, err := assert.configure(circuit)
	assert.NoError(err, "configuring the circuit")

	for i, w := range opt.validAssignments {
		assert.Run(func(assert *Assert) {
			prover, err := mock.Run(opt.k, w.circuit, w.instances...)
			assert.NoError(err, "synthesizing a valid assignment")

			assert.NoError(prover.AssertSatisfied())

			report, err := prover.Verify()
			assert.NoError(err)
			assert.Empty(report, "diagnostic mode found violations in a valid assignment")
		}, "valid", strconv.Itoa(i))
	}

	for i, w := range opt.invalidAssignments {
		assert.Run(func(assert *Assert) {
			prover, err := mock.Run(opt.k, w.circuit, w.instances...)
			assert.NoError(err, "synthesizing an invalid assignment")

			err = prover.AssertSatisfied()
			assert.Error(err, "strict mode accepted an invalid assignment")
			assert.ErrorIs(err, mock.ErrUnsatisfiedConstraint)

			report, reportErr := prover.Verify()
			assert.NoError(reportErr)
			assert.NotEmpty(report, "diagnostic mode found no violation in an invalid assignment")

			var first *mock.Violation
			assert.ErrorAs(err, &first)
			assert.Equal(report[0], *first, "strict and diagnostic modes disagree on the first violation")
		}, "invalid", strconv.Itoa(i))
	}
}

// configure builds the system twice and ensures both descriptions match.
func (assert *Assert) configure(circuit frontend.Circuit) (*constraint.System, error) {
	system, err := frontend.Configure(circuit)
	if err != nil {
		return nil, err
	}

	again, err := frontend.Configure(circuit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigurationNotDeterministic, err)
	}

	if !reflect.DeepEqual(system, again) {
		return nil, ErrConfigurationNotDeterministic
	}

	return system, nil
}
