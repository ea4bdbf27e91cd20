package frontend

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/consensys/plonkish/constraint"
	"github.com/consensys/plonkish/debug"
	"github.com/consensys/plonkish/logger"
)

// Configure runs circuit.Configure against a fresh registry and returns the
// frozen system description.
//
// The column handles the circuit stores on itself during Configure stay valid
// for every later Synthesize call against the returned system.
func Configure(circuit Circuit) (*constraint.System, error) {
	log := logger.Logger()
	log.Info().Msg("configuring circuit")

	// ensure circuit methods are defined on pointer receiver so the circuit
	// can keep its column handles
	if reflect.ValueOf(circuit).Kind() != reflect.Ptr {
		return nil, errors.New("frontend.Circuit methods must be defined on pointer receiver")
	}

	cs := newConstraintSystem()
	if err := configureCircuit(cs, circuit); err != nil {
		log.Err(err).Msg("configuring circuit")
		return nil, fmt.Errorf("configure circuit: %w", err)
	}

	system := cs.finalize()
	log.Info().
		Int("nbAdvice", system.NbColumns(constraint.Advice)).
		Int("nbFixed", system.NbColumns(constraint.Fixed)).
		Int("nbInstance", system.NbColumns(constraint.Instance)).
		Int("nbGates", system.NbGates()).
		Msg("configured circuit")

	return system, nil
}

func configureCircuit(cs *ConstraintSystem, circuit Circuit) (err error) {
	// recover from panics to print user-friendlier messages
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v\n%s", r, debug.Stack())
		}
	}()

	return circuit.Configure(cs)
}

// Synthesize runs circuit.Synthesize against a fresh 2^k-row grid for the
// given system and returns the populated grid. The circuit value carries the
// witness; Synthesize only fills the grid, it does not check satisfaction.
func Synthesize(system *constraint.System, circuit Circuit, k int) (*constraint.Grid, error) {
	log := logger.Logger()

	if k < 0 || k > 30 {
		return nil, fmt.Errorf("size parameter k=%d out of range [0, 30]", k)
	}
	nbRows := 1 << k

	grid := constraint.NewGrid(system, nbRows)
	if err := synthesizeCircuit(newSingleChip(grid), circuit); err != nil {
		log.Err(err).Msg("synthesizing circuit")
		return nil, fmt.Errorf("synthesize circuit: %w", err)
	}

	log.Debug().
		Int("nbRows", nbRows).
		Int("usedRows", grid.UsedRows()).
		Int("nbCells", grid.NbAssigned()).
		Msg("synthesized circuit")

	return grid, nil
}

func synthesizeCircuit(api Layouter, circuit Circuit) (err error) {
	// recover from panics to print user-friendlier messages
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v\n%s", r, debug.Stack())
		}
	}()

	return circuit.Synthesize(api)
}
