package mock

import (
	"fmt"
	"runtime"
	"time"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/plonkish/constraint"
	"github.com/consensys/plonkish/frontend"
	"github.com/consensys/plonkish/logger"
	"golang.org/x/sync/errgroup"
)

// Prover holds one synthesized instance of a circuit together with its public
// values, ready for checking. A Prover is immutable; Verify and
// AssertSatisfied may be called any number of times with identical results.
type Prover struct {
	system    *constraint.System
	grid      *constraint.Grid
	instances [][]fr.Element
}

// Run configures the circuit, synthesizes its witness into a fresh 2^k-row
// grid and wraps the result in a Prover.
func Run(k int, circuit frontend.Circuit, instances ...[]fr.Element) (*Prover, error) {
	system, err := frontend.Configure(circuit)
	if err != nil {
		return nil, err
	}
	grid, err := frontend.Synthesize(system, circuit, k)
	if err != nil {
		return nil, err
	}
	return New(system, grid, instances...)
}

// New wraps an already synthesized grid in a Prover. One instance vector must
// be supplied per registered instance column, in registration order.
func New(system *constraint.System, grid *constraint.Grid, instances ...[]fr.Element) (*Prover, error) {
	if len(instances) != system.NbColumns(constraint.Instance) {
		return nil, fmt.Errorf("got %d instance vector(s) for %d instance column(s)",
			len(instances), system.NbColumns(constraint.Instance))
	}
	return &Prover{system: system, grid: grid, instances: instances}, nil
}

// System returns the circuit description the prover checks against.
func (p *Prover) System() *constraint.System { return p.system }

// Grid returns the synthesized assignment.
func (p *Prover) Grid() *constraint.Grid { return p.grid }

// AssertSatisfied scans rows in order and gates in registration order and
// returns the first violation, or nil if every gate vanishes on every row.
func (p *Prover) AssertSatisfied() error {
	if err := p.checkInstances(); err != nil {
		return err
	}

	tr := p.trace()
	for r := 0; r < p.grid.NbRows(); r++ {
		for i, gate := range p.system.Gates() {
			if v := gate.Expr.EvalAt(r, tr); !v.IsZero() {
				return &Violation{Gate: gate.Name, GateIndex: i, Row: r}
			}
		}
	}
	return nil
}

// Verify evaluates every gate on every row and returns the full list of
// violations, ordered by row then by gate registration order. Rows are
// checked in parallel; the report is deterministic.
func (p *Prover) Verify() ([]Violation, error) {
	if err := p.checkInstances(); err != nil {
		return nil, err
	}

	log := logger.Logger()
	start := time.Now()

	nbRows := p.grid.NbRows()
	tr := p.trace()

	nbWorkers := runtime.NumCPU()
	if nbWorkers > nbRows {
		nbWorkers = nbRows
	}
	chunk := (nbRows + nbWorkers - 1) / nbWorkers

	// rows are independent; each worker scans a contiguous chunk so the
	// concatenated results are already in row order
	results := make([][]Violation, nbWorkers)
	var g errgroup.Group
	for w := 0; w < nbWorkers; w++ {
		from, to := w*chunk, (w+1)*chunk
		if to > nbRows {
			to = nbRows
		}
		slot := w
		g.Go(func() error {
			var found []Violation
			for r := from; r < to; r++ {
				for i, gate := range p.system.Gates() {
					if v := gate.Expr.EvalAt(r, tr); !v.IsZero() {
						found = append(found, Violation{Gate: gate.Name, GateIndex: i, Row: r})
					}
				}
			}
			results[slot] = found
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var report []Violation
	for _, found := range results {
		report = append(report, found...)
	}

	log.Debug().
		Dur("took", time.Since(start)).
		Int("nbRows", nbRows).
		Int("nbViolations", len(report)).
		Msg("checked circuit")

	return report, nil
}

// checkInstances guards both check modes: every instance vector must cover
// the rows the circuit's instance queries reach.
func (p *Prover) checkInstances() error {
	if !p.system.QueriesInstance() {
		return nil
	}
	needed := p.grid.UsedRows() + int(p.system.MaxInstanceRotation())
	for i, vec := range p.instances {
		if len(vec) < needed {
			return &InstanceLengthMismatch{
				Column: constraint.NewColumn(constraint.Instance, i),
				Needed: needed,
				Got:    len(vec),
			}
		}
	}
	return nil
}

func (p *Prover) trace() constraint.Trace {
	return &fullTrace{grid: p.grid, instances: p.instances}
}

// fullTrace resolves instance queries against the public vectors and every
// other query against the grid. Blank cells, rows outside the grid and
// instance rows past the supplied vector read as zero.
type fullTrace struct {
	grid      *constraint.Grid
	instances [][]fr.Element
}

func (t *fullTrace) CellValue(col constraint.Column, row int) fr.Element {
	if col.Kind() != constraint.Instance {
		return t.grid.CellValue(col, row)
	}
	var zero fr.Element
	if col.Index() < 0 || col.Index() >= len(t.instances) {
		return zero
	}
	vec := t.instances[col.Index()]
	if row < 0 || row >= len(vec) {
		return zero
	}
	return vec[row]
}
