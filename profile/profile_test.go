package profile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/plonkish/constraint"
	"github.com/consensys/plonkish/frontend"
	"github.com/consensys/plonkish/mock"
	"github.com/consensys/plonkish/profile"
	pprofile "github.com/google/pprof/profile"
	"github.com/stretchr/testify/require"
)

type squaresCircuit struct {
	X []fr.Element

	colX constraint.Column
	out  constraint.Column
}

func (circuit *squaresCircuit) Configure(cs *frontend.ConstraintSystem) error {
	circuit.colX = cs.AdviceColumn()
	circuit.out = cs.InstanceColumn()
	cs.CreateGate("square", func(cells *frontend.VirtualCells) constraint.Expression {
		x := cells.QueryAdvice(circuit.colX, constraint.RotationCur)
		out := cells.QueryInstance(circuit.out, constraint.RotationCur)
		return constraint.Subtract(out, constraint.Product(x, x))
	})
	return nil
}

func (circuit *squaresCircuit) Synthesize(api frontend.Layouter) error {
	return api.AssignRegion("squares", func(region *frontend.Region) error {
		for i, x := range circuit.X {
			if err := region.AssignAdvice(circuit.colX, i, x); err != nil {
				return err
			}
		}
		return nil
	})
}

func elements(vs ...uint64) []fr.Element {
	r := make([]fr.Element, len(vs))
	for i, v := range vs {
		r[i] = fr.NewElement(v)
	}
	return r
}

func TestProfileCountsCells(t *testing.T) {
	assert := require.New(t)

	p := profile.Start(profile.WithNoOutput())
	_, err := mock.Run(4, &squaresCircuit{X: elements(2, 3, 4)}, elements(4, 9, 16))
	p.Stop()
	assert.NoError(err)

	// one sample per staged cell
	assert.Equal(3, p.NbAssignments())

	top := p.Top()
	assert.Contains(top, "AssignAdvice")
	assert.Contains(top, "Synthesize")
}

func TestProfileOverlappingSessions(t *testing.T) {
	assert := require.New(t)

	outer := profile.Start(profile.WithNoOutput())
	_, err := mock.Run(4, &squaresCircuit{X: elements(2)}, elements(4))
	assert.NoError(err)

	inner := profile.Start(profile.WithNoOutput())
	_, err = mock.Run(4, &squaresCircuit{X: elements(2, 3)}, elements(4, 9))
	assert.NoError(err)
	inner.Stop()
	outer.Stop()

	assert.Equal(2, inner.NbAssignments())
	assert.Equal(3, outer.NbAssignments())
}

func TestProfileWritesFile(t *testing.T) {
	assert := require.New(t)

	path := filepath.Join(t.TempDir(), "synth.pprof")
	p := profile.Start(profile.WithPath(path))
	_, err := mock.Run(4, &squaresCircuit{X: elements(5)}, elements(25))
	p.Stop()
	assert.NoError(err)

	f, err := os.Open(path)
	assert.NoError(err)
	defer f.Close()

	prof, err := pprofile.Parse(f)
	assert.NoError(err)
	assert.Len(prof.Sample, 1)
	assert.Equal("cells", prof.SampleType[0].Type)
}
