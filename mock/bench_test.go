package mock_test

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/plonkish/frontend"
	"github.com/consensys/plonkish/mock"
)

// 4096 rows, all assigned
const benchSize = 12

func benchWitness(n int) (xs, outs []fr.Element) {
	xs = make([]fr.Element, n)
	outs = make([]fr.Element, n)
	for i := range xs {
		xs[i] = fr.NewElement(uint64(i + 1))
		outs[i].Mul(&xs[i], &xs[i])
	}
	return xs, outs
}

func BenchmarkSynthesize(b *testing.B) {
	xs, _ := benchWitness(1 << benchSize)
	circuit := &squareCircuit{X: xs}
	system, err := frontend.Configure(circuit)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := frontend.Synthesize(system, circuit, benchSize); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkVerify(b *testing.B) {
	xs, outs := benchWitness(1 << benchSize)
	p, err := mock.Run(benchSize, &squareCircuit{X: xs}, outs)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := p.Verify(); err != nil {
			b.Fatal(err)
		}
	}
}
