// Package plonkish provides a minimal plonkish arithmetization core: typed
// columns, polynomial gates, region based witness assignment and a mock
// prover that checks gate satisfaction against public inputs.
//
// A circuit is described once (frontend.Configure), synthesized into a value
// grid per witness (frontend.Synthesize), and checked row by row against its
// gates (package mock). No proof is produced; the point is precise feedback
// about which identity fails where.
//
// Circuits are defined over the scalar field of the BN254 curve.
package plonkish

import (
	"math/big"

	"github.com/blang/semver/v4"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

var Version = semver.MustParse("0.1.0")

// ScalarField returns the modulus of the field circuit values live in.
func ScalarField() *big.Int {
	return fr.Modulus()
}
