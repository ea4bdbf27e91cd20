// Package frontend contains the object and logic to define plonkish circuits
// and synthesize their witness grids
package frontend
