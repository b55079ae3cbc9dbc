// Package zkcalc provides a small PLONKish arithmetic circuit and the tooling
// to prove, without revealing them, knowledge of two private operands whose
// sum, difference or product equals a public result.
//
// The repository is organised like a miniature proving stack:
//   - constraint holds the circuit shape: columns, selectors and gates
//   - frontend holds the synthesis API: values, regions and the layouter
//   - std/arithmetic implements the three operator gates behind one chip
//   - backend/mock checks a witnessed circuit directly, without a proof
//   - backend/groth16 delegates the same statement to a real SNARK
//   - calculator parses "a <op> b" lines and drives the above
//
// All arithmetic is over the scalar field of BN254; subtraction below zero
// wraps modulo the field characteristic.
package zkcalc

import "github.com/blang/semver/v4"

// Version of the zkcalc library, recorded in serialized circuit shapes.
var Version = semver.MustParse("0.1.0")
