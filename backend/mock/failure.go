package mock

import (
	"fmt"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/consensys/zkcalc/constraint"
)

// Failure describes a single violated constraint.
type Failure interface {
	error
	failure()
}

// GateFailure reports a gate polynomial that does not evaluate to zero.
type GateFailure struct {
	Gate string
	Poly string
	Row  int
	Eval fr.Element
}

func (f GateFailure) Error() string {
	return fmt.Sprintf("gate %q: %s = %s at row %d", f.Gate, f.Poly, f.Eval.String(), f.Row)
}

func (GateFailure) failure() {}

// CopyFailure reports two cells constrained to be equal holding different
// values.
type CopyFailure struct {
	A, B           constraint.Cell
	ValueA, ValueB fr.Element
}

func (f CopyFailure) Error() string {
	return fmt.Sprintf("copy constraint %s = %s: %s != %s", f.A, f.B, f.ValueA.String(), f.ValueB.String())
}

func (CopyFailure) failure() {}

// InstanceFailure reports a cell bound to an instance value it does not
// match.
type InstanceFailure struct {
	Cell   constraint.Cell
	Column constraint.Column
	Row    int
	Got    fr.Element
	Want   fr.Element
}

func (f InstanceFailure) Error() string {
	return fmt.Sprintf("instance binding %s = %s@%d: %s != %s", f.Cell, f.Column, f.Row, f.Got.String(), f.Want.String())
}

func (InstanceFailure) failure() {}

// VerifyError aggregates every constraint violated by a trace.
type VerifyError struct {
	Failures []Failure
}

func (e *VerifyError) Error() string {
	var sbb strings.Builder
	fmt.Fprintf(&sbb, "%d constraint(s) are not satisfied", len(e.Failures))
	for _, f := range e.Failures {
		sbb.WriteString("\n\t")
		sbb.WriteString(f.Error())
	}
	return sbb.String()
}
