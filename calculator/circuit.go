package calculator

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/consensys/zkcalc/constraint"
	"github.com/consensys/zkcalc/frontend"
	"github.com/consensys/zkcalc/std/arithmetic"
)

// Circuit proves knowledge of two private operands whose combination under
// a fixed operator equals the first public input.
type Circuit struct {
	a, b frontend.Value
	op   arithmetic.Operator
}

var _ frontend.Circuit[arithmetic.Config] = (*Circuit)(nil)

// NewCircuit builds the witnessed circuit proving a (op) b.
func NewCircuit(a, b fr.Element, op arithmetic.Operator) *Circuit {
	return &Circuit{
		a:  frontend.Known(a),
		b:  frontend.Known(b),
		op: op,
	}
}

// PublicInputs shapes the expected result into the instance assignment the
// circuit verifies against: one instance column holding c at row 0.
func PublicInputs(c fr.Element) [][]fr.Element {
	return [][]fr.Element{{c}}
}

// Configure allocates the two advice columns and the instance column and
// delegates gate construction to the arithmetic chip. All three operator
// gates are registered regardless of the operator tag; the shape never
// branches on it.
func (c *Circuit) Configure(sys *constraint.System) arithmetic.Config {
	a := sys.AdviceColumn()
	b := sys.AdviceColumn()
	instance := sys.InstanceColumn()
	return arithmetic.Configure(sys, a, b, instance)
}

// Synthesize loads both private operands, applies the configured operator
// and exposes the result at instance row 0.
func (c *Circuit) Synthesize(config arithmetic.Config, ly *frontend.Layouter) error {
	chip := arithmetic.NewChip(config)

	a, err := chip.LoadPrivate(ly, c.a)
	if err != nil {
		return err
	}
	b, err := chip.LoadPrivate(ly, c.b)
	if err != nil {
		return err
	}
	out, err := chip.Apply(c.op, ly, a, b)
	if err != nil {
		return err
	}
	return chip.ExposePublic(ly, out, 0)
}

// WithoutWitnesses returns a structurally identical circuit with both
// operands cleared to unknown; the operator tag is preserved.
func (c *Circuit) WithoutWitnesses() frontend.Circuit[arithmetic.Config] {
	return &Circuit{op: c.op}
}
