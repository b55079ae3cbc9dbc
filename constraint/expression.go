package constraint

import (
	"fmt"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Trace provides the evaluation context for gate polynomials: the resolved
// advice cells and selector activations over a fixed number of rows. Row
// arguments may fall outside [0, Height); implementations resolve them
// modulo Height, so the table behaves as a cyclic buffer under rotations.
type Trace interface {
	// Advice returns the value of the advice column at the given row.
	Advice(column, row int) fr.Element
	// Selector reports whether the selector is enabled at the given row.
	Selector(selector, row int) bool
	// Height returns the number of rows in the trace.
	Height() int
}

// Expression is a multivariate polynomial over the columns of the system,
// evaluated row by row against a trace. A gate polynomial must evaluate to
// zero on every row for the trace to satisfy the gate.
type Expression interface {
	// EvalAt evaluates the expression at the given row of the trace.
	EvalAt(row int, tr Trace) fr.Element

	fmt.Stringer
}

// Add represents the sum over zero or more expressions.
type Add struct{ Args []Expression }

func (p *Add) EvalAt(row int, tr Trace) fr.Element {
	var acc fr.Element
	for _, arg := range p.Args {
		v := arg.EvalAt(row, tr)
		acc.Add(&acc, &v)
	}
	return acc
}

func (p *Add) String() string { return naryString(p.Args, " + ") }

// Sub represents the subtraction of the subsequent expressions from the
// first one.
type Sub struct{ Args []Expression }

func (p *Sub) EvalAt(row int, tr Trace) fr.Element {
	var acc fr.Element
	for i, arg := range p.Args {
		v := arg.EvalAt(row, tr)
		if i == 0 {
			acc = v
			continue
		}
		acc.Sub(&acc, &v)
	}
	return acc
}

func (p *Sub) String() string { return naryString(p.Args, " - ") }

// Mul represents the product over zero or more expressions.
type Mul struct{ Args []Expression }

func (p *Mul) EvalAt(row int, tr Trace) fr.Element {
	acc := fr.One()
	for _, arg := range p.Args {
		v := arg.EvalAt(row, tr)
		acc.Mul(&acc, &v)
	}
	return acc
}

func (p *Mul) String() string {
	args := make([]string, len(p.Args))
	for i, arg := range p.Args {
		args[i] = arg.String()
	}
	return strings.Join(args, " * ")
}

// Constant represents a constant value within an expression.
type Constant struct{ Value fr.Element }

func (p *Constant) EvalAt(row int, tr Trace) fr.Element { return p.Value }

func (p *Constant) String() string { return p.Value.String() }

// ColumnAccess represents reading the value held at a given advice column,
// with the current row shifted by Shift. When a gate evaluated at row k
// contains the accesses "advice[0]" and "advice[0]@+1", the former reads
// row k and the latter reads row k+1.
type ColumnAccess struct {
	Column Column
	Shift  Rotation
}

func (p *ColumnAccess) EvalAt(row int, tr Trace) fr.Element {
	return tr.Advice(p.Column.Index, row+int(p.Shift))
}

func (p *ColumnAccess) String() string {
	if p.Shift == RotationCur {
		return p.Column.String()
	}
	return fmt.Sprintf("%s@%+d", p.Column, int(p.Shift))
}

// SelectorAccess represents reading a selector on the current row. It
// evaluates to one where the selector is enabled and zero elsewhere, so
// multiplying a gate polynomial by its selector confines the gate to the
// rows it was enabled on.
type SelectorAccess struct {
	Selector Selector
}

func (p *SelectorAccess) EvalAt(row int, tr Trace) fr.Element {
	if tr.Selector(p.Selector.Index, row) {
		return fr.One()
	}
	return fr.Element{}
}

func (p *SelectorAccess) String() string { return p.Selector.String() }

func naryString(args []Expression, op string) string {
	var sbb strings.Builder
	sbb.WriteByte('(')
	for i, arg := range args {
		if i > 0 {
			sbb.WriteString(op)
		}
		sbb.WriteString(arg.String())
	}
	sbb.WriteByte(')')
	return sbb.String()
}

// Sum builds the sum of the given expressions.
func Sum(exprs ...Expression) Expression {
	return &Add{Args: exprs}
}

// Subtract builds the subtraction of the subsequent expressions from the
// first one.
func Subtract(exprs ...Expression) Expression {
	return &Sub{Args: exprs}
}

// Product builds the product of the given expressions.
func Product(exprs ...Expression) Expression {
	return &Mul{Args: exprs}
}

// NewConst builds an expression representing a given constant.
func NewConst(val fr.Element) Expression {
	return &Constant{Value: val}
}

// NewConst64 builds an expression representing a given constant from a
// uint64.
func NewConst64(val uint64) Expression {
	return &Constant{Value: fr.NewElement(val)}
}
