// Package arithmetic provides a chip proving c = a (op) b over the scalar
// field, one gate per operator.
//
// The chip lays out two advice columns a and b. A gate row reads its
// operands from a and b and its result from column a on the next row;
// enabling the gate's selector on a row activates the identity there and
// nowhere else. Operands are copied into gate rows through equality
// constraints and results are exposed through an instance column.
package arithmetic

import (
	"errors"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/consensys/zkcalc/constraint"
	"github.com/consensys/zkcalc/frontend"
)

// ErrNoOperation is returned when the zero Operator value is used.
var ErrNoOperation = errors.New("no operation set")

// Operator selects one of the arithmetic gates. The zero value is invalid;
// every use must name its operator explicitly.
type Operator uint8

const (
	opUnset Operator = iota
	OpAdd
	OpSub
	OpMul
)

// Operators lists the supported operators in gate registration order.
func Operators() []Operator {
	return []Operator{OpAdd, OpSub, OpMul}
}

type gateSpec struct {
	name     string
	symbol   string
	combine  func(x, y frontend.Value) frontend.Value
	identity func(lhs, rhs, out constraint.Expression) constraint.Expression
}

// gates is indexed by Operator; entry 0 is the invalid zero value.
var gates = [...]gateSpec{
	OpAdd: {
		name:    "add",
		symbol:  "+",
		combine: frontend.Value.Add,
		identity: func(lhs, rhs, out constraint.Expression) constraint.Expression {
			return constraint.Subtract(constraint.Sum(lhs, rhs), out)
		},
	},
	OpSub: {
		name:    "sub",
		symbol:  "-",
		combine: frontend.Value.Sub,
		identity: func(lhs, rhs, out constraint.Expression) constraint.Expression {
			return constraint.Subtract(lhs, rhs, out)
		},
	},
	OpMul: {
		name:    "mul",
		symbol:  "*",
		combine: frontend.Value.Mul,
		identity: func(lhs, rhs, out constraint.Expression) constraint.Expression {
			return constraint.Subtract(constraint.Product(lhs, rhs), out)
		},
	},
}

func (op Operator) spec() (*gateSpec, error) {
	if op == opUnset || int(op) >= len(gates) {
		return nil, ErrNoOperation
	}
	return &gates[op], nil
}

// String returns the operator's symbol, or "?" for the zero value.
func (op Operator) String() string {
	spec, err := op.spec()
	if err != nil {
		return "?"
	}
	return spec.symbol
}

// Eval computes x (op) y in the scalar field. It is the reference value the
// circuit result is checked against; like all field arithmetic it wraps
// around the modulus.
func (op Operator) Eval(x, y fr.Element) (fr.Element, error) {
	spec, err := op.spec()
	if err != nil {
		return fr.Element{}, err
	}
	v, _ := spec.combine(frontend.Known(x), frontend.Known(y)).Get()
	return v, nil
}

// Config holds the columns and selectors the chip operates on.
type Config struct {
	A        constraint.Column
	B        constraint.Column
	Instance constraint.Column

	Selectors map[Operator]constraint.Selector
}

// Configure registers the three arithmetic gates on the system over the
// given columns. Equality is enabled on all three columns so operands can
// be copied into gate rows and results exposed to the instance.
func Configure(sys *constraint.System, a, b, instance constraint.Column) Config {
	cfg := Config{
		A:         a,
		B:         b,
		Instance:  instance,
		Selectors: make(map[Operator]constraint.Selector, len(gates)-1),
	}

	sys.EnableEquality(a)
	sys.EnableEquality(b)
	sys.EnableEquality(instance)

	for _, op := range Operators() {
		spec := &gates[op]
		sel := sys.Selector()
		sys.CreateGate(spec.name, func(v *constraint.VirtualCells) []constraint.Expression {
			lhs := v.QueryAdvice(a, constraint.RotationCur)
			rhs := v.QueryAdvice(b, constraint.RotationCur)
			out := v.QueryAdvice(a, constraint.RotationNext)
			s := v.QuerySelector(sel)
			return []constraint.Expression{
				constraint.Product(s, spec.identity(lhs, rhs, out)),
			}
		})
		cfg.Selectors[op] = sel
	}

	return cfg
}

// Chip lays out arithmetic operations over a configured set of columns.
type Chip struct {
	config Config
}

// NewChip returns a chip operating on the given configuration.
func NewChip(config Config) *Chip {
	return &Chip{config: config}
}

// LoadPrivate assigns a witness value into its own single-row region and
// returns the cell so it can be copied into gate rows.
func (ch *Chip) LoadPrivate(ly *frontend.Layouter, v frontend.Value) (frontend.AssignedCell, error) {
	var cell frontend.AssignedCell
	err := ly.AssignRegion("load private", func(r *frontend.Region) error {
		var err error
		cell, err = r.AssignAdvice(ch.config.A, 0, v)
		return err
	})
	return cell, err
}

// Apply lays out one application of the operator's gate: the operands are
// copied onto the gate row and the result is assigned on the row below.
func (ch *Chip) Apply(op Operator, ly *frontend.Layouter, x, y frontend.AssignedCell) (frontend.AssignedCell, error) {
	spec, err := op.spec()
	if err != nil {
		return frontend.AssignedCell{}, err
	}

	var out frontend.AssignedCell
	err = ly.AssignRegion(spec.name, func(r *frontend.Region) error {
		if err := r.EnableSelector(ch.config.Selectors[op], 0); err != nil {
			return err
		}
		lhs, err := r.CopyAdvice(x, ch.config.A, 0)
		if err != nil {
			return err
		}
		rhs, err := r.CopyAdvice(y, ch.config.B, 0)
		if err != nil {
			return err
		}
		out, err = r.AssignAdvice(ch.config.A, 1, spec.combine(lhs.Value(), rhs.Value()))
		return err
	})
	return out, err
}

// ExposePublic binds a result cell to a row of the instance column.
func (ch *Chip) ExposePublic(ly *frontend.Layouter, cell frontend.AssignedCell, row int) error {
	return ly.ConstrainInstance(cell.Cell(), ch.config.Instance, row)
}
