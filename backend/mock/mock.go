// Package mock implements a prover that synthesizes a circuit over an
// in-memory trace and checks every constraint directly, without producing a
// proof. It is the development-time harness: a circuit that fails here
// reports the exact gate, row and cells involved.
package mock

import (
	"errors"
	"fmt"

	"github.com/bits-and-blooms/bitset"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"golang.org/x/sync/errgroup"

	"github.com/consensys/zkcalc/constraint"
	"github.com/consensys/zkcalc/debug"
	"github.com/consensys/zkcalc/frontend"
	"github.com/consensys/zkcalc/logger"
)

// ErrInvalidInstance is returned when the provided public inputs do not
// match the instance columns declared by the circuit.
var ErrInvalidInstance = errors.New("invalid instance")

// Prover holds the trace of a synthesized circuit: advice values, selector
// activations, copy constraints and instance bindings. It implements
// frontend.Assignment to collect the trace during synthesis and
// constraint.Trace to evaluate gates over it.
type Prover struct {
	system *constraint.System
	n      int

	advice    [][]fr.Element
	selectors []*bitset.BitSet
	instance  [][]fr.Element

	copies   [][2]constraint.Cell
	bindings []binding
}

type binding struct {
	cell constraint.Cell
	col  constraint.Column
	row  int
}

// Run configures and synthesizes the circuit over a trace of 2^k rows
// against the provided instance values, one slice per instance column. The
// returned prover holds the full trace; call Verify to check it against the
// constraint system.
func Run[C any](k uint, circuit frontend.Circuit[C], instance [][]fr.Element) (p *Prover, err error) {
	log := logger.Logger()

	defer func() {
		if r := recover(); r != nil {
			p = nil
			err = fmt.Errorf("%v\n%s", r, debug.Stack())
		}
	}()

	sys := constraint.NewSystem()
	config := circuit.Configure(&sys)

	if len(instance) != sys.NbInstance {
		return nil, fmt.Errorf("%w: %d columns provided, circuit declares %d", ErrInvalidInstance, len(instance), sys.NbInstance)
	}
	n := 1 << k
	for i := range instance {
		if len(instance[i]) > n {
			return nil, fmt.Errorf("%w: column %d holds %d values, trace has %d rows", ErrInvalidInstance, i, len(instance[i]), n)
		}
	}

	p = &Prover{
		system:    &sys,
		n:         n,
		advice:    make([][]fr.Element, sys.NbAdvice),
		selectors: make([]*bitset.BitSet, sys.NbSelectors),
		instance:  instance,
	}
	for i := range p.advice {
		p.advice[i] = make([]fr.Element, n)
	}
	for i := range p.selectors {
		p.selectors[i] = bitset.New(uint(n))
	}

	if err := circuit.Synthesize(config, frontend.NewLayouter(p)); err != nil {
		return nil, fmt.Errorf("synthesize circuit: %w", err)
	}

	log.Debug().Int("rows", n).Int("nbGates", len(sys.Gates)).Msg("circuit synthesized")
	return p, nil
}

// Verify checks the trace against every gate polynomial on every row, then
// against the copy constraints and instance bindings. On failure it returns
// a VerifyError listing every violated constraint.
func (p *Prover) Verify() error {
	// gates are checked in parallel; failures are reported in gate order
	perGate := make([][]Failure, len(p.system.Gates))
	var g errgroup.Group
	for i := range p.system.Gates {
		g.Go(func() error {
			gate := p.system.Gates[i]
			for _, poly := range gate.Polys {
				for row := 0; row < p.n; row++ {
					if v := poly.EvalAt(row, p); !v.IsZero() {
						perGate[i] = append(perGate[i], GateFailure{
							Gate: gate.Name,
							Poly: poly.String(),
							Row:  row,
							Eval: v,
						})
					}
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var failures []Failure
	for _, fs := range perGate {
		failures = append(failures, fs...)
	}

	for _, pair := range p.copies {
		va := p.cellValue(pair[0])
		vb := p.cellValue(pair[1])
		if !va.Equal(&vb) {
			failures = append(failures, CopyFailure{A: pair[0], B: pair[1], ValueA: va, ValueB: vb})
		}
	}

	for _, b := range p.bindings {
		got := p.cellValue(b.cell)
		want := p.instance[b.col.Index][b.row]
		if !got.Equal(&want) {
			failures = append(failures, InstanceFailure{Cell: b.cell, Column: b.col, Row: b.row, Got: got, Want: want})
		}
	}

	if len(failures) > 0 {
		return &VerifyError{Failures: failures}
	}
	return nil
}

// System returns the constraint system the circuit was configured on.
func (p *Prover) System() *constraint.System { return p.system }

// EnableSelector implements frontend.Assignment.
func (p *Prover) EnableSelector(s constraint.Selector, row int) error {
	if s.Index < 0 || s.Index >= len(p.selectors) {
		return fmt.Errorf("%s was not allocated on this system", s)
	}
	if row < 0 || row >= p.n {
		return fmt.Errorf("row %d out of range", row)
	}
	p.selectors[s.Index].Set(uint(row))
	return nil
}

// AssignAdvice implements frontend.Assignment. The mock prover requires
// every assigned value to be known.
func (p *Prover) AssignAdvice(c constraint.Column, row int, v frontend.Value) error {
	if c.Kind != constraint.ColumnAdvice || c.Index < 0 || c.Index >= len(p.advice) {
		return fmt.Errorf("%s was not allocated on this system", c)
	}
	if row < 0 || row >= p.n {
		return fmt.Errorf("row %d out of range", row)
	}
	value, known := v.Get()
	if !known {
		return fmt.Errorf("cannot assign unknown value to %s", constraint.Cell{Column: c, Row: row})
	}
	p.advice[c.Index][row] = value
	return nil
}

// Copy implements frontend.Assignment. Both endpoints must sit in an
// equality-enabled column.
func (p *Prover) Copy(a, b constraint.Cell) error {
	for _, cell := range []constraint.Cell{a, b} {
		if !p.system.IsEqualityEnabled(cell.Column) {
			return fmt.Errorf("cannot copy %s: equality is not enabled on %s", cell, cell.Column)
		}
	}
	p.copies = append(p.copies, [2]constraint.Cell{a, b})
	return nil
}

// ConstrainInstance implements frontend.Assignment. The instance row must be
// covered by the values provided to Run.
func (p *Prover) ConstrainInstance(cell constraint.Cell, c constraint.Column, row int) error {
	if c.Kind != constraint.ColumnInstance || c.Index < 0 || c.Index >= len(p.instance) {
		return fmt.Errorf("%s was not allocated on this system", c)
	}
	if row < 0 || row >= len(p.instance[c.Index]) {
		return fmt.Errorf("%w: no value provided for %s row %d", ErrInvalidInstance, c, row)
	}
	if !p.system.IsEqualityEnabled(cell.Column) || !p.system.IsEqualityEnabled(c) {
		return fmt.Errorf("cannot constrain %s against %s: equality is not enabled", cell, c)
	}
	p.bindings = append(p.bindings, binding{cell: cell, col: c, row: row})
	return nil
}

// Advice implements constraint.Trace. Rotations wrap around the last row.
func (p *Prover) Advice(column, row int) fr.Element {
	return p.advice[column][((row%p.n)+p.n)%p.n]
}

// Selector implements constraint.Trace.
func (p *Prover) Selector(selector, row int) bool {
	return p.selectors[selector].Test(uint(((row % p.n) + p.n) % p.n))
}

// Height implements frontend.Assignment and constraint.Trace.
func (p *Prover) Height() int { return p.n }

func (p *Prover) cellValue(cell constraint.Cell) fr.Element {
	switch cell.Column.Kind {
	case constraint.ColumnAdvice:
		return p.Advice(cell.Column.Index, cell.Row)
	case constraint.ColumnInstance:
		if cell.Row < len(p.instance[cell.Column.Index]) {
			return p.instance[cell.Column.Index][cell.Row]
		}
	}
	return fr.Element{}
}
