// Package calculator turns parsed arithmetic expressions into proved
// statements: each evaluation builds the operator circuit, runs the mock
// prover and returns the result only once verification has accepted it.
package calculator

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/consensys/zkcalc/backend/groth16"
	"github.com/consensys/zkcalc/backend/mock"
	"github.com/consensys/zkcalc/logger"
)

// 2**k must exceed the number of rows the circuit occupies; the operator
// circuit fills four rows, so 4 leaves ample margin.
const defaultK = 4

// Option configures a Calculator.
type Option func(*Calculator)

// WithK sets the circuit size parameter: the constraint table holds 2**k
// rows.
func WithK(k uint) Option {
	return func(c *Calculator) { c.k = k }
}

// WithGroth16 makes Eval run a real Groth16 proving cycle after the mock
// prover has accepted the statement.
func WithGroth16() Option {
	return func(c *Calculator) { c.groth16 = true }
}

// Calculator evaluates parsed operations by proving them.
type Calculator struct {
	k       uint
	groth16 bool
}

// New returns a Calculator with the default circuit size.
func New(opts ...Option) *Calculator {
	c := &Calculator{k: defaultK}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Eval proves and verifies op, returning the public result c = a (op) b.
// A result is only ever returned alongside a successful verification.
func (c *Calculator) Eval(op Operation) (fr.Element, error) {
	a := fr.NewElement(op.A)
	b := fr.NewElement(op.B)

	expected, err := op.Op.Eval(a, b)
	if err != nil {
		return fr.Element{}, err
	}

	circuit := NewCircuit(a, b, op.Op)
	prover, err := mock.Run(c.k, circuit, PublicInputs(expected))
	if err != nil {
		return fr.Element{}, fmt.Errorf("prover: %w", err)
	}
	if err := prover.Verify(); err != nil {
		return fr.Element{}, fmt.Errorf("verifier: %w", err)
	}

	if c.groth16 {
		if err := groth16.ProveVerify(op.Op, a, b, expected); err != nil {
			return fr.Element{}, fmt.Errorf("groth16: %w", err)
		}
	}

	log := logger.Logger()
	log.Debug().Str("op", op.Op.String()).Uint64("a", op.A).Uint64("b", op.B).Str("c", expected.String()).Msg("operation proved")

	return expected, nil
}

// Run drives the calculator interactively: it prints the banner, then
// reads one calculation per line from r until EOF, proving each and
// writing results and errors to w.
func (c *Calculator) Run(r io.Reader, w io.Writer) error {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "/- ---------------------------------------------- -/")
	fmt.Fprintln(w, "/- enter calculation to perform (format: `a + b`) -/")

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		op, err := Parse(line)
		if err != nil {
			fmt.Fprintf(w, "error: %v\n", err)
			continue
		}

		res, err := c.Eval(op)
		if err != nil {
			fmt.Fprintf(w, "error: %v\n", err)
			continue
		}

		fmt.Fprintf(w, "proof generation successful!\nresult: %s\n", res.String())
	}
	return scanner.Err()
}
