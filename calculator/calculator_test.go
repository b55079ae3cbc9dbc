package calculator_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"

	"github.com/consensys/zkcalc/calculator"
	"github.com/consensys/zkcalc/frontend"
	"github.com/consensys/zkcalc/std/arithmetic"
)

func TestCalculatorEval(t *testing.T) {
	assert := require.New(t)
	calc := calculator.New()

	res, err := calc.Eval(calculator.Operation{A: 2, B: 3, Op: arithmetic.OpAdd})
	assert.NoError(err)
	five := fr.NewElement(5)
	assert.True(res.Equal(&five))

	res, err = calc.Eval(calculator.Operation{A: 7, B: 6, Op: arithmetic.OpMul})
	assert.NoError(err)
	fortyTwo := fr.NewElement(42)
	assert.True(res.Equal(&fortyTwo))
}

func TestCalculatorEvalNoOperation(t *testing.T) {
	calc := calculator.New()
	_, err := calc.Eval(calculator.Operation{A: 2, B: 3})
	require.ErrorIs(t, err, arithmetic.ErrNoOperation)
}

func TestCalculatorEvalTooSmallK(t *testing.T) {
	calc := calculator.New(calculator.WithK(1))
	_, err := calc.Eval(calculator.Operation{A: 2, B: 3, Op: arithmetic.OpAdd})
	require.ErrorIs(t, err, frontend.ErrNotEnoughRows)
}

func TestCalculatorRun(t *testing.T) {
	assert := require.New(t)

	in := strings.NewReader("2 + 3\n\n7 * 6\nbogus\n")
	var out bytes.Buffer
	assert.NoError(calculator.New().Run(in, &out))

	got := out.String()
	assert.Contains(got, "enter calculation to perform")
	assert.Contains(got, "result: 5\n")
	assert.Contains(got, "result: 42\n")
	assert.Contains(got, "error: not enough inputs")
}

func TestCalculatorWithGroth16(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping groth16 cycle in short mode")
	}
	assert := require.New(t)

	calc := calculator.New(calculator.WithGroth16())
	res, err := calc.Eval(calculator.Operation{A: 7, B: 6, Op: arithmetic.OpMul})
	assert.NoError(err)
	fortyTwo := fr.NewElement(42)
	assert.True(res.Equal(&fortyTwo))
}
