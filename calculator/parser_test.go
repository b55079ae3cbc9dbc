package calculator_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/consensys/zkcalc/calculator"
	"github.com/consensys/zkcalc/std/arithmetic"
)

func TestParse(t *testing.T) {
	assert := require.New(t)

	cases := []struct {
		line string
		want calculator.Operation
	}{
		{"2 + 3", calculator.Operation{A: 2, B: 3, Op: arithmetic.OpAdd}},
		{"7 - 5", calculator.Operation{A: 7, B: 5, Op: arithmetic.OpSub}},
		{"  4 \t *  6  ", calculator.Operation{A: 4, B: 6, Op: arithmetic.OpMul}},
		{"18446744073709551615 + 0", calculator.Operation{A: 18446744073709551615, Op: arithmetic.OpAdd}},
	}
	for _, tc := range cases {
		op, err := calculator.Parse(tc.line)
		assert.NoError(err, tc.line)
		assert.Equal(tc.want, op, tc.line)
	}
}

func TestParseErrors(t *testing.T) {
	assert := require.New(t)

	cases := []struct {
		line string
		want error
	}{
		{"", calculator.ErrNotEnoughInputs},
		{"2 +", calculator.ErrNotEnoughInputs},
		{"2 + 3 4", calculator.ErrTooManyInputs},
		{"2 / 3", calculator.ErrInvalidOperator},
		{"2 plus 3", calculator.ErrInvalidOperator},
		{"x + 3", calculator.ErrInvalidOperand},
		{"2 + -3", calculator.ErrInvalidOperand},
		{"2.5 + 3", calculator.ErrInvalidOperand},
	}
	for _, tc := range cases {
		_, err := calculator.Parse(tc.line)
		assert.ErrorIs(err, tc.want, tc.line)
	}
}
