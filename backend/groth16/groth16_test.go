package groth16_test

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"

	"github.com/consensys/zkcalc/backend/groth16"
	"github.com/consensys/zkcalc/std/arithmetic"
)

func TestProveVerifyAllOperations(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping groth16 cycles in short mode")
	}
	assert := require.New(t)

	a, b := fr.NewElement(7), fr.NewElement(5)
	for _, op := range arithmetic.Operators() {
		c, err := op.Eval(a, b)
		assert.NoError(err)
		assert.NoError(groth16.ProveVerify(op, a, b, c), "op %s", op)
	}

	// 3 - 5 wraps around the modulus; the public input is a full-size
	// field element
	three, five := fr.NewElement(3), fr.NewElement(5)
	c, err := arithmetic.OpSub.Eval(three, five)
	assert.NoError(err)
	assert.NoError(groth16.ProveVerify(arithmetic.OpSub, three, five, c))
}

func TestProveVerifyWrongResult(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping groth16 cycles in short mode")
	}

	err := groth16.ProveVerify(arithmetic.OpAdd, fr.NewElement(7), fr.NewElement(5), fr.NewElement(13))
	require.Error(t, err)
}

func TestProveVerifyUnsetOperator(t *testing.T) {
	var op arithmetic.Operator
	err := groth16.ProveVerify(op, fr.NewElement(1), fr.NewElement(2), fr.NewElement(3))
	require.ErrorIs(t, err, arithmetic.ErrNoOperation)
}
