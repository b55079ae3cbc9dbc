package constraint

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"
)

type tableTrace struct {
	advice    [][]fr.Element
	selectors [][]bool
}

func (tr *tableTrace) Advice(column, row int) fr.Element {
	n := len(tr.advice[column])
	return tr.advice[column][((row%n)+n)%n]
}

func (tr *tableTrace) Selector(selector, row int) bool {
	n := len(tr.selectors[selector])
	return tr.selectors[selector][((row%n)+n)%n]
}

func (tr *tableTrace) Height() int { return len(tr.advice[0]) }

func testTrace() *tableTrace {
	return &tableTrace{
		advice: [][]fr.Element{
			{fr.NewElement(3), fr.NewElement(5)},
			{fr.NewElement(7), fr.NewElement(11)},
		},
		selectors: [][]bool{{true, false}},
	}
}

func TestExpressionEval(t *testing.T) {
	assert := require.New(t)
	tr := testTrace()

	lhs := &ColumnAccess{Column: Column{Index: 0, Kind: ColumnAdvice}}
	rhs := &ColumnAccess{Column: Column{Index: 1, Kind: ColumnAdvice}}
	out := &ColumnAccess{Column: Column{Index: 0, Kind: ColumnAdvice}, Shift: RotationNext}
	sel := &SelectorAccess{Selector: Selector{Index: 0}}

	expect := func(e Expression, row int, want uint64) {
		t.Helper()
		got := e.EvalAt(row, tr)
		expected := fr.NewElement(want)
		assert.True(got.Equal(&expected), "%s at row %d: got %s, want %d", e, row, got.String(), want)
	}

	expect(lhs, 0, 3)
	expect(lhs, 1, 5)
	expect(rhs, 0, 7)
	expect(Sum(lhs, rhs), 0, 10)
	expect(Subtract(rhs, lhs), 1, 6)
	expect(Product(lhs, rhs), 1, 55)
	expect(NewConst64(42), 0, 42)
	expect(NewConst(fr.NewElement(13)), 1, 13)
	expect(sel, 0, 1)
	expect(sel, 1, 0)

	// rotations wrap around the last row
	expect(out, 0, 5)
	expect(out, 1, 3)
	prev := &ColumnAccess{Column: Column{Index: 0, Kind: ColumnAdvice}, Shift: -1}
	expect(prev, 0, 5)

	// identity elements of the empty forms
	expect(Sum(), 0, 0)
	expect(Subtract(), 0, 0)
	expect(Product(), 0, 1)

	// the add gate identity vanishes when out = lhs + rhs
	tr.advice[0][1] = fr.NewElement(10)
	gate := Product(sel, Subtract(Sum(lhs, rhs), out))
	v := gate.EvalAt(0, tr)
	assert.True(v.IsZero(), "expected gate to vanish, got %s", v.String())
}

func TestExpressionString(t *testing.T) {
	assert := require.New(t)

	lhs := &ColumnAccess{Column: Column{Index: 0, Kind: ColumnAdvice}}
	rhs := &ColumnAccess{Column: Column{Index: 1, Kind: ColumnAdvice}}
	out := &ColumnAccess{Column: Column{Index: 0, Kind: ColumnAdvice}, Shift: RotationNext}
	sel := &SelectorAccess{Selector: Selector{Index: 2}}

	assert.Equal("advice[0]", lhs.String())
	assert.Equal("advice[0]@+1", out.String())
	assert.Equal("selector[2]", sel.String())
	assert.Equal("(advice[0] + advice[1])", Sum(lhs, rhs).String())
	assert.Equal("(advice[0] - advice[1])", Subtract(lhs, rhs).String())
	assert.Equal(
		"selector[2] * ((advice[0] + advice[1]) - advice[0]@+1)",
		Product(sel, Subtract(Sum(lhs, rhs), out)).String(),
	)
}
