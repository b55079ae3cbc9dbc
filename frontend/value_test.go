package frontend

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

func TestValueArithmetic(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("Add matches field addition on known values", prop.ForAll(
		func(a, b uint64) bool {
			x, y := fr.NewElement(a), fr.NewElement(b)
			var want fr.Element
			want.Add(&x, &y)
			got, known := Known(x).Add(Known(y)).Get()
			return known && got.Equal(&want)
		},
		gen.UInt64(), gen.UInt64(),
	))

	properties.Property("Sub matches field subtraction on known values", prop.ForAll(
		func(a, b uint64) bool {
			x, y := fr.NewElement(a), fr.NewElement(b)
			var want fr.Element
			want.Sub(&x, &y)
			got, known := Known(x).Sub(Known(y)).Get()
			return known && got.Equal(&want)
		},
		gen.UInt64(), gen.UInt64(),
	))

	properties.Property("Mul matches field multiplication on known values", prop.ForAll(
		func(a, b uint64) bool {
			x, y := fr.NewElement(a), fr.NewElement(b)
			var want fr.Element
			want.Mul(&x, &y)
			got, known := Known(x).Mul(Known(y)).Get()
			return known && got.Equal(&want)
		},
		gen.UInt64(), gen.UInt64(),
	))

	properties.Property("unknown operands poison the result", prop.ForAll(
		func(a uint64) bool {
			x := Known(fr.NewElement(a))
			u := Unknown()
			for _, r := range []Value{x.Add(u), u.Add(x), x.Sub(u), u.Sub(x), x.Mul(u), u.Mul(x)} {
				if _, known := r.Get(); known {
					return false
				}
			}
			return true
		},
		gen.UInt64(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestValueUnknown(t *testing.T) {
	assert := require.New(t)

	v, known := Unknown().Get()
	assert.False(known)
	assert.True(v.IsZero())
	assert.Equal("<unknown>", Unknown().String())

	w, known := Known(fr.NewElement(42)).Get()
	assert.True(known)
	expected := fr.NewElement(42)
	assert.True(w.Equal(&expected))
	assert.Equal("42", Known(fr.NewElement(42)).String())
}
