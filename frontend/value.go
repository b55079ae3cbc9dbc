package frontend

import "github.com/consensys/gnark-crypto/ecc/bn254/fr"

// Value is a field element that may be unknown. Witness values are unknown
// while a circuit shape is derived without its witnesses and become known at
// proving time; arithmetic on values propagates unknownness.
type Value struct {
	v     fr.Element
	known bool
}

// Known wraps a field element in a known value.
func Known(v fr.Element) Value {
	return Value{v: v, known: true}
}

// Unknown returns the unknown value.
func Unknown() Value {
	return Value{}
}

// Get returns the underlying field element and whether it is known.
func (z Value) Get() (fr.Element, bool) {
	return z.v, z.known
}

// Add returns z + x, unknown if either operand is unknown.
func (z Value) Add(x Value) Value {
	if !z.known || !x.known {
		return Value{}
	}
	var r fr.Element
	r.Add(&z.v, &x.v)
	return Value{v: r, known: true}
}

// Sub returns z - x, unknown if either operand is unknown. Like all field
// arithmetic the subtraction wraps around the modulus.
func (z Value) Sub(x Value) Value {
	if !z.known || !x.known {
		return Value{}
	}
	var r fr.Element
	r.Sub(&z.v, &x.v)
	return Value{v: r, known: true}
}

// Mul returns z * x, unknown if either operand is unknown.
func (z Value) Mul(x Value) Value {
	if !z.known || !x.known {
		return Value{}
	}
	var r fr.Element
	r.Mul(&z.v, &x.v)
	return Value{v: r, known: true}
}

func (z Value) String() string {
	if !z.known {
		return "<unknown>"
	}
	return z.v.String()
}
