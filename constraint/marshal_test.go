package constraint_test

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/consensys/zkcalc/constraint"
)

func buildSystem() constraint.System {
	sys := constraint.NewSystem()
	a := sys.AdviceColumn()
	b := sys.AdviceColumn()
	instance := sys.InstanceColumn()
	sys.EnableEquality(a)
	sys.EnableEquality(b)
	sys.EnableEquality(instance)

	for _, name := range []string{"add", "sub", "mul"} {
		sel := sys.Selector()
		sys.CreateGate(name, func(v *constraint.VirtualCells) []constraint.Expression {
			lhs := v.QueryAdvice(a, constraint.RotationCur)
			rhs := v.QueryAdvice(b, constraint.RotationCur)
			out := v.QueryAdvice(a, constraint.RotationNext)
			var identity constraint.Expression
			switch name {
			case "add":
				identity = constraint.Subtract(constraint.Sum(lhs, rhs), out)
			case "sub":
				identity = constraint.Subtract(lhs, rhs, out)
			default:
				identity = constraint.Subtract(constraint.Product(lhs, rhs), out)
			}
			return []constraint.Expression{constraint.Product(v.QuerySelector(sel), identity)}
		})
	}
	return sys
}

func TestSystemRoundTrip(t *testing.T) {
	assert := require.New(t)

	sys := buildSystem()
	data, err := sys.ToBytes()
	assert.NoError(err)

	var reloaded constraint.System
	n, err := reloaded.FromBytes(data)
	assert.NoError(err)
	assert.Equal(len(data), n)

	if diff := cmp.Diff(sys, reloaded, cmpopts.IgnoreUnexported(constraint.System{})); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}

	f1, err := sys.Fingerprint()
	assert.NoError(err)
	f2, err := reloaded.Fingerprint()
	assert.NoError(err)
	assert.Equal(f1, f2)
}

func TestSystemWriteToReadFrom(t *testing.T) {
	assert := require.New(t)

	sys := buildSystem()

	var buf bytes.Buffer
	written, err := sys.WriteTo(&buf)
	assert.NoError(err)
	assert.EqualValues(buf.Len(), written)

	// bytes past the encoding must be left unread
	buf.WriteString("trailing")

	var reloaded constraint.System
	read, err := reloaded.ReadFrom(&buf)
	assert.NoError(err)
	assert.Equal(written, read)
	assert.Equal("trailing", buf.String())

	f1, err := sys.Fingerprint()
	assert.NoError(err)
	f2, err := reloaded.Fingerprint()
	assert.NoError(err)
	assert.Equal(f1, f2)
}

func TestSystemFromBytesTruncated(t *testing.T) {
	assert := require.New(t)

	sys := buildSystem()
	data, err := sys.ToBytes()
	assert.NoError(err)

	var reloaded constraint.System
	_, err = reloaded.FromBytes(data[:10])
	assert.Error(err)

	_, err = reloaded.FromBytes(data[:len(data)-4])
	assert.Error(err)
}

func TestSystemRoundTripProp(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20

	properties := gopter.NewProperties(parameters)
	properties.Property("deserialization(serialization(system)) == system", prop.ForAll(
		func(nbAdvice int, constant uint64) bool {
			sys := constraint.NewSystem()
			cols := make([]constraint.Column, nbAdvice)
			for i := range cols {
				cols[i] = sys.AdviceColumn()
			}
			sys.EnableEquality(cols[0])
			sel := sys.Selector()
			sys.CreateGate("vanish", func(v *constraint.VirtualCells) []constraint.Expression {
				args := []constraint.Expression{constraint.NewConst64(constant)}
				for _, c := range cols {
					args = append(args, v.QueryAdvice(c, constraint.RotationCur))
				}
				return []constraint.Expression{
					constraint.Product(v.QuerySelector(sel), constraint.Sum(args...)),
				}
			})

			data, err := sys.ToBytes()
			if err != nil {
				return false
			}
			var reloaded constraint.System
			if _, err := reloaded.FromBytes(data); err != nil {
				return false
			}
			f1, err := sys.Fingerprint()
			if err != nil {
				return false
			}
			f2, err := reloaded.Fingerprint()
			if err != nil {
				return false
			}
			return f1 == f2
		},
		gen.IntRange(1, 4),
		gen.UInt64(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func BenchmarkSystemToBytes(b *testing.B) {
	sys := buildSystem()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := sys.ToBytes(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSystemFromBytes(b *testing.B) {
	sys := buildSystem()
	data, err := sys.ToBytes()
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var reloaded constraint.System
		if _, err := reloaded.FromBytes(data); err != nil {
			b.Fatal(err)
		}
	}
}
