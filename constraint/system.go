// Package constraint describes circuit shapes: columns, selectors, gates and
// equality rules, together with their serialized form.
package constraint

import (
	"fmt"
	"math/big"

	"github.com/blang/semver/v4"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/consensys/zkcalc"
	"github.com/consensys/zkcalc/logger"
)

// Gate is a named set of polynomial identities over the columns of the
// system. A trace satisfies the gate when every polynomial evaluates to zero
// on every row.
type Gate struct {
	Name  string
	Polys []Expression
}

// System describes the shape of a circuit. It carries no witness data;
// assignments live in the trace built at proving time, so the same System
// can be shared by a prover and a verifier.
type System struct {
	// serialization header
	ZkcalcVersion string
	ScalarField   string

	// number of allocated columns of each kind
	NbAdvice    int
	NbInstance  int
	NbSelectors int

	Gates []Gate

	// distinct advice queries made by the gates, in first-use order
	Queries []ColumnAccess `cbor:"-"`

	// columns the copy constraints may reference
	Equality []Column `cbor:"-"`

	// scalar field
	q      *big.Int `cbor:"-"`
	bitLen int      `cbor:"-"`
}

// NewSystem initializes an empty constraint system over the BN254 scalar
// field.
func NewSystem() System {
	q := fr.Modulus()
	return System{
		ZkcalcVersion: zkcalc.Version.String(),
		ScalarField:   q.Text(16),
		q:             q,
		bitLen:        q.BitLen(),
	}
}

// AdviceColumn allocates a new advice column.
func (system *System) AdviceColumn() Column {
	c := Column{Index: system.NbAdvice, Kind: ColumnAdvice}
	system.NbAdvice++
	return c
}

// InstanceColumn allocates a new instance column.
func (system *System) InstanceColumn() Column {
	c := Column{Index: system.NbInstance, Kind: ColumnInstance}
	system.NbInstance++
	return c
}

// Selector allocates a new selector.
func (system *System) Selector() Selector {
	s := Selector{Index: system.NbSelectors}
	system.NbSelectors++
	return s
}

// EnableEquality marks a column as usable by copy constraints. Copies whose
// endpoints sit in a column that was not marked are rejected at synthesis
// time.
func (system *System) EnableEquality(c Column) {
	system.mustOwn(c)
	for _, e := range system.Equality {
		if e == c {
			return
		}
	}
	system.Equality = append(system.Equality, c)
}

// IsEqualityEnabled reports whether c was passed to EnableEquality.
func (system *System) IsEqualityEnabled(c Column) bool {
	for _, e := range system.Equality {
		if e == c {
			return true
		}
	}
	return false
}

// CreateGate registers a named gate. The callback receives a VirtualCells
// scoped to this system and returns the polynomial identities the gate
// enforces; it must return at least one.
func (system *System) CreateGate(name string, f func(*VirtualCells) []Expression) {
	polys := f(&VirtualCells{system: system})
	if len(polys) == 0 {
		panic(fmt.Sprintf("gate %q has no polynomial identity", name))
	}
	system.Gates = append(system.Gates, Gate{Name: name, Polys: polys})
}

// VirtualCells hands out column and selector queries while a gate is being
// built. Advice queries are recorded on the system so provers know which
// cells each gate reads.
type VirtualCells struct {
	system *System
}

// QueryAdvice returns an expression reading the advice column at the given
// rotation.
func (v *VirtualCells) QueryAdvice(c Column, at Rotation) Expression {
	if c.Kind != ColumnAdvice {
		panic(fmt.Sprintf("cannot query %s column in a gate", c.Kind))
	}
	v.system.mustOwn(c)
	v.system.addQuery(ColumnAccess{Column: c, Shift: at})
	return &ColumnAccess{Column: c, Shift: at}
}

// QuerySelector returns an expression reading the selector on the current
// row.
func (v *VirtualCells) QuerySelector(s Selector) Expression {
	if s.Index < 0 || s.Index >= v.system.NbSelectors {
		panic(fmt.Sprintf("%s was not allocated on this system", s))
	}
	return &SelectorAccess{Selector: s}
}

func (system *System) addQuery(q ColumnAccess) {
	for _, e := range system.Queries {
		if e == q {
			return
		}
	}
	system.Queries = append(system.Queries, q)
}

func (system *System) mustOwn(c Column) {
	var nb int
	switch c.Kind {
	case ColumnAdvice:
		nb = system.NbAdvice
	case ColumnInstance:
		nb = system.NbInstance
	default:
		panic(fmt.Sprintf("unknown column kind %d", c.Kind))
	}
	if c.Index < 0 || c.Index >= nb {
		panic(fmt.Sprintf("%s was not allocated on this system", c))
	}
}

// CheckSerializationHeader parses the scalar field and zkcalc version
// headers and returns an error if this binary cannot process the object.
func (system *System) CheckSerializationHeader() error {
	// check zkcalc version
	binaryVersion := zkcalc.Version
	objectVersion, err := semver.Parse(system.ZkcalcVersion)
	if err != nil {
		return fmt.Errorf("when parsing zkcalc version: %w", err)
	}

	if binaryVersion.Compare(objectVersion) != 0 {
		log := logger.Logger()
		log.Warn().Str("binary", binaryVersion.String()).Str("object", objectVersion.String()).Msg("zkcalc version (binary) mismatch with constraint system. there are no guarantees on compatibility")
	}

	scalarField := new(big.Int)
	_, ok := scalarField.SetString(system.ScalarField, 16)
	if !ok {
		return fmt.Errorf("when parsing serialized modulus: %s", system.ScalarField)
	}
	if scalarField.Cmp(fr.Modulus()) != 0 {
		return fmt.Errorf("unsupported scalar field %s", scalarField.Text(16))
	}
	system.q = scalarField
	system.bitLen = system.q.BitLen()
	return nil
}

// Field returns a copy of the scalar field modulus.
func (system *System) Field() *big.Int {
	return new(big.Int).Set(system.q)
}

// FieldBitLen returns the bit length of the scalar field modulus.
func (system *System) FieldBitLen() int {
	return system.bitLen
}
