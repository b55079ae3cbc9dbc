package constraint

import "strconv"

// ColumnKind discriminates the two kinds of columns a circuit can allocate:
// advice columns hold private witness values assigned during synthesis, and
// instance columns hold public values provided by the verifier.
type ColumnKind uint8

const (
	ColumnAdvice ColumnKind = iota
	ColumnInstance
)

func (k ColumnKind) String() string {
	switch k {
	case ColumnAdvice:
		return "advice"
	case ColumnInstance:
		return "instance"
	default:
		return "unknown(" + strconv.Itoa(int(k)) + ")"
	}
}

// Column identifies a column in the constraint system. Columns are allocated
// through System.AdviceColumn and System.InstanceColumn; indices are scoped
// per kind, so advice[0] and instance[0] are distinct columns.
type Column struct {
	Index int
	Kind  ColumnKind
}

func (c Column) String() string {
	return c.Kind.String() + "[" + strconv.Itoa(c.Index) + "]"
}

// Selector identifies a virtual binary column used to activate gates on
// chosen rows. Selectors are allocated through System.Selector and are off
// everywhere until enabled during synthesis.
type Selector struct {
	Index int
}

func (s Selector) String() string {
	return "selector[" + strconv.Itoa(s.Index) + "]"
}

// Cell addresses a single cell of a column at an absolute row.
type Cell struct {
	Column Column
	Row    int
}

func (c Cell) String() string {
	return c.Column.String() + "@" + strconv.Itoa(c.Row)
}

// Rotation is a row offset applied to a column query inside a gate
// polynomial. Gates see the table as cyclic: a query at RotationNext on the
// last row reads row zero.
type Rotation int32

const (
	RotationCur  Rotation = 0
	RotationNext Rotation = 1
)
