package frontend

import (
	"errors"
	"fmt"

	"github.com/consensys/zkcalc/constraint"
)

// ErrNotEnoughRows is returned when a region does not fit in the rows of the
// assignment backing the layouter.
var ErrNotEnoughRows = errors.New("not enough rows available")

// Assignment receives the cells produced during synthesis. It is implemented
// by proving backends; row arguments are absolute.
type Assignment interface {
	// EnableSelector turns a selector on at the given row.
	EnableSelector(s constraint.Selector, row int) error
	// AssignAdvice sets the value of an advice cell.
	AssignAdvice(c constraint.Column, row int, v Value) error
	// Copy records an equality constraint between two cells.
	Copy(a, b constraint.Cell) error
	// ConstrainInstance binds a cell to a row of an instance column.
	ConstrainInstance(cell constraint.Cell, c constraint.Column, row int) error
	// Height returns the number of usable rows.
	Height() int
}

// AssignedCell is a witness value together with the cell it was assigned to.
type AssignedCell struct {
	cell  constraint.Cell
	value Value
}

// Cell returns the cell the value was assigned to.
func (ac AssignedCell) Cell() constraint.Cell { return ac.cell }

// Value returns the assigned value.
func (ac AssignedCell) Value() Value { return ac.value }

// Layouter packs the regions of a circuit into an assignment, allocating
// rows sequentially in the order the regions are assigned.
type Layouter struct {
	asg    Assignment
	cursor int
}

// NewLayouter returns a layouter writing to asg.
func NewLayouter(asg Assignment) *Layouter {
	return &Layouter{asg: asg}
}

// AssignRegion hands a fresh region to f and, once f returns, marks the rows
// the region touched as used. Offsets inside the region are relative; they
// are translated to absolute rows starting after the last assigned region.
func (ly *Layouter) AssignRegion(name string, f func(r *Region) error) error {
	region := &Region{name: name, ly: ly, start: ly.cursor}
	if err := f(region); err != nil {
		return fmt.Errorf("region %q: %w", name, err)
	}
	ly.cursor += region.rows
	return nil
}

// ConstrainInstance binds an assigned cell to a row of an instance column,
// making the cell's value public.
func (ly *Layouter) ConstrainInstance(cell constraint.Cell, c constraint.Column, row int) error {
	if c.Kind != constraint.ColumnInstance {
		return fmt.Errorf("cannot constrain %s against %s: not an instance column", cell, c)
	}
	return ly.asg.ConstrainInstance(cell, c, row)
}

// Region assigns cells at rows relative to its own origin. A region may
// enable at most one selector; a circuit composing several gates lays out
// one region per gate application.
type Region struct {
	name  string
	ly    *Layouter
	start int
	rows  int
	sel   *constraint.Selector
}

// EnableSelector turns sel on at the given offset.
func (r *Region) EnableSelector(sel constraint.Selector, offset int) error {
	if r.sel != nil && *r.sel != sel {
		return fmt.Errorf("region %q already enables %s", r.name, *r.sel)
	}
	row, err := r.abs(offset)
	if err != nil {
		return err
	}
	r.sel = &sel
	return r.ly.asg.EnableSelector(sel, row)
}

// AssignAdvice sets the value of the advice cell at the given offset.
func (r *Region) AssignAdvice(c constraint.Column, offset int, v Value) (AssignedCell, error) {
	if c.Kind != constraint.ColumnAdvice {
		return AssignedCell{}, fmt.Errorf("cannot assign advice to %s", c)
	}
	row, err := r.abs(offset)
	if err != nil {
		return AssignedCell{}, err
	}
	if err := r.ly.asg.AssignAdvice(c, row, v); err != nil {
		return AssignedCell{}, err
	}
	return AssignedCell{cell: constraint.Cell{Column: c, Row: row}, value: v}, nil
}

// CopyAdvice assigns the value of from into the advice cell at the given
// offset and constrains the two cells to be equal.
func (r *Region) CopyAdvice(from AssignedCell, c constraint.Column, offset int) (AssignedCell, error) {
	to, err := r.AssignAdvice(c, offset, from.Value())
	if err != nil {
		return AssignedCell{}, err
	}
	if err := r.ly.asg.Copy(from.Cell(), to.Cell()); err != nil {
		return AssignedCell{}, err
	}
	return to, nil
}

func (r *Region) abs(offset int) (int, error) {
	if offset < 0 {
		return 0, fmt.Errorf("negative offset %d", offset)
	}
	row := r.start + offset
	if row >= r.ly.asg.Height() {
		return 0, fmt.Errorf("%w: row %d of %d", ErrNotEnoughRows, row, r.ly.asg.Height())
	}
	if offset+1 > r.rows {
		r.rows = offset + 1
	}
	return row, nil
}
