package calculator

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/consensys/zkcalc/std/arithmetic"
)

// Parse errors.
var (
	ErrInvalidOperator = errors.New("invalid operator, valid operators are +, - and *")
	ErrInvalidOperand  = errors.New("invalid operand, operands must be numeric")
	ErrTooManyInputs   = errors.New("too many inputs, valid format is `a operator b`")
	ErrNotEnoughInputs = errors.New("not enough inputs, valid format is `a operator b`")
)

// Operation is one parsed calculation: two unsigned operands and the
// operator combining them. It is produced by Parse and consumed exactly
// once by circuit synthesis.
type Operation struct {
	A, B uint64
	Op   arithmetic.Operator
}

// Parse turns a whitespace-separated line such as "2 + 3" into an
// Operation. The line must contain exactly two unsigned decimal operands
// around one of the operators +, - or *.
func Parse(line string) (Operation, error) {
	tokens := strings.Fields(line)
	if len(tokens) < 3 {
		return Operation{}, ErrNotEnoughInputs
	}
	if len(tokens) > 3 {
		return Operation{}, ErrTooManyInputs
	}

	a, err := parseOperand(tokens[0])
	if err != nil {
		return Operation{}, err
	}
	op, err := parseOperator(tokens[1])
	if err != nil {
		return Operation{}, err
	}
	b, err := parseOperand(tokens[2])
	if err != nil {
		return Operation{}, err
	}

	return Operation{A: a, B: b, Op: op}, nil
}

func parseOperand(token string) (uint64, error) {
	v, err := strconv.ParseUint(token, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidOperand, token)
	}
	return v, nil
}

func parseOperator(token string) (arithmetic.Operator, error) {
	switch token {
	case "+":
		return arithmetic.OpAdd, nil
	case "-":
		return arithmetic.OpSub, nil
	case "*":
		return arithmetic.OpMul, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidOperator, token)
	}
}
