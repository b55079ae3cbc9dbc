// Package test provides helpers to exercise circuits against the mock
// prover.
package test

import (
	"strings"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"

	"github.com/consensys/zkcalc/backend/mock"
	"github.com/consensys/zkcalc/frontend"
)

// Assert is a helper to test circuits
type Assert struct {
	t *testing.T
	*require.Assertions
}

// NewAssert returns an Assert helper embedding a testify/require object for
// convenience
func NewAssert(t *testing.T) *Assert {
	return &Assert{t: t, Assertions: require.New(t)}
}

// Run runs the test function fn as a subtest. The subtest is parametrized by
// the description strings descs.
func (a *Assert) Run(fn func(assert *Assert), descs ...string) {
	desc := strings.Join(descs, "/")
	a.t.Run(desc, func(t *testing.T) {
		assert := &Assert{t, require.New(t)}
		fn(assert)
	})
}

// Log logs using the test instance logger.
func (assert *Assert) Log(v ...interface{}) {
	assert.t.Log(v...)
}

// VerifySucceeded fails the test if the circuit does not synthesize or its
// trace violates a constraint.
func VerifySucceeded[C any](assert *Assert, k uint, circuit frontend.Circuit[C], instance [][]fr.Element) {
	assert.t.Helper()
	p, err := mock.Run(k, circuit, instance)
	assert.NoError(err, "circuit synthesis failed")
	assert.NoError(p.Verify(), "trace does not satisfy the constraint system")
}

// VerifyFailed fails the test unless the circuit synthesizes and its trace
// violates at least one constraint.
func VerifyFailed[C any](assert *Assert, k uint, circuit frontend.Circuit[C], instance [][]fr.Element) {
	assert.t.Helper()
	p, err := mock.Run(k, circuit, instance)
	assert.NoError(err, "circuit synthesis failed")
	assert.Error(p.Verify(), "trace satisfies the constraint system, expected a violation")
}
