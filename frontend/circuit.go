// Package frontend turns circuit descriptions into constraint systems and
// witness assignments. A circuit declares its shape in Configure and lays
// out its witness region by region in Synthesize; proving backends consume
// both through the Assignment interface.
package frontend

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/consensys/zkcalc/constraint"
	"github.com/consensys/zkcalc/debug"
	"github.com/consensys/zkcalc/logger"
)

// Circuit is implemented by circuit descriptions.
//
// Configure declares the columns, selectors and gates of the circuit on the
// system and returns the configuration handed back to Synthesize; it must
// not read witness values. Synthesize assigns the witness into regions
// through the layouter. WithoutWitnesses returns a copy of the circuit with
// every witness value unknown, keeping everything that shapes the system.
type Circuit[C any] interface {
	Configure(sys *constraint.System) C
	Synthesize(config C, ly *Layouter) error
	WithoutWitnesses() Circuit[C]
}

// Compile builds the shape of a circuit. Witness values are never read:
// configuration runs on the circuit returned by WithoutWitnesses.
func Compile[C any](circuit Circuit[C]) (sys *constraint.System, err error) {
	log := logger.Logger()
	log.Debug().Msg("configuring circuit")

	// ensure the circuit methods are defined on pointer receiver
	if reflect.ValueOf(circuit).Kind() != reflect.Ptr {
		return nil, errors.New("frontend.Circuit methods must be defined on pointer receiver")
	}

	defer func() {
		if r := recover(); r != nil {
			sys = nil
			err = fmt.Errorf("configure circuit: %v\n%s", r, debug.Stack())
		}
	}()

	s := constraint.NewSystem()
	circuit.WithoutWitnesses().Configure(&s)

	log.Debug().
		Int("nbAdvice", s.NbAdvice).
		Int("nbInstance", s.NbInstance).
		Int("nbSelectors", s.NbSelectors).
		Int("nbGates", len(s.Gates)).
		Msg("circuit configured")
	return &s, nil
}
