package initializers

import (
	"math"

	ps "github.com/percept-ml/percept"
)

type glorot struct {
	gain float64
}

// Glorot returns the Glorot (Xavier) uniform Initializer: weights are drawn
// uniformly in ±gain×sqrt(6/(fanIn+fanOut)), which keeps the early gradient
// magnitudes in check. For logistic layers the bound is scaled by an extra
// factor of 4.
//
// The result of Glorot is a type that implements percept.Initializer, and
// is the default Initializer.
func Glorot() *glorot {
	return &glorot{defaultValue["glorot-gain"]}
}

// Gain sets the scaling factor applied to the bound, returning the same
// Initializer.
func (g *glorot) Gain(f float64) *glorot {
	g.gain = f
	return g
}

// Set is the implementation of percept.Initializer.
func (g *glorot) Set(fanIn, fanOut int, act ps.Activation, ws []float64) {
	bound := g.gain * math.Sqrt(6/float64(fanIn+fanOut))
	if act != nil && act.TypeString() == "logistic" {
		bound *= 4
	}

	gen := Uniform().Bounds(-bound, bound)
	for i := range ws {
		ws[i] = gen.Gen()
	}
}

type fromRNG struct {
	rng RNG
}

// Random returns an Initializer that fills weights straight from the given
// RNG, regardless of the layer's dimensions.
func Random(rng RNG) *fromRNG {
	return &fromRNG{rng}
}

// Set is the implementation of percept.Initializer.
func (f *fromRNG) Set(fanIn, fanOut int, act ps.Activation, ws []float64) {
	for i := range ws {
		ws[i] = f.rng.Gen()
	}
}
