package percept

import (
	"math"

	"github.com/pkg/errors"
)

// Activation is an elementwise nonlinearity applied by hidden layers.
type Activation interface {
	TypeString() string

	// Apply returns the activation of a single pre-activation value.
	Apply(x float64) float64

	// Deriv returns the derivative of the activation, given the activation's
	// own output. All of the provided Activations can recover their
	// derivative from the output alone.
	Deriv(y float64) float64
}

type tanh int8

// Tanh returns the hyperbolic tangent Activation.
func Tanh() tanh {
	return tanh(0)
}

func (t tanh) TypeString() string {
	return "tanh"
}

func (t tanh) Apply(x float64) float64 {
	return math.Tanh(x)
}

// the derivative of tanh(x) is 1 - tanh(x)^2
func (t tanh) Deriv(y float64) float64 {
	return 1 - y*y
}

type logistic int8

// Logistic returns the standard logistic (sigmoid) Activation, 1/(1+e^-x).
func Logistic() logistic {
	return logistic(0)
}

// Sigmoid is a proxy for Logistic.
func Sigmoid() logistic {
	return Logistic()
}

func (l logistic) TypeString() string {
	return "logistic"
}

func (l logistic) Apply(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

func (l logistic) Deriv(y float64) float64 {
	return y * (1 - y)
}

type relu int8

// ReLU returns the rectified linear Activation, max(0, x).
func ReLU() relu {
	return relu(0)
}

func (r relu) TypeString() string {
	return "relu"
}

func (r relu) Apply(x float64) float64 {
	if x > 0 {
		return x
	}
	return 0
}

func (r relu) Deriv(y float64) float64 {
	if y > 0 {
		return 1
	}
	return 0
}

var activationNames = map[string]func() Activation{
	Tanh().TypeString():     func() Activation { return Tanh() },
	Logistic().TypeString(): func() Activation { return Logistic() },
	ReLU().TypeString():     func() Activation { return ReLU() },
}

// ActivationByName returns the Activation registered under the given name:
// "tanh", "logistic", or "relu".
func ActivationByName(name string) (Activation, error) {
	f, ok := activationNames[name]
	if !ok {
		return nil, errors.Errorf("No Activation with name %q", name)
	}

	return f(), nil
}
