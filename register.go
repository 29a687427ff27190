package percept

import (
	"github.com/pkg/errors"
)

var (
	optimizerNames    = make(map[string]func() Optimizer)
	costFunctionNames = make(map[string]func() CostFunction)

	defaultOptimizer   func() Optimizer
	defaultInitializer Initializer
)

// RegisterOptimizer ties a constructor to a name, so that Optimizers can be
// retrieved by OptimizerByName. Registration is normally done by subpackage
// init functions.
func RegisterOptimizer(name string, f func() Optimizer) error {
	if f == nil {
		return NilArgError{"Optimizer constructor"}
	} else if _, ok := optimizerNames[name]; ok {
		return ErrRegisterTaken
	} else if f() == nil {
		return ErrRegisterNilReturn
	}

	optimizerNames[name] = f
	return nil
}

// OptimizerByName returns a fresh Optimizer registered under the given name.
func OptimizerByName(name string) (Optimizer, error) {
	f, ok := optimizerNames[name]
	if !ok {
		return nil, errors.Errorf("No Optimizer with name %q", name)
	}

	return f(), nil
}

// RegisterCostFunction ties a constructor to a name, so that CostFunctions
// can be retrieved by CostFunctionByName.
func RegisterCostFunction(name string, f func() CostFunction) error {
	if f == nil {
		return NilArgError{"CostFunction constructor"}
	} else if _, ok := costFunctionNames[name]; ok {
		return ErrRegisterTaken
	} else if f() == nil {
		return ErrRegisterNilReturn
	}

	costFunctionNames[name] = f
	return nil
}

// CostFunctionByName returns a fresh CostFunction registered under the given
// name.
func CostFunctionByName(name string) (CostFunction, error) {
	f, ok := costFunctionNames[name]
	if !ok {
		return nil, errors.Errorf("No CostFunction with name %q", name)
	}

	return f(), nil
}

// SetDefaultOptimizer sets the Optimizer used by Train when TrainArgs.Opt is
// nil. The subpackage "optimizers" sets plain gradient descent as the
// default.
func SetDefaultOptimizer(f func() Optimizer) {
	defaultOptimizer = f
}

// SetDefaultInitializer sets the Initializer used for weight matrices during
// network assembly. The subpackage "initializers" sets its Glorot uniform
// Initializer as the default.
func SetDefaultInitializer(i Initializer) {
	defaultInitializer = i
}
