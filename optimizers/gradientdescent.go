package optimizers

import (
	"runtime"

	ps "github.com/percept-ml/percept"
	"github.com/percept-ml/percept/utils"
)

const threadSizeMultiplier int = 2

type gradientdescent int8

// GradientDescent returns plain stochastic gradient descent: each weight
// moves by -learningRate × gradient. It keeps no state between steps, so a
// zero gradient leaves the weight untouched.
//
// GradientDescent is the default Optimizer.
func GradientDescent() gradientdescent {
	return gradientdescent(0)
}

// SGD is a proxy for GradientDescent.
func SGD() gradientdescent {
	return GradientDescent()
}

func (g gradientdescent) TypeString() string {
	return "sgd"
}

func (g gradientdescent) Run(p *ps.Param, size int, grad func(int) float64, add func(int, float64), learningRate float64) error {

	f := func(i int) {
		add(i, -1*learningRate*grad(i))
	}

	opsPerThread := runtime.NumCPU() * threadSizeMultiplier
	threadsPerCPU := 1

	utils.MultiThread(0, size, f, opsPerThread, threadsPerCPU)

	return nil
}

func (g gradientdescent) Save(dirPath string) error {
	return nil
}

func (g gradientdescent) Load(dirPath string) error {
	return nil
}
