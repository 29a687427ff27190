package optimizers

import ps "github.com/percept-ml/percept"

func init() {
	list := map[string]func() ps.Optimizer{
		GradientDescent().TypeString(): func() ps.Optimizer { return GradientDescent() },
		Momentum().TypeString():        func() ps.Optimizer { return Momentum() },
		Adadelta().TypeString():        func() ps.Optimizer { return Adadelta() },
	}

	for s, f := range list {
		err := ps.RegisterOptimizer(s, f)
		if err != nil {
			panic(err.Error())
		}
	}

	ps.SetDefaultOptimizer(func() ps.Optimizer { return GradientDescent() })
}
