package costfuncs

import (
	ps "github.com/percept-ml/percept"
)

func init() {
	list := map[string]func() ps.CostFunction{
		NLL().TypeString(): func() ps.CostFunction { return NLL() },
		MSE().TypeString(): func() ps.CostFunction { return MSE() },
	}

	for s, f := range list {
		err := ps.RegisterCostFunction(s, f)
		if err != nil {
			panic(err.Error())
		}
	}
}
