package penalties

import (
	"math"

	ps "github.com/percept-ml/percept"
)

type elasticNet struct {
	α float64
	λ float64
}

// ElasticNet combines L1 and L2. λ is a small value close to 0 where λ > 0;
// α controls the ratio between the two, where 0 ≤ α ≤ 1. α = 1 is
// functionally identical to L1 and α = 0 is equivalent to L2.
func ElasticNet(α, λ float64) *elasticNet {
	return &elasticNet{α, λ}
}

func (p *elasticNet) TypeString() string {
	return "elastic-net"
}

func (p *elasticNet) Loss(w *ps.Param) float64 {
	var abs, sq float64
	for _, v := range w.Raw() {
		abs += math.Abs(v)
		sq += v * v
	}

	return p.λ * (p.α*abs + (1-p.α)*sq)
}

func (p *elasticNet) Grad(w float64) float64 {
	return p.λ * ((1-p.α)*2*w + p.α*math.Copysign(1, w))
}
