package penalties

import (
	"math"

	ps "github.com/percept-ml/percept"
)

// **********************************************
// L1 (Lasso)
// **********************************************

type l1 float64

// L1 returns the lasso penalty: λ × (sum of absolute weight values) is
// added to the cost. λ is a small value close to 0 where λ > 0. Biases are
// never penalized.
func L1(λ float64) *l1 {
	p := l1(λ)
	return &p
}

// Lasso is a proxy for L1.
func Lasso(λ float64) *l1 {
	return L1(λ)
}

func (p *l1) TypeString() string {
	return "l1-lasso"
}

func (p *l1) Loss(w *ps.Param) float64 {
	λ := float64(*p)

	var sum float64
	for _, v := range w.Raw() {
		sum += math.Abs(v)
	}

	return λ * sum
}

func (p *l1) Grad(w float64) float64 {
	λ := float64(*p)
	return λ * math.Copysign(1, w)
}

// **********************************************
// L2 (Ridge)
// **********************************************

type l2 float64

// L2 returns the ridge penalty: λ × (sum of squared weight values) is added
// to the cost. λ is a small value close to 0 where λ > 0.
func L2(λ float64) *l2 {
	p := l2(λ)
	return &p
}

// Ridge is a proxy for L2.
func Ridge(λ float64) *l2 {
	return L2(λ)
}

func (p *l2) TypeString() string {
	return "l2-ridge"
}

func (p *l2) Loss(w *ps.Param) float64 {
	λ := float64(*p)

	var sum float64
	for _, v := range w.Raw() {
		sum += v * v
	}

	return λ * sum
}

func (p *l2) Grad(w float64) float64 {
	λ := float64(*p)
	return 2 * λ * w
}
