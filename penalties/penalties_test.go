package penalties

import (
	"math"
	"testing"

	ps "github.com/percept-ml/percept"
)

func weightParam(t *testing.T, values []float64) *ps.Param {
	t.Helper()

	p := ps.NewParam("w", 1, len(values), false)
	copy(p.Raw(), values)
	return p
}

func TestL1(t *testing.T) {
	p := L1(0.01)
	w := weightParam(t, []float64{1, -2, 0.5})

	if got := p.Loss(w); math.Abs(got-0.01*3.5) > 1e-12 {
		t.Errorf("Loss is %v; expected %v", got, 0.01*3.5)
	}

	if got := p.Grad(-2); got != -0.01 {
		t.Errorf("Grad(-2) is %v; expected -0.01", got)
	}
	if got := p.Grad(3); got != 0.01 {
		t.Errorf("Grad(3) is %v; expected 0.01", got)
	}
}

func TestL2(t *testing.T) {
	p := L2(0.001)
	w := weightParam(t, []float64{1, -2, 0.5})

	want := 0.001 * (1 + 4 + 0.25)
	if got := p.Loss(w); math.Abs(got-want) > 1e-12 {
		t.Errorf("Loss is %v; expected %v", got, want)
	}

	if got := p.Grad(-2); got != -0.004 {
		t.Errorf("Grad(-2) is %v; expected -0.004", got)
	}
}

func TestElasticNetEndpoints(t *testing.T) {
	w := weightParam(t, []float64{1, -2, 0.5})

	// α=1 matches L1, α=0 matches L2
	if got, want := ElasticNet(1, 0.01).Loss(w), L1(0.01).Loss(w); math.Abs(got-want) > 1e-12 {
		t.Errorf("α=1 Loss is %v; L1 gives %v", got, want)
	}
	if got, want := ElasticNet(0, 0.01).Loss(w), L2(0.01).Loss(w); math.Abs(got-want) > 1e-12 {
		t.Errorf("α=0 Loss is %v; L2 gives %v", got, want)
	}
}
