package optimizers

import (
	"math"
	"testing"

	ps "github.com/percept-ml/percept"
)

func runOnParam(t *testing.T, opt ps.Optimizer, p *ps.Param, grads []float64, lr float64) {
	t.Helper()

	ws := p.Raw()
	err := opt.Run(p, len(ws),
		func(i int) float64 { return grads[i] },
		func(i int, v float64) { ws[i] += v },
		lr)
	if err != nil {
		t.Fatalf("%s Run failed: %v", opt.TypeString(), err)
	}
}

func TestGradientDescentZeroGradient(t *testing.T) {
	p := ps.NewParam("w", 2, 3, false)
	ws := p.Raw()
	for i := range ws {
		ws[i] = float64(i) - 2.5
	}

	before := make([]float64, len(ws))
	copy(before, ws)

	runOnParam(t, GradientDescent(), p, make([]float64, len(ws)), 0.5)

	for i := range ws {
		if ws[i] != before[i] {
			t.Errorf("weight %d changed under a zero gradient: %v -> %v", i, before[i], ws[i])
		}
	}
}

func TestGradientDescentStep(t *testing.T) {
	p := ps.NewParam("w", 1, 2, false)
	grads := []float64{1, -2}

	runOnParam(t, GradientDescent(), p, grads, 0.1)

	ws := p.Raw()
	if math.Abs(ws[0]-(-0.1)) > 1e-12 || math.Abs(ws[1]-0.2) > 1e-12 {
		t.Errorf("weights after step are %v; expected [-0.1 0.2]", ws)
	}
}

func TestMomentumAccumulator(t *testing.T) {
	m := Momentum().Rho(0.5)
	p := ps.NewParam("w", 1, 2, false)
	grads := []float64{1, -1}

	if len(m.Velocities) != 0 {
		t.Fatal("velocities should not exist before the first step")
	}

	runOnParam(t, m, p, grads, 1)

	// starting from zero velocity: v = (1-ρ)g
	v := m.Velocities["w"]
	if len(v) != 2 {
		t.Fatalf("velocity has %d values; expected 2", len(v))
	}
	if math.Abs(v[0]-0.5) > 1e-12 || math.Abs(v[1]+0.5) > 1e-12 {
		t.Errorf("velocity after one step is %v; expected [0.5 -0.5]", v)
	}

	ws := p.Raw()
	if math.Abs(ws[0]+0.5) > 1e-12 {
		t.Errorf("weight after one step is %v; expected -0.5", ws[0])
	}

	// second step: v = 0.5*0.5 + 0.5*1
	runOnParam(t, m, p, grads, 1)
	if math.Abs(v[0]-0.75) > 1e-12 {
		t.Errorf("velocity after two steps is %v; expected 0.75", v[0])
	}
}

func TestAdadeltaAccumulatorsNonNegative(t *testing.T) {
	a := Adadelta()
	p := ps.NewParam("w", 2, 2, false)
	grads := []float64{1, -3, 0.5, -0.01}

	for step := 0; step < 10; step++ {
		runOnParam(t, a, p, grads, 0)

		for _, acc := range []map[string][]float64{a.state.Grad2, a.state.Update2} {
			for name, vs := range acc {
				for i, v := range vs {
					if v < 0 {
						t.Fatalf("accumulator %s[%d] is negative (%v) at step %d", name, i, v, step)
					}
				}
			}
		}
	}
}

// Adadelta's step size is (up to ε) invariant to scaling the gradients by a
// positive constant, which is what makes it self-scaling.
func TestAdadeltaScaleInvariance(t *testing.T) {
	const γ = 10.0

	a1 := Adadelta()
	a2 := Adadelta()
	p1 := ps.NewParam("w", 1, 3, false)
	p2 := ps.NewParam("w", 1, 3, false)

	grads := [][]float64{
		{1, -0.5, 2},
		{0.5, 1, -1},
	}

	for _, g := range grads {
		scaled := make([]float64, len(g))
		for i := range g {
			scaled[i] = γ * g[i]
		}

		runOnParam(t, a1, p1, g, 0)
		runOnParam(t, a2, p2, scaled, 0)
	}

	w1, w2 := p1.Raw(), p2.Raw()
	for i := range w1 {
		if math.Abs(w1[i]-w2[i]) > 1e-3*math.Abs(w1[i]) {
			t.Errorf("steps diverge under gradient rescaling at %d: %v vs %v", i, w1[i], w2[i])
		}
	}
}

func TestAdadeltaIgnoresLearningRate(t *testing.T) {
	a1 := Adadelta()
	a2 := Adadelta()
	p1 := ps.NewParam("w", 1, 2, false)
	p2 := ps.NewParam("w", 1, 2, false)
	grads := []float64{1, -1}

	runOnParam(t, a1, p1, grads, 0.001)
	runOnParam(t, a2, p2, grads, 100)

	w1, w2 := p1.Raw(), p2.Raw()
	for i := range w1 {
		if w1[i] != w2[i] {
			t.Errorf("learning rate changed an adadelta step at %d: %v vs %v", i, w1[i], w2[i])
		}
	}
}

func TestRegisteredNames(t *testing.T) {
	for _, name := range []string{"sgd", "momentum", "adadelta"} {
		opt, err := ps.OptimizerByName(name)
		if err != nil {
			t.Errorf("OptimizerByName(%q) failed: %v", name, err)
		} else if opt.TypeString() != name {
			t.Errorf("OptimizerByName(%q) returned %q", name, opt.TypeString())
		}
	}

	if _, err := ps.OptimizerByName("nope"); err == nil {
		t.Error("expected an error for an unknown name")
	}
}
