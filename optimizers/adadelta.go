package optimizers

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"

	ps "github.com/percept-ml/percept"
	"github.com/pkg/errors"
)

const (
	defaultAdadeltaRho float64 = 0.95
	defaultAdadeltaEps float64 = 1e-6
)

type adadeltaState struct {
	// Grad2 and Update2 are the running averages of squared gradients and
	// squared updates, one zero-initialized accumulator per Param, keyed by
	// Param name.
	Grad2   map[string][]float64 `json:"grad2"`
	Update2 map[string][]float64 `json:"update2"`
}

type adadelta struct {
	ρ float64
	ε float64

	state adadeltaState
}

// Adadelta returns the Adadelta update rule. Per weight:
//
//		g2 ← ρ g2 + (1-ρ) g²
//		step ← -(√(u2+ε) / √(g2+ε)) g
//		u2 ← ρ u2 + (1-ρ) step²
//		w ← w + step
//
// The step size is derived entirely from the two accumulators, so Adadelta
// ignores the learning rate it is given. ρ defaults to 0.95 and ε to 1e-6;
// they can be set by Rho and Eps.
func Adadelta() *adadelta {
	return &adadelta{
		ρ: defaultAdadeltaRho,
		ε: defaultAdadeltaEps,
		state: adadeltaState{
			Grad2:   make(map[string][]float64),
			Update2: make(map[string][]float64),
		},
	}
}

// Rho sets the decay rate of both accumulators, returning the same
// Optimizer. ρ must be in [0, 1).
func (a *adadelta) Rho(ρ float64) *adadelta {
	if ρ < 0 || ρ >= 1 {
		panic("adadelta ρ must be in [0, 1)")
	}

	a.ρ = ρ
	return a
}

// Eps sets the regularization term that keeps the square roots away from
// zero. ε must be > 0.
func (a *adadelta) Eps(ε float64) *adadelta {
	if ε <= 0 {
		panic("adadelta ε must be > 0")
	}

	a.ε = ε
	return a
}

func (a *adadelta) TypeString() string {
	return "adadelta"
}

func (a *adadelta) accumulators(name string, size int) ([]float64, []float64, error) {
	g2, ok := a.state.Grad2[name]
	if !ok {
		g2 = make([]float64, size)
		a.state.Grad2[name] = g2
	}

	u2, ok := a.state.Update2[name]
	if !ok {
		u2 = make([]float64, size)
		a.state.Update2[name] = u2
	}

	if len(g2) != size || len(u2) != size {
		return nil, nil, errors.Errorf("Accumulators for %s don't match Param size %d (%d, %d)", name, size, len(g2), len(u2))
	}

	return g2, u2, nil
}

func (a *adadelta) Run(p *ps.Param, size int, grad func(int) float64, add func(int, float64), learningRate float64) error {
	g2, u2, err := a.accumulators(p.Name(), size)
	if err != nil {
		return err
	}

	for i := 0; i < size; i++ {
		g := grad(i)

		g2[i] = a.ρ*g2[i] + (1-a.ρ)*g*g
		step := -math.Sqrt(u2[i]+a.ε) / math.Sqrt(g2[i]+a.ε) * g
		u2[i] = a.ρ*u2[i] + (1-a.ρ)*step*step

		add(i, step)
	}

	return nil
}

func (a *adadelta) Save(dirPath string) error {
	if err := os.MkdirAll(dirPath, 0700); err != nil {
		return errors.Wrapf(err, "Couldn't create directory %q\n", dirPath)
	}

	f, err := os.Create(filepath.Join(dirPath, "adadelta.json"))
	if err != nil {
		return errors.Wrapf(err, "Couldn't create file %q in %q\n", "adadelta.json", dirPath)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	if err = enc.Encode(a.state); err != nil {
		return errors.Wrapf(err, "Failed to encode JSON to file %q in %q\n", "adadelta.json", dirPath)
	}

	return nil
}

func (a *adadelta) Load(dirPath string) error {
	f, err := os.Open(filepath.Join(dirPath, "adadelta.json"))
	if err != nil {
		return errors.Wrapf(err, "Couldn't open file %q in %q\n", "adadelta.json", dirPath)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	if err = dec.Decode(&a.state); err != nil {
		return errors.Wrapf(err, "Failed to decode JSON from file %q in %q\n", "adadelta.json", dirPath)
	}

	return nil
}
