package optimizers

import (
	"encoding/json"
	"os"
	"path/filepath"

	ps "github.com/percept-ml/percept"
	"github.com/pkg/errors"
)

const defaultMomentumRho float64 = 0.9

type momentum struct {
	ρ float64

	// Velocities holds one accumulator per Param, keyed by Param name, each
	// the same shape as the Param and initialized to zero.
	Velocities map[string][]float64
}

// Momentum returns gradient descent with momentum: a velocity accumulator
// per Param follows v ← ρv + (1-ρ)g, and each weight moves by
// -learningRate × v. ρ defaults to 0.9 and can be set by Rho.
func Momentum() *momentum {
	return &momentum{
		ρ:          defaultMomentumRho,
		Velocities: make(map[string][]float64),
	}
}

// Rho sets the decay rate of the velocity accumulators, returning the same
// Optimizer. ρ must be in [0, 1).
func (m *momentum) Rho(ρ float64) *momentum {
	if ρ < 0 || ρ >= 1 {
		panic("momentum ρ must be in [0, 1)")
	}

	m.ρ = ρ
	return m
}

func (m *momentum) TypeString() string {
	return "momentum"
}

func (m *momentum) Run(p *ps.Param, size int, grad func(int) float64, add func(int, float64), learningRate float64) error {
	v, ok := m.Velocities[p.Name()]
	if !ok {
		v = make([]float64, size)
		m.Velocities[p.Name()] = v
	} else if len(v) != size {
		return errors.Errorf("Velocity for %s has %d values; Param has %d", p.Name(), len(v), size)
	}

	for i := 0; i < size; i++ {
		v[i] = m.ρ*v[i] + (1-m.ρ)*grad(i)
		add(i, -1*learningRate*v[i])
	}

	return nil
}

func (m *momentum) Save(dirPath string) error {
	if err := os.MkdirAll(dirPath, 0700); err != nil {
		return errors.Wrapf(err, "Couldn't create directory %q\n", dirPath)
	}

	f, err := os.Create(filepath.Join(dirPath, "momentum.json"))
	if err != nil {
		return errors.Wrapf(err, "Couldn't create file %q in %q\n", "momentum.json", dirPath)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	if err = enc.Encode(m.Velocities); err != nil {
		return errors.Wrapf(err, "Failed to encode JSON to file %q in %q\n", "momentum.json", dirPath)
	}

	return nil
}

func (m *momentum) Load(dirPath string) error {
	f, err := os.Open(filepath.Join(dirPath, "momentum.json"))
	if err != nil {
		return errors.Wrapf(err, "Couldn't open file %q in %q\n", "momentum.json", dirPath)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	if err = dec.Decode(&m.Velocities); err != nil {
		return errors.Wrapf(err, "Failed to decode JSON from file %q in %q\n", "momentum.json", dirPath)
	}

	return nil
}
