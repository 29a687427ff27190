package percept

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// SnapshotEntry is the stored form of one Param: its dimensions and values
// in row-major order.
type SnapshotEntry struct {
	Rows int       `json:"rows"`
	Cols int       `json:"cols"`
	Data []float64 `json:"data"`
}

func snapshotPath(dirPath, name string) string {
	return filepath.Join(dirPath, name+".json")
}

// Snapshot writes every Param of the Network to the archive file
// "<name>.json" inside dirPath, keyed by Param name. Any prior snapshot for
// the same name is overwritten. The directory is created if needed (with
// permissions 0700).
func (net *Network) Snapshot(dirPath, name string) error {
	if net.stat < finalized {
		return ErrNotFinalized
	}

	if err := os.MkdirAll(dirPath, 0700); err != nil {
		return errors.Wrapf(err, "Couldn't create snapshot directory %q\n", dirPath)
	}

	arch := make(map[string]SnapshotEntry, len(net.params))
	for _, p := range net.params {
		r, c := p.Dims()

		data := make([]float64, len(p.Raw()))
		copy(data, p.Raw())

		arch[p.Name()] = SnapshotEntry{Rows: r, Cols: c, Data: data}
	}

	f, err := os.Create(snapshotPath(dirPath, name))
	if err != nil {
		return errors.Wrapf(err, "Couldn't create snapshot file for model %q\n", name)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	if err = enc.Encode(arch); err != nil {
		return errors.Wrapf(err, "Failed to encode snapshot for model %q\n", name)
	}

	return nil
}

// ReadSnapshot returns the raw contents of a snapshot archive previously
// written by Snapshot.
func ReadSnapshot(dirPath, name string) (map[string]SnapshotEntry, error) {
	f, err := os.Open(snapshotPath(dirPath, name))
	if err != nil {
		return nil, errors.Wrapf(err, "Couldn't open snapshot file for model %q\n", name)
	}
	defer f.Close()

	var arch map[string]SnapshotEntry
	dec := json.NewDecoder(f)
	if err = dec.Decode(&arch); err != nil {
		return nil, errors.Wrapf(err, "Failed to decode snapshot for model %q\n", name)
	}

	return arch, nil
}

// RestoreSnapshot loads a snapshot archive into the Network. The Network
// must already have the structure the snapshot was taken from: every Param
// must have a matching entry with identical dimensions.
func (net *Network) RestoreSnapshot(dirPath, name string) error {
	if net.stat < finalized {
		return ErrNotFinalized
	}

	arch, err := ReadSnapshot(dirPath, name)
	if err != nil {
		return err
	}

	if len(arch) != len(net.params) {
		return errors.Errorf("Snapshot has %d entries; network has %d Params", len(arch), len(net.params))
	}

	for _, p := range net.params {
		e, ok := arch[p.Name()]
		if !ok {
			return errors.Errorf("Snapshot has no entry for Param %q", p.Name())
		}

		r, c := p.Dims()
		if e.Rows != r || e.Cols != c {
			return errors.Errorf("Snapshot entry %q is %dx%d; Param is %dx%d", p.Name(), e.Rows, e.Cols, r, c)
		} else if len(e.Data) != r*c {
			return errors.Errorf("Snapshot entry %q has %d values; expected %d", p.Name(), len(e.Data), r*c)
		}

		p.Copy(mat.NewDense(r, c, e.Data))
	}

	return nil
}
