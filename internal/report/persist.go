package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Persister saves and loads structure snapshots to disk as YAML files, one
// per instance, grounded in statechartx's YAMLPersister: same
// MkdirAll-on-construction, same write-whole-file-then-rename-free save, same
// os.ErrNotExist wrapping on Load.
type Persister struct {
	dir string
}

// NewPersister creates a Persister, ensuring dir exists.
func NewPersister(dir string) (*Persister, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &Persister{dir: dir}, nil
}

// Save writes entries under instanceID + ".yaml" in the persister's
// directory, overwriting any prior snapshot for that instance.
func (p *Persister) Save(instanceID string, entries []Entry) error {
	data, err := ExportYAML(entries)
	if err != nil {
		return fmt.Errorf("yaml marshal: %w", err)
	}

	fn := filepath.Join(p.dir, instanceID+".yaml")
	if err := os.WriteFile(fn, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", fn, err)
	}
	return nil
}

// Load reads back the most recently saved snapshot for instanceID as raw
// YAML bytes, since a structure snapshot is read-only reporting data rather
// than something a caller reconstructs into a live tree.
func (p *Persister) Load(instanceID string) ([]byte, error) {
	fn := filepath.Join(p.dir, instanceID+".yaml")
	data, err := os.ReadFile(fn)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("instance %q: %w", instanceID, os.ErrNotExist)
		}
		return nil, fmt.Errorf("read %s: %w", fn, err)
	}
	return data, nil
}
