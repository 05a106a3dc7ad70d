package build

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

const ManifestName = ".seohead-manifest.yaml"

// Manifest records the render hash of every file a build wrote, keyed by its
// path relative to the public directory.
type Manifest struct {
	Outputs map[string]string `yaml:"outputs"`
}

func NewManifest() *Manifest {
	return &Manifest{Outputs: map[string]string{}}
}

// LoadManifest reads the manifest in dir. A missing or unreadable manifest
// yields an empty one so the next build renders everything.
func LoadManifest(dir string) *Manifest {
	raw, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if err != nil {
		return NewManifest()
	}
	m := NewManifest()
	if err := yaml.Unmarshal(raw, m); err != nil || m.Outputs == nil {
		return NewManifest()
	}
	return m
}

func (m *Manifest) Save(dir string) error {
	raw, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ManifestName), raw, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// Fresh reports whether rel was written with the given render hash and is
// still on disk.
func (m *Manifest) Fresh(dir, rel, renderHash string) bool {
	if m.Outputs[rel] != renderHash {
		return false
	}
	_, err := os.Stat(filepath.Join(dir, rel))
	return err == nil
}

// Stale lists outputs present in m but missing from next, sorted.
func (m *Manifest) Stale(next *Manifest) []string {
	var out []string
	for rel := range m.Outputs {
		if _, ok := next.Outputs[rel]; !ok {
			out = append(out, rel)
		}
	}
	sort.Strings(out)
	return out
}

// RemoveStale deletes the given outputs from dir. Files already gone are
// ignored.
func RemoveStale(dir string, rels []string) error {
	var errs []error
	for _, rel := range rels {
		if err := os.Remove(filepath.Join(dir, rel)); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
