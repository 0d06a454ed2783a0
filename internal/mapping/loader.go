package mapping

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile loads and parses a YAML mapping file from the given path.
func LoadFile(path string) (*MappingFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a MappingFile.
func Parse(data []byte) (*MappingFile, error) {
	var mf MappingFile

	err := yaml.Unmarshal(data, &mf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse mapping YAML: %w", err)
	}

	applyDefaults(&mf)

	return &mf, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(mf *MappingFile) {
	if mf.Version == "" {
		mf.Version = "1"
	}
}

// Apply validates mf and declares its descriptors on the targets in reg.
// Record types not yet registered are created and registered. Nothing is
// declared when validation reports an error.
func Apply(mf *MappingFile, reg *Registry) error {
	c, compiled := compileFile(mf, reg)
	if c.HasErrors() {
		return fmt.Errorf("invalid mapping file: %w", c.Err())
	}

	for _, ct := range compiled {
		if _, ok := reg.Target(ct.target.Name()); !ok {
			if err := reg.Register(ct.target); err != nil {
				return err
			}
		}

		decl, ok := ct.target.(Declarer)
		if !ok {
			return fmt.Errorf("%w %q: target does not accept declarations", ErrMalformedTarget, ct.target.Name())
		}

		for _, p := range ct.params {
			decl.DeclareParam(p.index, p.name, p.desc)
		}

		for _, p := range ct.props {
			decl.DeclareProperty(p.name, p.desc)
		}
	}

	return nil
}

// LoadInto loads the mapping file at path and applies it to reg.
func LoadInto(path string, reg *Registry) (*MappingFile, error) {
	mf, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	if err := Apply(mf, reg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return mf, nil
}

// Declarer is implemented by targets that accept descriptors from mapping files.
type Declarer interface {
	DeclareParam(index int, key string, d *Descriptor)
	DeclareProperty(name string, d *Descriptor)
}

// DeclareParam implements Declarer; the key is not used by struct targets.
func (t *Type[T]) DeclareParam(index int, _ string, d *Descriptor) { t.Param(index, d) }

// DeclareProperty implements Declarer.
func (t *Type[T]) DeclareProperty(name string, d *Descriptor) { t.Property(name, d) }

// DeclareParam implements Declarer.
func (r *Record) DeclareParam(index int, key string, d *Descriptor) { r.Param(index, key, d) }

// DeclareProperty implements Declarer.
func (r *Record) DeclareProperty(name string, d *Descriptor) { r.Property(name, d) }
