package storage

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// WriteJSON marshals the document and writes it atomically under name.
func (d Dir) WriteJSON(name string, doc any) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	return d.writeAtomic(name, append(data, '\n'))
}

// ReadJSON loads and decodes a JSON resource. Absence maps to
// ErrMissingResource, a decode failure to ErrCorrupt.
func (d Dir) ReadJSON(name string, doc any) error {
	data, err := d.readResource(name)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, doc); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorrupt, name, err)
	}
	return nil
}

// WriteYAML marshals the document and writes it atomically under name.
// YAML resources are the ones operators may edit by hand.
func (d Dir) WriteYAML(name string, doc any) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	return d.writeAtomic(name, data)
}

// ReadYAML loads and decodes a YAML resource. Absence maps to
// ErrMissingResource, a decode failure to ErrCorrupt.
func (d Dir) ReadYAML(name string, doc any) error {
	data, err := d.readResource(name)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, doc); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorrupt, name, err)
	}
	return nil
}
