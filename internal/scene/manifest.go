package scene

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Manifest saves a JSON snapshot of the assigned modifier inputs instead of
// a native scene file. The snapshot is what a headless import script applies
// to the template scene.
type Manifest struct {
	mem      *Memory
	template string
}

// ManifestDoc is the on-disk shape.
type ManifestDoc struct {
	Template string                               `json:"template,omitempty"`
	Objects  map[string]map[string]map[string]any `json:"objects"`
}

// NewManifest returns a manifest scene. template names the source scene the
// snapshot applies to and may be empty.
func NewManifest(template string) *Manifest {
	return &Manifest{mem: NewMemory(), template: template}
}

func (m *Manifest) SetParameter(object, modifier, key string, value any) error {
	return m.mem.SetParameter(object, modifier, key, value)
}

// SaveTo writes the snapshot atomically: a temp file in the same directory
// renamed over path.
func (m *Manifest) SaveTo(path string) error {
	data, err := json.MarshalIndent(m.document(), "", "  ")
	if err != nil {
		return &SaveError{Path: path, Err: err}
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tile-*.tmp")
	if err != nil {
		return &SaveError{Path: path, Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &SaveError{Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &SaveError{Path: path, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return &SaveError{Path: path, Err: err}
	}
	return nil
}

func (m *Manifest) document() ManifestDoc {
	doc := ManifestDoc{
		Template: m.template,
		Objects:  make(map[string]map[string]map[string]any),
	}
	for _, a := range m.mem.State() {
		mods, ok := doc.Objects[a.Object]
		if !ok {
			mods = make(map[string]map[string]any)
			doc.Objects[a.Object] = mods
		}
		inputs, ok := mods[a.Modifier]
		if !ok {
			inputs = make(map[string]any)
			mods[a.Modifier] = inputs
		}
		inputs[a.Key] = a.Value
	}
	return doc
}
