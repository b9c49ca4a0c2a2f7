// Package tileset exports a generated tile set in the JSON shape read by the
// game's wave-function-collapse loader: a list of tile names plus, per tile,
// the edge type of each side.
package tileset

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/MJE43/tile-variations-go/internal/tiles"
)

// ErrEmpty is returned when there is nothing to export.
var ErrEmpty = errors.New("tileset: no tiles")

// IntArray wraps a row so that it serialises as {"array": [...]}.
type IntArray struct {
	Array []int `json:"array"`
}

// TypeTable is the nested {"array": [{"array": [...]}]} form.
type TypeTable struct {
	Array []IntArray `json:"array"`
}

// Document is the file layout.
type Document struct {
	Tiles []string  `json:"tiles"`
	Types TypeTable `json:"types"`
}

// Build converts descriptors to a Document. Tile names are filenames
// without their extension; each row of Types holds the tile's flags.
func Build(ds []tiles.Descriptor) (*Document, error) {
	if len(ds) == 0 {
		return nil, ErrEmpty
	}

	doc := &Document{
		Tiles: make([]string, 0, len(ds)),
		Types: TypeTable{Array: make([]IntArray, 0, len(ds))},
	}
	for _, d := range ds {
		doc.Tiles = append(doc.Tiles, strings.TrimSuffix(d.Filename, filepath.Ext(d.Filename)))
		doc.Types.Array = append(doc.Types.Array, IntArray{Array: d.Vector.Ints()})
	}
	return doc, nil
}

// Write builds the document and writes it to path as indented JSON.
func Write(path string, ds []tiles.Descriptor) error {
	doc, err := Build(ds)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
