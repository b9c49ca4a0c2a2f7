// Package tiles turns points of the design space into tile descriptors and
// feeds them, one at a time, to a sink.
package tiles

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/MJE43/tile-variations-go/internal/params"
	"github.com/MJE43/tile-variations-go/internal/variant"
)

const (
	// DefaultPrecision is the number of decimals per parameter in filenames.
	DefaultPrecision = 2
	// DefaultExtension is the asset file extension.
	DefaultExtension = ".blend"

	filenamePrefix = "tile"
)

// Descriptor is one tile: where it sits in the design space, its
// combination id, its sampled parameters and the filename they render to.
type Descriptor struct {
	Index    int            `json:"index" yaml:"index"`
	Vector   variant.Vector `json:"flags" yaml:"flags"`
	ID       variant.ID     `json:"id" yaml:"id"`
	Bundle   params.Bundle  `json:"params" yaml:"params"`
	Filename string         `json:"filename" yaml:"filename"`
}

// FormatFilename renders tile_<id>_<v1>_..._<vN><ext>. Values use fixed
// precision with round-half-even on the exact binary value, the same digits
// Python's "{:.2f}" produces.
func FormatFilename(id variant.ID, b params.Bundle, precision int, ext string) string {
	var sb strings.Builder
	sb.WriteString(filenamePrefix)
	sb.WriteByte('_')
	sb.WriteString(strconv.Itoa(int(id)))
	for _, v := range b {
		sb.WriteByte('_')
		sb.WriteString(strconv.FormatFloat(v.Value, 'f', precision, 64))
	}
	sb.WriteString(ext)
	return sb.String()
}

// Path joins the output directory and the descriptor's filename.
func Path(dir string, d Descriptor) string {
	return filepath.Join(dir, d.Filename)
}
