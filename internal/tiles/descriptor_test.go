package tiles

import (
	"path/filepath"
	"testing"

	"github.com/MJE43/tile-variations-go/internal/params"
	"github.com/MJE43/tile-variations-go/internal/variant"
)

func TestFormatFilename(t *testing.T) {
	tests := []struct {
		name      string
		id        variant.ID
		bundle    params.Bundle
		precision int
		ext       string
		want      string
	}{
		{
			name:      "two parameters",
			id:        1000101,
			bundle:    params.Bundle{{Name: "removal", Value: 0.5}, {Name: "scale_noise", Value: 1.0}},
			precision: 2,
			ext:       ".blend",
			want:      "tile_1000101_0.50_1.00.blend",
		},
		{
			name: "four parameters",
			id:   1111111,
			bundle: params.Bundle{
				{Name: "removal", Value: 0.4567},
				{Name: "scale_noise", Value: 0.1},
				{Name: "min_color", Value: 0.999},
				{Name: "height_max", Value: 6.4949},
			},
			precision: 2,
			ext:       ".blend",
			want:      "tile_1111111_0.46_0.10_1.00_6.49.blend",
		},
		{
			name:      "no parameters",
			id:        1000000,
			precision: 2,
			ext:       ".blend",
			want:      "tile_1000000.blend",
		},
		{
			name:      "ties round half to even on the binary value",
			id:        1000000,
			bundle:    params.Bundle{{Name: "a", Value: 0.125}, {Name: "b", Value: 0.375}, {Name: "c", Value: 2.675}},
			precision: 2,
			ext:       ".blend",
			want:      "tile_1000000_0.12_0.38_2.67.blend",
		},
		{
			name:      "custom precision and extension",
			id:        1000010,
			bundle:    params.Bundle{{Name: "removal", Value: 0.5}},
			precision: 3,
			ext:       ".json",
			want:      "tile_1000010_0.500.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatFilename(tt.id, tt.bundle, tt.precision, tt.ext)
			if got != tt.want {
				t.Errorf("FormatFilename() = %q, want %q", got, tt.want)
			}
			if again := FormatFilename(tt.id, tt.bundle, tt.precision, tt.ext); again != got {
				t.Errorf("FormatFilename not stable: %q vs %q", got, again)
			}
		})
	}
}

func TestPath(t *testing.T) {
	d := Descriptor{Filename: "tile_1000000_0.50_1.00.blend"}
	want := filepath.Join("out", "hex", "tile_1000000_0.50_1.00.blend")
	if got := Path(filepath.Join("out", "hex"), d); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
	if got := Path("", d); got != d.Filename {
		t.Errorf("Path with empty dir = %q", got)
	}
}
