package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"

	"github.com/MJE43/tile-variations-go/internal/tiles"
)

func loadFrom(t *testing.T, yaml string) (*Config, error) {
	t.Helper()
	v := viper.New()
	file := ""
	if yaml != "" {
		file = filepath.Join(t.TempDir(), "tilegen.yaml")
		if err := os.WriteFile(file, []byte(yaml), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := Setup(v, file); err != nil {
		t.Fatal(err)
	}
	return Load(v)
}

func TestDefaults(t *testing.T) {
	cfg, err := loadFrom(t, "")
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Mode() != tiles.ModeSampled || cfg.Generate.Count != 4 {
		t.Errorf("mode=%s count=%d", cfg.Mode(), cfg.Generate.Count)
	}
	if cfg.Generate.Precision != 2 || cfg.Generate.Extension != ".blend" {
		t.Errorf("precision=%d extension=%q", cfg.Generate.Precision, cfg.Generate.Extension)
	}
	if cfg.Scene.Object != "Plane" || cfg.Scene.ID.Modifier != "GeometryNodes" || cfg.Scene.ID.Socket != "Types" {
		t.Errorf("scene = %+v", cfg.Scene)
	}

	rs, err := cfg.Ranges()
	if err != nil {
		t.Fatal(err)
	}
	if len(rs) != 2 || rs[0].Name != "removal" || rs[1].Name != "scale_noise" {
		t.Errorf("default ranges = %+v", rs)
	}
}

func TestFileOverrides(t *testing.T) {
	cfg, err := loadFrom(t, `
generate:
  mode: exhaustive
  seed: batch-7
  tile_type: rock
  params:
    - name: roughness
      low: 0.2
      high: 0.8
      binding:
        modifier: Rock
        socket: Roughness
    - name: size
      low: 1
      high: 3
scene:
  sink: manifest
  object: Cube
`)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Mode() != tiles.ModeExhaustive || cfg.Generate.Seed != "batch-7" {
		t.Errorf("generate = %+v", cfg.Generate)
	}
	rs, err := cfg.Ranges()
	if err != nil {
		t.Fatal(err)
	}
	if len(rs) != 2 || rs[0].Name != "roughness" || rs[1].Name != "size" {
		t.Fatalf("ranges lost their order: %+v", rs)
	}
	if rs[0].Binding.Socket != "Roughness" || !rs[1].Binding.IsZero() {
		t.Errorf("bindings = %+v / %+v", rs[0].Binding, rs[1].Binding)
	}
	if rs[1].High != 3 {
		t.Errorf("size high = %v", rs[1].High)
	}
	if cfg.Scene.Sink != SinkManifest || cfg.Scene.Object != "Cube" {
		t.Errorf("scene = %+v", cfg.Scene)
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("TILEGEN_GENERATE_COUNT", "7")
	t.Setenv("TILEGEN_GENERATE_TILE_TYPE", "hex-terrain")

	cfg, err := loadFrom(t, "")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Generate.Count != 7 {
		t.Errorf("count = %d", cfg.Generate.Count)
	}
	rs, err := cfg.Ranges()
	if err != nil {
		t.Fatal(err)
	}
	if len(rs) != 4 {
		t.Errorf("hex-terrain should have 4 ranges, got %d", len(rs))
	}
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad mode", "generate:\n  mode: everything\n"},
		{"negative count", "generate:\n  count: -2\n"},
		{"unknown preset", "generate:\n  tile_type: octagon\n"},
		{"inverted range", "generate:\n  params:\n    - name: a\n      low: 2\n      high: 1\n"},
		{"duplicate names", "generate:\n  params:\n    - name: a\n      low: 0\n      high: 1\n    - name: a\n      low: 0\n      high: 1\n"},
		{"unknown sink", "scene:\n  sink: ftp\n"},
		{"bpy without script", "scene:\n  sink: bpy\n  script: \"\"\n"},
		{"unknown log format", "log:\n  format: xml\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadFrom(t, tt.yaml)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestMissingFile(t *testing.T) {
	v := viper.New()
	if err := Setup(v, filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}
