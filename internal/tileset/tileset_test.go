package tileset

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MJE43/tile-variations-go/internal/tiles"
	"github.com/MJE43/tile-variations-go/internal/variant"
)

func descriptors() []tiles.Descriptor {
	return []tiles.Descriptor{
		{Index: 0, Vector: variant.AtIndex(0), ID: 1000000, Filename: "tile_1000000_0.50_0.60.blend"},
		{Index: 40, Vector: variant.AtIndex(40), ID: 1000101, Filename: "tile_1000101_0.42_1.07.blend"},
	}
}

func TestBuild(t *testing.T) {
	doc, err := Build(descriptors())
	if err != nil {
		t.Fatal(err)
	}

	wantTiles := []string{"tile_1000000_0.50_0.60", "tile_1000101_0.42_1.07"}
	for i, name := range wantTiles {
		if doc.Tiles[i] != name {
			t.Errorf("tile %d = %q, want %q", i, doc.Tiles[i], name)
		}
	}

	row := doc.Types.Array[1].Array
	want := []int{1, 0, 1, 0, 0, 0}
	for j := range want {
		if row[j] != want[j] {
			t.Fatalf("types row = %v, want %v", row, want)
		}
	}
}

func TestBuildEmpty(t *testing.T) {
	if _, err := Build(nil); !errors.Is(err, ErrEmpty) {
		t.Errorf("expected ErrEmpty, got %v", err)
	}
}

func TestWriteShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sets", "hex.json")
	if err := Write(path, descriptors()); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	if _, ok := raw["tiles"]; !ok {
		t.Error("missing tiles key")
	}
	compact := strings.Join(strings.Fields(string(raw["types"])), "")
	if !strings.HasPrefix(compact, `{"array":[{"array":[0,0,0,0,0,0]}`) {
		t.Errorf("types has wrong shape: %s", compact)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if len(doc.Tiles) != 2 || len(doc.Types.Array) != 2 {
		t.Errorf("read back %d tiles, %d rows", len(doc.Tiles), len(doc.Types.Array))
	}
}
