package scene

import (
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMemoryRecordsState(t *testing.T) {
	m := NewMemory()

	if err := m.SetParameter("Plane", "GeometryNodes", "Types", 1000101); err != nil {
		t.Fatal(err)
	}
	if err := m.SetParameter("Plane", "NewHex", "Removal", 0.5); err != nil {
		t.Fatal(err)
	}
	if err := m.SetParameter("Plane", "GeometryNodes", "Types", 1000000); err != nil {
		t.Fatal(err)
	}

	state := m.State()
	if len(state) != 2 {
		t.Fatalf("expected 2 assignments, got %d", len(state))
	}
	if state[0].Value != 1000000 {
		t.Errorf("Types = %v, want overwritten value 1000000", state[0].Value)
	}

	if err := m.SaveTo("tile.blend"); err != nil {
		t.Fatal(err)
	}
	saves := m.Saves()
	if len(saves) != 1 || saves[0].Path != "tile.blend" || len(saves[0].State) != 2 {
		t.Errorf("unexpected saves: %+v", saves)
	}
}

func TestMemoryRejectsUnsupportedValue(t *testing.T) {
	m := NewMemory()
	err := m.SetParameter("Plane", "NewHex", "Removal", "0.5")
	if !errors.Is(err, ErrUnsupportedValue) {
		t.Errorf("expected ErrUnsupportedValue, got %v", err)
	}
}

func TestMemoryFailOn(t *testing.T) {
	m := NewMemory()
	m.FailOn = func(path string) bool { return strings.HasPrefix(path, "/ro/") }

	err := m.SaveTo("/ro/tile.blend")
	if !errors.Is(err, ErrSave) {
		t.Fatalf("expected ErrSave, got %v", err)
	}
	var se *SaveError
	if !errors.As(err, &se) || se.Path != "/ro/tile.blend" {
		t.Errorf("expected SaveError with path, got %v", err)
	}
	if len(m.Saves()) != 0 {
		t.Error("failed save was recorded")
	}
}

func TestManifestSaveAndRead(t *testing.T) {
	dir := t.TempDir()
	m := NewManifest("hex_template.blend")

	m.SetParameter("Plane", "GeometryNodes", "Types", 1000101)
	m.SetParameter("Plane", "NewHex", "Removal", 0.5)
	m.SetParameter("Plane", "NewHex", "Scale Noise", 1.0)

	path := filepath.Join(dir, "tile_1000101_0.50_1.00.blend")
	if err := m.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var doc ManifestDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("manifest is not JSON: %v", err)
	}
	if doc.Template != "hex_template.blend" {
		t.Errorf("template = %q", doc.Template)
	}
	if got := len(doc.Objects["Plane"]); got != 2 {
		t.Errorf("Plane has %d modifiers, want 2", got)
	}
	if v := doc.Objects["Plane"]["GeometryNodes"]["Types"]; v != float64(1000101) {
		t.Errorf("Types = %v", v)
	}
	if v := doc.Objects["Plane"]["NewHex"]["Removal"]; v != 0.5 {
		t.Errorf("Removal = %v", v)
	}

	leftovers, _ := filepath.Glob(filepath.Join(dir, ".tile-*.tmp"))
	if len(leftovers) != 0 {
		t.Errorf("temp files left behind: %v", leftovers)
	}
}

func TestManifestSaveUnwritable(t *testing.T) {
	m := NewManifest("")
	path := filepath.Join(t.TempDir(), "missing", "dir", "tile.blend")

	err := m.SaveTo(path)
	if !errors.Is(err, ErrSave) {
		t.Fatalf("expected ErrSave, got %v", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("file should not exist after failed save")
	}
}

func TestScriptRendersBpy(t *testing.T) {
	s := NewScript("hex_template.blend")

	s.SetParameter("Plane", "GeometryNodes", "Types", 1000101)
	s.SetParameter("Plane", "NewHex", "Removal", 0.5)
	s.SetParameter("Plane", "NewHex", "Scale Noise", 1.0)
	s.SaveTo("out/tile_1000101_0.50_1.00.blend")
	s.SetParameter("Plane", "GeometryNodes", "Types", 1000000)
	s.SaveTo("out/tile_1000000_0.41_0.20.blend")

	got := s.String()
	want := []string{
		"import bpy",
		`bpy.ops.wm.open_mainfile(filepath="hex_template.blend")`,
		`obj_0 = bpy.data.objects["Plane"]`,
		`sock_0 = obj_0.modifiers["GeometryNodes"].node_group.interface.items_tree["Types"].identifier`,
		`sock_2 = obj_0.modifiers["NewHex"].node_group.interface.items_tree["Scale Noise"].identifier`,
		`obj_0.modifiers["GeometryNodes"][sock_0] = 1000101`,
		`obj_0.modifiers["NewHex"][sock_1] = 0.5`,
		`obj_0.modifiers["NewHex"][sock_2] = 1.0`,
		`bpy.ops.wm.save_mainfile(filepath="out/tile_1000101_0.50_1.00.blend")`,
		`obj_0.modifiers["GeometryNodes"][sock_0] = 1000000`,
	}
	for _, line := range want {
		if !strings.Contains(got, line+"\n") {
			t.Errorf("script missing line %q\n%s", line, got)
		}
	}

	if strings.Count(got, "items_tree") != 3 {
		t.Errorf("socket lookups should be emitted once each:\n%s", got)
	}
	if strings.Index(got, "sock_0 =") > strings.Index(got, "[sock_0] = 1000101") {
		t.Error("socket lookup must precede its first use")
	}
}

func TestScriptRejectsNonFinite(t *testing.T) {
	s := NewScript("")
	if err := s.SetParameter("Plane", "NewHex", "Removal", math.Inf(1)); !errors.Is(err, ErrUnsupportedValue) {
		t.Errorf("expected ErrUnsupportedValue, got %v", err)
	}
}
