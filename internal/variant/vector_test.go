package variant

import (
	"errors"
	"testing"
)

func TestEnumerateOrder(t *testing.T) {
	vs := Enumerate()
	if len(vs) != 64 {
		t.Fatalf("expected 64 vectors, got %d", len(vs))
	}

	tests := []struct {
		index int
		want  Vector
	}{
		{0, Vector{0, 0, 0, 0, 0, 0}},
		{1, Vector{0, 0, 0, 0, 0, 1}},
		{2, Vector{0, 0, 0, 0, 1, 0}},
		{32, Vector{1, 0, 0, 0, 0, 0}},
		{63, Vector{1, 1, 1, 1, 1, 1}},
	}
	for _, tt := range tests {
		if vs[tt.index] != tt.want {
			t.Errorf("vector %d: got %v, want %v", tt.index, vs[tt.index], tt.want)
		}
		if vs[tt.index].Index() != tt.index {
			t.Errorf("Index() of %v: got %d, want %d", tt.want, vs[tt.index].Index(), tt.index)
		}
	}
}

func TestEncodeKnownValues(t *testing.T) {
	tests := []struct {
		v    Vector
		want ID
	}{
		{Vector{0, 0, 0, 0, 0, 0}, 1_000_000},
		{Vector{1, 0, 0, 0, 0, 0}, 1_000_001},
		{Vector{1, 0, 1, 0, 0, 0}, 1_000_101},
		{Vector{0, 0, 0, 0, 0, 1}, 1_100_000},
		{Vector{1, 1, 1, 0, 0, 0}, 1_000_111},
		{Vector{1, 1, 1, 1, 1, 1}, 1_111_111},
	}
	for _, tt := range tests {
		if got := Encode(tt.v); got != tt.want {
			t.Errorf("Encode(%v) = %d, want %d", tt.v, got, tt.want)
		}
	}
}

func TestEncodeInjective(t *testing.T) {
	seen := make(map[ID]Vector)
	for _, v := range Enumerate() {
		id := Encode(v)
		if prev, ok := seen[id]; ok {
			t.Fatalf("Encode collision: %v and %v both map to %d", prev, v, id)
		}
		seen[id] = v
		if id < 1_000_000 || id > 1_111_111 {
			t.Errorf("id %d outside seven-digit range", id)
		}
	}
	if len(seen) != 64 {
		t.Errorf("expected 64 distinct ids, got %d", len(seen))
	}
}

func TestEncodePanicsOnNonBinaryFlag(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for flag value 2")
		}
	}()
	Encode(Vector{0, 2, 0, 0, 0, 0})
}

func TestDecodeRoundTrip(t *testing.T) {
	for _, v := range Enumerate() {
		got, err := Decode(Encode(v))
		if err != nil {
			t.Fatalf("Decode(%d): %v", Encode(v), err)
		}
		if got != v {
			t.Errorf("Decode(Encode(%v)) = %v", v, got)
		}
	}
}

func TestDecodeRejects(t *testing.T) {
	for _, id := range []ID{0, 999_999, 1_000_002, 1_111_112, 2_000_000, 11_000_000} {
		if _, err := Decode(id); !errors.Is(err, ErrInvalidID) {
			t.Errorf("Decode(%d): expected ErrInvalidID, got %v", id, err)
		}
	}
}

func TestRotate(t *testing.T) {
	v := Vector{1, 1, 0, 0, 0, 0}
	if got := v.Rotate(1); got != (Vector{0, 1, 1, 0, 0, 0}) {
		t.Errorf("Rotate(1) = %v", got)
	}
	if got := v.Rotate(-1); got != (Vector{1, 0, 0, 0, 0, 1}) {
		t.Errorf("Rotate(-1) = %v", got)
	}
	if got := v.Rotate(6); got != v {
		t.Errorf("Rotate(6) = %v, want identity", got)
	}
}

func TestCanonicalClasses(t *testing.T) {
	classes := make(map[Vector]bool)
	canonical := 0
	for _, v := range Enumerate() {
		classes[v.Canonical()] = true
		if v.IsCanonical() {
			canonical++
		}
	}
	// Binary necklaces of length 6.
	if len(classes) != 14 {
		t.Errorf("expected 14 rotation classes, got %d", len(classes))
	}
	if canonical != 14 {
		t.Errorf("expected 14 canonical vectors, got %d", canonical)
	}
}

func TestString(t *testing.T) {
	if s := (Vector{1, 0, 1, 1, 0, 0}).String(); s != "101100" {
		t.Errorf("String() = %q", s)
	}
}
