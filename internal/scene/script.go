package scene

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Script records scene operations as a Blender Python (bpy) script. Running
// it inside Blender against the template file performs the same
// SetParameter/SaveTo sequence:
//
//	blender --background template.blend --python tiles.py
//
// Socket identifiers are resolved by display name through the node group
// interface, so the script survives socket reordering in the node tree.
type Script struct {
	template string
	header   []string
	body     []string
	objects  map[string]string
	sockets  map[[2]string]string
}

// NewScript returns an empty script. When template is non-empty the script
// opens it first.
func NewScript(template string) *Script {
	return &Script{
		template: template,
		objects:  make(map[string]string),
		sockets:  make(map[[2]string]string),
	}
}

func (s *Script) SetParameter(object, modifier, key string, value any) error {
	lit, err := pyValue(value)
	if err != nil {
		return err
	}
	obj := s.objectVar(object)
	sock := s.socketVar(object, obj, modifier, key)
	s.body = append(s.body, fmt.Sprintf("%s.modifiers[%s][%s] = %s", obj, pyString(modifier), sock, lit))
	return nil
}

// SaveTo appends a save_mainfile call. Failures surface when Blender runs
// the script, not here.
func (s *Script) SaveTo(path string) error {
	s.body = append(s.body, fmt.Sprintf("bpy.ops.wm.save_mainfile(filepath=%s)", pyString(path)))
	return nil
}

func (s *Script) objectVar(object string) string {
	if v, ok := s.objects[object]; ok {
		return v
	}
	v := fmt.Sprintf("obj_%d", len(s.objects))
	s.objects[object] = v
	s.header = append(s.header, fmt.Sprintf("%s = bpy.data.objects[%s]", v, pyString(object)))
	return v
}

func (s *Script) socketVar(object, objVar, modifier, key string) string {
	k := [2]string{object + "\x00" + modifier, key}
	if v, ok := s.sockets[k]; ok {
		return v
	}
	v := fmt.Sprintf("sock_%d", len(s.sockets))
	s.sockets[k] = v
	s.header = append(s.header, fmt.Sprintf(
		"%s = %s.modifiers[%s].node_group.interface.items_tree[%s].identifier",
		v, objVar, pyString(modifier), pyString(key)))
	return v
}

// String renders the complete script.
func (s *Script) String() string {
	var b strings.Builder
	b.WriteString("import bpy\n\n")
	if s.template != "" {
		fmt.Fprintf(&b, "bpy.ops.wm.open_mainfile(filepath=%s)\n\n", pyString(s.template))
	}
	for _, line := range s.header {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if len(s.header) > 0 {
		b.WriteByte('\n')
	}
	for _, line := range s.body {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// WriteTo writes the rendered script to w.
func (s *Script) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.String())
	return int64(n), err
}

func pyString(s string) string {
	return strconv.Quote(s)
}

func pyValue(value any) (string, error) {
	switch v := value.(type) {
	case int:
		return strconv.Itoa(v), nil
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return "", fmt.Errorf("%w: non-finite float %v", ErrUnsupportedValue, v)
		}
		lit := strconv.FormatFloat(v, 'g', -1, 64)
		if !strings.ContainsAny(lit, ".e") {
			lit += ".0"
		}
		return lit, nil
	default:
		return "", fmt.Errorf("%w: %T", ErrUnsupportedValue, value)
	}
}
