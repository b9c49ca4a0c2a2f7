package params

import (
	"fmt"
	"sort"
)

// Presets are the range sets of the known tile types. "hex" matches the
// two-parameter filenames of the first tile batch; "hex-terrain" adds the
// color and height controls.
var Presets = map[string]Ranges{
	"hex": {
		{Name: "removal", Low: 0.4, High: 0.6, Binding: Binding{Modifier: "NewHex", Socket: "Removal"}},
		{Name: "scale_noise", Low: 0.1, High: 1.1, Binding: Binding{Modifier: "NewHex", Socket: "Scale Noise"}},
	},
	"hex-terrain": {
		{Name: "removal", Low: 0.4, High: 0.6, Binding: Binding{Modifier: "NewHex", Socket: "Removal"}},
		{Name: "scale_noise", Low: 0.1, High: 1.1, Binding: Binding{Modifier: "NewHex", Socket: "Scale Noise"}},
		{Name: "min_color", Low: 0.5, High: 1.0, Binding: Binding{Modifier: "NewHex", Socket: "Min Color"}},
		{Name: "height_max", Low: 4.5, High: 6.5, Binding: Binding{Modifier: "NewHex", Socket: "Height Max"}},
	},
}

// Preset returns a copy of the named preset.
func Preset(name string) (Ranges, error) {
	rs, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown preset %q (known: %v)", name, PresetNames())
	}
	out := make(Ranges, len(rs))
	copy(out, rs)
	return out, nil
}

// PresetNames lists presets alphabetically.
func PresetNames() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
