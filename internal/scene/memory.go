package scene

// Save is one recorded SaveTo call together with the state at that moment.
type Save struct {
	Path  string
	State []Assignment
}

// Memory records calls without touching the filesystem. It backs dry runs
// and tests. FailOn makes SaveTo fail for matching paths.
type Memory struct {
	FailOn func(path string) bool

	state map[stateKey]any
	order []stateKey
	saves []Save
}

type stateKey struct {
	object, modifier, key string
}

// NewMemory returns an empty in-memory scene.
func NewMemory() *Memory {
	return &Memory{state: make(map[stateKey]any)}
}

func (m *Memory) SetParameter(object, modifier, key string, value any) error {
	if err := checkValue(value); err != nil {
		return err
	}
	k := stateKey{object, modifier, key}
	if _, ok := m.state[k]; !ok {
		m.order = append(m.order, k)
	}
	m.state[k] = value
	return nil
}

func (m *Memory) SaveTo(path string) error {
	if m.FailOn != nil && m.FailOn(path) {
		return &SaveError{Path: path, Err: errReadOnly}
	}
	m.saves = append(m.saves, Save{Path: path, State: m.State()})
	return nil
}

// State returns the current assignments in first-set order.
func (m *Memory) State() []Assignment {
	out := make([]Assignment, 0, len(m.order))
	for _, k := range m.order {
		out = append(out, Assignment{Object: k.object, Modifier: k.modifier, Key: k.key, Value: m.state[k]})
	}
	return out
}

// Saves returns every successful SaveTo call.
func (m *Memory) Saves() []Save {
	out := make([]Save, len(m.saves))
	copy(out, m.saves)
	return out
}
