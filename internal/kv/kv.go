// Package kv defines the key-value persistence used by the list store and
// the preferences, plus an in-memory implementation.
package kv

// Fixed keys. The values are kept compatible with data written by earlier
// versions of the app.
const (
	KeyItems  = "interactive_list_v1"
	KeyTheme  = "interactive_theme_v1"
	KeyAccent = "interactive_accent_v1"
)

// Store is a string key-value store. Get reports ok=false for a missing key.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// Memory is a map-backed Store. The zero value is ready to use.
type Memory struct {
	data map[string]string
}

// NewMemory returns a Memory pre-filled with seed (may be nil).
func NewMemory(seed map[string]string) *Memory {
	m := &Memory{data: make(map[string]string, len(seed))}
	for k, v := range seed {
		m.data[k] = v
	}
	return m
}

func (m *Memory) Get(key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	if m.data == nil {
		m.data = make(map[string]string)
	}
	m.data[key] = value
	return nil
}
