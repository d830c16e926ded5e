package model

import (
	"bytes"
	jsonlib "encoding/json"

	"github.com/purpose-first/plans-as-code/internal/pkg/utils/errors"
)

// Marker formats the placeholder of a changeable area in code lines.
func Marker(key string) string {
	return "@@" + key + "@@"
}

// AreaMap maps a changeable-area key to its candidate values.
// Key order is the insertion order and is preserved by the JSON codec,
// it defines the order of blanks and clickable markers in generated documents.
type AreaMap struct {
	keys   []string
	values map[string][]string
}

func NewAreaMap() *AreaMap {
	return &AreaMap{values: make(map[string][]string)}
}

// Set stores candidates under the key, appending the key on first use.
func (m *AreaMap) Set(key string, candidates []string) {
	if m.values == nil {
		m.values = make(map[string][]string)
	}
	if _, found := m.values[key]; !found {
		m.keys = append(m.keys, key)
	}
	m.values[key] = candidates
}

// Get returns the candidates for the key.
func (m *AreaMap) Get(key string) ([]string, bool) {
	if m == nil || m.values == nil {
		return nil, false
	}
	v, found := m.values[key]
	return v, found
}

// First returns the first candidate for the key, or "".
func (m *AreaMap) First(key string) string {
	if v, found := m.Get(key); found && len(v) > 0 {
		return v[0]
	}
	return ""
}

// Append adds candidates to the key, keeping existing values.
func (m *AreaMap) Append(key string, candidates ...string) {
	existing, _ := m.Get(key)
	m.Set(key, append(existing, candidates...))
}

// Delete removes the key.
func (m *AreaMap) Delete(key string) {
	if m == nil || m.values == nil {
		return
	}
	if _, found := m.values[key]; !found {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Rename moves candidates to a new key, keeping the position.
func (m *AreaMap) Rename(oldKey, newKey string) bool {
	if m == nil || m.values == nil {
		return false
	}
	v, found := m.values[oldKey]
	if !found {
		return false
	}
	delete(m.values, oldKey)
	m.values[newKey] = v
	for i, k := range m.keys {
		if k == oldKey {
			m.keys[i] = newKey
			break
		}
	}
	return true
}

// Keys returns the keys in insertion order.
func (m *AreaMap) Keys() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.keys...)
}

// Len returns the number of keys.
func (m *AreaMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Clone returns a deep copy.
func (m *AreaMap) Clone() *AreaMap {
	if m == nil {
		return nil
	}
	out := NewAreaMap()
	for _, k := range m.keys {
		out.Set(k, append([]string(nil), m.values[k]...))
	}
	return out
}

func (m *AreaMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := jsonlib.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		candidates := m.values[k]
		if candidates == nil {
			candidates = []string{}
		}
		value, err := jsonlib.Marshal(candidates)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (m *AreaMap) UnmarshalJSON(data []byte) error {
	*m = AreaMap{values: make(map[string][]string)}
	dec := jsonlib.NewDecoder(bytes.NewReader(data))
	token, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := token.(jsonlib.Delim); !ok || delim != '{' {
		return errors.New("changeable areas must be an object")
	}
	for dec.More() {
		keyToken, err := dec.Token()
		if err != nil {
			return err
		}
		key := keyToken.(string)
		var candidates []string
		if err := dec.Decode(&candidates); err != nil {
			return errors.PrefixErrorf(err, `invalid candidates of area "%s"`, key)
		}
		m.Set(key, candidates)
	}
	_, err = dec.Token() // closing brace
	return err
}
