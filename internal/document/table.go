package document

// Table is an insertion-ordered map of keys to values.
type Table struct {
	keys   []string
	values map[string]Value
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{values: make(map[string]Value)}
}

// Set stores value under key. Overwriting an existing key keeps its
// original position.
func (t *Table) Set(key string, value Value) {
	if t.values == nil {
		t.values = make(map[string]Value)
	}
	if _, exists := t.values[key]; !exists {
		t.keys = append(t.keys, key)
	}
	t.values[key] = value
}

// Get returns the value stored under key.
func (t *Table) Get(key string) (Value, bool) {
	if t == nil {
		return Value{}, false
	}
	v, ok := t.values[key]
	return v, ok
}

// Has reports whether key is present.
func (t *Table) Has(key string) bool {
	_, ok := t.Get(key)
	return ok
}

// Keys returns the keys in insertion order.
func (t *Table) Keys() []string {
	if t == nil {
		return nil
	}
	keys := make([]string, len(t.keys))
	copy(keys, t.keys)
	return keys
}

// Len returns the number of keys.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.keys)
}

// String returns the string stored under key, if key holds a string.
func (t *Table) String(key string) (string, bool) {
	v, ok := t.Get(key)
	if !ok {
		return "", false
	}
	return v.AsString()
}

// Table returns the sub-table stored under key, if key holds a table.
func (t *Table) Table(key string) (*Table, bool) {
	v, ok := t.Get(key)
	if !ok {
		return nil, false
	}
	return v.AsTable()
}

// Lookup follows path through nested tables.
func (t *Table) Lookup(path ...string) (Value, bool) {
	if len(path) == 0 {
		return TableValue(t), t != nil
	}
	current := t
	for i, key := range path {
		v, ok := current.Get(key)
		if !ok {
			return Value{}, false
		}
		if i == len(path)-1 {
			return v, true
		}
		next, ok := v.AsTable()
		if !ok {
			return Value{}, false
		}
		current = next
	}
	return Value{}, false
}

// Clone returns a shallow copy: nested tables and lists are shared.
func (t *Table) Clone() *Table {
	out := NewTable()
	if t == nil {
		return out
	}
	for _, key := range t.keys {
		out.Set(key, t.values[key])
	}
	return out
}

// Map converts the table into nested map[string]any values.
func (t *Table) Map() map[string]any {
	out := make(map[string]any, t.Len())
	if t == nil {
		return out
	}
	for _, key := range t.keys {
		out[key] = t.values[key].Interface()
	}
	return out
}
