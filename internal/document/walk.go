package document

// Walk returns a copy of v with fn applied to every string leaf. Tables and
// lists are rebuilt; the input is never modified.
func Walk(v Value, fn func(string) string) Value {
	switch v.kind {
	case KindString:
		return String(fn(v.str))
	case KindList:
		items := make([]Value, len(v.list))
		for i, item := range v.list {
			items[i] = Walk(item, fn)
		}
		return List(items...)
	case KindTable:
		return TableValue(WalkTable(v.table, fn))
	default:
		return v
	}
}

// WalkTable applies Walk to every value in t, keeping key order.
func WalkTable(t *Table, fn func(string) string) *Table {
	out := NewTable()
	for _, key := range t.Keys() {
		v, _ := t.Get(key)
		out.Set(key, Walk(v, fn))
	}
	return out
}
