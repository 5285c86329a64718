// Package document holds the ordered key/value tree decoded from theme and
// pattern files.
//
// Declaration order matters to color and style resolution, so tables keep
// their keys in the order they were first written.
package document

import (
	"strconv"
	"time"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindString Kind = iota
	KindBool
	KindInt
	KindFloat
	KindDatetime
	KindList
	KindTable
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	case KindDatetime:
		return "datetime"
	case KindList:
		return "list"
	case KindTable:
		return "table"
	default:
		return "unknown"
	}
}

// Value is a tagged variant over the scalar and container types a document
// can contain. The zero Value is the empty string.
type Value struct {
	kind  Kind
	str   string
	b     bool
	i     int64
	f     float64
	t     time.Time
	list  []Value
	table *Table
}

func String(s string) Value { return Value{kind: KindString, str: s} }
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }
func Int(i int64) Value { return Value{kind: KindInt, i: i} }
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }
func Datetime(t time.Time) Value { return Value{kind: KindDatetime, t: t} }
func List(items ...Value) Value { return Value{kind: KindList, list: items} }
func TableValue(t *Table) Value { return Value{kind: KindTable, table: t} }
func (v Value) Kind() Kind { return v.kind }
func (v Value) IsScalar() bool { return v.kind != KindList && v.kind != KindTable }

// AsString returns the string held by v.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// AsBool returns the boolean held by v.
func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// AsList returns the items held by v.
func (v Value) AsList() ([]Value, bool) {
	if v.kind != KindList {
		return nil, false
	}
	return v.list, true
}

// AsTable returns the table held by v.
func (v Value) AsTable() (*Table, bool) {
	if v.kind != KindTable || v.table == nil {
		return nil, false
	}
	return v.table, true
}

// Text renders a scalar the way it reads in a TOML file: booleans are
// lowercase and numbers use their shortest form. Lists and tables render
// as the empty string.
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case KindDatetime:
		return v.t.Format(time.RFC3339)
	default:
		return ""
	}
}

// Interface converts v into plain Go values: tables become
// map[string]any and lists become []any.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindDatetime:
		return v.t
	case KindList:
		items := make([]any, len(v.list))
		for i, item := range v.list {
			items[i] = item.Interface()
		}
		return items
	case KindTable:
		if v.table == nil {
			return map[string]any{}
		}
		return v.table.Map()
	default:
		return nil
	}
}
