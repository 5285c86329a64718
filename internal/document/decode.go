package document

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format names a supported document encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the encoding from a file extension. Anything that is
// not .yaml or .yml is treated as TOML.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// Parse decodes data in the given format into an ordered table.
func Parse(data []byte, format Format) (*Table, error) {
	switch format {
	case FormatYAML:
		return ParseYAML(data)
	case FormatTOML, "":
		return ParseTOML(data)
	default:
		return nil, fmt.Errorf("unsupported document format %q", format)
	}
}

// ParseTOML decodes a TOML document, keeping keys in the order they appear
// in the source.
func ParseTOML(data []byte) (*Table, error) {
	raw := make(map[string]any)
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		var perr toml.ParseError
		if errors.As(err, &perr) {
			return nil, fmt.Errorf("invalid toml: %s", strings.TrimSpace(perr.ErrorWithPosition()))
		}
		return nil, fmt.Errorf("invalid toml: %w", err)
	}

	order := make(map[string]int)
	// Implicit parents of dotted keys take the position of their first child.
	for i, key := range md.Keys() {
		for depth := 1; depth <= len(key); depth++ {
			path := strings.Join(key[:depth], "\x00")
			if _, seen := order[path]; !seen {
				order[path] = i
			}
		}
	}

	return tomlTable(raw, nil, order), nil
}

func tomlTable(raw map[string]any, prefix []string, order map[string]int) *Table {
	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	position := func(key string) (int, bool) {
		path := append(append([]string{}, prefix...), key)
		idx, ok := order[strings.Join(path, "\x00")]
		return idx, ok
	}
	sort.SliceStable(keys, func(i, j int) bool {
		pi, oki := position(keys[i])
		pj, okj := position(keys[j])
		switch {
		case oki && okj:
			return pi < pj
		case oki != okj:
			return oki
		default:
			return keys[i] < keys[j]
		}
	})

	table := NewTable()
	for _, key := range keys {
		path := append(append([]string{}, prefix...), key)
		table.Set(key, tomlValue(raw[key], path, order))
	}
	return table
}

func tomlValue(raw any, path []string, order map[string]int) Value {
	switch v := raw.(type) {
	case string:
		return String(v)
	case bool:
		return Bool(v)
	case int64:
		return Int(v)
	case int:
		return Int(int64(v))
	case float64:
		return Float(v)
	case time.Time:
		return Datetime(v)
	case map[string]any:
		return TableValue(tomlTable(v, path, order))
	case []map[string]any:
		items := make([]Value, len(v))
		for i, item := range v {
			items[i] = TableValue(tomlTable(item, path, order))
		}
		return List(items...)
	case []any:
		items := make([]Value, len(v))
		for i, item := range v {
			items[i] = tomlValue(item, path, order)
		}
		return List(items...)
	case fmt.Stringer:
		return String(v.String())
	default:
		return String(fmt.Sprint(v))
	}
}

// ParseYAML decodes a YAML document. The top level must be a mapping.
func ParseYAML(data []byte) (*Table, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	if root.Kind == 0 {
		return NewTable(), nil
	}

	node := &root
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return NewTable(), nil
		}
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("invalid yaml: line %d: top level must be a mapping", node.Line)
	}

	v, err := yamlValue(node)
	if err != nil {
		return nil, err
	}
	table, _ := v.AsTable()
	return table, nil
}

func yamlValue(node *yaml.Node) (Value, error) {
	switch node.Kind {
	case yaml.AliasNode:
		if node.Alias == nil {
			return Value{}, fmt.Errorf("invalid yaml: line %d: dangling alias", node.Line)
		}
		return yamlValue(node.Alias)
	case yaml.MappingNode:
		table := NewTable()
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i].Value
			v, err := yamlValue(node.Content[i+1])
			if err != nil {
				return Value{}, err
			}
			table.Set(key, v)
		}
		return TableValue(table), nil
	case yaml.SequenceNode:
		items := make([]Value, 0, len(node.Content))
		for _, child := range node.Content {
			v, err := yamlValue(child)
			if err != nil {
				return Value{}, err
			}
			items = append(items, v)
		}
		return List(items...), nil
	case yaml.ScalarNode:
		var decoded any
		if err := node.Decode(&decoded); err != nil {
			return Value{}, fmt.Errorf("invalid yaml: line %d: %w", node.Line, err)
		}
		switch v := decoded.(type) {
		case nil:
			return String(""), nil
		case bool:
			return Bool(v), nil
		case int:
			return Int(int64(v)), nil
		case int64:
			return Int(v), nil
		case uint64:
			if v > math.MaxInt64 {
				return String(node.Value), nil
			}
			return Int(int64(v)), nil
		case float64:
			return Float(v), nil
		case time.Time:
			return Datetime(v), nil
		case string:
			return String(v), nil
		default:
			return String(node.Value), nil
		}
	default:
		return Value{}, fmt.Errorf("invalid yaml: line %d: unsupported node", node.Line)
	}
}
