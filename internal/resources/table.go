package resources

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Entry is one canonical name with its pipe-delimited surface forms.
type Entry struct {
	Key   string
	Value string
}

// Table is a YAML mapping that keeps document order. Surface-form binding is
// first-wins, so order is part of the data.
type Table []Entry

func (t *Table) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping, got %s", node.Line, kindName(node.Kind))
	}
	out := make(Table, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		if v.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: value of %q must be a string", v.Line, k.Value)
		}
		out = append(out, Entry{Key: k.Value, Value: v.Value})
	}
	*t = out
	return nil
}

// Lookup returns the first value bound to key.
func (t Table) Lookup(key string) (string, bool) {
	for _, e := range t {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}

// Map flattens the table; earlier entries win on duplicate keys.
func (t Table) Map() map[string]string {
	m := make(map[string]string, len(t))
	for _, e := range t {
		if _, ok := m[e.Key]; !ok {
			m[e.Key] = e.Value
		}
	}
	return m
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	}
	return "unknown"
}
