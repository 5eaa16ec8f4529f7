// Package ordered provides a string-keyed map that remembers insertion order.
package ordered

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Map is a string-keyed mapping that iterates and serializes in insertion order.
// The zero value is an empty map ready to use.
type Map[V any] struct {
	keys   []string
	values map[string]V
}

// New returns an empty map.
func New[V any]() Map[V] {
	return Map[V]{keys: []string{}, values: map[string]V{}}
}

// Set stores v under key. Overwriting an existing key keeps its original position.
func (m *Map[V]) Set(key string, v V) {
	if m.values == nil {
		m.values = map[string]V{}
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

func (m Map[V]) Get(key string) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (m Map[V]) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

func (m Map[V]) Len() int {
	return len(m.keys)
}

// Merge copies every entry of other into m, in other's order. Later values win.
func (m *Map[V]) Merge(other Map[V]) {
	for _, k := range other.keys {
		m.Set(k, other.values[k])
	}
}

func (m Map[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := encode(k)
		if err != nil {
			return nil, fmt.Errorf("encoding key %q: %w", k, err)
		}
		vb, err := encode(m.values[k])
		if err != nil {
			return nil, fmt.Errorf("encoding value for %q: %w", k, err)
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// encode marshals v without escaping HTML characters.
func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func (m Map[V]) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range m.keys {
		valNode := &yaml.Node{}
		if err := valNode.Encode(m.values[k]); err != nil {
			return nil, fmt.Errorf("encoding value for %q: %w", k, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			valNode,
		)
	}
	return node, nil
}
