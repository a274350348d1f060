package yaml

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/bnema/platform-intake/internal/domain"
	"github.com/bnema/platform-intake/internal/ports"
)

const indent = 2

var _ ports.Serializer = (*Serializer)(nil)

type Serializer struct{}

func New() *Serializer {
	return &Serializer{}
}

func (s *Serializer) Extension() string {
	return "yaml"
}

// Serialize renders the record as a YAML mapping whose first key is
// resource_type, followed by the record's fields in schema order.
func (s *Serializer) Serialize(record domain.Record) ([]byte, error) {
	var node yaml.Node
	if err := node.Encode(record); err != nil {
		return nil, fmt.Errorf("encode %s %s: %w", record.Kind(), record.Name(), err)
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("encode %s %s: expected a mapping", record.Kind(), record.Name())
	}

	node.Content = append([]*yaml.Node{
		{Kind: yaml.ScalarNode, Tag: "!!str", Value: "resource_type"},
		{Kind: yaml.ScalarNode, Tag: "!!str", Value: record.Kind().ResourceType()},
	}, node.Content...)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indent)
	if err := enc.Encode(&node); err != nil {
		return nil, fmt.Errorf("write %s %s: %w", record.Kind(), record.Name(), err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("flush %s %s: %w", record.Kind(), record.Name(), err)
	}
	return buf.Bytes(), nil
}
