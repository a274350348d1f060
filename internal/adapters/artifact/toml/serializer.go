package toml

import (
	"fmt"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/bnema/platform-intake/internal/domain"
	"github.com/bnema/platform-intake/internal/ports"
)

var _ ports.Serializer = (*Serializer)(nil)

type Serializer struct{}

func New() *Serializer {
	return &Serializer{}
}

func (s *Serializer) Extension() string {
	return "toml"
}

type header struct {
	ResourceType string `toml:"resource_type"`
}

// Serialize writes the resource_type key ahead of the record so it stays a
// top-level key even when the record ends with nested tables.
func (s *Serializer) Serialize(record domain.Record) ([]byte, error) {
	head, err := toml.Marshal(header{ResourceType: record.Kind().ResourceType()})
	if err != nil {
		return nil, fmt.Errorf("encode resource type: %w", err)
	}

	body, err := toml.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("encode %s %s: %w", record.Kind(), record.Name(), err)
	}

	return append(head, body...), nil
}
