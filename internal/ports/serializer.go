package ports

import "github.com/bnema/platform-intake/internal/domain"

type Serializer interface {
	Serialize(record domain.Record) ([]byte, error)
	Extension() string
}
