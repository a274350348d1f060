package ports

import "github.com/bnema/platform-intake/internal/domain"

type CatalogSource interface {
	Catalog() *domain.Catalog
}

type StaticCatalog struct {
	Value *domain.Catalog
}

func (s StaticCatalog) Catalog() *domain.Catalog {
	if s.Value == nil {
		return domain.DefaultCatalog()
	}
	return s.Value
}
