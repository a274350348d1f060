package governance

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/bnema/platform-intake/internal/domain"
	"github.com/bnema/platform-intake/internal/ports"
)

// Holder serves the governance catalog loaded from a YAML override file and
// swaps it in place when the file changes. A failed reload keeps the
// previous catalog.
type Holder struct {
	mu      sync.RWMutex
	catalog *domain.Catalog
	path    string
	logger  zerolog.Logger
}

var _ ports.CatalogSource = (*Holder)(nil)

func NewHolder(path string, logger zerolog.Logger) (*Holder, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve governance path: %w", err)
	}

	catalog, err := Load(absPath)
	if err != nil {
		return nil, err
	}

	return &Holder{catalog: catalog, path: absPath, logger: logger}, nil
}

// Load reads a catalog file. Sections missing from the file keep their
// default values; sections present replace the defaults entirely.
func Load(path string) (*domain.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read governance file: %w", err)
	}

	var file domain.Catalog
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode governance file: %w", err)
	}

	catalog := overlay(domain.DefaultCatalog(), &file)
	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	return catalog, nil
}

func (h *Holder) Catalog() *domain.Catalog {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.catalog
}

func (h *Holder) Reload() error {
	catalog, err := Load(h.path)
	if err != nil {
		h.logger.Error().Err(err).Str("path", h.path).Msg("governance reload failed, keeping previous catalog")
		return fmt.Errorf("reload governance: %w", err)
	}

	h.mu.Lock()
	h.catalog = catalog
	h.mu.Unlock()

	h.logger.Info().
		Str("path", h.path).
		Int("enterprise_functions", len(catalog.EnterpriseFunctions)).
		Msg("governance catalog reloaded")
	return nil
}

// Watch reloads the catalog whenever the file is written or replaced, until
// ctx is done. The directory is watched so atomic saves are seen.
func (h *Holder) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(h.path)); err != nil {
		return fmt.Errorf("watch directory: %w", err)
	}
	h.logger.Info().Str("path", h.path).Msg("watching governance file")

	filename := filepath.Base(h.path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			h.logger.Debug().Str("event", event.Op.String()).Msg("governance file changed")
			_ = h.Reload()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				_ = h.Reload()
				continue
			}
			h.logger.Error().Err(err).Msg("governance watcher error")
		}
	}
}

func overlay(base, file *domain.Catalog) *domain.Catalog {
	out := *base
	if len(file.EnterpriseFunctions) > 0 {
		out.EnterpriseFunctions = file.EnterpriseFunctions
	}
	if len(file.Subgroups) > 0 {
		out.Subgroups = file.Subgroups
	}
	pick := func(dst *[]string, src []string) {
		if len(src) > 0 {
			*dst = src
		}
	}
	pick(&out.DataLayers, file.DataLayers)
	pick(&out.Environments, file.Environments)
	pick(&out.DatabaseRegions, file.DatabaseRegions)
	pick(&out.BucketUsageTypes, file.BucketUsageTypes)
	pick(&out.RoleUsageTypes, file.RoleUsageTypes)
	pick(&out.ComputeSizes, file.ComputeSizes)
	pick(&out.GrantPermissions, file.GrantPermissions)
	pick(&out.DatabasePrefixes, file.DatabasePrefixes)
	pick(&out.BucketPrefixes, file.BucketPrefixes)
	pick(&out.RolePrefixes, file.RolePrefixes)
	if file.MaxSessionHours != 0 {
		out.MaxSessionHours = file.MaxSessionHours
	}
	return &out
}
