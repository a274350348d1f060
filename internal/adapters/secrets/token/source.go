package token

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/platform-intake/internal/domain"
	"github.com/bnema/platform-intake/internal/ports"
)

// DefaultKey is where login stores the GitHub token.
const DefaultKey = "platform-intake/github/token"

// Source resolves the GitHub token. An explicitly configured token wins
// over the secret store entry.
type Source struct {
	static string
	key    string
	store  ports.SecretStore
}

var _ ports.TokenSource = (*Source)(nil)

func NewSource(static string, key string, store ports.SecretStore) *Source {
	if strings.TrimSpace(key) == "" {
		key = DefaultKey
	}
	return &Source{static: strings.TrimSpace(static), key: key, store: store}
}

func (s *Source) Token(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s.static != "" {
		return s.static, nil
	}
	if s.store == nil {
		return "", domain.ErrSecretNotFound
	}

	value, err := s.store.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, domain.ErrSecretNotFound) {
			return "", err
		}
		return "", fmt.Errorf("read github token: %w", err)
	}

	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("github token %q is empty: %w", s.key, domain.ErrSecretNotFound)
	}
	return value, nil
}

func (s *Source) Save(ctx context.Context, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return errors.New("github token is empty")
	}
	if s.store == nil {
		return errors.New("no secret store configured")
	}
	if err := s.store.Put(ctx, s.key, value); err != nil {
		return fmt.Errorf("store github token: %w", err)
	}
	return nil
}

func (s *Source) Clear(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	if err := s.store.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("clear github token: %w", err)
	}
	return nil
}

// Key is the secret store entry the token is read from.
func (s *Source) Key() string {
	return s.key
}

// Static reports whether a configured token shadows the secret store.
func (s *Source) Static() bool {
	return s.static != ""
}
