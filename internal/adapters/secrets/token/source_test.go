package token

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/platform-intake/internal/domain"
	portmocks "github.com/bnema/platform-intake/internal/ports/mocks"
)

func TestSourcePrefersConfiguredToken(t *testing.T) {
	t.Parallel()

	store := portmocks.NewMockSecretStore(t)
	source := NewSource("  ghp_config  ", "", store)

	got, err := source.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ghp_config", got)
	assert.True(t, source.Static())
	assert.Equal(t, DefaultKey, source.Key())
}

func TestSourceReadsSecretStore(t *testing.T) {
	t.Parallel()

	store := portmocks.NewMockSecretStore(t)
	store.EXPECT().Get(mock.Anything, "team/gh").Return("ghp_stored\n", nil).Once()

	got, err := NewSource("", "team/gh", store).Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ghp_stored", got)
}

func TestSourceReportsMissingToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		setup func(*portmocks.MockSecretStore)
	}{
		{name: "not stored", setup: func(s *portmocks.MockSecretStore) {
			s.EXPECT().Get(mock.Anything, DefaultKey).Return("", domain.ErrSecretNotFound).Once()
		}},
		{name: "blank entry", setup: func(s *portmocks.MockSecretStore) {
			s.EXPECT().Get(mock.Anything, DefaultKey).Return("  \n", nil).Once()
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := portmocks.NewMockSecretStore(t)
			tt.setup(store)

			_, err := NewSource("", "", store).Token(context.Background())
			assert.ErrorIs(t, err, domain.ErrSecretNotFound)
		})
	}

	_, err := NewSource("", "", nil).Token(context.Background())
	assert.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestSourceWrapsStoreFailures(t *testing.T) {
	t.Parallel()

	store := portmocks.NewMockSecretStore(t)
	store.EXPECT().Get(mock.Anything, DefaultKey).Return("", errors.New("gpg agent locked")).Once()

	_, err := NewSource("", "", store).Token(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrSecretNotFound)
	assert.ErrorContains(t, err, "gpg agent locked")
}

func TestSourceSaveAndClear(t *testing.T) {
	t.Parallel()

	store := portmocks.NewMockSecretStore(t)
	store.EXPECT().Put(mock.Anything, DefaultKey, "ghp_new").Return(nil).Once()
	store.EXPECT().Delete(mock.Anything, DefaultKey).Return(nil).Once()

	source := NewSource("", "", store)
	require.NoError(t, source.Save(context.Background(), " ghp_new "))
	require.NoError(t, source.Clear(context.Background()))

	assert.Error(t, source.Save(context.Background(), "   "))
}
