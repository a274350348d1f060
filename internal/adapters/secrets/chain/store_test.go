package chain

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/platform-intake/internal/domain"
	portmocks "github.com/bnema/platform-intake/internal/ports/mocks"
)

const tokenKey = "platform-intake/github/token"

func newTestStore(t *testing.T) (*Store, *portmocks.MockSecretStore, *portmocks.MockSecretStore) {
	t.Helper()
	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store, err := NewStore(primary, fallback)
	require.NoError(t, err)
	return store, primary, fallback
}

func TestNewStoreRejectsNilBackends(t *testing.T) {
	_, err := NewStore(nil, portmocks.NewMockSecretStore(t))
	assert.ErrorIs(t, err, errNilPrimaryStore)

	_, err = NewStore(portmocks.NewMockSecretStore(t), nil)
	assert.ErrorIs(t, err, errNilFallbackStore)
}

func TestStoreGetUsesPrimaryWhenItSucceeds(t *testing.T) {
	t.Parallel()

	store, primary, _ := newTestStore(t)
	primary.EXPECT().Get(mock.Anything, tokenKey).Return("from-pass", nil).Once()

	value, err := store.Get(context.Background(), tokenKey)
	require.NoError(t, err)
	assert.Equal(t, "from-pass", value)
}

func TestStoreGetFallsBackWhenPrimaryFails(t *testing.T) {
	t.Parallel()

	store, primary, fallback := newTestStore(t)
	primary.EXPECT().Get(mock.Anything, tokenKey).Return("", errors.New("pass command unavailable")).Once()
	fallback.EXPECT().Get(mock.Anything, tokenKey).Return("from-file", nil).Once()

	value, err := store.Get(context.Background(), tokenKey)
	require.NoError(t, err)
	assert.Equal(t, "from-file", value)
}

func TestStoreGetKeepsNotFoundFromEitherBackend(t *testing.T) {
	t.Parallel()

	store, primary, fallback := newTestStore(t)
	primary.EXPECT().Get(mock.Anything, tokenKey).Return("", errors.New("pass command unavailable")).Once()
	fallback.EXPECT().Get(mock.Anything, tokenKey).Return("", fmt.Errorf("secret %q: %w", tokenKey, domain.ErrSecretNotFound)).Once()

	_, err := store.Get(context.Background(), tokenKey)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSecretNotFound)
	assert.ErrorContains(t, err, "primary backend")
	assert.ErrorContains(t, err, "fallback backend")
}

func TestStoreGetDoesNotFallBackOnCancellation(t *testing.T) {
	t.Parallel()

	store, primary, _ := newTestStore(t)
	primary.EXPECT().Get(mock.Anything, tokenKey).Return("", context.Canceled).Once()

	_, err := store.Get(context.Background(), tokenKey)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStorePut(t *testing.T) {
	t.Parallel()

	t.Run("primary succeeds", func(t *testing.T) {
		store, primary, _ := newTestStore(t)
		primary.EXPECT().Put(mock.Anything, tokenKey, "ghp_x").Return(nil).Once()

		require.NoError(t, store.Put(context.Background(), tokenKey, "ghp_x"))
	})

	t.Run("falls back", func(t *testing.T) {
		store, primary, fallback := newTestStore(t)
		primary.EXPECT().Put(mock.Anything, tokenKey, "ghp_x").Return(errors.New("pass failed")).Once()
		fallback.EXPECT().Put(mock.Anything, tokenKey, "ghp_x").Return(nil).Once()

		require.NoError(t, store.Put(context.Background(), tokenKey, "ghp_x"))
	})

	t.Run("both fail", func(t *testing.T) {
		store, primary, fallback := newTestStore(t)
		primary.EXPECT().Put(mock.Anything, tokenKey, "ghp_x").Return(errors.New("pass failed")).Once()
		fallback.EXPECT().Put(mock.Anything, tokenKey, "ghp_x").Return(errors.New("disk full")).Once()

		err := store.Put(context.Background(), tokenKey, "ghp_x")
		assert.ErrorContains(t, err, "pass failed")
		assert.ErrorContains(t, err, "disk full")
	})
}

func TestStoreDeleteClearsBothBackends(t *testing.T) {
	t.Parallel()

	store, primary, fallback := newTestStore(t)
	primary.EXPECT().Delete(mock.Anything, tokenKey).Return(nil).Once()
	fallback.EXPECT().Delete(mock.Anything, tokenKey).Return(nil).Once()

	require.NoError(t, store.Delete(context.Background(), tokenKey))
}

func TestStoreDeleteSucceedsWhenOneBackendWorks(t *testing.T) {
	t.Parallel()

	store, primary, fallback := newTestStore(t)
	primary.EXPECT().Delete(mock.Anything, tokenKey).Return(errors.New("pass command unavailable")).Once()
	fallback.EXPECT().Delete(mock.Anything, tokenKey).Return(nil).Once()

	require.NoError(t, store.Delete(context.Background(), tokenKey))
}
