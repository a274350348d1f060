package pass

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/platform-intake/internal/domain"
)

const tokenKey = "platform-intake/github/token"

func fakeRun(t *testing.T, wantArgs []string, wantInput string, stdout, stderr string, err error) runFunc {
	t.Helper()
	return func(_ context.Context, input string, args ...string) (string, string, error) {
		assert.Equal(t, wantArgs, args)
		assert.Equal(t, wantInput, input)
		return stdout, stderr, err
	}
}

func TestStorePutInsertsMultilineEntry(t *testing.T) {
	t.Parallel()

	store := &Store{run: fakeRun(t, []string{"insert", "-m", "-f", tokenKey}, "ghp_abc\n", "", "", nil)}

	require.NoError(t, store.Put(context.Background(), tokenKey, "ghp_abc"))
}

func TestStoreGetReturnsFirstLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		stdout string
		want   string
	}{
		{name: "plain", stdout: "ghp_abc\n", want: "ghp_abc"},
		{name: "crlf", stdout: "ghp_abc\r\n", want: "ghp_abc"},
		{name: "with metadata", stdout: "ghp_abc\nscope: repo\n", want: "ghp_abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := &Store{run: fakeRun(t, []string{"show", tokenKey}, "", tt.stdout, "", nil)}
			got, err := store.Get(context.Background(), tokenKey)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStoreGetMapsMissingEntryToNotFound(t *testing.T) {
	t.Parallel()

	stderr := "Error: platform-intake/github/token is not in the password store."
	store := &Store{run: fakeRun(t, []string{"show", tokenKey}, "", "", stderr, errors.New("exit status 1"))}

	_, err := store.Get(context.Background(), tokenKey)
	assert.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreGetReportsOtherFailures(t *testing.T) {
	t.Parallel()

	store := &Store{run: fakeRun(t, []string{"show", tokenKey}, "", "", "gpg: decryption failed", errors.New("exit status 2"))}

	_, err := store.Get(context.Background(), tokenKey)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrSecretNotFound)
	assert.ErrorContains(t, err, "pass show")
	assert.ErrorContains(t, err, "gpg: decryption failed")
}

func TestStoreDeleteToleratesMissingEntry(t *testing.T) {
	t.Parallel()

	store := &Store{run: fakeRun(t, []string{"rm", "-f", tokenKey}, "", "", "Error: platform-intake/github/token is not in the password store.", errors.New("exit status 1"))}

	require.NoError(t, store.Delete(context.Background(), tokenKey))
}

func TestStoreStopsOnCancelledContext(t *testing.T) {
	t.Parallel()

	store := &Store{run: func(context.Context, string, ...string) (string, string, error) {
		t.Fatal("pass must not run")
		return "", "", nil
	}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Get(ctx, tokenKey)
	assert.ErrorIs(t, err, context.Canceled)
}
