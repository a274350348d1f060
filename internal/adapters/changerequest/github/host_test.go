package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/platform-intake/internal/domain"
	"github.com/bnema/platform-intake/internal/ports"
	portmocks "github.com/bnema/platform-intake/internal/ports/mocks"
)

func newTestHost(t *testing.T, handler http.Handler) *Host {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	tokens := portmocks.NewMockTokenSource(t)
	tokens.EXPECT().Token(mock.Anything).Return("t0ken", nil).Maybe()

	host, err := New(Config{Repository: "acme/infra", BaseURL: server.URL, Timeout: 2 * time.Second}, tokens, server.Client())
	require.NoError(t, err)
	return host
}

func testRequest() ports.ChangeRequest {
	return ports.ChangeRequest{Title: "Add sales bucket", Body: "## Platform intake", SourceRef: "dev", TargetRef: "main"}
}

func TestNewRejectsMalformedRepository(t *testing.T) {
	for _, repo := range []string{"", "acme", "acme/", "acme/infra/extra"} {
		_, err := New(Config{Repository: repo}, nil, nil)
		assert.Error(t, err, repo)
	}
}

func TestCreateOpensPullRequest(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /repos/acme/infra/pulls", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer t0ken", r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Add sales bucket", body["title"])
		assert.Equal(t, "dev", body["head"])
		assert.Equal(t, "main", body["base"])

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"number":7,"html_url":"https://github.com/acme/infra/pull/7"}`))
	})

	url, err := newTestHost(t, mux).Create(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/acme/infra/pull/7", url)
}

func TestCreateReportsExistingPullRequest(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /repos/acme/infra/pulls", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"Validation Failed","errors":[{"resource":"PullRequest","code":"custom","message":"A pull request already exists for acme:dev."}]}`))
	})
	mux.HandleFunc("GET /repos/acme/infra/pulls", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "acme:dev", r.URL.Query().Get("head"))
		assert.Equal(t, "main", r.URL.Query().Get("base"))
		assert.Equal(t, "open", r.URL.Query().Get("state"))
		_, _ = w.Write([]byte(`[{"number":7,"html_url":"https://github.com/acme/infra/pull/7"}]`))
	})

	_, err := newTestHost(t, mux).Create(context.Background(), testRequest())

	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "https://github.com/acme/infra/pull/7", conflict.URL)
}

func TestCreateKeepsForkHeadWhenListing(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /repos/acme/infra/pulls", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"A pull request already exists for bot:dev."}`))
	})
	mux.HandleFunc("GET /repos/acme/infra/pulls", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "bot:dev", r.URL.Query().Get("head"))
		_, _ = w.Write([]byte(`[]`))
	})

	req := testRequest()
	req.SourceRef = "bot:dev"
	_, err := newTestHost(t, mux).Create(context.Background(), req)

	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Empty(t, conflict.URL)
}

func TestCreateClassifiesFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		status   int
		body     string
		category domain.RemoteCategory
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"message":"Bad credentials"}`, category: domain.RemoteAuth},
		{name: "not found", status: http.StatusNotFound, body: `{"message":"Not Found"}`, category: domain.RemoteNotFound},
		{name: "validation", status: http.StatusUnprocessableEntity, body: `{"message":"Validation Failed","errors":[{"resource":"PullRequest","field":"base","code":"invalid"}]}`, category: domain.RemoteValidation},
		{name: "server error", status: http.StatusBadGateway, body: `{"message":"Bad Gateway"}`, category: domain.RemoteUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			host := newTestHost(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))

			_, err := host.Create(context.Background(), testRequest())

			var remote *domain.RemoteError
			require.ErrorAs(t, err, &remote)
			assert.Equal(t, tt.category, remote.Category)
			assert.Equal(t, tt.status, remote.StatusCode)
		})
	}
}

func TestCreateTimesOut(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		server.Close()
	})

	host, err := New(Config{Repository: "acme/infra", BaseURL: server.URL, Timeout: 50 * time.Millisecond}, nil, server.Client())
	require.NoError(t, err)

	_, err = host.Create(context.Background(), testRequest())

	var remote *domain.RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, domain.RemoteTimeout, remote.Category)
}

func TestCreateReportsConnectionFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	host, err := New(Config{Repository: "acme/infra", BaseURL: baseURL}, nil, nil)
	require.NoError(t, err)

	_, err = host.Create(context.Background(), testRequest())

	var remote *domain.RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, domain.RemoteConnection, remote.Category)
}

func TestCreateWithoutTokenIsAuthFailure(t *testing.T) {
	t.Parallel()

	tokens := portmocks.NewMockTokenSource(t)
	tokens.EXPECT().Token(mock.Anything).Return("", fmt.Errorf("read token: %w", domain.ErrSecretNotFound)).Once()

	host, err := New(Config{Repository: "acme/infra"}, tokens, nil)
	require.NoError(t, err)

	_, err = host.Create(context.Background(), testRequest())

	var remote *domain.RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, domain.RemoteAuth, remote.Category)
	assert.True(t, errors.Is(err, domain.ErrSecretNotFound))
}
