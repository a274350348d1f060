package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/platform-intake/internal/adapters/classifier/keyword"
	"github.com/bnema/platform-intake/internal/adapters/metrics"
	"github.com/bnema/platform-intake/internal/adapters/session/memory"
	"github.com/bnema/platform-intake/internal/application"
	"github.com/bnema/platform-intake/internal/domain"
)

type stubPublisher struct{}

func (stubPublisher) Publish(_ context.Context, records map[domain.Kind][]domain.Record, _ string) domain.PublishResult {
	return domain.PublishResult{
		Outcome: domain.OutcomeCreated,
		URL:     "https://github.com/acme/infra/pull/9",
		Counts:  domain.CountRecords(records),
	}
}

type failingIntake struct{}

func (failingIntake) Handle(context.Context, string, string) (application.Reply, error) {
	return application.Reply{}, errors.New("store offline")
}
func (failingIntake) Reset(context.Context, string) error { return errors.New("store offline") }
func (failingIntake) Snapshot(context.Context, string) (domain.Session, error) {
	return domain.Session{}, errors.New("store offline")
}

const bucketLine = "INT-9, minerva-web-assets, Static web assets, 123456789012, us-east-1, DataProduct, CORP, FIN, dev, owner@example.com, octocat"

func newTestServer(t *testing.T, intake Intake, collector *metrics.Collector, gatherer prometheus.Gatherer) *httptest.Server {
	t.Helper()
	router := NewRouter(NewChatHandler(intake, zerolog.Nop()), zerolog.Nop(), RouterConfig{
		Metrics:  collector,
		Gatherer: gatherer,
		Health:   Health{Repository: true, GitHub: true, Classifier: "keyword", ArtifactType: "yaml"},
	})
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func newIntake() *application.IntakeService {
	return application.NewIntakeService(memory.NewStore(0, nil), keyword.New(), nil, stubPublisher{}, nil, nil, zerolog.Nop())
}

func postJSON(t *testing.T, url string, body any) (*http.Response, map[string]any) {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func chat(t *testing.T, server *httptest.Server, sessionID, text string) map[string]any {
	t.Helper()
	resp, out := postJSON(t, server.URL+"/chat", ChatRequest{
		SessionID: sessionID,
		Messages: []Message{
			{Role: "assistant", Content: "Hi, what do you need?"},
			{Role: "user", Content: text},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return out
}

func TestChatConversationPublishes(t *testing.T) {
	server := newTestServer(t, newIntake(), nil, nil)

	out := chat(t, server, "web-1", "I need a bucket")
	assert.Equal(t, "collecting", out["phase"])
	assert.Equal(t, "bucket", out["pendingKind"])

	out = chat(t, server, "web-1", bucketLine)
	assert.Equal(t, "confirming", out["phase"])
	assert.Equal(t, map[string]any{"bucket": float64(1)}, out["counts"])

	chat(t, server, "web-1", "done")
	out = chat(t, server, "web-1", "Add static web assets bucket")

	assert.Equal(t, "idle", out["phase"])
	assert.Contains(t, out["text"], "https://github.com/acme/infra/pull/9")
	publish, ok := out["publish"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "created", publish["outcome"])
}

func TestChatAssignsSessionID(t *testing.T) {
	server := newTestServer(t, newIntake(), nil, nil)

	out := chat(t, server, "", "hello")
	id, _ := out["sessionId"].(string)
	assert.Len(t, id, 36)
}

func TestChatRejectsBadRequests(t *testing.T) {
	server := newTestServer(t, newIntake(), nil, nil)

	resp, out := postJSON(t, server.URL+"/chat", ChatRequest{SessionID: "x", Messages: []Message{{Role: "assistant", Content: "hi"}}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, out["error"], "user message")

	raw, err := http.Post(server.URL+"/chat", "application/json", strings.NewReader("{not json"))
	require.NoError(t, err)
	defer raw.Body.Close()
	assert.Equal(t, http.StatusBadRequest, raw.StatusCode)
}

func TestChatValidationErrorIsNotServerError(t *testing.T) {
	server := newTestServer(t, newIntake(), nil, nil)

	chat(t, server, "s", "bucket")
	out := chat(t, server, "s", strings.Replace(bucketLine, "123456789012", "12345", 1))

	assert.Contains(t, out["text"], "got 5 digits")
	assert.Equal(t, "collecting", out["phase"])
}

func TestStorageFailureIsServerError(t *testing.T) {
	server := newTestServer(t, failingIntake{}, nil, nil)

	resp, out := postJSON(t, server.URL+"/chat", ChatRequest{SessionID: "s", Messages: []Message{{Role: "user", Content: "bucket"}}})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.NotContains(t, out["error"], "store offline")
}

func TestResetAndSessionSnapshot(t *testing.T) {
	server := newTestServer(t, newIntake(), nil, nil)

	chat(t, server, "s", "bucket")
	chat(t, server, "s", bucketLine)

	resp, err := http.Get(server.URL + "/sessions/s")
	require.NoError(t, err)
	var snapshot SessionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snapshot))
	resp.Body.Close()
	assert.Equal(t, []RecordRef{{Kind: "bucket", Name: "minerva-web-assets"}}, snapshot.Records)

	reset, out := postJSON(t, server.URL+"/reset", ResetRequest{SessionID: "s"})
	assert.Equal(t, http.StatusOK, reset.StatusCode)
	assert.Equal(t, "idle", out["phase"])

	resp, err = http.Get(server.URL + "/sessions/s")
	require.NoError(t, err)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snapshot))
	resp.Body.Close()
	assert.Empty(t, snapshot.Records)

	bad, _ := postJSON(t, server.URL+"/reset", ResetRequest{})
	assert.Equal(t, http.StatusBadRequest, bad.StatusCode)
}

func TestHealthReportsIntegrations(t *testing.T) {
	server := newTestServer(t, newIntake(), nil, nil)

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body healthBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body.Status)
	assert.True(t, body.Integrations.GitHub)
	assert.Equal(t, "keyword", body.Integrations.Classifier)
}

func TestMetricsEndpointAndMiddleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector := metrics.NewWithRegistry(reg)
	server := newTestServer(t, newIntake(), collector, reg)

	chat(t, server, "m", "hello")

	assert.Equal(t, 1.0, testutil.ToFloat64(collector.RequestsTotal.WithLabelValues("POST", "/chat", "2xx")))

	resp, err := http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

type slowIntake struct {
	failingIntake
	delay       time.Duration
	hadDeadline chan bool
}

func (s slowIntake) Handle(ctx context.Context, _ string, _ string) (application.Reply, error) {
	_, ok := ctx.Deadline()
	s.hadDeadline <- ok
	time.Sleep(s.delay)
	return application.Reply{Text: "published", Phase: domain.PhaseIdle}, ctx.Err()
}

func TestChatIsNotBoundByRequestTimeout(t *testing.T) {
	intake := slowIntake{delay: 80 * time.Millisecond, hadDeadline: make(chan bool, 1)}
	router := NewRouter(NewChatHandler(intake, zerolog.Nop()), zerolog.Nop(), RouterConfig{RequestTimeout: 10 * time.Millisecond})
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	out := chat(t, server, "slow", "Add sales landing bucket")

	assert.Equal(t, "published", out["text"])
	assert.False(t, <-intake.hadDeadline)
}
