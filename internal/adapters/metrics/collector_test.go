package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/platform-intake/internal/domain"
)

func TestRecordCounters(t *testing.T) {
	c := NewWithRegistry(prometheus.NewRegistry())

	c.RecordAccepted(domain.KindBucket)
	c.RecordAccepted(domain.KindBucket)
	c.RecordRejected(domain.KindRole, "validation")

	assert.Equal(t, 2.0, testutil.ToFloat64(c.RecordsTotal.WithLabelValues("bucket", "accepted", "")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.RecordsTotal.WithLabelValues("role", "rejected", "validation")))
}

func TestPublishFinishedLabelsFailures(t *testing.T) {
	c := NewWithRegistry(prometheus.NewRegistry())

	c.PublishFinished(domain.PublishResult{Outcome: domain.OutcomeCreated}, time.Second)
	c.PublishFinished(domain.PublishResult{
		Outcome:  domain.OutcomeFailed,
		Stage:    domain.StageChangeRequest,
		Category: domain.RemoteTimeout,
	}, 2*time.Second)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.PublishTotal.WithLabelValues("created", "", "")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.PublishTotal.WithLabelValues("failed", "change_request", "timeout")))
	assert.Equal(t, 2, testutil.CollectAndCount(c.PublishDuration))
}

func TestObserveRequestUsesStatusClass(t *testing.T) {
	c := NewWithRegistry(prometheus.NewRegistry())

	c.ObserveRequest("POST", "/chat", 200, 10*time.Millisecond)
	c.ObserveRequest("POST", "/chat", 204, 10*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.RequestsTotal.WithLabelValues("POST", "/chat", "2xx")))
}

func TestTrackSessionsExportsGauge(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewWithRegistry(reg)
	live := 3
	c.TrackSessions(func() int { return live })

	families, err := reg.Gather()
	require.NoError(t, err)

	var found bool
	for _, f := range families {
		if f.GetName() == "intake_sessions_active" {
			found = true
			assert.Equal(t, 3.0, f.GetMetric()[0].GetGauge().GetValue())
		}
	}
	assert.True(t, found)
}
