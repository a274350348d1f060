package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionAddRejectsDuplicateName(t *testing.T) {
	s := NewSession("s1", time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))

	require.NoError(t, s.Add(BucketConfig{BucketName: "minerva-a"}))
	require.NoError(t, s.Add(DatabaseConfig{DatabaseName: "minerva-a"}))

	err := s.Add(BucketConfig{BucketName: "minerva-a"})
	assert.True(t, errors.Is(err, ErrDuplicateRecord))
	assert.Equal(t, 2, s.Counts().Total())
}

func TestCountsLinesFollowKindOrder(t *testing.T) {
	s := NewSession("s1", time.Now())
	require.NoError(t, s.Add(RoleConfig{RoleName: "minerva-r"}))
	require.NoError(t, s.Add(BucketConfig{BucketName: "minerva-b1"}))
	require.NoError(t, s.Add(BucketConfig{BucketName: "minerva-b2"}))

	assert.Equal(t, []string{"2 Bucket(s)", "1 Role(s)"}, s.Counts().Lines())
}

func TestSessionCloneDoesNotShareSlices(t *testing.T) {
	s := NewSession("s1", time.Now())
	require.NoError(t, s.Add(BucketConfig{BucketName: "minerva-b1"}))

	clone := s.Clone()
	require.NoError(t, clone.Add(BucketConfig{BucketName: "minerva-b2"}))

	assert.Len(t, s.Records[KindBucket], 1)
	assert.Len(t, clone.Records[KindBucket], 2)
}

func TestPublishResultPushed(t *testing.T) {
	assert.True(t, PublishResult{Outcome: OutcomeCreated}.Pushed())
	assert.True(t, PublishResult{Outcome: OutcomeConflict}.Pushed())
	assert.True(t, PublishResult{Outcome: OutcomeFailed, Stage: StageChangeRequest}.Pushed())
	assert.False(t, PublishResult{Outcome: OutcomeFailed, Stage: StagePreflight}.Pushed())
}

func TestParseKind(t *testing.T) {
	kind, err := ParseKind(" S3 ")
	require.NoError(t, err)
	assert.Equal(t, KindBucket, kind)

	_, err = ParseKind("queue")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestCatalogValidate(t *testing.T) {
	require.NoError(t, DefaultCatalog().Validate())

	c := DefaultCatalog()
	c.Environments = nil
	c.Subgroups["XTRA"] = map[string]string{"A": "a"}

	err := c.Validate()
	require.ErrorIs(t, err, ErrInvalidCatalog)
	assert.Contains(t, err.Error(), "environments is empty")
	assert.Contains(t, err.Error(), "unknown enterprise function XTRA")
}

func TestParseErrorMessage(t *testing.T) {
	err := &ParseError{Kind: KindBucket, Expected: 11, Got: 3, Order: []string{"intake_id", "bucket_name"}}
	assert.Equal(t,
		"expected 11 comma-separated values for a bucket but got 3; provide them in this order: intake_id, bucket_name",
		err.Error())

	wrapped := &ParseError{Kind: KindRole, Err: ErrPositionalUnsupported}
	assert.ErrorIs(t, wrapped, ErrPositionalUnsupported)
}
