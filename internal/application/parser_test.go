package application

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/platform-intake/internal/domain"
)

func TestParsePositionalBucket(t *testing.T) {
	fields, err := Parse(bucketPositional, domain.KindBucket)
	require.NoError(t, err)

	assert.Equal(t, "minerva-sales-landing", fields["bucket_name"])
	assert.Equal(t, "Landing zone for sales feeds", fields["bucket_description"])
	assert.Equal(t, "octocat", fields["data_owner_github_uname"])
	assert.Len(t, fields, 11)
}

func TestParsePositionalRequiresEveryField(t *testing.T) {
	text := strings.TrimSuffix(bucketPositional, ", octocat")

	_, err := Parse(text, domain.KindBucket)

	var perr *domain.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 11, perr.Expected)
	assert.Equal(t, 10, perr.Got)
}

func TestParsePositionalEmptyOptionalField(t *testing.T) {
	text := strings.TrimSuffix(bucketPositional, "octocat")

	fields, err := Parse(text, domain.KindBucket)
	require.NoError(t, err)
	assert.Len(t, fields, 11)
	assert.Equal(t, "", fields["data_owner_github_uname"])
}

func TestParsePositionalCountMismatch(t *testing.T) {
	_, err := Parse("INT-1, minerva-x, description", domain.KindBucket)

	var perr *domain.ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 11, perr.Expected)
	assert.Equal(t, 3, perr.Got)
	schema, _ := domain.SchemaFor(domain.KindBucket)
	assert.Equal(t, schema.FieldNames(), perr.Order)
	assert.Contains(t, err.Error(), "intake_id, bucket_name, bucket_description")
}

func TestParseRoleRejectsPositional(t *testing.T) {
	_, err := Parse("INT-1, minerva-role, desc, 123456789012, CORP, FIN, a@b.co, dev, Analyst, SML, 4, x", domain.KindRole)

	require.ErrorIs(t, err, domain.ErrPositionalUnsupported)
	assert.Contains(t, err.Error(), `"field: value"`)
}

func TestParseKeyValueLines(t *testing.T) {
	fields, err := Parse(databaseKeyValue, domain.KindDatabase)
	require.NoError(t, err)

	assert.Equal(t, "123456789012", fields["aws_account_id"])
	assert.Equal(t, "s3://minerva-sales/raw/", fields["database_s3_location"])
	assert.Len(t, fields, 14)
}

func TestParseFallsBackToLineSplitting(t *testing.T) {
	text := "# bucket request\n- intake_id: INT-9\n- bucket_description: Sales: raw feeds\n\nBucket Name: 'minerva-x'"

	fields, err := Parse(text, domain.KindBucket)
	require.NoError(t, err)

	want := map[string]any{
		"intake_id":          "INT-9",
		"bucket_description": "Sales: raw feeds",
		"bucket_name":        "minerva-x",
	}
	if diff := cmp.Diff(want, fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestParseSingleLineKeyValue(t *testing.T) {
	text := "intake_id: INT-1, bucket_name: minerva-a, bucket_description: d, aws_account_id: 123456789012, " +
		"aws_region: us-east-1, usage_type: Logging, enterprise_or_func_name: CORP, " +
		"enterprise_or_func_subgrp_name: HR, data_env: dev, data_owner_email: a@b.co"

	fields, err := Parse(text, domain.KindBucket)
	require.NoError(t, err)
	assert.Equal(t, "Logging", fields["usage_type"])
	assert.Equal(t, "HR", fields["enterprise_or_func_subgrp_name"])
	assert.Len(t, fields, 10)
}

func TestParseKeepsHashInsideValues(t *testing.T) {
	multiLine := "intake_id: INT-1\nbucket_name: minerva-a\n# requested by sales\nbucket_description: Landing zone #2 for feeds\naws_region: us-east-1"
	singleLine := "intake_id: INT-1, bucket_name: minerva-a, bucket_description: Landing zone #2 for feeds, aws_account_id: 123456789012, " +
		"aws_region: us-east-1, usage_type: Logging, enterprise_or_func_name: CORP, " +
		"enterprise_or_func_subgrp_name: HR, data_env: dev, data_owner_email: a@b.co"

	for name, text := range map[string]string{"multi-line": multiLine, "single line": singleLine} {
		t.Run(name, func(t *testing.T) {
			fields, err := Parse(text, domain.KindBucket)
			require.NoError(t, err)
			assert.Equal(t, "Landing zone #2 for feeds", fields["bucket_description"])
			assert.Equal(t, "minerva-a", fields["bucket_name"])
			assert.NotContains(t, fields, "#_requested_by_sales")
		})
	}
}

func TestParseNestedRoleKeepsHashInScalars(t *testing.T) {
	text := strings.Replace(roleYAML, "role_description: Analyst access to sales data", "role_description: Analyst #1 access", 1)

	fields, err := Parse(text, domain.KindRole)
	require.NoError(t, err)
	assert.Equal(t, "Analyst #1 access", fields["role_description"])
	assert.IsType(t, map[string]any{}, fields["access_to_resources"])
}

func TestParseNestedRoleYAML(t *testing.T) {
	fields, err := Parse(roleYAML, domain.KindRole)
	require.NoError(t, err)

	want := map[string]any{
		"glue_databases": map[string]any{
			"minerva_sales_raw": []any{"read", "write"},
		},
		"execution_asset_prefixes": []any{"s3://minerva-sales/jobs/"},
	}
	if diff := cmp.Diff(want, fields["access_to_resources"]); diff != "" {
		t.Fatalf("access_to_resources mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "123456789012", fields["aws_account_id"])
	assert.Equal(t, "4", fields["max_session_duration"])
}

func TestParseTOMLDocument(t *testing.T) {
	text := "intake_id = 'INT-1'\nrole_name = 'minerva-r'\nmax_session_duration = 2\n\n[access_to_resources]\nexecution_asset_prefixes = ['s3://x/']\n"

	fields, err := Parse(text, domain.KindRole)
	require.NoError(t, err)

	want := map[string]any{
		"intake_id":            "INT-1",
		"role_name":            "minerva-r",
		"max_session_duration": "2",
		"access_to_resources": map[string]any{
			"execution_asset_prefixes": []any{"s3://x/"},
		},
	}
	if diff := cmp.Diff(want, fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestParseEmptyAndUnknownKind(t *testing.T) {
	_, err := Parse("   ", domain.KindBucket)
	var perr *domain.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Error(), "empty")

	_, err = Parse("a, b", domain.Kind("queue"))
	assert.ErrorIs(t, err, domain.ErrUnknownKind)
}

func TestParseNoPairs(t *testing.T) {
	_, err := Parse("just some words\nand more words", domain.KindBucket)

	var perr *domain.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, err.Error(), "no \"field: value\" pairs found")
}
