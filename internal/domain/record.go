package domain

// Record is one validated resource definition. Values are built once by
// Validate and not mutated afterwards.
type Record interface {
	Kind() Kind
	Name() string
	Fields() []FieldValue
}

type FieldValue struct {
	Name  string
	Value any
}

type DatabaseConfig struct {
	IntakeID           string `yaml:"intake_id" toml:"intake_id"`
	DatabaseName       string `yaml:"database_name" toml:"database_name"`
	S3Location         string `yaml:"database_s3_location" toml:"database_s3_location"`
	Description        string `yaml:"database_description" toml:"database_description"`
	AWSAccountID       string `yaml:"aws_account_id" toml:"aws_account_id"`
	SourceName         string `yaml:"source_name" toml:"source_name"`
	EnterpriseFunction string `yaml:"enterprise_or_func_name" toml:"enterprise_or_func_name"`
	Subgroup           string `yaml:"enterprise_or_func_subgrp_name" toml:"enterprise_or_func_subgrp_name"`
	Region             string `yaml:"region" toml:"region"`
	DataConstruct      string `yaml:"data_construct" toml:"data_construct"`
	DataEnv            string `yaml:"data_env" toml:"data_env"`
	DataLayer          string `yaml:"data_layer" toml:"data_layer"`
	DataLeader         string `yaml:"data_leader" toml:"data_leader"`
	OwnerEmail         string `yaml:"data_owner_email" toml:"data_owner_email"`
	OwnerHandle        string `yaml:"data_owner_github_uname,omitempty" toml:"data_owner_github_uname,omitempty"`
}

func (d DatabaseConfig) Kind() Kind   { return KindDatabase }
func (d DatabaseConfig) Name() string { return d.DatabaseName }

func (d DatabaseConfig) Fields() []FieldValue {
	return compactFields([]FieldValue{
		{"intake_id", d.IntakeID},
		{"database_name", d.DatabaseName},
		{"database_s3_location", d.S3Location},
		{"database_description", d.Description},
		{"aws_account_id", d.AWSAccountID},
		{"source_name", d.SourceName},
		{"enterprise_or_func_name", d.EnterpriseFunction},
		{"enterprise_or_func_subgrp_name", d.Subgroup},
		{"region", d.Region},
		{"data_construct", d.DataConstruct},
		{"data_env", d.DataEnv},
		{"data_layer", d.DataLayer},
		{"data_leader", d.DataLeader},
		{"data_owner_email", d.OwnerEmail},
		{"data_owner_github_uname", d.OwnerHandle},
	})
}

type BucketConfig struct {
	IntakeID           string `yaml:"intake_id" toml:"intake_id"`
	BucketName         string `yaml:"bucket_name" toml:"bucket_name"`
	Description        string `yaml:"bucket_description" toml:"bucket_description"`
	AWSAccountID       string `yaml:"aws_account_id" toml:"aws_account_id"`
	AWSRegion          string `yaml:"aws_region" toml:"aws_region"`
	UsageType          string `yaml:"usage_type" toml:"usage_type"`
	EnterpriseFunction string `yaml:"enterprise_or_func_name" toml:"enterprise_or_func_name"`
	Subgroup           string `yaml:"enterprise_or_func_subgrp_name" toml:"enterprise_or_func_subgrp_name"`
	DataEnv            string `yaml:"data_env" toml:"data_env"`
	OwnerEmail         string `yaml:"data_owner_email" toml:"data_owner_email"`
	OwnerHandle        string `yaml:"data_owner_github_uname,omitempty" toml:"data_owner_github_uname,omitempty"`
}

func (b BucketConfig) Kind() Kind   { return KindBucket }
func (b BucketConfig) Name() string { return b.BucketName }

func (b BucketConfig) Fields() []FieldValue {
	return compactFields([]FieldValue{
		{"intake_id", b.IntakeID},
		{"bucket_name", b.BucketName},
		{"bucket_description", b.Description},
		{"aws_account_id", b.AWSAccountID},
		{"aws_region", b.AWSRegion},
		{"usage_type", b.UsageType},
		{"enterprise_or_func_name", b.EnterpriseFunction},
		{"enterprise_or_func_subgrp_name", b.Subgroup},
		{"data_env", b.DataEnv},
		{"data_owner_email", b.OwnerEmail},
		{"data_owner_github_uname", b.OwnerHandle},
	})
}

// RoleConfig keeps its grant structures as canonical trees (map[string]any,
// []any, string, bool) produced by the shape checker.
type RoleConfig struct {
	IntakeID             string         `yaml:"intake_id" toml:"intake_id"`
	RoleName             string         `yaml:"role_name" toml:"role_name"`
	Description          string         `yaml:"role_description" toml:"role_description"`
	AWSAccountID         string         `yaml:"aws_account_id" toml:"aws_account_id"`
	EnterpriseFunction   string         `yaml:"enterprise_or_func_name" toml:"enterprise_or_func_name"`
	Subgroup             string         `yaml:"enterprise_or_func_subgrp_name" toml:"enterprise_or_func_subgrp_name"`
	RoleOwner            string         `yaml:"role_owner" toml:"role_owner"`
	DataEnv              string         `yaml:"data_env" toml:"data_env"`
	UsageType            string         `yaml:"usage_type" toml:"usage_type"`
	ComputeSize          string         `yaml:"compute_size" toml:"compute_size"`
	MaxSessionDuration   int            `yaml:"max_session_duration" toml:"max_session_duration"`
	AccessToResources    map[string]any `yaml:"access_to_resources" toml:"access_to_resources"`
	GlueJobAccessConfigs map[string]any `yaml:"glue_job_access_configs,omitempty" toml:"glue_job_access_configs,omitempty"`
	Athena               map[string]any `yaml:"athena,omitempty" toml:"athena,omitempty"`
	GlueCrawler          []any          `yaml:"glue_crawler,omitempty" toml:"glue_crawler,omitempty"`
}

func (r RoleConfig) Kind() Kind   { return KindRole }
func (r RoleConfig) Name() string { return r.RoleName }

func (r RoleConfig) Fields() []FieldValue {
	fields := []FieldValue{
		{"intake_id", r.IntakeID},
		{"role_name", r.RoleName},
		{"role_description", r.Description},
		{"aws_account_id", r.AWSAccountID},
		{"enterprise_or_func_name", r.EnterpriseFunction},
		{"enterprise_or_func_subgrp_name", r.Subgroup},
		{"role_owner", r.RoleOwner},
		{"data_env", r.DataEnv},
		{"usage_type", r.UsageType},
		{"compute_size", r.ComputeSize},
		{"max_session_duration", r.MaxSessionDuration},
		{"access_to_resources", r.AccessToResources},
	}
	if len(r.GlueJobAccessConfigs) > 0 {
		fields = append(fields, FieldValue{"glue_job_access_configs", r.GlueJobAccessConfigs})
	}
	if len(r.Athena) > 0 {
		fields = append(fields, FieldValue{"athena", r.Athena})
	}
	if len(r.GlueCrawler) > 0 {
		fields = append(fields, FieldValue{"glue_crawler", r.GlueCrawler})
	}
	return fields
}

func compactFields(fields []FieldValue) []FieldValue {
	out := fields[:0]
	for _, field := range fields {
		if s, ok := field.Value.(string); ok && s == "" {
			continue
		}
		out = append(out, field)
	}
	return out
}
