package domain

import "fmt"

type Field struct {
	Name     string
	Example  string
	Optional bool
	Nested   bool
}

type Schema struct {
	Kind      Kind
	NameField string
	Fields    []Field
}

func (s Schema) FieldNames() []string {
	names := make([]string, 0, len(s.Fields))
	for _, field := range s.Fields {
		names = append(names, field.Name)
	}
	return names
}

func (s Schema) HasNested() bool {
	for _, field := range s.Fields {
		if field.Nested {
			return true
		}
	}
	return false
}

var schemas = map[Kind]Schema{
	KindDatabase: {
		Kind:      KindDatabase,
		NameField: "database_name",
		Fields: []Field{
			{Name: "intake_id", Example: "INT-1042"},
			{Name: "database_name", Example: "minerva_sales_raw"},
			{Name: "database_s3_location", Example: "s3://minerva-sales/raw/"},
			{Name: "database_description", Example: "Raw sales extracts"},
			{Name: "aws_account_id", Example: "123456789012"},
			{Name: "source_name", Example: "sap_ecc"},
			{Name: "enterprise_or_func_name", Example: "CORP"},
			{Name: "enterprise_or_func_subgrp_name", Example: "FIN"},
			{Name: "region", Example: "us-east-1"},
			{Name: "data_construct", Example: "Source"},
			{Name: "data_env", Example: "dev"},
			{Name: "data_layer", Example: "raw"},
			{Name: "data_leader", Example: "Jane Doe"},
			{Name: "data_owner_email", Example: "jane.doe@example.com"},
			{Name: "data_owner_github_uname", Example: "janedoe", Optional: true},
		},
	},
	KindBucket: {
		Kind:      KindBucket,
		NameField: "bucket_name",
		Fields: []Field{
			{Name: "intake_id", Example: "INT-1043"},
			{Name: "bucket_name", Example: "minerva-sales-landing"},
			{Name: "bucket_description", Example: "Landing zone for sales feeds"},
			{Name: "aws_account_id", Example: "123456789012"},
			{Name: "aws_region", Example: "us-east-1"},
			{Name: "usage_type", Example: "DataProduct"},
			{Name: "enterprise_or_func_name", Example: "CORP"},
			{Name: "enterprise_or_func_subgrp_name", Example: "FIN"},
			{Name: "data_env", Example: "dev"},
			{Name: "data_owner_email", Example: "jane.doe@example.com"},
			{Name: "data_owner_github_uname", Example: "janedoe", Optional: true},
		},
	},
	KindRole: {
		Kind:      KindRole,
		NameField: "role_name",
		Fields: []Field{
			{Name: "intake_id", Example: "INT-1044"},
			{Name: "role_name", Example: "minerva-sales-analyst"},
			{Name: "role_description", Example: "Analyst access to sales data"},
			{Name: "aws_account_id", Example: "123456789012"},
			{Name: "enterprise_or_func_name", Example: "CORP"},
			{Name: "enterprise_or_func_subgrp_name", Example: "FIN"},
			{Name: "role_owner", Example: "jane.doe@example.com"},
			{Name: "data_env", Example: "dev"},
			{Name: "usage_type", Example: "Analyst"},
			{Name: "compute_size", Example: "SML"},
			{Name: "max_session_duration", Example: "4"},
			{Name: "access_to_resources", Nested: true},
			{Name: "glue_job_access_configs", Nested: true, Optional: true},
			{Name: "athena", Nested: true, Optional: true},
			{Name: "glue_crawler", Nested: true, Optional: true},
		},
	},
}

func SchemaFor(kind Kind) (Schema, error) {
	schema, ok := schemas[kind]
	if !ok {
		return Schema{}, fmt.Errorf("%w: %q", ErrUnknownKind, string(kind))
	}
	return schema, nil
}
