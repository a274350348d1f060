package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	accountIDPattern    = regexp.MustCompile(`^\d{12}$`)
	digitsPattern       = regexp.MustCompile(`^\d+$`)
	bucketRegionPattern = regexp.MustCompile(`^[a-z]{2}(-gov)?-[a-z]+-\d$`)
	githubHandlePattern = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9-]{0,38})$`)
	databaseCharset     = regexp.MustCompile(`^[a-z0-9_-]+$`)
	bucketCharset       = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*[a-z0-9]$`)
	roleCharset         = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)
)

// Validate checks raw field values against the kind's schema and the
// governance catalog and returns an immutable record. Every failing field is
// reported once, with the message of its first failing rule.
func Validate(catalog *Catalog, kind Kind, fields map[string]any) (Record, error) {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	switch kind {
	case KindDatabase:
		return validateDatabase(catalog, fields)
	case KindBucket:
		return validateBucket(catalog, fields)
	case KindRole:
		return validateRole(catalog, fields)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, string(kind))
	}
}

func validateDatabase(c *Catalog, fields map[string]any) (Record, error) {
	r := newFieldReader(fields)
	var rec DatabaseConfig
	var fnOK bool

	rec.IntakeID, _ = r.check("intake_id", required)
	rec.DatabaseName, _ = r.check("database_name", required, DatabaseNameRule(c))
	rec.S3Location, _ = r.check("database_s3_location", required, s3URI)
	rec.Description, _ = r.check("database_description", required)
	rec.AWSAccountID, _ = r.check("aws_account_id", required, accountID)
	rec.SourceName, _ = r.check("source_name", required)
	rec.EnterpriseFunction, fnOK = r.check("enterprise_or_func_name", required, upper, oneOf(c.FunctionCodes()))
	rec.Subgroup = r.subgroup(c, rec.EnterpriseFunction, fnOK)
	rec.Region, _ = r.check("region", required, lower, oneOf(c.DatabaseRegions))
	rec.DataConstruct, _ = r.check("data_construct", required)
	rec.DataEnv, _ = r.check("data_env", required, lower, oneOf(c.Environments))
	rec.DataLayer, _ = r.check("data_layer", required, lower, oneOf(c.DataLayers))
	rec.DataLeader, _ = r.check("data_leader", required)
	rec.OwnerEmail, _ = r.check("data_owner_email", required, email)
	rec.OwnerHandle = r.optional("data_owner_github_uname", githubHandle)

	if err := r.err(KindDatabase); err != nil {
		return nil, err
	}
	return rec, nil
}

func validateBucket(c *Catalog, fields map[string]any) (Record, error) {
	r := newFieldReader(fields)
	var rec BucketConfig
	var fnOK bool

	rec.IntakeID, _ = r.check("intake_id", required)
	rec.BucketName, _ = r.check("bucket_name", required, BucketNameRule(c))
	rec.Description, _ = r.check("bucket_description", required)
	rec.AWSAccountID, _ = r.check("aws_account_id", required, accountID)
	rec.AWSRegion, _ = r.check("aws_region", required, lower, awsRegion)
	rec.UsageType, _ = r.check("usage_type", required, oneOf(c.BucketUsageTypes))
	rec.EnterpriseFunction, fnOK = r.check("enterprise_or_func_name", required, upper, oneOf(c.FunctionCodes()))
	rec.Subgroup = r.subgroup(c, rec.EnterpriseFunction, fnOK)
	rec.DataEnv, _ = r.check("data_env", required, lower, oneOf(c.Environments))
	rec.OwnerEmail, _ = r.check("data_owner_email", required, email)
	rec.OwnerHandle = r.optional("data_owner_github_uname", githubHandle)

	if err := r.err(KindBucket); err != nil {
		return nil, err
	}
	return rec, nil
}

func validateRole(c *Catalog, fields map[string]any) (Record, error) {
	r := newFieldReader(fields)
	var rec RoleConfig
	var fnOK bool

	rec.IntakeID, _ = r.check("intake_id", required)
	rec.RoleName, _ = r.check("role_name", required, RoleNameRule(c))
	rec.Description, _ = r.check("role_description", required)
	rec.AWSAccountID, _ = r.check("aws_account_id", required, accountID)
	rec.EnterpriseFunction, fnOK = r.check("enterprise_or_func_name", required, upper, oneOf(c.FunctionCodes()))
	rec.Subgroup = r.subgroup(c, rec.EnterpriseFunction, fnOK)
	rec.RoleOwner, _ = r.check("role_owner", required, email)
	rec.DataEnv, _ = r.check("data_env", required, lower, oneOf(c.Environments))
	rec.UsageType, _ = r.check("usage_type", required, oneOf(c.RoleUsageTypes))
	rec.ComputeSize, _ = r.check("compute_size", required, upper, oneOf(c.ComputeSizes))
	if hours, ok := r.check("max_session_duration", required, sessionHours(c.MaxSessionHours)); ok {
		rec.MaxSessionDuration, _ = strconv.Atoi(hours)
	}

	if v, ok := r.nested("access_to_resources", accessShape(c), true).(map[string]any); ok {
		rec.AccessToResources = v
	}
	if v, ok := r.nested("glue_job_access_configs", glueJobShape(), false).(map[string]any); ok {
		rec.GlueJobAccessConfigs = v
	}
	if v, ok := r.nested("athena", Shape{Kind: ShapeMap, Values: &Shape{Kind: ShapeAny}}, false).(map[string]any); ok {
		rec.Athena = v
	}
	if v, ok := r.nested("glue_crawler", Shape{Kind: ShapeList, Elem: &Shape{Kind: ShapeAny}}, false).([]any); ok {
		rec.GlueCrawler = v
	}

	if err := r.err(KindRole); err != nil {
		return nil, err
	}
	return rec, nil
}

func accessShape(c *Catalog) Shape {
	return Shape{
		Kind:   ShapeMap,
		MinLen: 1,
		Fields: map[string]Shape{
			"glue_databases": {
				Kind:   ShapeMap,
				MinLen: 1,
				Keys:   grantDatabase,
				Values: &Shape{
					Kind:   ShapeList,
					MinLen: 1,
					Elem:   &Shape{Kind: ShapeScalar, Rule: chain(lower, oneOf(c.GrantPermissions))},
				},
			},
			"execution_asset_prefixes": {
				Kind: ShapeList,
				Elem: &Shape{Kind: ShapeScalar, Rule: s3URI},
			},
			"glue_crawler": {
				Kind: ShapeList,
				Elem: &Shape{Kind: ShapeAny},
			},
		},
	}
}

func glueJobShape() Shape {
	return Shape{
		Kind:     ShapeMap,
		Required: []string{"enable_glue_jobs"},
		Fields: map[string]Shape{
			"enable_glue_jobs":    {Kind: ShapeBool},
			"secret_region":       {Kind: ShapeScalar, Rule: chain(lower, awsRegion)},
			"secret_name":         {Kind: ShapeScalar, Rule: required},
			"job_control_configs": {Kind: ShapeList, Elem: &Shape{Kind: ShapeScalar, Rule: required}},
		},
	}
}

type fieldReader struct {
	fields map[string]any
	errs   []FieldError
}

func newFieldReader(fields map[string]any) *fieldReader {
	return &fieldReader{fields: fields}
}

func (r *fieldReader) check(name string, rules ...Rule) (string, bool) {
	text, ok := scalarText(r.fields[name])
	if !ok {
		r.errs = append(r.errs, FieldError{Field: name, Message: "must be a single value, not a nested structure"})
		return "", false
	}
	value := strings.TrimSpace(text)
	for _, rule := range rules {
		next, fe := rule(value)
		if fe != nil {
			fe.Field = name
			r.errs = append(r.errs, *fe)
			return "", false
		}
		value = next
	}
	return value, true
}

func (r *fieldReader) optional(name string, rules ...Rule) string {
	text, ok := scalarText(r.fields[name])
	if ok && strings.TrimSpace(text) == "" {
		return ""
	}
	value, _ := r.check(name, rules...)
	return value
}

// subgroup is only checked once the enterprise function itself passed, so a
// bad function code yields one message instead of two.
func (r *fieldReader) subgroup(c *Catalog, function string, functionOK bool) string {
	if !functionOK {
		return ""
	}
	value, _ := r.check("enterprise_or_func_subgrp_name", required, upper, subgroupOf(c, function))
	return value
}

func (r *fieldReader) nested(name string, shape Shape, mandatory bool) any {
	raw, present := r.fields[name]
	if !present || raw == nil || raw == "" {
		if mandatory {
			r.errs = append(r.errs, FieldError{Field: name, Message: "is required"})
		}
		return nil
	}
	if _, isText := raw.(string); isText {
		r.errs = append(r.errs, FieldError{
			Field:   name,
			Message: "must be a nested structure; send the record as multi-line YAML with this field indented beneath it",
		})
		return nil
	}
	value, errs := shape.Check(name, raw)
	r.errs = append(r.errs, errs...)
	return value
}

func (r *fieldReader) err(kind Kind) error {
	if len(r.errs) == 0 {
		return nil
	}
	return &ValidationError{Kind: kind, Fields: r.errs}
}

func chain(rules ...Rule) Rule {
	return func(value string) (string, *FieldError) {
		for _, rule := range rules {
			next, fe := rule(value)
			if fe != nil {
				return "", fe
			}
			value = next
		}
		return value, nil
	}
}

func required(value string) (string, *FieldError) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", &FieldError{Message: "is required"}
	}
	return value, nil
}

func upper(value string) (string, *FieldError) {
	return strings.ToUpper(value), nil
}

func lower(value string) (string, *FieldError) {
	return strings.ToLower(value), nil
}

// oneOf matches case-insensitively and returns the catalog's spelling.
func oneOf(allowed []string) Rule {
	return func(value string) (string, *FieldError) {
		for _, candidate := range allowed {
			if strings.EqualFold(candidate, value) {
				return candidate, nil
			}
		}
		return "", &FieldError{
			Message: fmt.Sprintf("%q is not an approved value", value),
			Allowed: append([]string(nil), allowed...),
		}
	}
}

func subgroupOf(c *Catalog, function string) Rule {
	return func(value string) (string, *FieldError) {
		if _, ok := c.SubgroupName(function, value); ok {
			return value, nil
		}
		name, _ := c.FunctionName(function)
		codes := c.SubgroupCodes(function)
		allowed := make([]string, 0, len(codes))
		for _, code := range codes {
			full, _ := c.SubgroupName(function, code)
			allowed = append(allowed, code+" = "+full)
		}
		return "", &FieldError{
			Message: fmt.Sprintf("%q is not a subgroup of %s (%s)", value, function, name),
			Allowed: allowed,
		}
	}
}

func accountID(value string) (string, *FieldError) {
	if accountIDPattern.MatchString(value) {
		return value, nil
	}
	if digitsPattern.MatchString(value) {
		return "", &FieldError{Message: fmt.Sprintf("must be exactly 12 digits (got %d digits)", len(value))}
	}
	return "", &FieldError{Message: fmt.Sprintf("must be exactly 12 digits with no other characters (got %q)", value)}
}

func email(value string) (string, *FieldError) {
	at := strings.LastIndex(value, "@")
	invalid := &FieldError{Message: fmt.Sprintf("%q is not a valid email address", value)}
	if at <= 0 || strings.ContainsAny(value, " \t") {
		return "", invalid
	}
	domainPart := value[at+1:]
	dot := strings.Index(domainPart, ".")
	if dot <= 0 || dot == len(domainPart)-1 {
		return "", invalid
	}
	return value, nil
}

func s3URI(value string) (string, *FieldError) {
	if !strings.HasPrefix(value, "s3://") || len(value) == len("s3://") {
		return "", &FieldError{Message: fmt.Sprintf("must be an S3 URI starting with s3:// (got %q)", value)}
	}
	return value, nil
}

func awsRegion(value string) (string, *FieldError) {
	if !bucketRegionPattern.MatchString(value) {
		return "", &FieldError{Message: fmt.Sprintf("%q does not look like an AWS region such as us-east-1", value)}
	}
	return value, nil
}

func githubHandle(value string) (string, *FieldError) {
	if !githubHandlePattern.MatchString(value) {
		return "", &FieldError{Message: fmt.Sprintf("%q is not a valid GitHub username", value)}
	}
	return value, nil
}

func sessionHours(maxHours int) Rule {
	return func(value string) (string, *FieldError) {
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 || n > maxHours {
			return "", &FieldError{Message: fmt.Sprintf("must be a whole number of hours between 1 and %d (got %q)", maxHours, value)}
		}
		return strconv.Itoa(n), nil
	}
}

func grantDatabase(value string) (string, *FieldError) {
	if !databaseCharset.MatchString(value) {
		return "", &FieldError{Message: "database names may only contain lower-case letters, digits, '_' and '-'"}
	}
	return value, nil
}

type namingConvention struct {
	label    string
	prefixes []string
	charset  *regexp.Regexp
	charsMsg string
	min, max int
}

func (n namingConvention) rule(value string) (string, *FieldError) {
	if value != strings.ToLower(value) {
		return "", &FieldError{Message: fmt.Sprintf("%s names must be lower case (got %q)", n.label, value)}
	}
	hasPrefix := false
	for _, prefix := range n.prefixes {
		if strings.HasPrefix(value, prefix) {
			hasPrefix = true
			break
		}
	}
	if !hasPrefix {
		return "", &FieldError{
			Message: fmt.Sprintf("%s name %q must start with an approved prefix", n.label, value),
			Allowed: append([]string(nil), n.prefixes...),
		}
	}
	if !n.charset.MatchString(value) {
		return "", &FieldError{Message: fmt.Sprintf("%s name %q %s", n.label, value, n.charsMsg)}
	}
	if len(value) < n.min || len(value) > n.max {
		return "", &FieldError{Message: fmt.Sprintf("%s names must be %d to %d characters (got %d)", n.label, n.min, n.max, len(value))}
	}
	return value, nil
}

func DatabaseNameRule(c *Catalog) Rule {
	return namingConvention{
		label:    "database",
		prefixes: c.DatabasePrefixes,
		charset:  databaseCharset,
		charsMsg: "may only contain lower-case letters, digits, '_' and '-'",
		min:      3,
		max:      255,
	}.rule
}

func BucketNameRule(c *Catalog) Rule {
	return namingConvention{
		label:    "bucket",
		prefixes: c.BucketPrefixes,
		charset:  bucketCharset,
		charsMsg: "may only contain lower-case letters, digits and '-', and must start and end with a letter or digit",
		min:      3,
		max:      63,
	}.rule
}

func RoleNameRule(c *Catalog) Rule {
	return namingConvention{
		label:    "role",
		prefixes: c.RolePrefixes,
		charset:  roleCharset,
		charsMsg: "must start with a letter and contain only lower-case letters, digits, '_' and '-'",
		min:      3,
		max:      64,
	}.rule
}
