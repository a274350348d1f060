package domain

import (
	"fmt"
	"strings"
)

type Kind string

const (
	KindNone     Kind = ""
	KindDatabase Kind = "database"
	KindBucket   Kind = "bucket"
	KindRole     Kind = "role"
)

func Kinds() []Kind {
	return []Kind{KindDatabase, KindBucket, KindRole}
}

func ParseKind(raw string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "database", "databases", "db":
		return KindDatabase, nil
	case "bucket", "buckets", "s3":
		return KindBucket, nil
	case "role", "roles", "iam":
		return KindRole, nil
	default:
		return KindNone, fmt.Errorf("%w: %q", ErrUnknownKind, raw)
	}
}

// Label is the capitalised singular used in summaries ("1 Bucket(s)").
func (k Kind) Label() string {
	switch k {
	case KindDatabase:
		return "Database"
	case KindBucket:
		return "Bucket"
	case KindRole:
		return "Role"
	default:
		return "Unknown"
	}
}

// Dir is the artifact sub-directory under the output root.
func (k Kind) Dir() string {
	switch k {
	case KindDatabase:
		return "databases"
	case KindBucket:
		return "buckets"
	case KindRole:
		return "roles"
	default:
		return ""
	}
}

// ResourceType is the tag every artifact carries so downstream tooling can
// dispatch on it without inspecting the path.
func (k Kind) ResourceType() string {
	switch k {
	case KindDatabase:
		return "glue_database"
	case KindBucket:
		return "s3_bucket"
	case KindRole:
		return "iam_role"
	default:
		return ""
	}
}

func (k Kind) Valid() bool {
	return k == KindDatabase || k == KindBucket || k == KindRole
}
