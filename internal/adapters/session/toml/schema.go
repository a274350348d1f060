package toml

import (
	"fmt"
	"time"

	"github.com/bnema/platform-intake/internal/domain"
)

const currentSchemaVersion = 1

type fileSchema struct {
	Version  int             `toml:"version"`
	Sessions []sessionSchema `toml:"sessions"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported sessions schema version %d (current %d)", s.Version, currentSchemaVersion)
	}
	return nil
}

type sessionSchema struct {
	ID          string                  `toml:"id"`
	Phase       string                  `toml:"phase"`
	PendingKind string                  `toml:"pending_kind,omitempty"`
	CreatedAt   string                  `toml:"created_at"`
	UpdatedAt   string                  `toml:"updated_at"`
	Databases   []domain.DatabaseConfig `toml:"databases,omitempty"`
	Buckets     []domain.BucketConfig   `toml:"buckets,omitempty"`
	Roles       []domain.RoleConfig     `toml:"roles,omitempty"`
}

func toSchema(session domain.Session) (sessionSchema, error) {
	out := sessionSchema{
		ID:          session.ID,
		Phase:       string(session.Phase),
		PendingKind: string(session.PendingKind),
		CreatedAt:   formatTime(session.CreatedAt),
		UpdatedAt:   formatTime(session.UpdatedAt),
	}

	for _, kind := range domain.Kinds() {
		for _, record := range session.Records[kind] {
			switch r := record.(type) {
			case domain.DatabaseConfig:
				out.Databases = append(out.Databases, r)
			case domain.BucketConfig:
				out.Buckets = append(out.Buckets, r)
			case domain.RoleConfig:
				out.Roles = append(out.Roles, r)
			default:
				return sessionSchema{}, fmt.Errorf("session %s: unsupported record type %T", session.ID, record)
			}
		}
	}
	return out, nil
}

func fromSchema(entry sessionSchema) domain.Session {
	session := domain.Session{
		ID:          entry.ID,
		Phase:       domain.Phase(entry.Phase),
		PendingKind: domain.Kind(entry.PendingKind),
		Records:     map[domain.Kind][]domain.Record{},
		CreatedAt:   parseTime(entry.CreatedAt),
		UpdatedAt:   parseTime(entry.UpdatedAt),
	}
	if session.Phase == "" {
		session.Phase = domain.PhaseIdle
	}

	for _, r := range entry.Databases {
		session.Records[domain.KindDatabase] = append(session.Records[domain.KindDatabase], r)
	}
	for _, r := range entry.Buckets {
		session.Records[domain.KindBucket] = append(session.Records[domain.KindBucket], r)
	}
	for _, r := range entry.Roles {
		session.Records[domain.KindRole] = append(session.Records[domain.KindRole], r)
	}
	return session
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}
	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.UTC().Format(time.RFC3339Nano)
}
