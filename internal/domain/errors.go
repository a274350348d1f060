package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownKind           = errors.New("unknown resource kind")
	ErrPositionalUnsupported = errors.New("positional input is not supported for this resource kind")
	ErrDuplicateRecord       = errors.New("record already added in this session")
	ErrNothingToPublish      = errors.New("no records to publish")
	ErrNoChanges             = errors.New("no changes to commit")
	ErrSessionNotFound       = errors.New("session not found")
	ErrSecretNotFound        = errors.New("secret not found")
	ErrInvalidCatalog        = errors.New("invalid governance catalog")
)

// ParseError reports input that could not be turned into field values.
type ParseError struct {
	Kind     Kind
	Expected int
	Got      int
	Order    []string
	Reason   string
	Err      error
}

func (e *ParseError) Error() string {
	switch {
	case e.Reason != "":
		return fmt.Sprintf("could not read %s details: %s", e.Kind, e.Reason)
	case e.Err != nil:
		return fmt.Sprintf("could not read %s details: %v", e.Kind, e.Err)
	default:
		return fmt.Sprintf(
			"expected %d comma-separated values for a %s but got %d; provide them in this order: %s",
			e.Expected, e.Kind, e.Got, strings.Join(e.Order, ", "),
		)
	}
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

type FieldError struct {
	Field   string
	Message string
	Allowed []string
}

func (e FieldError) String() string {
	if len(e.Allowed) == 0 {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s (allowed: %s)", e.Field, e.Message, strings.Join(e.Allowed, ", "))
}

// ValidationError lists every field that failed its first rule.
type ValidationError struct {
	Kind   Kind
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	lines := make([]string, 0, len(e.Fields)+1)
	lines = append(lines, fmt.Sprintf("%s validation failed:", e.Kind))
	for _, field := range e.Fields {
		lines = append(lines, "- "+field.String())
	}
	return strings.Join(lines, "\n")
}

func (e *ValidationError) Field(name string) (FieldError, bool) {
	for _, field := range e.Fields {
		if field.Field == name {
			return field, true
		}
	}
	return FieldError{}, false
}

// PreflightError is returned when the working copy has uncommitted changes
// outside the artifact directory.
type PreflightError struct {
	Paths []string
}

func (e *PreflightError) Error() string {
	return fmt.Sprintf("working copy has uncommitted changes: %s", strings.Join(e.Paths, ", "))
}

// ConflictError means an open change request already exists for the
// source/target pair. URL is empty when the lookup failed.
type ConflictError struct {
	URL string
}

func (e *ConflictError) Error() string {
	if e.URL == "" {
		return "a change request already exists for this branch"
	}
	return "a change request already exists: " + e.URL
}

type RemoteCategory string

const (
	RemoteAuth       RemoteCategory = "auth"
	RemoteNotFound   RemoteCategory = "not_found"
	RemoteValidation RemoteCategory = "validation"
	RemoteTimeout    RemoteCategory = "timeout"
	RemoteConnection RemoteCategory = "connection"
	RemoteUnknown    RemoteCategory = "unknown"
)

type RemoteError struct {
	Category   RemoteCategory
	StatusCode int
	Detail     string
	Err        error
}

func (e *RemoteError) Error() string {
	msg := "change request failed (" + string(e.Category) + ")"
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" status %d", e.StatusCode)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}
