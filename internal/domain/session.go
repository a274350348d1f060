package domain

import (
	"fmt"
	"time"
)

type Phase string

const (
	PhaseIdle          Phase = "idle"
	PhaseCollecting    Phase = "collecting"
	PhaseConfirming    Phase = "confirming"
	PhaseAwaitingTitle Phase = "awaiting_title"
)

// Session accumulates records for one conversation until a publish attempt.
// PendingKind is only meaningful while Phase is PhaseCollecting.
type Session struct {
	ID          string
	Phase       Phase
	PendingKind Kind
	Records     map[Kind][]Record
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewSession(id string, now time.Time) Session {
	return Session{
		ID:        id,
		Phase:     PhaseIdle,
		Records:   map[Kind][]Record{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *Session) Add(record Record) error {
	if s.Records == nil {
		s.Records = map[Kind][]Record{}
	}
	for _, existing := range s.Records[record.Kind()] {
		if existing.Name() == record.Name() {
			return fmt.Errorf("%w: %s %s", ErrDuplicateRecord, record.Kind(), record.Name())
		}
	}
	s.Records[record.Kind()] = append(s.Records[record.Kind()], record)
	return nil
}

func (s Session) Counts() Counts {
	return CountRecords(s.Records)
}

// Clone copies the record index so stores can hand out sessions without
// sharing slices. Records themselves are immutable.
func (s Session) Clone() Session {
	out := s
	out.Records = make(map[Kind][]Record, len(s.Records))
	for kind, records := range s.Records {
		out.Records[kind] = append([]Record(nil), records...)
	}
	return out
}

type Counts map[Kind]int

func CountRecords(records map[Kind][]Record) Counts {
	counts := Counts{}
	for _, kind := range Kinds() {
		if n := len(records[kind]); n > 0 {
			counts[kind] = n
		}
	}
	return counts
}

func (c Counts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Lines renders one "<n> <Label>(s)" line per non-empty kind in kind order.
func (c Counts) Lines() []string {
	lines := make([]string, 0, len(c))
	for _, kind := range Kinds() {
		if n := c[kind]; n > 0 {
			lines = append(lines, fmt.Sprintf("%d %s(s)", n, kind.Label()))
		}
	}
	return lines
}
