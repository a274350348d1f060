package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/bnema/platform-intake/internal/domain"
	"github.com/bnema/platform-intake/internal/ports"
)

type RecordPublisher interface {
	Publish(ctx context.Context, records map[domain.Kind][]domain.Record, title string) domain.PublishResult
}

type Reply struct {
	Text        string
	Phase       domain.Phase
	PendingKind domain.Kind
	Counts      domain.Counts
	Result      *domain.PublishResult
}

// IntakeService drives one conversation per session id. Messages for the same
// session are serialized; different sessions proceed independently.
type IntakeService struct {
	sessions   ports.SessionStore
	classifier ports.KindClassifier
	catalog    ports.CatalogSource
	publisher  RecordPublisher
	metrics    ports.IntakeMetrics
	clock      ports.Clock
	logger     zerolog.Logger
	locks      *keyedMutex
}

func NewIntakeService(
	sessions ports.SessionStore,
	classifier ports.KindClassifier,
	catalog ports.CatalogSource,
	publisher RecordPublisher,
	metrics ports.IntakeMetrics,
	clock ports.Clock,
	logger zerolog.Logger,
) *IntakeService {
	if catalog == nil {
		catalog = ports.StaticCatalog{}
	}
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &IntakeService{
		sessions:   sessions,
		classifier: classifier,
		catalog:    catalog,
		publisher:  publisher,
		metrics:    metrics,
		clock:      clock,
		logger:     logger,
		locks:      newKeyedMutex(),
	}
}

// Handle applies one user message to the session and returns the reply.
// Parse, validation and publish failures are reported in the reply text; the
// error is reserved for session storage failures.
func (s *IntakeService) Handle(ctx context.Context, sessionID, text string) (Reply, error) {
	if err := ctx.Err(); err != nil {
		return Reply{}, err
	}

	unlock := s.locks.lock(sessionID)
	defer unlock()

	session, err := s.load(ctx, sessionID)
	if err != nil {
		return Reply{}, err
	}

	verdict := ClassifyIntent(text)
	logger := s.logger.With().
		Str("session_id", sessionID).
		Str("phase", string(session.Phase)).
		Str("intent", verdict.Intent.String()).
		Logger()
	logger.Debug().Msg("message received")

	if verdict.Intent == IntentCancel {
		if err := s.sessions.Delete(ctx, sessionID); err != nil {
			return Reply{}, fmt.Errorf("delete session: %w", err)
		}
		return Reply{Text: cancelledReply(session.Counts()), Phase: domain.PhaseIdle}, nil
	}

	var message string
	switch session.Phase {
	case domain.PhaseAwaitingTitle:
		if verdict.TitleLike() {
			return s.publish(ctx, session, text, logger)
		}
		message = titleTooShortReply()
	case domain.PhaseCollecting:
		message = s.collect(ctx, &session, text, verdict, logger)
	case domain.PhaseConfirming:
		message = s.confirm(ctx, &session, text, verdict)
	default:
		message = s.idle(ctx, &session, text, verdict)
	}

	session.UpdatedAt = s.clock.Now()
	if err := s.sessions.Save(ctx, session); err != nil {
		return Reply{}, fmt.Errorf("save session: %w", err)
	}

	return Reply{
		Text:        message,
		Phase:       session.Phase,
		PendingKind: session.PendingKind,
		Counts:      session.Counts(),
	}, nil
}

func (s *IntakeService) Reset(ctx context.Context, sessionID string) error {
	unlock := s.locks.lock(sessionID)
	defer unlock()

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *IntakeService) Snapshot(ctx context.Context, sessionID string) (domain.Session, error) {
	unlock := s.locks.lock(sessionID)
	defer unlock()

	return s.load(ctx, sessionID)
}

func (s *IntakeService) load(ctx context.Context, sessionID string) (domain.Session, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if errors.Is(err, domain.ErrSessionNotFound) {
		return domain.NewSession(sessionID, s.clock.Now()), nil
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("get session: %w", err)
	}
	return session, nil
}

func (s *IntakeService) idle(ctx context.Context, session *domain.Session, text string, verdict Verdict) string {
	if verdict.Intent == IntentDone {
		if session.Counts().Total() == 0 {
			return nothingCollectedReply()
		}
		session.Phase = domain.PhaseAwaitingTitle
		return titlePrompt(session.Counts())
	}

	kind := s.classify(ctx, text)
	if kind == domain.KindNone {
		return helpReply()
	}
	session.Phase = domain.PhaseCollecting
	session.PendingKind = kind
	return fieldPrompt(kind)
}

func (s *IntakeService) collect(ctx context.Context, session *domain.Session, text string, verdict Verdict, logger zerolog.Logger) string {
	kind := session.PendingKind

	switch verdict.Intent {
	case IntentData:
	case IntentDone:
		if session.Counts().Total() == 0 {
			return notDataReply(kind)
		}
		session.Phase = domain.PhaseAwaitingTitle
		session.PendingKind = domain.KindNone
		return titlePrompt(session.Counts())
	default:
		if other := s.classify(ctx, text); other != domain.KindNone && other != kind {
			session.PendingKind = other
			return fieldPrompt(other)
		}
		return notDataReply(kind)
	}

	fields, err := Parse(text, kind)
	if err != nil {
		logger.Debug().Err(err).Msg("parse rejected")
		s.metrics.RecordRejected(kind, "parse")
		return rejectedReply(err)
	}

	record, err := domain.Validate(s.catalog.Catalog(), kind, fields)
	if err != nil {
		logger.Debug().Err(err).Msg("validation rejected")
		s.metrics.RecordRejected(kind, "validation")
		return rejectedReply(err)
	}

	if err := session.Add(record); err != nil {
		s.metrics.RecordRejected(kind, "duplicate")
		return rejectedReply(err)
	}

	s.metrics.RecordAccepted(kind)
	logger.Info().Str("kind", string(kind)).Str("name", record.Name()).Msg("record accepted")
	session.Phase = domain.PhaseConfirming
	session.PendingKind = domain.KindNone
	return addedReply(record, session.Counts())
}

func (s *IntakeService) confirm(ctx context.Context, session *domain.Session, text string, verdict Verdict) string {
	if verdict.Intent == IntentDone {
		if session.Counts().Total() == 0 {
			return nothingCollectedReply()
		}
		session.Phase = domain.PhaseAwaitingTitle
		return titlePrompt(session.Counts())
	}

	kind := s.classify(ctx, text)
	if kind == domain.KindNone {
		return nextKindReply()
	}
	session.Phase = domain.PhaseCollecting
	session.PendingKind = kind
	return fieldPrompt(kind)
}

// publish discards the session before touching the repository so a repeated
// title cannot submit the same records twice.
func (s *IntakeService) publish(ctx context.Context, session domain.Session, text string, logger zerolog.Logger) (Reply, error) {
	if err := s.sessions.Delete(ctx, session.ID); err != nil {
		return Reply{}, fmt.Errorf("delete session: %w", err)
	}

	title := strings.Join(strings.Fields(text), " ")
	logger.Info().Str("title", title).Int("records", session.Counts().Total()).Msg("publishing")

	result := s.publisher.Publish(ctx, session.Records, title)
	return Reply{
		Text:   publishReply(result),
		Phase:  domain.PhaseIdle,
		Counts: result.Counts,
		Result: &result,
	}, nil
}

func (s *IntakeService) classify(ctx context.Context, text string) domain.Kind {
	kind, err := s.classifier.Classify(ctx, text)
	if err != nil {
		s.logger.Warn().Err(err).Msg("classify resource kind")
		return domain.KindNone
	}
	return kind
}
