package ports

import (
	"time"

	"github.com/bnema/platform-intake/internal/domain"
)

type IntakeMetrics interface {
	RecordAccepted(kind domain.Kind)
	RecordRejected(kind domain.Kind, reason string)
	PublishFinished(result domain.PublishResult, elapsed time.Duration)
}

type NopMetrics struct{}

func (NopMetrics) RecordAccepted(domain.Kind) {}
func (NopMetrics) RecordRejected(domain.Kind, string) {}
func (NopMetrics) PublishFinished(domain.PublishResult, time.Duration) {}
