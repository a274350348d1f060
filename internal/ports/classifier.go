package ports

import (
	"context"

	"github.com/bnema/platform-intake/internal/domain"
)

// KindClassifier maps free text to a resource kind, or domain.KindNone.
type KindClassifier interface {
	Classify(ctx context.Context, text string) (domain.Kind, error)
}
