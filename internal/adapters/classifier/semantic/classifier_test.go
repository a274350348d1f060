package semantic

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/platform-intake/internal/adapters/classifier/keyword"
	"github.com/bnema/platform-intake/internal/domain"
)

var axes = map[domain.Kind][]float32{
	domain.KindDatabase: {1, 0, 0, 0},
	domain.KindBucket:   {0, 1, 0, 0},
	domain.KindRole:     {0, 0, 1, 0},
}

// fakeEmbedder puts prototypes on their kind's axis and other text on an
// axis chosen by a few marker words.
type fakeEmbedder struct {
	calls int
	err   error
}

func (f *fakeEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}

	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = f.vector(text)
	}
	return out, nil
}

func (f *fakeEmbedder) vector(text string) []float32 {
	for kind, prototypes := range defaultPrototypes {
		for _, p := range prototypes {
			if p == text {
				return axes[kind]
			}
		}
	}

	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "tables"):
		return axes[domain.KindDatabase]
	case strings.Contains(lower, "files"):
		return []float32{0.1, 0.95, 0, 0}
	case strings.Contains(lower, "analysts"):
		return axes[domain.KindRole]
	default:
		return []float32{0, 0, 0, 1}
	}
}

func TestClassifierUsesKeywordsFirst(t *testing.T) {
	embedder := &fakeEmbedder{}
	c := New(keyword.New(), embedder, 0)

	kind, err := c.Classify(context.Background(), "I need a bucket")
	require.NoError(t, err)
	assert.Equal(t, domain.KindBucket, kind)
	assert.Zero(t, embedder.calls)
}

func TestClassifierFallsBackToNearestPrototype(t *testing.T) {
	tests := []struct {
		text string
		want domain.Kind
	}{
		{text: "somewhere to keep our exported csv files", want: domain.KindBucket},
		{text: "our analysts cannot query anything", want: domain.KindRole},
		{text: "we have new tables to register", want: domain.KindDatabase},
		{text: "good morning", want: domain.KindNone},
	}

	embedder := &fakeEmbedder{}
	c := New(keyword.New(), embedder, 0)

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			kind, err := c.Classify(context.Background(), tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, kind)
		})
	}

	assert.Equal(t, 1+len(tests), embedder.calls, "prototypes are embedded once")
}

func TestClassifierReportsEmbedFailure(t *testing.T) {
	c := New(nil, &fakeEmbedder{err: errors.New("quota exceeded")}, 0)

	kind, err := c.Classify(context.Background(), "somewhere to keep files")
	require.Error(t, err)
	assert.Equal(t, domain.KindNone, kind)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestCosine(t *testing.T) {
	assert.InDelta(t, 1.0, cosine([]float32{1, 2}, []float32{2, 4}), 1e-9)
	assert.InDelta(t, 0.0, cosine([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.Zero(t, cosine([]float32{1}, []float32{1, 2}))
	assert.Zero(t, cosine([]float32{0, 0}, []float32{1, 2}))
}
