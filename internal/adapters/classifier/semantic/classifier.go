package semantic

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/bnema/platform-intake/internal/domain"
	"github.com/bnema/platform-intake/internal/ports"
)

const defaultThreshold = 0.72

type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Prototypes are short requests typical for each kind. Their embeddings are
// computed once, on the first message the keyword pass cannot place.
var defaultPrototypes = map[domain.Kind][]string{
	domain.KindDatabase: {
		"I need a new Glue database for our raw data",
		"register a data catalog entry for the sales tables",
		"create a place to store query tables in the lake",
	},
	domain.KindBucket: {
		"I need an S3 bucket for landing files",
		"somewhere to drop our exported files in the cloud",
		"create object storage for the team",
	},
	domain.KindRole: {
		"I need an IAM role so analysts can query data",
		"grant my team access to the sales databases",
		"set up credentials for our Glue jobs",
	},
}

// Classifier tries an exact keyword pass first and falls back to nearest
// prototype by cosine similarity.
type Classifier struct {
	keywords   ports.KindClassifier
	embedder   Embedder
	threshold  float64
	prototypes map[domain.Kind][]string

	mu      sync.Mutex
	vectors []prototype
}

type prototype struct {
	kind   domain.Kind
	vector []float32
}

var _ ports.KindClassifier = (*Classifier)(nil)

func New(keywords ports.KindClassifier, embedder Embedder, threshold float64) *Classifier {
	if threshold <= 0 {
		threshold = defaultThreshold
	}
	return &Classifier{
		keywords:   keywords,
		embedder:   embedder,
		threshold:  threshold,
		prototypes: defaultPrototypes,
	}
}

func (c *Classifier) Classify(ctx context.Context, text string) (domain.Kind, error) {
	if err := ctx.Err(); err != nil {
		return domain.KindNone, err
	}

	if c.keywords != nil {
		kind, err := c.keywords.Classify(ctx, text)
		if err != nil {
			return domain.KindNone, err
		}
		if kind != domain.KindNone {
			return kind, nil
		}
	}

	prototypes, err := c.prototypeVectors(ctx)
	if err != nil {
		return domain.KindNone, err
	}

	vectors, err := c.embedder.Embed(ctx, []string{text})
	if err != nil {
		return domain.KindNone, fmt.Errorf("embed message: %w", err)
	}
	if len(vectors) != 1 {
		return domain.KindNone, fmt.Errorf("embed message: got %d vectors", len(vectors))
	}

	best, bestScore := domain.KindNone, c.threshold
	for _, p := range prototypes {
		if score := cosine(vectors[0], p.vector); score >= bestScore {
			best, bestScore = p.kind, score
		}
	}
	return best, nil
}

func (c *Classifier) prototypeVectors(ctx context.Context) ([]prototype, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.vectors != nil {
		return c.vectors, nil
	}

	var kinds []domain.Kind
	var texts []string
	for _, kind := range domain.Kinds() {
		for _, text := range c.prototypes[kind] {
			kinds = append(kinds, kind)
			texts = append(texts, text)
		}
	}

	embedded, err := c.embedder.Embed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed prototypes: %w", err)
	}
	if len(embedded) != len(texts) {
		return nil, fmt.Errorf("embed prototypes: got %d vectors for %d texts", len(embedded), len(texts))
	}

	vectors := make([]prototype, len(texts))
	for i := range texts {
		vectors[i] = prototype{kind: kinds[i], vector: embedded[i]}
	}
	c.vectors = vectors
	return vectors, nil
}

func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
