package keyword

import (
	"context"
	"strings"
	"unicode"

	"github.com/bnema/platform-intake/internal/domain"
	"github.com/bnema/platform-intake/internal/ports"
)

var _ ports.KindClassifier = (*Classifier)(nil)

type rule struct {
	kind  domain.Kind
	terms []string
}

// Terms are matched as whole words; multi-word terms as word sequences.
var defaultRules = []rule{
	{kind: domain.KindDatabase, terms: []string{"database", "databases", "db", "glue database", "glue catalog", "catalog database"}},
	{kind: domain.KindBucket, terms: []string{"bucket", "buckets", "s3", "storage bucket", "object storage"}},
	{kind: domain.KindRole, terms: []string{"role", "roles", "iam", "access role", "permission", "permissions"}},
}

// Classifier picks the kind whose term appears earliest in the text.
type Classifier struct {
	rules []rule
}

func New() *Classifier {
	return &Classifier{rules: defaultRules}
}

func (c *Classifier) Classify(ctx context.Context, text string) (domain.Kind, error) {
	if err := ctx.Err(); err != nil {
		return domain.KindNone, err
	}

	words := tokenize(text)
	best, bestAt := domain.KindNone, len(words)
	for _, r := range c.rules {
		for _, term := range r.terms {
			if at := indexOf(words, strings.Fields(term)); at >= 0 && at < bestAt {
				best, bestAt = r.kind, at
			}
		}
	}
	return best, nil
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func indexOf(words, term []string) int {
	for i := 0; i+len(term) <= len(words); i++ {
		match := true
		for j, part := range term {
			if words[i+j] != part {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
