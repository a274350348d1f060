package ports

import "context"

type TokenSource interface {
	Token(ctx context.Context) (string, error)
}
