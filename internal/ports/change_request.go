package ports

import "context"

type ChangeRequest struct {
	Title     string
	Body      string
	SourceRef string
	TargetRef string
}

// ChangeRequestHost opens a change request and returns its URL. An existing
// open request for the same refs is reported as *domain.ConflictError; any
// other failure as *domain.RemoteError.
type ChangeRequestHost interface {
	Create(ctx context.Context, req ChangeRequest) (string, error)
}
