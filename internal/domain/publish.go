package domain

type Outcome string

const (
	OutcomeCreated  Outcome = "created"
	OutcomeConflict Outcome = "conflict"
	OutcomeFailed   Outcome = "failed"
)

// Stage names the publish step a failure happened in.
type Stage string

const (
	StagePreflight     Stage = "preflight"
	StageSync          Stage = "sync"
	StageWrite         Stage = "write"
	StageCommit        Stage = "commit"
	StagePush          Stage = "push"
	StageChangeRequest Stage = "change_request"
)

type PublishResult struct {
	Outcome  Outcome
	URL      string
	Counts   Counts
	Paths    []string
	Stage    Stage
	Category RemoteCategory
	Cause    string
}

// Pushed reports whether the commit reached the shared branch, which is the
// case for every outcome except a failure before the change request step.
func (r PublishResult) Pushed() bool {
	return r.Outcome != OutcomeFailed || r.Stage == StageChangeRequest
}
