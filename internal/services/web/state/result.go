package state

import flashnotice "github.com/direwen/dilemma-web/internal/services/web/platform/flash"

// Result is the outcome of one experiment action. Actions never render
// anything; callers decide how to surface Notice and where to redirect.
type Result[T any] struct {
	Value T
	// Notice is the participant-facing message for this outcome, if any.
	Notice flashnotice.Notice
	// Failure is the underlying error when the action did not succeed.
	Failure error
	// Unauthorized is set when the API rejected the session token. The
	// persisted token has already been cleared.
	Unauthorized bool
	// Completed is set when the API reports the experiment is finished.
	Completed bool
}

// OK reports whether the action succeeded.
func (r Result[T]) OK() bool {
	return r.Failure == nil && !r.Unauthorized
}
