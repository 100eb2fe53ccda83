package pins

import "errors"

var (
	// ErrLoadFailure means the plan image size is unknown, so placement is
	// disabled until it loads.
	ErrLoadFailure = errors.New("plan image not loaded")

	// ErrFetchFailure means a refresh failed. The previous pin set is kept.
	ErrFetchFailure = errors.New("fetching pins failed")

	// ErrCreateFailure means the pin could not be created after its task was.
	// The pending pin is kept so the caller can retry.
	ErrCreateFailure = errors.New("creating pin failed")

	// ErrNotArmed is returned by BeginPlacement when placement mode is off.
	ErrNotArmed = errors.New("pin placement is not active")

	// ErrNoPendingPin is returned by CommitPlacement with nothing to commit.
	ErrNoPendingPin = errors.New("no pending pin")

	// ErrMissingTask is returned by CommitPlacement without a task ID.
	ErrMissingTask = errors.New("task ID is required")

	// ErrCommitInFlight is returned by CommitPlacement while another commit
	// is still waiting on the server.
	ErrCommitInFlight = errors.New("pin commit already in progress")

	// ErrStale marks a result that arrived after it was superseded by a newer
	// request or after the controller was closed. It was not applied.
	ErrStale = errors.New("stale result discarded")

	// ErrClosed is returned for calls made after Close.
	ErrClosed = errors.New("pin controller closed")
)
