package worker

import (
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
)

// ScanArgs contains the arguments for a background scan job submitted to River.
// The account is the unique key so overlapping schedules never stack scans of
// the same account.
type ScanArgs struct {
	// Account is the logged-in username the scan runs for.
	Account string `json:"account" river:"unique"`
	// AutoUnfollow runs the unfollow batch over the filtered candidates once
	// the scan succeeds.
	AutoUnfollow bool `json:"autoUnfollow"`

	// maxAttempts configures the maximum number of times River should retry the job.
	maxAttempts int
}

// NewScanArgs returns job arguments carrying the retry budget.
func NewScanArgs(account string, autoUnfollow bool, maxAttempts int) ScanArgs {
	return ScanArgs{Account: account, AutoUnfollow: autoUnfollow, maxAttempts: maxAttempts}
}

// Kind returns the River job kind used to register and dispatch the scan worker.
func (args ScanArgs) Kind() string { return "ScanAccountJob" }

// InsertOpts allows one pending or running scan per account.
func (args ScanArgs) InsertOpts() river.InsertOpts {
	return river.InsertOpts{
		MaxAttempts: args.maxAttempts,
		UniqueOpts: river.UniqueOpts{
			ByArgs: true,
			ByState: []rivertype.JobState{
				rivertype.JobStateAvailable,
				rivertype.JobStatePending,
				rivertype.JobStateRunning,
				rivertype.JobStateRetryable,
				rivertype.JobStateScheduled,
			},
		},
	}
}
