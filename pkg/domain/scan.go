package domain

import "time"

// Relation selects one of the two social listings of an account.
type Relation string

const (
	// RelationFollowers lists the accounts following the user.
	RelationFollowers Relation = "followers"
	// RelationFollowing lists the accounts the user follows.
	RelationFollowing Relation = "following"
)

// ScanResult is the outcome of one scan of the logged-in account. It lives in
// memory only and is replaced by the next scan.
type ScanResult struct {
	Followers []Username `json:"followers"`
	Following []Username `json:"following"`
	// Fans follow the user without being followed back.
	Fans []Username `json:"fans"`
	// DontFollowBack are followed by the user but do not follow back.
	DontFollowBack []Username `json:"dontFollowBack"`
	// CandidatesToUnfollow equals DontFollowBack.
	CandidatesToUnfollow []Username `json:"candidatesToUnfollow"`
	// FilteredCandidates are the candidates minus the exception set; this is
	// what an unfollow run processes.
	FilteredCandidates []Username `json:"filteredCandidates"`

	ScannedAt time.Time `json:"scannedAt"`
}

// Progress is reported after every processed unfollow target. Counters are
// cumulative.
type Progress struct {
	Done      int      `json:"done"`
	Total     int      `json:"total"`
	Succeeded int      `json:"succeeded"`
	Failed    int      `json:"failed"`
	Current   Username `json:"current"`
}

// UnfollowResult summarizes a finished unfollow run.
type UnfollowResult struct {
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}
