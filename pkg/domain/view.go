package domain

// FollowControl is a follow button rendered somewhere in a view.
type FollowControl interface {
	// Username returns the account the control acts on when the control sits
	// inside a row that names one. Page-level controls return false and act
	// on the page owner.
	Username() (Username, bool)
	Blocked() bool
	SetBlocked(blocked bool) error
}

// View is a rendered page the follow guard reconciles.
type View interface {
	// Owner returns the account whose profile the page shows, if any.
	Owner() (Username, bool)
	// OwnerControl returns the page-level follow control or nil.
	OwnerControl() (FollowControl, error)
	// RowControls returns the follow controls of every listed account.
	RowControls() ([]FollowControl, error)
}

// Click is a user activation dispatched in a view.
type Click interface {
	// FollowControl resolves the click target to a follow control by walking
	// at most maxDepth ancestors. It returns nil when the click did not land
	// on a follow control.
	FollowControl(maxDepth int) FollowControl
	PreventDefault()
	StopPropagation()
}
