// Code generated by ogen, DO NOT EDIT.

package v1specs

import (
	"fmt"
	"time"
)

func (s *ErrorStatusCode) Error() string {
	return fmt.Sprintf("code %d: %+v", s.StatusCode, s.Response)
}

type BearerAuth struct {
	Token string
	Roles []string
}

// GetToken returns the value of Token.
func (s *BearerAuth) GetToken() string {
	return s.Token
}

// GetRoles returns the value of Roles.
func (s *BearerAuth) GetRoles() []string {
	return s.Roles
}

// SetToken sets the value of Token.
func (s *BearerAuth) SetToken(val string) {
	s.Token = val
}

// SetRoles sets the value of Roles.
func (s *BearerAuth) SetRoles(val []string) {
	s.Roles = val
}

// Ref: #/components/schemas/Error
type Error struct {
	// NOT_FOUND, BAD_REQUEST, UNAUTHORIZED, FORBIDDEN, CONFLICT, TIMEOUT, UNAVAILABLE, RATE_LIMITED or
	// INTERNAL.
	Code    string `json:"code"`
	Message string `json:"message"`
}

// GetCode returns the value of Code.
func (s *Error) GetCode() string {
	return s.Code
}

// GetMessage returns the value of Message.
func (s *Error) GetMessage() string {
	return s.Message
}

// SetCode sets the value of Code.
func (s *Error) SetCode(val string) {
	s.Code = val
}

// SetMessage sets the value of Message.
func (s *Error) SetMessage(val string) {
	s.Message = val
}

// ErrorStatusCode wraps Error with StatusCode.
type ErrorStatusCode struct {
	StatusCode int
	Response   Error
}

// GetStatusCode returns the value of StatusCode.
func (s *ErrorStatusCode) GetStatusCode() int {
	return s.StatusCode
}

// GetResponse returns the value of Response.
func (s *ErrorStatusCode) GetResponse() Error {
	return s.Response
}

// SetStatusCode sets the value of StatusCode.
func (s *ErrorStatusCode) SetStatusCode(val int) {
	s.StatusCode = val
}

// SetResponse sets the value of Response.
func (s *ErrorStatusCode) SetResponse(val Error) {
	s.Response = val
}

// Ref: #/components/schemas/Guard
type Guard struct {
	Enabled bool `json:"enabled"`
}

// GetEnabled returns the value of Enabled.
func (s *Guard) GetEnabled() bool {
	return s.Enabled
}

// SetEnabled sets the value of Enabled.
func (s *Guard) SetEnabled(val bool) {
	s.Enabled = val
}

// NewOptBool returns new OptBool with value set to v.
func NewOptBool(v bool) OptBool {
	return OptBool{
		Value: v,
		Set:   true,
	}
}

// OptBool is optional bool.
type OptBool struct {
	Value bool
	Set   bool
}

// IsSet returns true if OptBool was set.
func (o OptBool) IsSet() bool { return o.Set }

// Reset unsets value.
func (o *OptBool) Reset() {
	var v bool
	o.Value = v
	o.Set = false
}

// SetTo sets value to v.
func (o *OptBool) SetTo(v bool) {
	o.Set = true
	o.Value = v
}

// Get returns value and boolean that denotes whether value was set.
func (o OptBool) Get() (v bool, ok bool) {
	if !o.Set {
		return v, false
	}
	return o.Value, true
}

// Or returns value if set, or given parameter if does not.
func (o OptBool) Or(d bool) bool {
	if v, ok := o.Get(); ok {
		return v
	}
	return d
}

// NewOptInt returns new OptInt with value set to v.
func NewOptInt(v int) OptInt {
	return OptInt{
		Value: v,
		Set:   true,
	}
}

// OptInt is optional int.
type OptInt struct {
	Value int
	Set   bool
}

// IsSet returns true if OptInt was set.
func (o OptInt) IsSet() bool { return o.Set }

// Reset unsets value.
func (o *OptInt) Reset() {
	var v int
	o.Value = v
	o.Set = false
}

// SetTo sets value to v.
func (o *OptInt) SetTo(v int) {
	o.Set = true
	o.Value = v
}

// Get returns value and boolean that denotes whether value was set.
func (o OptInt) Get() (v int, ok bool) {
	if !o.Set {
		return v, false
	}
	return o.Value, true
}

// Or returns value if set, or given parameter if does not.
func (o OptInt) Or(d int) int {
	if v, ok := o.Get(); ok {
		return v
	}
	return d
}

// Ref: #/components/schemas/Options
type Options struct {
	BlockReFollow bool `json:"blockReFollow"`
	Concurrency   int  `json:"concurrency"`
	ScanTimeoutMs int  `json:"scanTimeoutMs"`
	ClickDelayMs  int  `json:"clickDelayMs"`
}

// GetBlockReFollow returns the value of BlockReFollow.
func (s *Options) GetBlockReFollow() bool {
	return s.BlockReFollow
}

// GetConcurrency returns the value of Concurrency.
func (s *Options) GetConcurrency() int {
	return s.Concurrency
}

// GetScanTimeoutMs returns the value of ScanTimeoutMs.
func (s *Options) GetScanTimeoutMs() int {
	return s.ScanTimeoutMs
}

// GetClickDelayMs returns the value of ClickDelayMs.
func (s *Options) GetClickDelayMs() int {
	return s.ClickDelayMs
}

// SetBlockReFollow sets the value of BlockReFollow.
func (s *Options) SetBlockReFollow(val bool) {
	s.BlockReFollow = val
}

// SetConcurrency sets the value of Concurrency.
func (s *Options) SetConcurrency(val int) {
	s.Concurrency = val
}

// SetScanTimeoutMs sets the value of ScanTimeoutMs.
func (s *Options) SetScanTimeoutMs(val int) {
	s.ScanTimeoutMs = val
}

// SetClickDelayMs sets the value of ClickDelayMs.
func (s *Options) SetClickDelayMs(val int) {
	s.ClickDelayMs = val
}

// Ref: #/components/schemas/OptionsUpdate
type OptionsUpdate struct {
	BlockReFollow OptBool `json:"blockReFollow"`
	Concurrency   OptInt  `json:"concurrency"`
	ScanTimeoutMs OptInt  `json:"scanTimeoutMs"`
	ClickDelayMs  OptInt  `json:"clickDelayMs"`
}

// GetBlockReFollow returns the value of BlockReFollow.
func (s *OptionsUpdate) GetBlockReFollow() OptBool {
	return s.BlockReFollow
}

// GetConcurrency returns the value of Concurrency.
func (s *OptionsUpdate) GetConcurrency() OptInt {
	return s.Concurrency
}

// GetScanTimeoutMs returns the value of ScanTimeoutMs.
func (s *OptionsUpdate) GetScanTimeoutMs() OptInt {
	return s.ScanTimeoutMs
}

// GetClickDelayMs returns the value of ClickDelayMs.
func (s *OptionsUpdate) GetClickDelayMs() OptInt {
	return s.ClickDelayMs
}

// SetBlockReFollow sets the value of BlockReFollow.
func (s *OptionsUpdate) SetBlockReFollow(val OptBool) {
	s.BlockReFollow = val
}

// SetConcurrency sets the value of Concurrency.
func (s *OptionsUpdate) SetConcurrency(val OptInt) {
	s.Concurrency = val
}

// SetScanTimeoutMs sets the value of ScanTimeoutMs.
func (s *OptionsUpdate) SetScanTimeoutMs(val OptInt) {
	s.ScanTimeoutMs = val
}

// SetClickDelayMs sets the value of ClickDelayMs.
func (s *OptionsUpdate) SetClickDelayMs(val OptInt) {
	s.ClickDelayMs = val
}

// Ref: #/components/schemas/ScanJob
type ScanJob struct {
	ID int64 `json:"id"`
}

// GetID returns the value of ID.
func (s *ScanJob) GetID() int64 {
	return s.ID
}

// SetID sets the value of ID.
func (s *ScanJob) SetID(val int64) {
	s.ID = val
}

// Ref: #/components/schemas/ScanResult
type ScanResult struct {
	Followers []string `json:"followers"`
	Following []string `json:"following"`
	// Followers the account does not follow.
	Fans []string `json:"fans"`
	// Followed accounts that do not follow back.
	DontFollowBack []string `json:"dontFollowBack"`
	// DontFollowBack at scan time.
	CandidatesToUnfollow []string `json:"candidatesToUnfollow"`
	// Candidates minus the current exceptions.
	FilteredCandidates []string  `json:"filteredCandidates"`
	ScannedAt          time.Time `json:"scannedAt"`
}

// GetFollowers returns the value of Followers.
func (s *ScanResult) GetFollowers() []string {
	return s.Followers
}

// GetFollowing returns the value of Following.
func (s *ScanResult) GetFollowing() []string {
	return s.Following
}

// GetFans returns the value of Fans.
func (s *ScanResult) GetFans() []string {
	return s.Fans
}

// GetDontFollowBack returns the value of DontFollowBack.
func (s *ScanResult) GetDontFollowBack() []string {
	return s.DontFollowBack
}

// GetCandidatesToUnfollow returns the value of CandidatesToUnfollow.
func (s *ScanResult) GetCandidatesToUnfollow() []string {
	return s.CandidatesToUnfollow
}

// GetFilteredCandidates returns the value of FilteredCandidates.
func (s *ScanResult) GetFilteredCandidates() []string {
	return s.FilteredCandidates
}

// GetScannedAt returns the value of ScannedAt.
func (s *ScanResult) GetScannedAt() time.Time {
	return s.ScannedAt
}

// SetFollowers sets the value of Followers.
func (s *ScanResult) SetFollowers(val []string) {
	s.Followers = val
}

// SetFollowing sets the value of Following.
func (s *ScanResult) SetFollowing(val []string) {
	s.Following = val
}

// SetFans sets the value of Fans.
func (s *ScanResult) SetFans(val []string) {
	s.Fans = val
}

// SetDontFollowBack sets the value of DontFollowBack.
func (s *ScanResult) SetDontFollowBack(val []string) {
	s.DontFollowBack = val
}

// SetCandidatesToUnfollow sets the value of CandidatesToUnfollow.
func (s *ScanResult) SetCandidatesToUnfollow(val []string) {
	s.CandidatesToUnfollow = val
}

// SetFilteredCandidates sets the value of FilteredCandidates.
func (s *ScanResult) SetFilteredCandidates(val []string) {
	s.FilteredCandidates = val
}

// SetScannedAt sets the value of ScannedAt.
func (s *ScanResult) SetScannedAt(val time.Time) {
	s.ScannedAt = val
}

// Ref: #/components/schemas/State
type State struct {
	Account     string  `json:"account"`
	Exceptions  int     `json:"exceptions"`
	Unfollowed  int     `json:"unfollowed"`
	Options     Options `json:"options"`
	SurfaceOpen bool    `json:"surfaceOpen"`
	Running     bool    `json:"running"`
	Scanned     bool    `json:"scanned"`
}

// GetAccount returns the value of Account.
func (s *State) GetAccount() string {
	return s.Account
}

// GetExceptions returns the value of Exceptions.
func (s *State) GetExceptions() int {
	return s.Exceptions
}

// GetUnfollowed returns the value of Unfollowed.
func (s *State) GetUnfollowed() int {
	return s.Unfollowed
}

// GetOptions returns the value of Options.
func (s *State) GetOptions() Options {
	return s.Options
}

// GetSurfaceOpen returns the value of SurfaceOpen.
func (s *State) GetSurfaceOpen() bool {
	return s.SurfaceOpen
}

// GetRunning returns the value of Running.
func (s *State) GetRunning() bool {
	return s.Running
}

// GetScanned returns the value of Scanned.
func (s *State) GetScanned() bool {
	return s.Scanned
}

// SetAccount sets the value of Account.
func (s *State) SetAccount(val string) {
	s.Account = val
}

// SetExceptions sets the value of Exceptions.
func (s *State) SetExceptions(val int) {
	s.Exceptions = val
}

// SetUnfollowed sets the value of Unfollowed.
func (s *State) SetUnfollowed(val int) {
	s.Unfollowed = val
}

// SetOptions sets the value of Options.
func (s *State) SetOptions(val Options) {
	s.Options = val
}

// SetSurfaceOpen sets the value of SurfaceOpen.
func (s *State) SetSurfaceOpen(val bool) {
	s.SurfaceOpen = val
}

// SetRunning sets the value of Running.
func (s *State) SetRunning(val bool) {
	s.Running = val
}

// SetScanned sets the value of Scanned.
func (s *State) SetScanned(val bool) {
	s.Scanned = val
}

// Ref: #/components/schemas/Surface
type Surface struct {
	Open bool `json:"open"`
}

// GetOpen returns the value of Open.
func (s *Surface) GetOpen() bool {
	return s.Open
}

// SetOpen sets the value of Open.
func (s *Surface) SetOpen(val bool) {
	s.Open = val
}

// Ref: #/components/schemas/UserList
type UserList struct {
	Users []string `json:"users"`
}

// GetUsers returns the value of Users.
func (s *UserList) GetUsers() []string {
	return s.Users
}

// SetUsers sets the value of Users.
func (s *UserList) SetUsers(val []string) {
	s.Users = val
}

// Ref: #/components/schemas/UserRef
type UserRef struct {
	User string `json:"user"`
}

// GetUser returns the value of User.
func (s *UserRef) GetUser() string {
	return s.User
}

// SetUser sets the value of User.
func (s *UserRef) SetUser(val string) {
	s.User = val
}
