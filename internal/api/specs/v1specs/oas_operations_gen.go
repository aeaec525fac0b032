// Code generated by ogen, DO NOT EDIT.

package v1specs

// OperationName is the ogen operation name
type OperationName = string

const (
	AddExceptionOperation      OperationName = "AddException"
	AddUnfollowedOperation     OperationName = "AddUnfollowed"
	ClearUnfollowedOperation   OperationName = "ClearUnfollowed"
	EnqueueScanOperation       OperationName = "EnqueueScan"
	GetOptionsOperation        OperationName = "GetOptions"
	GetScanOperation           OperationName = "GetScan"
	GetStateOperation          OperationName = "GetState"
	ListExceptionsOperation    OperationName = "ListExceptions"
	ListUnfollowedOperation    OperationName = "ListUnfollowed"
	RemoveExceptionOperation   OperationName = "RemoveException"
	RemoveUnfollowedOperation  OperationName = "RemoveUnfollowed"
	ReplaceExceptionsOperation OperationName = "ReplaceExceptions"
	ReplaceUnfollowedOperation OperationName = "ReplaceUnfollowed"
	RunScanOperation           OperationName = "RunScan"
	SetGuardOperation          OperationName = "SetGuard"
	ToggleUIOperation          OperationName = "ToggleUI"
	UpdateOptionsOperation     OperationName = "UpdateOptions"
)
