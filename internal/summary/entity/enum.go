package entity

type DiagnosticKind string

const (
	DiagnosticInvalidFormat DiagnosticKind = "INVALID_FORMAT"
	DiagnosticReadFailed    DiagnosticKind = "READ_FAILED"
	DiagnosticInvalidJSON   DiagnosticKind = "INVALID_JSON"
	DiagnosticNotAnArray    DiagnosticKind = "NOT_AN_ARRAY"
	DiagnosticNoValidUsers  DiagnosticKind = "NO_VALID_USERS"
)

type FileStatus string

const (
	FileStatusOK       FileStatus = "OK"
	FileStatusRejected FileStatus = "REJECTED"
	FileStatusFailed   FileStatus = "FAILED"
)

type RunOutcome string

const (
	RunOutcomeSuccess RunOutcome = "SUCCESS"
	RunOutcomeNoData  RunOutcome = "NO_DATA"
	RunOutcomeFailed  RunOutcome = "FAILED"
)
