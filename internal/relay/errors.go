package relay

import "errors"

var (
	ErrIssueUpdateRejected = errors.New("linear rejected the issue update")
	ErrFinalStateMissing   = errors.New("final state ID is not configured")
)
