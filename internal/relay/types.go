package relay

// Outcome describes what the relay did with an event.
type Outcome string

const (
	OutcomeCreated   Outcome = "created"
	OutcomeUpdated   Outcome = "updated"
	OutcomeCompleted Outcome = "completed"
	OutcomeUnlinked  Outcome = "unlinked"
	OutcomeIgnored   Outcome = "ignored"
)

// Options is the immutable relay configuration.
type Options struct {
	FinalStateID      string // Linear workflow state issues move to when their task completes
	AssigneeID        string // When set, only issues assigned to this Linear user get tasks
	CompletionComment string // Comment added to an issue completed from Todoist; empty disables
}

// --- UseCase Outputs ---

type RelayOutput struct {
	Outcome Outcome
	IssueID string
	TaskID  string
	Reason  string // Why the event was ignored
}

type BackfillOutput struct {
	Created int
	Skipped int
	Failed  int
}
