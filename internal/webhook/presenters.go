package webhook

import "issue-task-relay/internal/relay"

type relayResp struct {
	Status  string `json:"status"`
	Outcome string `json:"outcome"`
	IssueID string `json:"issue_id,omitempty"`
	TaskID  string `json:"task_id,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

func newRelayResp(o relay.RelayOutput) relayResp {
	return relayResp{
		Status:  "processed",
		Outcome: string(o.Outcome),
		IssueID: o.IssueID,
		TaskID:  o.TaskID,
		Reason:  o.Reason,
	}
}
