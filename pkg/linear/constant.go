package linear

const (
	DefaultEndpoint = "https://api.linear.app/graphql"

	myIssuesQuery = `{ issues { nodes { id title } } }`

	assignedIssuesQuery = `
      query AssignedIssues($assigneeId: ID!) {
        issues(filter: { assignee: { id: { eq: $assigneeId } } }) {
          nodes { id title assignee { id } }
        }
      }
    `

	issueUpdateMutation = `
      mutation IssueUpdate($id: String!, $stateId: String!) {
        issueUpdate(id: $id, input: { stateId: $stateId }) {
          success
        }
      }
    `

	commentCreateMutation = `
      mutation CommentCreate($issueId: String!, $body: String!) {
        commentCreate(input: { body: $body, issueId: $issueId }) {
          success
        }
      }
    `
)
