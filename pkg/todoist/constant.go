package todoist

const (
	DefaultBaseURL = "https://api.todoist.com/rest/v2"
)
