package model

// WebhookSource represents the platform a webhook came from.
type WebhookSource string

const (
	SourceLinear  WebhookSource = "linear"
	SourceTodoist WebhookSource = "todoist"
)

// Environment is the deployment environment name.
type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentProduction  Environment = "production"
)
