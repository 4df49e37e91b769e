package model

// Environment names the runtime environment.
type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentProduction  Environment = "production"
)

// Scope carries per-invocation identity through the use case layer.
type Scope struct {
	DeliveryID string // X-GitHub-Delivery header, or a generated id
}
