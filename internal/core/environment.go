package core

import "strings"

// Environment is the deployment stage the storefront runs in.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

func (e Environment) String() string {
	return string(e)
}

// IsProduction reports whether verbose diagnostics should be suppressed.
func (e Environment) IsProduction() bool {
	return e == Production
}

// ParseEnvironment maps ENVIRONMENT values (case-insensitive, with the short
// aliases "dev", "stage", "test" and "prod") onto a known Environment.
// Anything unrecognised is treated as Development.
func ParseEnvironment(v string) Environment {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "production", "prod":
		return Production
	case "staging", "stage":
		return Staging
	case "testing", "test":
		return Testing
	default:
		return Development
	}
}
