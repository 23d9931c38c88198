package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Authentication errors
	ErrAuthFailed = fmt.Errorf("authentication failed")

	// API and service errors
	ErrAPIRequest = fmt.Errorf("API request failed")

	// Input validation errors
	ErrMissingArgument = fmt.Errorf("missing required argument")
)
