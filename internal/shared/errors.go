package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Session errors
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
	ErrSessionStore     = fmt.Errorf("session store failure")

	// API errors. Every non-2xx response collapses into ErrRequestRejected
	// regardless of status; callers that need the code for logging read it
	// from the wrapped message.
	ErrAPIRequest      = fmt.Errorf("API request failed")
	ErrRequestRejected = fmt.Errorf("request rejected")
	ErrParse           = fmt.Errorf("malformed response body")
	ErrMovieNotFound   = fmt.Errorf("movie not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
