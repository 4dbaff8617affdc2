package main

// Exit codes shared by all commands.
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (runtime failure)
	ExitConfigError = 2 // Configuration error (missing config, invalid paths)
	ExitUsageError  = 3 // Invalid query parameters (e.g. both author and title)
	ExitQueryError  = 4 // Remote query error reported by the API
	ExitDataError   = 5 // Malformed record from the API
)
