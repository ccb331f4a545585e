package main

// Exit codes reported by sv commands
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (bad config file, missing roster)
	ExitDataError   = 3 // Data error (empty roster, malformed CSV, store failure)
	ExitBlocked     = 4 // Run aborted by a Scholar anti-automation block
)
