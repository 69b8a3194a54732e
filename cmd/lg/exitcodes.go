package main

// Exit codes reported by all lg commands.
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (not in a workspace, invalid paths)
	ExitDataError   = 3 // Data error (unreadable PDF, malformed record)
)
