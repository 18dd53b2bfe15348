package main

// Exit codes. Individual document failures never fail the batch; the
// codes below reflect batch-level problems only.
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (bad store name, unwritable paths)
	ExitDataError   = 3 // Data error (directory missing, store unreachable)
)
