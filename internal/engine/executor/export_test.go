package executor

// Exported for testing.
var (
	ErrPathNotFound = errPathNotFound
	ErrRemoveFailed = errRemoveFailed
)
