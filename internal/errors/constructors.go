package errors

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *PackagerError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigInvalid(reason string, cause error) *PackagerError {
	return Wrap(cause, CategoryConfig, SeverityFatal, "invalid configuration").
		WithContext("reason", reason)
}

func ValidationFailed(field, reason string) *PackagerError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Filesystem errors

func CopyError(src, dst string, cause error) *PackagerError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "copy failed").
		WithContext("source", src).
		WithContext("dest", dst)
}

func CreateDirError(path string, cause error) *PackagerError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "directory creation failed").
		WithContext("path", path)
}

func CleanError(path string, cause error) *PackagerError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "output clean failed").
		WithContext("path", path)
}

// Artifact errors

func ExecutableMissing(path string, cause error) *PackagerError {
	return Wrap(cause, CategoryArtifact, SeverityFatal, "compiled executable not found").
		WithContext("path", path)
}

// History errors

func HistoryError(operation string, cause error) *PackagerError {
	return Wrap(cause, CategoryHistory, SeverityError, "run history operation failed").
		WithContext("operation", operation)
}

// Internal errors

func InternalError(message string, cause error) *PackagerError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
