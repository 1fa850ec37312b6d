package registry

const (
	// SeverityWarning indicates a recoverable discovery warning.
	SeverityWarning Severity = "warning"
	// SeverityError indicates a provider that was excluded from the snapshot.
	SeverityError Severity = "error"
)

// Diagnostic codes.
const (
	CodeInvalidManifest  = "invalid_manifest"
	CodeIncompatibleHost = "incompatible_host"
	CodeLoadFailed       = "provider_load_failed"
	CodeDuplicateTypeID  = "duplicate_type_id"
	CodeSourceUnreadable = "source_unreadable"
	CodeNoFileSignature  = "no_file_signature"
)

type (
	// Severity represents discovery diagnostic severity.
	Severity string

	// Diagnostic is a non-fatal discovery problem returned to callers
	// rather than written to stderr, so the CLI decides how to render it.
	Diagnostic struct {
		// Severity is the diagnostic level (warning or error).
		Severity Severity
		// Code is a machine-readable identifier (e.g., "duplicate_type_id").
		Code string
		// Message is the human-readable description.
		Message string
		// Path is the provider directory or manifest associated with this diagnostic.
		Path string
		// Cause is the underlying error, a *ProviderLoadError for skipped providers.
		Cause error
	}
)
