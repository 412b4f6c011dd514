package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldFile       = "file"
	FieldFiles      = "files"
	FieldBaseDir    = "base_dir"
	FieldWorkingDir = "working_dir"
	FieldURL        = "url"

	// Configuration fields.
	FieldPager     = "pager"
	FieldColumns   = "columns"
	FieldLocalOnly = "local_only"
	FieldPaginate  = "paginate"

	// Resource fields.
	FieldBytes     = "bytes"
	FieldLimit     = "limit"
	FieldUserAgent = "user_agent"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
