package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Session fields.
	FieldMode    = "mode"
	FieldCharset = "charset"
	FieldFormat  = "format"
	FieldJobs    = "jobs"
	FieldDetect  = "detect"

	// Parse fields.
	FieldOffset = "offset"
	FieldKind   = "kind"
	FieldName   = "name"
	FieldDepth  = "depth"
	FieldLength = "length"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesParsed     = "files_parsed"
	FieldFilesFailed     = "files_failed"
	FieldEvents          = "events"
	FieldElapsed         = "elapsed"

	// Version fields.
	FieldVersion  = "version"
	FieldCommit   = "commit"
	FieldBuilt    = "built"
	FieldGo       = "go"
	FieldPlatform = "platform"
)
