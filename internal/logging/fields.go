package logging

// Field names for structured log entries.
const (
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	FieldLevel  = "language_level"
	FieldJobs   = "jobs"
	FieldFormat = "format"

	FieldFilesDiscovered  = "files_discovered"
	FieldFilesProcessed   = "files_processed"
	FieldTokensTotal      = "tokens_total"
	FieldDiagnosticsTotal = "diagnostics_total"
	FieldDocComments      = "doc_comments"

	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
