package logging

// Standardized field names for structured logging.
// These constants keep the log output consistent across packages.
const (
	FieldFile      = "file_path"
	FieldSection   = "section"
	FieldKey       = "source_key"
	FieldCategory  = "category"
	FieldAccount   = "account"
	FieldReason    = "reason"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldCount     = "count"
	FieldDropped   = "dropped"
	FieldRow       = "row"
	FieldLoadID    = "load_id"
	FieldDelimiter = "delimiter"
	FieldOutput    = "output_file"
)
