package logger

// Standard field names for structured logging across botgen.
const (
	FieldRunID     = "run_id"
	FieldComponent = "component"
	FieldFile      = "file"
	FieldOutput    = "output"
	FieldNodeID    = "node_id"
	FieldNodeType  = "node_type"
	FieldCount     = "count"
	FieldBytes     = "bytes"
	FieldError     = "error"

	FieldDurationMS = "duration_ms"
)
