package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldOperation  = "operation"
	FieldError      = "error"
	FieldErrorType  = "error_type"
	FieldRecordKind = "record_kind"
	FieldRecordID   = "record_id"
	FieldStatus     = "status"
	FieldCategory   = "category"
	FieldKeyword    = "keyword"
	FieldResults    = "results"
	FieldAmount     = "amount"
	FieldRemaining  = "ids_remaining"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentTasks    = "tasks"
	ComponentExpenses = "expenses"
	ComponentShell    = "shell"
	ComponentAMQP     = "amqp"
	ComponentBackend  = "backend"
	ComponentConfig   = "config"
)

// Operations defines standard operation names
const (
	OpCreate   = "create"
	OpRead     = "read"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpSearch   = "search"
	OpFilter   = "filter"
	OpSummary  = "summary"
	OpPublish  = "publish"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)

// ErrorTypes defines standard error type categories
const (
	ErrorTypeValidation    = "validation_error"
	ErrorTypeConfiguration = "configuration_error"
	ErrorTypeNetwork       = "network_error"
	ErrorTypeNotFound      = "not_found_error"
	ErrorTypeExhausted     = "exhausted_error"
	ErrorTypeInternal      = "internal_error"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithErrorType adds the error category
func (f LogFields) WithErrorType(errorType string) LogFields {
	f[FieldErrorType] = errorType
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithRecord adds the kind and identifier of the record an entry is about
func (f LogFields) WithRecord(kind string, id any) LogFields {
	f[FieldRecordKind] = kind
	f[FieldRecordID] = id
	return f
}

// With adds an arbitrary field
func (f LogFields) With(key string, value any) LogFields {
	f[key] = value
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
