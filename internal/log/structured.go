package log

import (
	"context"
)

// StructuredLogger provides the domain-level log entries shared by the
// record services
type StructuredLogger struct {
	logger *Logger
}

// NewStructuredLogger creates a new structured logger
func NewStructuredLogger(logger *Logger) *StructuredLogger {
	if logger == nil {
		logger = Discard()
	}
	return &StructuredLogger{
		logger: logger,
	}
}

// LogRecordChanged logs a successful create, update or delete
func (sl *StructuredLogger) LogRecordChanged(ctx context.Context, kind string, id any, operation string, fields LogFields) {
	if fields == nil {
		fields = NewFields()
	}
	all := fields.
		WithRecord(kind, id).
		WithOperation(operation)

	sl.logger.InfoContext(ctx, "Record "+operation+"d", all.ToSlice()...)
}

// LogQuery logs a read-only operation at debug level
func (sl *StructuredLogger) LogQuery(ctx context.Context, kind string, operation string, results int, fields LogFields) {
	if fields == nil {
		fields = NewFields()
	}
	all := fields.
		With(FieldRecordKind, kind).
		With(FieldResults, results).
		WithOperation(operation)

	sl.logger.DebugContext(ctx, "Records queried", all.ToSlice()...)
}

// LogError logs an error with structured context
func (sl *StructuredLogger) LogError(ctx context.Context, msg string, err error, errorType string, operation string, fields LogFields) {
	if fields == nil {
		fields = NewFields()
	}
	all := fields.
		WithError(err).
		WithErrorType(errorType).
		WithOperation(operation)

	sl.logger.ErrorContext(ctx, msg, all.ToSlice()...)
}

// LogMiss logs an expected user-facing failure, such as an unknown id or
// status, at debug level
func (sl *StructuredLogger) LogMiss(ctx context.Context, msg string, err error, errorType string, operation string, fields LogFields) {
	if fields == nil {
		fields = NewFields()
	}
	all := fields.
		WithError(err).
		WithErrorType(errorType).
		WithOperation(operation)

	sl.logger.DebugContext(ctx, msg, all.ToSlice()...)
}

// LogWarn logs a recoverable failure, such as an exhausted id pool
func (sl *StructuredLogger) LogWarn(ctx context.Context, msg string, err error, errorType string, operation string, fields LogFields) {
	if fields == nil {
		fields = NewFields()
	}
	all := fields.
		WithError(err).
		WithErrorType(errorType).
		WithOperation(operation)

	sl.logger.WarnContext(ctx, msg, all.ToSlice()...)
}
