// Package services provides the record operations the shell calls into.
//
// Services own a record store each, log every mutation and, when a
// publisher is configured, announce it as a change event. Publishing is best
// effort: the local change has already happened when the event goes out.
package services

import (
	"context"

	"tracker/internal/amqp"
	applog "tracker/internal/log"
)

// ChangePublisher sends record change events to subscribers.
type ChangePublisher interface {
	PublishRecordChange(ctx context.Context, msg *amqp.RecordChangeMessage) error
}

// notifier bundles logging and publishing for one record kind.
type notifier struct {
	kind      string
	publisher ChangePublisher
	log       *applog.StructuredLogger
}

func newNotifier(kind string, publisher ChangePublisher, logger *applog.Logger) notifier {
	return notifier{
		kind:      kind,
		publisher: publisher,
		log:       applog.NewStructuredLogger(logger),
	}
}

func (n notifier) changed(ctx context.Context, recordID string, operation string, fields applog.LogFields) {
	n.log.LogRecordChanged(ctx, n.kind, recordID, operation, fields)

	if n.publisher == nil {
		return
	}
	msg := amqp.NewRecordChangeMessage(n.kind, recordID, operation)
	if err := n.publisher.PublishRecordChange(ctx, msg); err != nil {
		n.log.LogError(ctx, "Failed to publish record change", err, applog.ErrorTypeNetwork, applog.OpPublish,
			applog.NewFields().WithRecord(n.kind, recordID).With("message_id", msg.ID))
	}
}

func (n notifier) failed(ctx context.Context, msg string, err error, errorType, operation string, fields applog.LogFields) {
	if fields == nil {
		fields = applog.NewFields()
	}
	fields = fields.With(applog.FieldRecordKind, n.kind)
	switch errorType {
	case applog.ErrorTypeNotFound, applog.ErrorTypeValidation:
		// The shell already tells the user.
		n.log.LogMiss(ctx, msg, err, errorType, operation, fields)
	default:
		n.log.LogWarn(ctx, msg, err, errorType, operation, fields)
	}
}

func (n notifier) queried(ctx context.Context, operation string, results int, fields applog.LogFields) {
	n.log.LogQuery(ctx, n.kind, operation, results, fields)
}
