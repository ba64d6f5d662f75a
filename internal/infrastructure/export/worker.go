package export

import (
	"context"

	domledger "github.com/dokonbot/dokonbot/internal/domain/ledger"
	domoutbox "github.com/dokonbot/dokonbot/internal/domain/outbox"
	"github.com/dokonbot/dokonbot/internal/observability"
	"github.com/dokonbot/dokonbot/internal/pkg/logging"
	"go.uber.org/zap"
)

// Worker mirrors committed assignments to the export target. It consumes
// AssignmentRecorded events off the bus, so the actor's commit path never
// waits on the target. Failures are logged and counted, never surfaced.
type Worker struct {
	subscriber domoutbox.Subscriber
	exporter   Exporter
	failures   observability.Counter
}

func NewWorker(subscriber domoutbox.Subscriber, exporter Exporter, failures observability.Counter) *Worker {
	if failures == nil {
		failures = observability.NopCounter()
	}
	return &Worker{
		subscriber: subscriber,
		exporter:   exporter,
		failures:   failures,
	}
}

func (w *Worker) Start() {
	w.subscriber.Subscribe(domledger.AssignmentRecordedEvent{}.EventName(), w.handleAssignmentRecorded)
}

func (w *Worker) handleAssignmentRecorded(ctx context.Context, e domoutbox.Event) error {
	logger := logging.FromContext(ctx).With(zap.String("component", "export_worker"))
	evt, ok := e.(domledger.AssignmentRecordedEvent)
	if !ok {
		return nil
	}

	row := Row{
		Timestamp:   evt.OccurredAt,
		SellerName:  evt.SellerName,
		ProductName: evt.ProductName,
		Quantity:    evt.Quantity,
		UnitPrice:   evt.UnitPrice,
		TotalCost:   evt.TotalCost,
		Note:        RowNote,
	}
	if err := w.exporter.Append(ctx, row); err != nil {
		w.failures.Add(1)
		logger.Warn("export_append_failed",
			zap.String("assignment_id", evt.AssignmentID),
			zap.Error(err),
		)
		return err
	}

	logger.Info("export_append_succeeded", zap.String("assignment_id", evt.AssignmentID))
	return nil
}
