package jobs

import (
	"context"
	"log/slog"

	"deliverytracking/internal/core/application/usecases/queries"
	"deliverytracking/internal/core/domain/model/order"

	"github.com/robfig/cron/v3"
)

// DeliveryMonitorJob logs a dispatch overview once a minute: how many orders
// of each family are out for delivery and how many already have a driver
// position.
type DeliveryMonitorJob struct {
	handler queries.GetActiveDeliveriesQueryHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewDeliveryMonitorJob creates a monitor job backed by the active deliveries query.
func NewDeliveryMonitorJob(
	handler queries.GetActiveDeliveriesQueryHandler,
	logger *slog.Logger,
) *DeliveryMonitorJob {
	return &DeliveryMonitorJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "delivery_monitor_job"),
	}
}

// Start begins the monitor job to run every minute.
func (j *DeliveryMonitorJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()

		for _, orderType := range []order.Type{order.TypeNormal, order.TypeCustom} {
			j.report(ctx, orderType)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Delivery monitor job started (running every minute)")
	return nil
}

// Stop stops the monitor job.
func (j *DeliveryMonitorJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Delivery monitor job stopped")
}

func (j *DeliveryMonitorJob) report(ctx context.Context, orderType order.Type) {
	query, err := queries.NewGetActiveDeliveriesQuery(orderType)
	if err != nil {
		j.logger.ErrorContext(ctx, "Delivery monitor query construction failed", "error", err)
		return
	}

	deliveries, err := j.handler.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Delivery monitor query failed",
			"orderType", string(orderType), "error", err)
		return
	}

	withDriver := 0
	for _, delivery := range deliveries {
		if delivery.DriverLocation != nil {
			withDriver++
		}
	}

	j.logger.InfoContext(ctx, "Active deliveries",
		"orderType", string(orderType),
		"count", len(deliveries),
		"withDriverPosition", withDriver)
}
