package batch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var customersTotal = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "customers_total",
	Help: "Number of stored customers at the last stats refresh.",
})

// CustomerCounter is implemented by both customer repositories.
type CustomerCounter interface {
	Count(ctx context.Context) (int64, error)
}

type CustomerStatsJob struct {
	counter CustomerCounter
	gauge   prometheus.Gauge
	logger  *slog.Logger
}

func NewCustomerStatsJob(counter CustomerCounter, logger *slog.Logger) *CustomerStatsJob {
	if counter == nil || logger == nil {
		panic("CustomerStatsJob dependencies cannot be nil")
	}
	return &CustomerStatsJob{
		counter: counter,
		gauge:   customersTotal,
		logger:  logger.With("job", "CustomerStats"),
	}
}

// Run refreshes the customers_total gauge. On failure the previous value is
// left in place.
func (j *CustomerStatsJob) Run(ctx context.Context) error {
	startTime := time.Now()
	j.logger.DebugContext(ctx, "Starting customer stats refresh.")

	count, err := j.counter.Count(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to count customers, keeping previous gauge value.", slog.Any("error", err))
		return fmt.Errorf("cannot refresh customer stats: %w", err)
	}

	j.gauge.Set(float64(count))
	j.logger.InfoContext(ctx, "Customer stats refreshed.",
		slog.Int64("customers", count),
		slog.Duration("duration", time.Since(startTime)),
	)
	return nil
}
