package metrics

import (
	"context"
	"time"

	"github.com/sprintertech/svm-spoke/store"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// StateReader reads the current spoke pool configuration and its fill records.
type StateReader interface {
	State() (*store.SpokeState, error)
	OpenFillStatuses() (map[store.FillStatus]int64, error)
}

type HostMetrics struct {
	startTimeGauge        metric.Int64ObservableGauge
	numberOfDepositsGauge metric.Int64ObservableGauge
	rootBundleIDGauge     metric.Int64ObservableGauge
	pausedGauge           metric.Int64ObservableGauge
	fillStatusesGauge     metric.Int64ObservableGauge
}

// NewHostMetrics initializes gauges of the host process and of the hosted program state.
// State gauges are not observed until the program is initialized.
func NewHostMetrics(ctx context.Context, meter metric.Meter, state StateReader, opts metric.MeasurementOption) (*HostMetrics, error) {
	startTime := time.Now().Unix()
	startTimeGauge, err := meter.Int64ObservableGauge(
		"spoke.StartTimeSeconds",
		metric.WithDescription("Start time of the spoke host"),
		metric.WithInt64Callback(func(ctx context.Context, result metric.Int64Observer) error {
			result.Observe(startTime, opts)
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}

	observeState := func(value func(s *store.SpokeState) int64) metric.Int64Callback {
		return func(ctx context.Context, result metric.Int64Observer) error {
			s, err := state.State()
			if err != nil {
				return nil
			}
			result.Observe(value(s), opts)
			return nil
		}
	}
	numberOfDepositsGauge, err := meter.Int64ObservableGauge(
		"spoke.NumberOfDeposits",
		metric.WithDescription("Deposit counter of the spoke pool"),
		metric.WithInt64Callback(observeState(func(s *store.SpokeState) int64 {
			return int64(s.NumberOfDeposits)
		})),
	)
	if err != nil {
		return nil, err
	}
	rootBundleIDGauge, err := meter.Int64ObservableGauge(
		"spoke.NextRootBundleId",
		metric.WithDescription("Id the next relayed root bundle receives"),
		metric.WithInt64Callback(observeState(func(s *store.SpokeState) int64 {
			return int64(s.RootBundleId)
		})),
	)
	if err != nil {
		return nil, err
	}
	pausedGauge, err := meter.Int64ObservableGauge(
		"spoke.Paused",
		metric.WithDescription("1 while deposits or fills are paused"),
		metric.WithInt64Callback(observeState(func(s *store.SpokeState) int64 {
			if s.PausedDeposits || s.PausedFills {
				return 1
			}
			return 0
		})),
	)
	if err != nil {
		return nil, err
	}

	fillStatusesGauge, err := meter.Int64ObservableGauge(
		"spoke.FillStatuses",
		metric.WithDescription("Fill records not yet closed, by status"),
		metric.WithInt64Callback(func(ctx context.Context, result metric.Int64Observer) error {
			counts, err := state.OpenFillStatuses()
			if err != nil {
				return nil
			}
			for status, count := range counts {
				result.Observe(count, opts, metric.WithAttributes(attribute.String("status", status.String())))
			}
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}

	return &HostMetrics{
		startTimeGauge:        startTimeGauge,
		numberOfDepositsGauge: numberOfDepositsGauge,
		rootBundleIDGauge:     rootBundleIDGauge,
		pausedGauge:           pausedGauge,
		fillStatusesGauge:     fillStatusesGauge,
	}, nil
}
