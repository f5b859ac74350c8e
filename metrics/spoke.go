package metrics

import (
	"context"

	"github.com/sprintertech/svm-spoke/spoke"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type SpokeMetrics struct {
	fillsCounter             metric.Int64Counter
	slowFillRequestsCounter  metric.Int64Counter
	refundLeavesCounter      metric.Int64Counter
	refundClaimsCounter      metric.Int64Counter
	rootBundlesCounter       metric.Int64Counter
	depositsCounter          metric.Int64Counter
	sponsoredDepositsCounter metric.Int64Counter

	opts metric.MeasurementOption
}

// NewSpokeMetrics initializes counters of the committed spoke pool and periphery calls
func NewSpokeMetrics(ctx context.Context, meter metric.Meter, opts metric.MeasurementOption) (*SpokeMetrics, error) {
	fillsCounter, err := meter.Int64Counter(
		"spoke.Fills",
		metric.WithDescription("Relays filled, by fill type"),
	)
	if err != nil {
		return nil, err
	}
	slowFillRequestsCounter, err := meter.Int64Counter(
		"spoke.SlowFillRequests",
		metric.WithDescription("Slow fills requested"),
	)
	if err != nil {
		return nil, err
	}
	refundLeavesCounter, err := meter.Int64Counter(
		"spoke.RefundLeaves",
		metric.WithDescription("Relayer refund leaves executed"),
	)
	if err != nil {
		return nil, err
	}
	refundClaimsCounter, err := meter.Int64Counter(
		"spoke.RefundClaims",
		metric.WithDescription("Deferred relayer refunds claimed"),
	)
	if err != nil {
		return nil, err
	}
	rootBundlesCounter, err := meter.Int64Counter(
		"spoke.RootBundles",
		metric.WithDescription("Root bundles relayed"),
	)
	if err != nil {
		return nil, err
	}
	depositsCounter, err := meter.Int64Counter(
		"spoke.Deposits",
		metric.WithDescription("Deposits into the spoke pool"),
	)
	if err != nil {
		return nil, err
	}
	sponsoredDepositsCounter, err := meter.Int64Counter(
		"spoke.SponsoredDeposits",
		metric.WithDescription("Sponsored deposits burned through the periphery"),
	)
	if err != nil {
		return nil, err
	}

	return &SpokeMetrics{
		fillsCounter:             fillsCounter,
		slowFillRequestsCounter:  slowFillRequestsCounter,
		refundLeavesCounter:      refundLeavesCounter,
		refundClaimsCounter:      refundClaimsCounter,
		rootBundlesCounter:       rootBundlesCounter,
		depositsCounter:          depositsCounter,
		sponsoredDepositsCounter: sponsoredDepositsCounter,
		opts:                     opts,
	}, nil
}

func (m *SpokeMetrics) TrackFill(fillType spoke.FillType) {
	m.fillsCounter.Add(context.Background(), 1, m.opts, metric.WithAttributes(attribute.String("fillType", fillType.String())))
}

func (m *SpokeMetrics) TrackSlowFillRequest() {
	m.slowFillRequestsCounter.Add(context.Background(), 1, m.opts)
}

func (m *SpokeMetrics) TrackRefundLeaf(deferred bool) {
	m.refundLeavesCounter.Add(context.Background(), 1, m.opts, metric.WithAttributes(attribute.Bool("deferred", deferred)))
}

func (m *SpokeMetrics) TrackRefundClaim() {
	m.refundClaimsCounter.Add(context.Background(), 1, m.opts)
}

func (m *SpokeMetrics) TrackRootBundle() {
	m.rootBundlesCounter.Add(context.Background(), 1, m.opts)
}

func (m *SpokeMetrics) TrackDeposit() {
	m.depositsCounter.Add(context.Background(), 1, m.opts)
}

func (m *SpokeMetrics) TrackSponsoredDeposit() {
	m.sponsoredDepositsCounter.Add(context.Background(), 1, m.opts)
}
