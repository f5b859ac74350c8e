package metrics

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type SvmSpokeMetrics struct {
	*HostMetrics
	*SpokeMetrics
}

// NewSvmSpokeMetrics creates an instance of metrics used by the spoke host. Every
// measurement carries the env, relayer id and version attributes.
func NewSvmSpokeMetrics(ctx context.Context, meter metric.Meter, state StateReader, env, relayerID, version string) (*SvmSpokeMetrics, error) {
	opts := metric.WithAttributes(
		attribute.String("relayerid", relayerID),
		attribute.String("env", env),
		attribute.String("version", version),
	)

	hostMetrics, err := NewHostMetrics(ctx, meter, state, opts)
	if err != nil {
		return nil, err
	}
	spokeMetrics, err := NewSpokeMetrics(ctx, meter, opts)
	if err != nil {
		return nil, err
	}

	return &SvmSpokeMetrics{
		HostMetrics:  hostMetrics,
		SpokeMetrics: spokeMetrics,
	}, nil
}
