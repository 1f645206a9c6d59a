package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"github.com/vovakirdan/gridiron/internal/core"
)

// TelemetryConfig controls how metrics are exported.
type TelemetryConfig struct {
	Enabled     bool
	ServiceName string
}

// Setup configures OpenTelemetry metrics with a Prometheus exporter.
// It returns a Recorder, the Prometheus HTTP handler, and a shutdown function.
func Setup(ctx context.Context, cfg TelemetryConfig) (*Recorder, http.Handler, func(context.Context) error, error) {
	if !cfg.Enabled {
		return NewRecorder(), nil, func(context.Context) error { return nil }, nil
	}

	if cfg.ServiceName == "" {
		cfg.ServiceName = "gridiron"
	}

	promReader, promHandler, err := prometheusComponents()
	if err != nil {
		return nil, nil, nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)),
	)
	if err != nil {
		return nil, nil, nil, err
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(promReader),
		sdkmetric.WithResource(res),
	)

	otelInst, err := newOtelInstruments(provider)
	if err != nil {
		return nil, nil, nil, err
	}

	rec := newRecorder(otelInst)
	shutdown := func(c context.Context) error {
		return provider.Shutdown(c)
	}

	return rec, promHandler, shutdown, nil
}

type otelInstruments struct {
	ctx            context.Context
	meter          metric.Meter
	plays          metric.Int64Counter
	scores         metric.Int64Counter
	points         metric.Int64Counter
	penalties      metric.Int64Counter
	games          metric.Int64Counter
	gameDurationMs metric.Float64Histogram
	gamePlays      metric.Float64Histogram
}

func prometheusComponents() (sdkmetric.Reader, http.Handler, error) {
	reg := prometheus.NewRegistry()
	promExp, err := promexporter.New(promexporter.WithRegisterer(reg))
	if err != nil {
		return nil, nil, err
	}
	return promExp, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), nil
}

func newOtelInstruments(provider metric.MeterProvider) (*otelInstruments, error) {
	meter := provider.Meter("gridiron")
	ctx := context.Background()

	plays, err := meter.Int64Counter("plays_total")
	if err != nil {
		return nil, err
	}
	scores, err := meter.Int64Counter("scores_total")
	if err != nil {
		return nil, err
	}
	points, err := meter.Int64Counter("points_total")
	if err != nil {
		return nil, err
	}
	penalties, err := meter.Int64Counter("penalties_total")
	if err != nil {
		return nil, err
	}
	games, err := meter.Int64Counter("games_total")
	if err != nil {
		return nil, err
	}
	gameDuration, err := meter.Float64Histogram("game_duration_ms")
	if err != nil {
		return nil, err
	}
	gamePlays, err := meter.Float64Histogram("game_plays")
	if err != nil {
		return nil, err
	}

	return &otelInstruments{
		ctx:            ctx,
		meter:          meter,
		plays:          plays,
		scores:         scores,
		points:         points,
		penalties:      penalties,
		games:          games,
		gameDurationMs: gameDuration,
		gamePlays:      gamePlays,
	}, nil
}

func (o *otelInstruments) recordPlay(res core.GameStateResult) {
	if o == nil {
		return
	}
	o.recordCounter(o.plays, 1, attribute.String(AttrKind, res.Kind.String()))
	if s := res.Score; s != nil {
		attr := attribute.String(AttrScore, s.Kind.String())
		o.recordCounter(o.scores, 1, attr)
		o.recordCounter(o.points, int64(s.Points), attr)
	}
	for _, p := range res.Penalties {
		o.recordCounter(o.penalties, 1,
			attribute.String(AttrPenalty, string(p.Type)),
			attribute.String(AttrPhase, p.Phase.String()),
		)
	}
}

func (o *otelInstruments) recordGame(duration time.Duration, plays int, err error) {
	if o == nil {
		return
	}
	outcome := "final"
	if err != nil {
		outcome = "halted"
	}
	attrs := []attribute.KeyValue{attribute.String(AttrOutcome, outcome)}
	o.recordCounter(o.games, 1, attrs...)
	o.recordHistogram(o.gameDurationMs, float64(duration.Milliseconds()), attrs...)
	o.recordHistogram(o.gamePlays, float64(plays), attrs...)
}

func (o *otelInstruments) recordCounter(counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if o == nil {
		return
	}
	counter.Add(o.ctx, value, metric.WithAttributes(attrs...))
}

func (o *otelInstruments) recordHistogram(hist metric.Float64Histogram, value float64, attrs ...attribute.KeyValue) {
	if o == nil {
		return
	}
	hist.Record(o.ctx, value, metric.WithAttributes(attrs...))
}
