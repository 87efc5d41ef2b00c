package infra

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/tnqbao/gau-bucketlist-service/config"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/trace"
)

type ctxKey string

// RequestIDKey carries the per-request correlation id set by the
// request-id middleware.
const RequestIDKey ctxKey = "request_id"

type LoggerClient struct {
	logger   *slog.Logger
	provider *sdklog.LoggerProvider
}

// InitLoggerClient builds the service logger. With GRAFANA_OTLP_ENDPOINT
// configured, records are shipped over OTLP/HTTP via the otelslog
// bridge; otherwise they go to stdout as JSON.
func InitLoggerClient(cfg *config.EnvConfig) *LoggerClient {
	if cfg.Grafana.OTLPEndpoint == "" {
		return &LoggerClient{logger: slog.New(slog.NewJSONHandler(os.Stdout, nil))}
	}

	exporter, err := otlploghttp.New(context.Background(),
		otlploghttp.WithEndpoint(cfg.Grafana.OTLPEndpoint),
		otlploghttp.WithURLPath("/otlp/v1/logs"),
	)
	if err != nil {
		log.Printf("Warning: OTLP log exporter unavailable, logging to stdout: %v", err)
		return &LoggerClient{logger: slog.New(slog.NewJSONHandler(os.Stdout, nil))}
	}

	provider := sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewBatchProcessor(exporter)),
	)

	return &LoggerClient{
		logger:   otelslog.NewLogger(cfg.Grafana.ServiceName, otelslog.WithLoggerProvider(provider)),
		provider: provider,
	}
}

// NewStdoutLogger returns a plain stdout logger, used by tests and
// tooling that run without configuration.
func NewStdoutLogger() *LoggerClient {
	return &LoggerClient{logger: slog.New(slog.NewJSONHandler(os.Stdout, nil))}
}

func (l *LoggerClient) withContext(ctx context.Context) *slog.Logger {
	logger := l.logger
	if span := trace.SpanContextFromContext(ctx); span.IsValid() {
		logger = logger.With("trace_id", span.TraceID().String(), "span_id", span.SpanID().String())
	}
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok && requestID != "" {
		logger = logger.With("request_id", requestID)
	}
	return logger
}

func (l *LoggerClient) InfoWithContextf(ctx context.Context, format string, args ...interface{}) {
	l.withContext(ctx).InfoContext(ctx, fmt.Sprintf(format, args...))
}

func (l *LoggerClient) WarningWithContextf(ctx context.Context, format string, args ...interface{}) {
	l.withContext(ctx).WarnContext(ctx, fmt.Sprintf(format, args...))
}

func (l *LoggerClient) ErrorWithContextf(ctx context.Context, err error, format string, args ...interface{}) {
	logger := l.withContext(ctx)
	if err != nil {
		logger = logger.With("error", err.Error())
	}
	logger.ErrorContext(ctx, fmt.Sprintf(format, args...))
}

func (l *LoggerClient) Shutdown(ctx context.Context) error {
	if l.provider != nil {
		return l.provider.Shutdown(ctx)
	}
	return nil
}
