package oteladapters

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel/log"

	"github.com/AntonStoeckl/library-lending-go/eventstore"
)

// SlogBridgeLogger is a *slog.Logger behind the eventstore logging interfaces.
// Built with NewSlogBridgeLogger, records go through the OpenTelemetry slog bridge and carry
// the trace and span IDs of the context they are logged with.
type SlogBridgeLogger struct {
	logger *slog.Logger
}

// NewSlogBridgeLogger creates a logger on the global OpenTelemetry LoggerProvider.
func NewSlogBridgeLogger(name string) *SlogBridgeLogger {
	return &SlogBridgeLogger{logger: otelslog.NewLogger(name)}
}

// NewSlogBridgeLoggerWithHandler creates a logger on the given handler, without the bridge.
func NewSlogBridgeLoggerWithHandler(handler slog.Handler) *SlogBridgeLogger {
	return &SlogBridgeLogger{logger: slog.New(handler)}
}

func (l *SlogBridgeLogger) Debug(msg string, args ...any) {
	l.logger.Debug(msg, args...)
}

func (l *SlogBridgeLogger) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

func (l *SlogBridgeLogger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

func (l *SlogBridgeLogger) Error(msg string, args ...any) {
	l.logger.Error(msg, args...)
}

func (l *SlogBridgeLogger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.logger.DebugContext(ctx, msg, args...)
}

func (l *SlogBridgeLogger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.logger.InfoContext(ctx, msg, args...)
}

func (l *SlogBridgeLogger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.logger.WarnContext(ctx, msg, args...)
}

func (l *SlogBridgeLogger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.logger.ErrorContext(ctx, msg, args...)
}

var (
	_ eventstore.Logger           = (*SlogBridgeLogger)(nil)
	_ eventstore.ContextualLogger = (*SlogBridgeLogger)(nil)
)

// OTelLogger emits records directly through an OpenTelemetry log.Logger.
// Arguments follow the slog convention: alternating keys and values, or slog.Attr values.
type OTelLogger struct {
	logger log.Logger
}

func NewOTelLogger(logger log.Logger) *OTelLogger {
	return &OTelLogger{logger: logger}
}

func (l *OTelLogger) Debug(msg string, args ...any) {
	l.emit(context.Background(), log.SeverityDebug, slog.LevelDebug, msg, args...)
}

func (l *OTelLogger) Info(msg string, args ...any) {
	l.emit(context.Background(), log.SeverityInfo, slog.LevelInfo, msg, args...)
}

func (l *OTelLogger) Warn(msg string, args ...any) {
	l.emit(context.Background(), log.SeverityWarn, slog.LevelWarn, msg, args...)
}

func (l *OTelLogger) Error(msg string, args ...any) {
	l.emit(context.Background(), log.SeverityError, slog.LevelError, msg, args...)
}

func (l *OTelLogger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, log.SeverityDebug, slog.LevelDebug, msg, args...)
}

func (l *OTelLogger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, log.SeverityInfo, slog.LevelInfo, msg, args...)
}

func (l *OTelLogger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, log.SeverityWarn, slog.LevelWarn, msg, args...)
}

func (l *OTelLogger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, log.SeverityError, slog.LevelError, msg, args...)
}

func (l *OTelLogger) emit(ctx context.Context, severity log.Severity, level slog.Level, msg string, args ...any) {
	if !l.logger.Enabled(ctx, log.EnabledParameters{Severity: severity}) {
		return
	}

	record := log.Record{}
	record.SetTimestamp(time.Now())
	record.SetSeverity(severity)
	record.SetSeverityText(level.String())
	record.SetBody(log.StringValue(msg))
	record.AddAttributes(KeyValuesFrom(args...)...)

	l.logger.Emit(ctx, record)
}

// KeyValuesFrom converts slog-style arguments to OpenTelemetry log attributes.
// A trailing key without a value is dropped, as are non-string keys.
func KeyValuesFrom(args ...any) []log.KeyValue {
	kvs := make([]log.KeyValue, 0, len(args)/2)

	for i := 0; i < len(args); i++ {
		if attr, ok := args[i].(slog.Attr); ok {
			kvs = append(kvs, log.KeyValue{Key: attr.Key, Value: valueOf(attr.Value.Resolve())})
			continue
		}

		key, ok := args[i].(string)
		if !ok || i+1 >= len(args) {
			continue
		}

		i++
		kvs = append(kvs, log.KeyValue{Key: key, Value: valueOf(slog.AnyValue(args[i]))})
	}

	return kvs
}

func valueOf(v slog.Value) log.Value {
	switch v.Kind() {
	case slog.KindString:
		return log.StringValue(v.String())
	case slog.KindInt64:
		return log.Int64Value(v.Int64())
	case slog.KindUint64:
		return log.Int64Value(int64(v.Uint64())) //nolint:gosec // counts and sequence numbers fit
	case slog.KindFloat64:
		return log.Float64Value(v.Float64())
	case slog.KindBool:
		return log.BoolValue(v.Bool())
	default:
		return log.StringValue(v.String())
	}
}

var (
	_ eventstore.Logger           = (*OTelLogger)(nil)
	_ eventstore.ContextualLogger = (*OTelLogger)(nil)
)
