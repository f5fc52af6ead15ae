package bootstrap

import (
	"context"

	"go-hris-leave/internal/shared/contextutil"

	"go.uber.org/zap"
)

// AuditLog is a process-level event (startup, shutdown) worth keeping apart
// from request logs. Leave lifecycle events go to the timeline instead.
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}

type zapAuditLogger struct {
	logger  *zap.Logger
	service string
}

// NewAuditLogger writes audit entries through logger under the "audit" name.
func NewAuditLogger(logger *zap.Logger, service string) AuditLogger {
	if logger == nil {
		logger = zap.L()
	}
	return &zapAuditLogger{logger: logger.Named("audit"), service: service}
}

func (l *zapAuditLogger) Log(ctx context.Context, entry AuditLog) {
	fields := []zap.Field{
		zap.String("service", l.service),
		zap.String("action", entry.Action),
	}
	if rid := contextutil.GetRequestID(ctx); rid != "" {
		fields = append(fields, zap.String("request_id", rid))
	}
	if len(entry.Meta) > 0 {
		fields = append(fields, zap.Any("meta", entry.Meta))
	}
	l.logger.Info(entry.Message, fields...)
}
