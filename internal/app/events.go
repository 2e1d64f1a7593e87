// internal/app/events.go
package app

import (
	"sort"

	"go-maze-shooter/internal/event"

	"go.uber.org/zap"
)

// EventLogger пишет игровые события в лог. Выстрелы идут на Debug, остальное на Info.
type EventLogger struct {
	log *zap.Logger
}

func NewEventLogger(log *zap.Logger) *EventLogger {
	return &EventLogger{log: log.Named("events")}
}

// OnEvent реализует интерфейс event.Listener.
func (l *EventLogger) OnEvent(e event.Event) {
	fields := []zap.Field{zap.String("type", string(e.Type))}
	if data, ok := e.Data.(event.Fields); ok {
		keys := make([]string, 0, len(data))
		for k := range data {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fields = append(fields, zap.Any(k, data[k]))
		}
	}

	switch e.Type {
	case event.ProjectileFired, event.EnemyHit:
		l.log.Debug("event", fields...)
	case event.TrackerDisconnected:
		l.log.Warn("event", fields...)
	default:
		l.log.Info("event", fields...)
	}
}
