package catalog

import "log/slog"

// LoggingObserver is a simple observer that logs all catalog mutations
// using structured logging.
type LoggingObserver struct {
	logger *slog.Logger
}

// NewLoggingObserver creates a new logging observer.
func NewLoggingObserver() *LoggingObserver {
	return &LoggingObserver{
		logger: slog.Default(),
	}
}

// OnEvent implements the Observer interface.
func (lo *LoggingObserver) OnEvent(event Event) {
	lo.logger.Info("catalog_mutation",
		"event", event.Type,
		"table_id", event.TableID,
		"entity_id", event.EntityID,
		"timestamp", event.Timestamp,
		"data", event.Data,
	)
}
