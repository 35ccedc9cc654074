package auditlog

// NoopStructuredLogger discards every AuditEvent given to it. Used by
// config.Manager when no StructuredLogger is supplied.
type NoopStructuredLogger struct{}

// NewNoopStructuredLogger returns a StructuredLogger that discards everything.
func NewNoopStructuredLogger() *NoopStructuredLogger {
	return &NoopStructuredLogger{}
}

func (n *NoopStructuredLogger) Log(AuditEvent) {}

func (n *NoopStructuredLogger) Close() error { return nil }
