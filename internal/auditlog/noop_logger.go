package auditlog

import "context"

// NoOpAuditLogger discards every entry; used when no --audit-log-file flag
// is supplied so call sites never need a nil check.
type NoOpAuditLogger struct{}

// NewNoOpAuditLogger returns a logger that discards everything it is given.
func NewNoOpAuditLogger() *NoOpAuditLogger {
	return &NoOpAuditLogger{}
}

func (n *NoOpAuditLogger) Log(context.Context, AuditEntry) error { return nil }

func (n *NoOpAuditLogger) LogOp(context.Context, string, string, map[string]interface{}, map[string]interface{}, error) error {
	return nil
}

func (n *NoOpAuditLogger) LogLegacy(AuditEntry) error { return nil }

func (n *NoOpAuditLogger) LogOpLegacy(string, string, map[string]interface{}, map[string]interface{}, error) error {
	return nil
}

func (n *NoOpAuditLogger) Close() error { return nil }
