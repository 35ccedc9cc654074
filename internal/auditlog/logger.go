// Package auditlog provides structured logging capabilities for the architect tool.
package auditlog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/forgecraft/credentialforge/internal/forgeerrors"
	"github.com/forgecraft/credentialforge/internal/logutil"
)

// AuditLogger is a structured, JSON-lines audit trail for forge runs: one
// entry per generation batch, file write, or neural call, suitable for
// after-the-fact review of what a run actually produced.
type AuditLogger interface {
	// Log records entry, stamping correlation ID from ctx if present.
	Log(ctx context.Context, entry AuditEntry) error

	// LogOp is a convenience wrapper that builds an AuditEntry from an
	// operation name, status, input/output maps, and an optional error.
	LogOp(ctx context.Context, operation, status string, inputs, outputs map[string]interface{}, opErr error) error

	// LogLegacy and LogOpLegacy are the context-free equivalents, kept
	// for call sites that predate correlation-ID propagation.
	LogLegacy(entry AuditEntry) error
	LogOpLegacy(operation, status string, inputs, outputs map[string]interface{}, opErr error) error

	Close() error
}

// FileAuditLogger writes one JSON object per line to a file on disk.
type FileAuditLogger struct {
	file   *os.File
	logger logutil.LoggerInterface
	mu     sync.Mutex
	closed bool
}

// NewFileAuditLogger opens (creating if necessary) the file at path for
// appending and returns a logger that writes JSON-lines audit entries to it.
func NewFileAuditLogger(path string, logger logutil.LoggerInterface) (*FileAuditLogger, error) {
	//nolint:gosec // G304: path is operator-supplied configuration, not user input
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		logger.Error("Failed to open audit log file %s: %v", path, err)
		return nil, forgeerrors.Wrap(err, fmt.Sprintf("failed to open audit log file: %s", path), forgeerrors.CategoryConfiguration)
	}
	logger.Info("Audit log opened at %s", path)
	return &FileAuditLogger{file: f, logger: logger}, nil
}

// Log writes entry as a single JSON line, stamping Timestamp if unset and
// attaching the context's correlation ID to Inputs.
func (l *FileAuditLogger) Log(ctx context.Context, entry AuditEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	if id := logutil.GetCorrelationID(ctx); id != "" {
		if entry.Inputs == nil {
			entry.Inputs = make(map[string]interface{})
		}
		entry.Inputs["correlation_id"] = id
	}

	data, err := json.Marshal(entry)
	if err != nil {
		l.logger.Error("Failed to marshal audit entry to JSON: %v, Entry: %+v", err, entry)
		return forgeerrors.Wrap(err, "failed to marshal audit entry", forgeerrors.CategoryGeneration)
	}
	data = append(data, '\n')

	if l.closed {
		l.logger.Error("Attempted to write to closed audit log: %s", entry.Operation)
		return forgeerrors.New("audit log is closed", forgeerrors.CategoryConfiguration)
	}
	if _, err := l.file.Write(data); err != nil {
		l.logger.Error("Failed to write audit entry: %v", err)
		return forgeerrors.Wrap(err, "failed to write audit entry", forgeerrors.CategoryConfiguration)
	}
	return nil
}

// LogOp builds an AuditEntry from operation/status/inputs/outputs/opErr and
// logs it. The Message is derived from status the way the status itself
// reads in prose ("X completed successfully", "X failed", ...).
func (l *FileAuditLogger) LogOp(ctx context.Context, operation, status string, inputs, outputs map[string]interface{}, opErr error) error {
	entry := AuditEntry{
		Operation: operation,
		Status:    status,
		Inputs:    inputs,
		Outputs:   outputs,
		Message:   operationMessage(operation, status),
	}
	if opErr != nil {
		entry.Error = errorInfoFor(opErr)
	}
	return l.Log(ctx, entry)
}

// LogLegacy logs entry without a context; kept for callers outside the
// correlation-ID chain.
func (l *FileAuditLogger) LogLegacy(entry AuditEntry) error {
	return l.Log(context.Background(), entry)
}

// LogOpLegacy is the context-free equivalent of LogOp.
func (l *FileAuditLogger) LogOpLegacy(operation, status string, inputs, outputs map[string]interface{}, opErr error) error {
	return l.LogOp(context.Background(), operation, status, inputs, outputs, opErr)
}

// Close closes the underlying file. Safe to call more than once.
func (l *FileAuditLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true
	return l.file.Close()
}

func operationMessage(operation, status string) string {
	switch status {
	case "Success":
		return fmt.Sprintf("%s completed successfully", operation)
	case "InProgress":
		return fmt.Sprintf("%s started", operation)
	case "Failure":
		return fmt.Sprintf("%s failed", operation)
	default:
		return fmt.Sprintf("%s - %s", operation, status)
	}
}

func errorInfoFor(err error) *ErrorInfo {
	if cat, ok := forgeerrors.IsCategorizedError(err); ok {
		return &ErrorInfo{Message: err.Error(), Type: fmt.Sprintf("Error:%s", cat.Category().String())}
	}
	return &ErrorInfo{Message: err.Error(), Type: "GeneralError"}
}

// StructuredLogger defines the interface for structured audit logging.
// It provides methods for logging structured events and cleaning up resources.
type StructuredLogger interface {
	// Log records a structured audit event.
	// Implementations should ensure this method is safe for concurrent use
	// and should handle any errors internally to prevent disruption to the
	// application flow (e.g., by logging errors to the standard logger).
	Log(event AuditEvent)

	// Close releases any resources held by the logger.
	// This should be called when the logger is no longer needed,
	// typically using the defer pattern after logger creation.
	// Implementations should ensure this method is idempotent and
	// safe to call multiple times.
	// 
	// Returns an error if cleanup fails, which the caller may choose
	// to log but typically should not cause the application to fail.
	Close() error
}
