package orchestrator

import (
	"context"
	"os"
	"testing"

	"github.com/forgecraft/credentialforge/internal/auditlog"
	"github.com/forgecraft/credentialforge/internal/langpack"
	"github.com/forgecraft/credentialforge/internal/logutil"
	"github.com/forgecraft/credentialforge/internal/metrics"
	"github.com/forgecraft/credentialforge/internal/patterndb"
	"github.com/forgecraft/credentialforge/internal/request"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrchestrator() *Orchestrator {
	db := patterndb.NewDefault()
	langs := langpack.NewDefault()
	return New(db, langs, 7, nil, auditlog.NewNoOpAuditLogger(), metrics.NewNoopCollector(), logutil.NewBufferLogger())
}

func baseRequest(t *testing.T, numFiles int) request.Request {
	t.Helper()
	return request.Request{
		OutputDir:             t.TempDir(),
		NumFiles:              numFiles,
		BatchSize:             2,
		Formats:               []string{"eml", "pdf"},
		CredentialTypes:       []string{"aws_access_key"},
		Topics:                []string{"infrastructure migration"},
		EmbedStrategy:         request.EmbedRandom,
		MinCredentialsPerFile: 1,
		MaxCredentialsPerFile: 1,
		MaxWorkers:            2,
	}
}

func TestRun_GeneratesRequestedFileCount(t *testing.T) {
	o := newTestOrchestrator()
	req := baseRequest(t, 5)

	summary, err := o.Run(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 5, summary.Requested)
	assert.Equal(t, 5, summary.Succeeded)
	assert.Equal(t, 0, summary.Failed)
	assert.Len(t, summary.Files, 5)

	for _, f := range summary.Files {
		require.NoError(t, f.Err)
		_, statErr := os.Stat(f.Path)
		assert.NoError(t, statErr)
	}
}

func TestRun_RejectsInvalidRequest(t *testing.T) {
	o := newTestOrchestrator()
	req := baseRequest(t, 1)
	req.Formats = nil

	_, err := o.Run(context.Background(), req)
	assert.Error(t, err)
}

func TestRun_RespectsContextCancellation(t *testing.T) {
	o := newTestOrchestrator()
	req := baseRequest(t, 20)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, _ := o.Run(ctx, req)
	assert.LessOrEqual(t, len(summary.Files), req.NumFiles)
}

func TestRun_AdaptiveMemoryGovernorNeverPanics(t *testing.T) {
	o := newTestOrchestrator().WithMemoryLimit(0.000001)
	req := baseRequest(t, 6)

	summary, err := o.Run(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 6, summary.Succeeded)
}
