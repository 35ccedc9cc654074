// Package orchestrator coordinates the forge's core workflow: validating a
// request, generating content and credentials for each file in adaptively
// sized batches, binding each into its requested output format, and
// recording audit/metrics for the run. It brings together patterndb,
// content, credential, binder, memgovernor, and workerpool behind a single
// Run entry point.
package orchestrator

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"time"

	"github.com/forgecraft/credentialforge/internal/auditlog"
	"github.com/forgecraft/credentialforge/internal/binder"
	"github.com/forgecraft/credentialforge/internal/content"
	"github.com/forgecraft/credentialforge/internal/credential"
	"github.com/forgecraft/credentialforge/internal/forgeerrors"
	"github.com/forgecraft/credentialforge/internal/langpack"
	"github.com/forgecraft/credentialforge/internal/logutil"
	"github.com/forgecraft/credentialforge/internal/memgovernor"
	"github.com/forgecraft/credentialforge/internal/metrics"
	"github.com/forgecraft/credentialforge/internal/neural"
	"github.com/forgecraft/credentialforge/internal/patterndb"
	"github.com/forgecraft/credentialforge/internal/progress"
	"github.com/forgecraft/credentialforge/internal/request"
	"github.com/forgecraft/credentialforge/internal/workerpool"
)

// maxDefaultWorkers bounds the auto-computed worker count regardless of how
// many cores or how much memory are available.
const maxDefaultWorkers = 12

// defaultWorkerCount picks W = min(0.8*cores, memoryGiB/1.2, maxDefaultWorkers),
// at least 1. memoryLimitGiB <= 0 means "no memory constraint given", in
// which case only the core- and cap-based bounds apply.
func defaultWorkerCount(memoryLimitGiB float64) int {
	byCores := int(0.8 * float64(runtime.NumCPU()))
	w := byCores
	if memoryLimitGiB > 0 {
		byMemory := int(memoryLimitGiB / 1.2)
		if byMemory < w {
			w = byMemory
		}
	}
	if w > maxDefaultWorkers {
		w = maxDefaultWorkers
	}
	if w < 1 {
		w = 1
	}
	return w
}

// shrinkBatchSize auto-shrinks a large batch size for very large runs, so a
// single batch's worth of in-flight jobs doesn't dominate memory: once the
// file count is large relative to the requested batch size, cap it at
// min(50, numFiles/20).
func shrinkBatchSize(batchSize, numFiles int) int {
	if numFiles <= 0 {
		return batchSize
	}
	limit := numFiles / 20
	if limit > 50 {
		limit = 50
	}
	if limit > 0 && batchSize > limit {
		return limit
	}
	return batchSize
}

// FileResult describes the outcome of generating a single file.
type FileResult struct {
	Path string
	Err  error
}

// Summary is the aggregate outcome of a Run.
type Summary struct {
	Requested int
	Succeeded int
	Failed    int
	Files     []FileResult
	Duration  time.Duration
}

// Orchestrator wires together the generation pipeline. It owns the one
// shared, self-locking credential.Generator and hands out a bounded pool
// of content.Assemblers (each with its own company/template cache) to
// workerpool jobs.
type Orchestrator struct {
	db          *patterndb.Database
	langs       *langpack.Registry
	credentials *credential.Generator
	neuralGen   *neural.Generator
	auditLogger auditlog.AuditLogger
	metrics     metrics.Collector
	logger      logutil.LoggerInterface
	governor    *memgovernor.Governor
	progress    progress.Reporter
}

// New constructs an Orchestrator. neuralGen may be nil, in which case
// content generation falls back to templates only. auditLogger and
// metricsCollector may be the Noop/NoopCollector variants.
func New(
	db *patterndb.Database,
	langs *langpack.Registry,
	seed int64,
	neuralGen *neural.Generator,
	auditLogger auditlog.AuditLogger,
	metricsCollector metrics.Collector,
	logger logutil.LoggerInterface,
) *Orchestrator {
	return &Orchestrator{
		db:          db,
		langs:       langs,
		credentials: credential.New(db, seed),
		neuralGen:   neuralGen,
		auditLogger: auditLogger,
		metrics:     metricsCollector,
		logger:      logger,
		governor:    memgovernor.New(0),
		progress:    progress.New(progress.Config{}),
	}
}

// WithMemoryLimit overrides the default (disabled) adaptive memory
// governor with one that halves batch size when resident memory exceeds
// memoryLimitGiB.
func (o *Orchestrator) WithMemoryLimit(memoryLimitGiB float64) *Orchestrator {
	o.governor = memgovernor.New(memoryLimitGiB)
	return o
}

// WithProgress attaches a progress.Reporter that observes batch dispatch
// during Run; pass progress.New(progress.NewConfig(quiet)) to report to the
// terminal, or leave unset for the silent default.
func (o *Orchestrator) WithProgress(r progress.Reporter) *Orchestrator {
	o.progress = r
	return o
}

// Run validates req, then generates req.NumFiles files in adaptively sized
// concurrent batches, writing each to req.OutputDir in one of req.Formats.
func (o *Orchestrator) Run(ctx context.Context, req request.Request) (Summary, error) {
	ctx = logutil.WithCorrelationID(ctx)
	correlationID := logutil.GetCorrelationID(ctx)
	contextLogger := o.logger.WithContext(ctx)

	if err := req.Validate(o.db); err != nil {
		contextLogger.ErrorContext(ctx, "Request validation failed: %v", err)
		return Summary{}, err
	}

	start := time.Now()
	contextLogger.InfoContext(ctx, "Starting forge run correlation_id=%s numFiles=%d", correlationID, req.NumFiles)
	_ = o.auditLogger.LogOp(ctx, "RunStart", "InProgress", map[string]interface{}{
		"numFiles": req.NumFiles,
		"formats":  req.Formats,
	}, nil, nil)

	workers := req.MaxWorkers
	if workers < 1 {
		workers = defaultWorkerCount(req.MemoryLimitGiB)
	}
	poolOpts := []workerpool.Option{}
	if req.RateLimitPerMin > 0 {
		poolOpts = append(poolOpts, workerpool.WithRateLimit(workers*2, req.RateLimitPerMin))
	}
	pool := workerpool.New(workers, poolOpts...)
	assemblers := newAssemblerPool(workers, o.langs, o.credentials, o.neuralGen)

	seed := int64(time.Now().UnixNano())
	if req.Seed != nil {
		seed = *req.Seed
	}
	rng := rand.New(rand.NewSource(seed))

	var results []FileResult
	remaining := req.NumFiles
	batchSize := req.BatchSize
	if batchSize < 1 {
		batchSize = 1
	}
	batchSize = shrinkBatchSize(batchSize, req.NumFiles)
	generated := 0

	o.progress.Start(req.NumFiles)
	defer o.progress.Finish()

	for remaining > 0 {
		if batchSize > remaining {
			batchSize = remaining
		}

		jobs := make([]workerpool.Job, batchSize)
		for i := 0; i < batchSize; i++ {
			fileIndex := generated + i
			jobSeed := rng.Int63()
			jobs[i] = o.fileJob(req, fileIndex, jobSeed, assemblers)
		}

		batchResults := pool.Run(ctx, jobs)
		for _, r := range batchResults {
			fr := FileResult{}
			if r.Err != nil {
				fr.Err = r.Err
				o.progress.FileFailed(r.Index, r.Err)
			} else if path, ok := r.Value.(string); ok {
				fr.Path = path
				o.progress.FileCompleted(path)
			}
			results = append(results, fr)
		}

		generated += batchSize
		remaining -= batchSize

		next, cleaned := o.governor.NextBatchSize(batchSize)
		batchSize = next
		if cleaned {
			contextLogger.DebugContext(ctx, "Memory governor forced cleanup, next batch size %d", batchSize)
		}

		if ctx.Err() != nil {
			break
		}
	}

	var succeeded, failed int
	for _, r := range results {
		if r.Err != nil {
			failed++
			contextLogger.ErrorContext(ctx, "File generation failed: %v", r.Err)
		} else {
			succeeded++
		}
	}

	summary := Summary{
		Requested: req.NumFiles,
		Succeeded: succeeded,
		Failed:    failed,
		Files:     results,
		Duration:  time.Since(start),
	}

	o.metrics.RecordDuration("forge.run.duration", summary.Duration)
	o.metrics.AddCounter("forge.files.succeeded", int64(succeeded))
	o.metrics.AddCounter("forge.files.failed", int64(failed))
	if err := o.metrics.Flush(); err != nil {
		contextLogger.WarnContext(ctx, "Failed to flush metrics: %v", err)
	}

	status := "Success"
	var runErr error
	if failed > 0 {
		status = "Failure"
		runErr = forgeerrors.New(fmt.Sprintf("%d/%d files failed to generate", failed, req.NumFiles), forgeerrors.CategoryGeneration)
	}
	_ = o.auditLogger.LogOp(ctx, "RunEnd", status, nil, map[string]interface{}{
		"succeeded": succeeded,
		"failed":    failed,
		"duration":  summary.Duration.String(),
	}, runErr)

	contextLogger.InfoContext(ctx, "Forge run completed: %d/%d succeeded in %s", succeeded, req.NumFiles, summary.Duration)
	return summary, runErr
}

// fileJob builds the workerpool.Job that generates and binds file index i.
func (o *Orchestrator) fileJob(req request.Request, index int, seed int64, assemblers *assemblerPool) workerpool.Job {
	return func(ctx context.Context) (any, error) {
		rng := rand.New(rand.NewSource(seed))

		format := req.Formats[rng.Intn(len(req.Formats))]
		topic := req.Topics[rng.Intn(len(req.Topics))]

		language := ""
		if len(req.Languages) > 0 {
			language = req.Languages[rng.Intn(len(req.Languages))]
		}

		in := content.Input{
			Topic:            topic,
			CredentialTypes:  req.CredentialTypes,
			Language:         language,
			Format:           format,
			MinCredentials:   req.MinCredentialsPerFile,
			MaxCredentials:   req.MaxCredentialsPerFile,
			EmbedStrategy:    req.EmbedStrategy,
			UseNeuralContent: req.UseNeuralContent,
		}

		a := assemblers.acquire()
		defer assemblers.release(a)

		cs, err := a.Assemble(ctx, in, rng)
		if err != nil {
			_ = o.auditLogger.LogOp(ctx, "GenerateContent", "Failure", map[string]interface{}{"index": index, "format": format}, nil, err)
			return nil, err
		}

		path, err := binder.New(format).Synthesize(cs, req.OutputDir)
		if err != nil {
			_ = o.auditLogger.LogOp(ctx, "SynthesizeFile", "Failure", map[string]interface{}{"index": index, "format": format}, nil, err)
			return nil, err
		}

		_ = o.auditLogger.LogOp(ctx, "SynthesizeFile", "Success", map[string]interface{}{"index": index, "format": format}, map[string]interface{}{"path": path}, nil)
		o.metrics.IncrCounter("forge.files.generated", "format", format)
		return path, nil
	}
}

// assemblerPool bounds concurrent content.Assembler use to the worker
// count. Each checked-out Assembler is used by exactly one goroutine at a
// time, so its company/template caches need no internal locking.
type assemblerPool struct {
	ch chan *content.Assembler
}

func newAssemblerPool(n int, langs *langpack.Registry, creds *credential.Generator, neuralGen *neural.Generator) *assemblerPool {
	p := &assemblerPool{ch: make(chan *content.Assembler, n)}
	for i := 0; i < n; i++ {
		p.ch <- content.NewAssembler(langs, creds, neuralGen)
	}
	return p
}

func (p *assemblerPool) acquire() *content.Assembler {
	return <-p.ch
}

func (p *assemblerPool) release(a *content.Assembler) {
	p.ch <- a
}
