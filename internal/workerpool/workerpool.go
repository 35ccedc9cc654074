// Package workerpool runs a bounded number of worker goroutines over a
// stream of jobs, each given its own timeout and able to observe
// cooperative cancellation, with backpressure capping outstanding jobs at
// twice the worker count so a fast producer cannot unbounded-queue work in
// memory.
package workerpool

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/forgecraft/credentialforge/internal/forgeerrors"
	"github.com/forgecraft/credentialforge/internal/ratelimit"
)

// rateLimitKey is the single bucket name jobs acquire against; file jobs
// don't distinguish models the way neural calls do, so one shared bucket is
// enough to cap the rate at which jobs start.
const rateLimitKey = "file-job"

// DefaultJobTimeout bounds how long a single job may run before it is
// cancelled and reported as a timeout error.
const DefaultJobTimeout = 300 * time.Second

// Job is one unit of work submitted to the pool; it must return promptly
// after ctx is cancelled.
type Job func(ctx context.Context) (any, error)

// Result pairs a submitted job's index with its outcome.
type Result struct {
	Index    int
	Value    any
	Err      error
	Duration time.Duration
}

// Pool runs jobs across a fixed number of worker goroutines.
type Pool struct {
	workers    int
	jobTimeout time.Duration
	limiter    *ratelimit.RateLimiter
}

type indexedJob struct {
	index int
	job   Job
}

// Option configures a Pool at construction.
type Option func(*Pool)

// WithJobTimeout overrides DefaultJobTimeout.
func WithJobTimeout(d time.Duration) Option {
	return func(p *Pool) { p.jobTimeout = d }
}

// WithRateLimit admits at most maxConcurrent jobs at a time and no more than
// ratePerMin job starts per minute, on top of the pool's own worker-count
// concurrency cap. Pass 0 for either to disable that half of the limit.
func WithRateLimit(maxConcurrent, ratePerMin int) Option {
	return func(p *Pool) { p.limiter = ratelimit.NewRateLimiter(maxConcurrent, ratePerMin) }
}

// New creates a Pool with the given worker count, reusable across any
// number of Run calls.
func New(workers int, opts ...Option) *Pool {
	if workers < 1 {
		workers = 1
	}
	p := &Pool{
		workers:    workers,
		jobTimeout: DefaultJobTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run submits every job in jobs to the pool and returns their results in
// submission order once all have completed or ctx is cancelled. A job that
// does not complete within the pool's job timeout is reported with a
// CategoryCancelled error; cancelling ctx stops further jobs from starting
// but does not return early for jobs already in flight. Run allocates its
// own submission queue, sized to 2*workers for backpressure, so a Pool may
// be reused across multiple Run calls (e.g. one per batch).
func (p *Pool) Run(ctx context.Context, jobs []Job) []Result {
	results := make([]Result, len(jobs))
	queue := make(chan indexedJob, p.workers*2)

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go p.worker(ctx, queue, &wg, results)
	}

	go func() {
		defer close(queue)
		for i, j := range jobs {
			select {
			case queue <- indexedJob{index: i, job: j}:
			case <-ctx.Done():
				return
			}
		}
	}()

	wg.Wait()
	return results
}

func (p *Pool) worker(ctx context.Context, queue chan indexedJob, wg *sync.WaitGroup, results []Result) {
	defer wg.Done()
	for {
		select {
		case ij, ok := <-queue:
			if !ok {
				return
			}
			results[ij.index] = p.runOne(ctx, ij)
		case <-ctx.Done():
			return
		}
	}
}

func (p *Pool) runOne(ctx context.Context, ij indexedJob) Result {
	if p.limiter != nil {
		if err := p.limiter.Acquire(ctx, rateLimitKey); err != nil {
			return Result{Index: ij.index, Err: forgeerrors.Wrap(err, "rate limit acquire", forgeerrors.CategoryCancelled)}
		}
		defer p.limiter.Release()
	}

	jobCtx, cancel := context.WithTimeout(ctx, p.jobTimeout)
	defer cancel()

	start := time.Now()
	value, err := ij.job(jobCtx)
	duration := time.Since(start)

	if err == nil && jobCtx.Err() != nil {
		err = forgeerrors.Wrap(jobCtx.Err(), fmt.Sprintf("job %d exceeded timeout %s", ij.index, p.jobTimeout), forgeerrors.CategoryCancelled)
	}

	return Result{Index: ij.index, Value: value, Err: err, Duration: duration}
}
