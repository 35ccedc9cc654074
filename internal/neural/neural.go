// Package neural wraps external text-generation backends behind one narrow
// interface, with an explicit ready/loading/unavailable lifecycle owned by
// the caller rather than a lazily-initialized shared singleton.
package neural

import (
	"context"
	"sync"
	"time"

	"github.com/forgecraft/credentialforge/internal/forgeerrors"
)

// State is the lifecycle state of a Generator.
type State int

const (
	StateUnloaded State = iota
	StateLoading
	StateReady
	StateUnavailable
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateUnavailable:
		return "unavailable"
	default:
		return "unloaded"
	}
}

// Options configures a single Generate/GenerateBatch call.
type Options struct {
	MaxTokens   int
	Temperature float32
	Stop        []string
}

// Counters tracks cumulative performance counters for a Generator.
type Counters struct {
	mu              sync.Mutex
	Calls           int64
	TotalTokens     int64
	TotalDuration   time.Duration
}

func (c *Counters) record(tokens int, d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Calls++
	c.TotalTokens += int64(tokens)
	c.TotalDuration += d
}

// Snapshot returns the counters' current values and the average
// tokens-per-second rate observed so far.
func (c *Counters) Snapshot() (calls int64, totalTokens int64, avgTokensPerSecond float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	calls, totalTokens = c.Calls, c.TotalTokens
	if c.TotalDuration > 0 {
		avgTokensPerSecond = float64(c.TotalTokens) / c.TotalDuration.Seconds()
	}
	return
}

// Backend is the minimal surface a concrete neural backend implements;
// Generator wraps a Backend with lifecycle state, counters, and the
// mutex-serialization contract §4.7 requires of non-thread-safe backends.
type Backend interface {
	// Load prepares the backend for use (e.g. validating credentials or
	// opening a connection); it is called at most once per Generator.
	Load(ctx context.Context) error
	// Generate produces text for prompt, honoring opts.
	Generate(ctx context.Context, prompt string, opts Options) (string, error)
	// ThreadSafe reports whether concurrent Generate calls are safe
	// without external serialization.
	ThreadSafe() bool
	// Unload releases any resources held by the backend.
	Unload()
}

// Generator is the orchestrator-facing handle: Load/Generate/GenerateBatch/
// Unload, with an explicit state machine. Workers ask the orchestrator for
// a handle; the orchestrator serves the ready instance or reports
// unavailable so the assembler can fall back to template-only content.
type Generator struct {
	backend  Backend
	mu       sync.Mutex
	state    State
	counters Counters
}

// New wraps backend in a Generator, initially unloaded.
func New(backend Backend) *Generator {
	return &Generator{backend: backend, state: StateUnloaded}
}

// State reports the generator's current lifecycle state.
func (g *Generator) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Load transitions the generator from unloaded to ready (or unavailable on
// failure). Calling Load again after it has already reached a terminal
// state is a no-op.
func (g *Generator) Load(ctx context.Context) error {
	g.mu.Lock()
	if g.state == StateReady || g.state == StateUnavailable {
		state := g.state
		g.mu.Unlock()
		if state == StateUnavailable {
			return forgeerrors.New("neural backend unavailable", forgeerrors.CategoryNeural)
		}
		return nil
	}
	g.state = StateLoading
	g.mu.Unlock()

	err := g.backend.Load(ctx)

	g.mu.Lock()
	defer g.mu.Unlock()
	if err != nil {
		g.state = StateUnavailable
		return forgeerrors.Wrap(err, "neural backend failed to load", forgeerrors.CategoryNeural)
	}
	g.state = StateReady
	return nil
}

// Generate produces text for a single prompt, serializing calls with a
// mutex unless the backend declares itself thread-safe.
func (g *Generator) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	if g.State() != StateReady {
		return "", forgeerrors.New("neural generator not ready", forgeerrors.CategoryNeural)
	}

	if !g.backend.ThreadSafe() {
		g.mu.Lock()
		defer g.mu.Unlock()
	}

	start := time.Now()
	out, err := g.backend.Generate(ctx, prompt, opts)
	duration := time.Since(start)
	if err != nil {
		return "", forgeerrors.Wrap(err, "neural generation failed", forgeerrors.CategoryNeural)
	}
	g.counters.record(estimateTokens(out), duration)
	return out, nil
}

// GenerateBatch fans prompts out to Generate concurrently when the backend
// is thread-safe, and serially otherwise. Each slot in the result carries
// either text or an error, index-aligned with prompts.
func (g *Generator) GenerateBatch(ctx context.Context, prompts []string, opts Options) []Result {
	results := make([]Result, len(prompts))

	if !g.backend.ThreadSafe() {
		for i, p := range prompts {
			text, err := g.Generate(ctx, p, opts)
			results[i] = Result{Text: text, Err: err}
		}
		return results
	}

	var wg sync.WaitGroup
	for i, p := range prompts {
		wg.Add(1)
		go func(i int, p string) {
			defer wg.Done()
			text, err := g.Generate(ctx, p, opts)
			results[i] = Result{Text: text, Err: err}
		}(i, p)
	}
	wg.Wait()
	return results
}

// Unload releases the backend and returns the generator to unloaded state.
func (g *Generator) Unload() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.backend.Unload()
	g.state = StateUnloaded
}

// Counters exposes the generator's cumulative performance counters.
func (g *Generator) Counters() *Counters {
	return &g.counters
}

// Result is one slot of a GenerateBatch call.
type Result struct {
	Text string
	Err  error
}

// estimateTokens approximates token count from rune length, matching the
// rough ~4-chars-per-token heuristic used elsewhere in the forge when an
// exact tokenizer is unavailable.
func estimateTokens(text string) int {
	n := len([]rune(text)) / 4
	if n < 1 {
		return 1
	}
	return n
}
