// Package credential generates synthetic, pattern-conformant credential
// values. Each credential type is produced by a dedicated entry in a
// dispatch table (table.go); types with no dedicated entry fall back to
// parsing their regex pattern directly (fallback.go). The generator tracks
// uniqueness for the lifetime of a Generator and retries on collision.
package credential

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/forgecraft/credentialforge/internal/forgeerrors"
	"github.com/forgecraft/credentialforge/internal/patterndb"
)

// maxCollisionAttempts bounds retries before the RNG is reseeded, matching
// the uniqueness policy: never append disambiguating suffixes that would
// invalidate the regex.
const maxCollisionAttempts = 10

// Context carries optional hints a generator may use to make a credential
// look situated (e.g. a JWT issuer derived from the target company).
type Context struct {
	Company string
	Topic   string
	Language string
}

// Credential is a single produced instance.
type Credential struct {
	Type  string
	Value string
	// Label is the localized display label, filled in by the caller
	// (internal/content) from a LanguagePack; empty here.
	Label string
}

// Stats tracks generation counters for a Generator's lifetime.
type Stats struct {
	TotalGenerated int64
	ByType         map[string]int64
	Errors         int64
}

// generatorFunc produces one candidate value for a credential type. It may
// be called more than once per Generate call on collision.
type generatorFunc func(rng *rand.Rand, ctx Context) string

// Generator produces credentials validated against a patterndb.Database,
// tracking uniqueness across its lifetime. A Generator is not safe for
// concurrent use from multiple goroutines without external locking — the
// orchestrator owns one shared, mutex-guarded Generator (see §5 of the
// design: "the credential uniqueness set is the one shared mutable
// object").
type Generator struct {
	db      *patterndb.Database
	rng     *rand.Rand
	mu      sync.Mutex
	seen    map[string]struct{}
	stats   Stats
}

// New creates a Generator backed by db, seeded deterministically from seed.
func New(db *patterndb.Database, seed int64) *Generator {
	return &Generator{
		db:   db,
		rng:  rand.New(rand.NewSource(seed)),
		seen: make(map[string]struct{}),
		stats: Stats{
			ByType: make(map[string]int64),
		},
	}
}

// Generate produces one credential of credType, retrying on collision and
// reseeding after maxCollisionAttempts, per the uniqueness policy.
func (g *Generator) Generate(ctx context.Context, credType string, cctx Context) (Credential, error) {
	select {
	case <-ctx.Done():
		return Credential{}, forgeerrors.Wrap(ctx.Err(), "credential generation cancelled", forgeerrors.CategoryCancelled)
	default:
	}

	entry, err := g.db.Get(credType)
	if err != nil {
		return Credential{}, forgeerrors.Wrap(err, fmt.Sprintf("unknown credential type: %s", credType), forgeerrors.CategoryValidation)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	value, err := g.generateOne(credType, entry, cctx)
	if err != nil {
		g.stats.Errors++
		return Credential{}, err
	}

	attempts := 0
	for g.collides(value) && attempts < maxCollisionAttempts {
		value, err = g.generateOne(credType, entry, cctx)
		if err != nil {
			g.stats.Errors++
			return Credential{}, err
		}
		attempts++
	}

	if attempts >= maxCollisionAttempts && g.collides(value) {
		// Reseed with microsecond precision rather than append a suffix
		// that would break the regex.
		g.rng = rand.New(rand.NewSource(time.Now().UnixMicro()))
		value, err = g.generateOne(credType, entry, cctx)
		if err != nil {
			g.stats.Errors++
			return Credential{}, err
		}
	}

	g.seen[value] = struct{}{}
	g.stats.TotalGenerated++
	g.stats.ByType[credType]++

	return Credential{Type: credType, Value: value}, nil
}

// GenerateBatch produces count credentials per type, best-effort: a failure
// on one type is recorded in stats and does not abort the others.
func (g *Generator) GenerateBatch(ctx context.Context, credTypes []string, count int, cctx Context) map[string][]Credential {
	results := make(map[string][]Credential, len(credTypes))
	for _, t := range credTypes {
		values := make([]Credential, 0, count)
		for i := 0; i < count; i++ {
			c, err := g.Generate(ctx, t, cctx)
			if err != nil {
				continue
			}
			values = append(values, c)
		}
		results[t] = values
	}
	return results
}

func (g *Generator) collides(value string) bool {
	_, ok := g.seen[value]
	return ok
}

func (g *Generator) generateOne(credType string, entry patterndb.Entry, cctx Context) (string, error) {
	if entry.RealisticFormat {
		if fn, ok := dispatchTable[credType]; ok {
			return fn(g.rng, cctx), nil
		}
	}
	return generateFromPattern(g.rng, entry.Regex)
}

// Stats returns a snapshot of generation counters.
func (g *Generator) Stats() Stats {
	g.mu.Lock()
	defer g.mu.Unlock()
	byType := make(map[string]int64, len(g.stats.ByType))
	for k, v := range g.stats.ByType {
		byType[k] = v
	}
	return Stats{
		TotalGenerated: g.stats.TotalGenerated,
		ByType:         byType,
		Errors:         g.stats.Errors,
	}
}

// Validate reports whether value matches credType's registered pattern.
func (g *Generator) Validate(credType, value string) (bool, error) {
	return g.db.Validate(value, credType)
}
