// Package patterndb manages the catalog of credential patterns: the regex
// each credential type must match, a human description, and an optional
// generator hint used by internal/credential's fallback path.
package patterndb

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/forgecraft/credentialforge/internal/forgeerrors"
)

// Entry describes a single credential type. The on-disk pattern database is
// JSON (the forge's external pattern-database wire format); only type,
// regex and description are required, any other key is ignored.
type Entry struct {
	Type            string   `json:"type"`
	Regex           string   `json:"regex"`
	Description     string   `json:"description"`
	Generator       string   `json:"generator,omitempty"`
	Examples        []string `json:"examples,omitempty"`
	RealisticFormat bool     `json:"realistic_format"`
}

// rawEntry mirrors Entry but leaves RealisticFormat a pointer so LoadFromFile
// can tell "key absent" (default true) apart from an explicit false.
type rawEntry struct {
	Type            string   `json:"type"`
	Regex           string   `json:"regex"`
	Description     string   `json:"description"`
	Generator       string   `json:"generator,omitempty"`
	Examples        []string `json:"examples,omitempty"`
	RealisticFormat *bool    `json:"realistic_format"`
}

type document struct {
	Credentials []rawEntry `json:"credentials"`
}

// defaultGenerator is used when an entry omits one, matching the catalog's
// historical default.
const defaultGenerator = `random_string(32, "A-Za-z0-9")`

// Database holds the loaded pattern catalog. Safe for concurrent reads;
// mutation methods take a write lock.
type Database struct {
	mu      sync.RWMutex
	path    string
	entries map[string]Entry
}

// New returns an empty database with no path set.
func New() *Database {
	return &Database{entries: make(map[string]Entry)}
}

// NewDefault returns a database pre-loaded with the embedded default
// catalog (see catalog.go).
func NewDefault() *Database {
	db := New()
	for _, e := range defaultCatalog {
		if e.Generator == "" {
			e.Generator = defaultGenerator
		}
		e.RealisticFormat = true
		db.entries[e.Type] = e
	}
	return db
}

// LoadFromFile replaces the database contents with the catalog at path.
func LoadFromFile(path string) (*Database, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, forgeerrors.Wrap(err, fmt.Sprintf("pattern database file not found: %s", path), forgeerrors.CategoryDatabase)
		}
		return nil, forgeerrors.Wrap(err, "failed to read pattern database", forgeerrors.CategoryDatabase)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, forgeerrors.Wrap(err, "invalid pattern database format", forgeerrors.CategoryDatabase)
	}
	if doc.Credentials == nil {
		return nil, forgeerrors.New("invalid database format: missing 'credentials' key", forgeerrors.CategoryDatabase)
	}

	db := New()
	db.path = path
	for _, re := range doc.Credentials {
		e := Entry{
			Type:        re.Type,
			Regex:       re.Regex,
			Description: re.Description,
			Generator:   re.Generator,
			Examples:    re.Examples,
		}
		if re.RealisticFormat == nil {
			e.RealisticFormat = true
		} else {
			e.RealisticFormat = *re.RealisticFormat
		}
		if err := validateEntry(e); err != nil {
			return nil, err
		}
		if e.Generator == "" {
			e.Generator = defaultGenerator
		}
		db.entries[e.Type] = e
	}
	return db, nil
}

func validateEntry(e Entry) error {
	if strings.TrimSpace(e.Type) == "" {
		return forgeerrors.New("pattern database entry missing 'type'", forgeerrors.CategoryDatabase)
	}
	if strings.TrimSpace(e.Regex) == "" {
		return forgeerrors.New(fmt.Sprintf("pattern database entry %q missing 'regex'", e.Type), forgeerrors.CategoryDatabase)
	}
	if strings.TrimSpace(e.Description) == "" {
		return forgeerrors.New(fmt.Sprintf("pattern database entry %q missing 'description'", e.Type), forgeerrors.CategoryDatabase)
	}
	if _, err := regexp.Compile(e.Regex); err != nil {
		return forgeerrors.Wrap(err, fmt.Sprintf("invalid regex pattern for %q", e.Type), forgeerrors.CategoryDatabase)
	}
	return nil
}

// Save writes the database to path (or its originally loaded path if path
// is empty), creating parent directories as needed.
func (db *Database) Save(path string) error {
	db.mu.RLock()
	defer db.mu.RUnlock()

	savePath := path
	if savePath == "" {
		savePath = db.path
	}
	if savePath == "" {
		return forgeerrors.New("no file path specified for saving pattern database", forgeerrors.CategoryDatabase)
	}

	doc := struct {
		Credentials []Entry `json:"credentials"`
	}{Credentials: make([]Entry, 0, len(db.entries))}
	for _, e := range db.entries {
		doc.Credentials = append(doc.Credentials, e)
	}

	if err := os.MkdirAll(filepath.Dir(savePath), 0o755); err != nil {
		return forgeerrors.Wrap(err, "failed to create pattern database directory", forgeerrors.CategoryDatabase)
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return forgeerrors.Wrap(err, "failed to marshal pattern database", forgeerrors.CategoryDatabase)
	}
	if err := os.WriteFile(savePath, out, 0o644); err != nil {
		return forgeerrors.Wrap(err, "failed to write pattern database", forgeerrors.CategoryDatabase)
	}
	return nil
}

// AddCredentialType registers a new credential type.
func (db *Database) AddCredentialType(e Entry) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if err := validateEntry(e); err != nil {
		return err
	}
	if _, exists := db.entries[e.Type]; exists {
		return forgeerrors.New(fmt.Sprintf("credential type already exists: %s", e.Type), forgeerrors.CategoryValidation)
	}
	if e.Generator == "" {
		e.Generator = defaultGenerator
	}
	e.RealisticFormat = true
	db.entries[e.Type] = e
	return nil
}

// RemoveCredentialType deletes a credential type.
func (db *Database) RemoveCredentialType(credType string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.entries[credType]; !ok {
		return forgeerrors.New(fmt.Sprintf("credential type not found: %s", credType), forgeerrors.CategoryValidation)
	}
	delete(db.entries, credType)
	return nil
}

// HasCredentialType reports whether credType is registered.
func (db *Database) HasCredentialType(credType string) bool {
	db.mu.RLock()
	defer db.mu.RUnlock()
	_, ok := db.entries[credType]
	return ok
}

// Get returns the full entry for credType.
func (db *Database) Get(credType string) (Entry, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	e, ok := db.entries[credType]
	if !ok {
		return Entry{}, forgeerrors.New(fmt.Sprintf("credential type not found: %s", credType), forgeerrors.CategoryValidation)
	}
	return e, nil
}

// ListTypes returns every registered credential type, unordered.
func (db *Database) ListTypes() []string {
	db.mu.RLock()
	defer db.mu.RUnlock()
	types := make([]string, 0, len(db.entries))
	for t := range db.entries {
		types = append(types, t)
	}
	return types
}

// Validate reports whether credential matches the registered pattern for
// credType.
func (db *Database) Validate(credential, credType string) (bool, error) {
	e, err := db.Get(credType)
	if err != nil {
		return false, err
	}
	re, err := regexp.Compile(e.Regex)
	if err != nil {
		return false, forgeerrors.Wrap(err, fmt.Sprintf("invalid regex for %q", credType), forgeerrors.CategoryDatabase)
	}
	return re.MatchString(credential), nil
}

// Search returns credential types whose type name or description contains
// query (case-insensitive).
func (db *Database) Search(query string) []string {
	db.mu.RLock()
	defer db.mu.RUnlock()

	query = strings.ToLower(query)
	var matches []string
	for t, e := range db.entries {
		if strings.Contains(strings.ToLower(t), query) || strings.Contains(strings.ToLower(e.Description), query) {
			matches = append(matches, t)
		}
	}
	return matches
}

// Stats summarizes the database for CLI reporting.
type Stats struct {
	TotalTypes int
	Types      []string
	Path       string
}

// Statistics reports database metadata.
func (db *Database) Statistics() Stats {
	db.mu.RLock()
	defer db.mu.RUnlock()
	types := make([]string, 0, len(db.entries))
	for t := range db.entries {
		types = append(types, t)
	}
	return Stats{
		TotalTypes: len(db.entries),
		Types:      types,
		Path:       db.path,
	}
}
