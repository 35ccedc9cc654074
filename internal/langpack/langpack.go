// Package langpack holds per-language constants (section titles, credential
// labels, greeting/closing templates) and company bindings (a company's
// language/country/region) used by internal/content to localize generated
// documents. Every supported language is embedded as a default; absent
// language codes fall back to English, per the forge's language-coverage
// invariant.
package langpack

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"sync"

	"github.com/forgecraft/credentialforge/internal/forgeerrors"
)

// Pack holds the localized strings for one language. Packs are embedded Go
// literals (see defaults.go), not loaded from disk, so no serialization
// tags are needed.
type Pack struct {
	Code              string
	Name              string
	SectionTitles     []string
	CredentialLabels  map[string]string
	Greeting          string
	Closing           string
	BodyTemplate      string
	ConfigSectionName string
}

// CredentialLabel returns the localized label for credType, falling back
// to a title-cased rendering of the type itself when the pack has no
// dedicated entry.
func (p Pack) CredentialLabel(credType string) string {
	if label, ok := p.CredentialLabels[credType]; ok {
		return label
	}
	words := strings.Split(strings.ReplaceAll(credType, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Company binds a company name to the language/country/region it should be
// presented in.
type Company struct {
	Name     string
	Language string
	Country  string
	Region   string
}

// companyFileEntry is the per-company payload in the JSON mapping file; the
// company name itself is the map key, not a field.
type companyFileEntry struct {
	Language string `json:"language"`
	Country  string `json:"country"`
	Region   string `json:"region"`
}

// Registry holds every loaded language pack and company binding, with a
// per-language cache of the companies that match it (mirroring the
// assembler's per-language company cache requirement).
type Registry struct {
	mu        sync.RWMutex
	packs     map[string]Pack
	companies []Company
	byLang    map[string][]Company
}

// NewDefault returns a Registry pre-loaded with the embedded default
// language packs and company bindings.
func NewDefault() *Registry {
	r := &Registry{
		packs:  make(map[string]Pack, len(defaultPacks)),
		byLang: make(map[string][]Company),
	}
	for _, p := range defaultPacks {
		r.packs[p.Code] = p
	}
	r.companies = append([]Company(nil), defaultCompanies...)
	r.rebuildIndex()
	return r
}

// LoadCompaniesFromFile replaces the company bindings from a JSON file
// shaped like a dictionary of company-name -> {language, country, region}.
// Multiple such files may be loaded in sequence via MergeCompaniesFromFile;
// on a plain reload the new file's entries win outright.
func (r *Registry) LoadCompaniesFromFile(path string) error {
	entries, err := readCompanyFile(path)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.companies = entriesToCompanies(entries)
	r.rebuildIndex()
	return nil
}

// MergeCompaniesFromFile merges a JSON company mapping file into the
// registry; duplicate company names across merges resolve last-one-wins.
func (r *Registry) MergeCompaniesFromFile(path string) error {
	entries, err := readCompanyFile(path)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	byName := make(map[string]Company, len(r.companies))
	for _, c := range r.companies {
		byName[c.Name] = c
	}
	for name, e := range entriesToMap(entries) {
		byName[name] = e
	}
	merged := make([]Company, 0, len(byName))
	for _, c := range byName {
		merged = append(merged, c)
	}
	r.companies = merged
	r.rebuildIndex()
	return nil
}

func readCompanyFile(path string) (map[string]companyFileEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, forgeerrors.Wrap(err, fmt.Sprintf("failed to read company bindings: %s", path), forgeerrors.CategoryDatabase)
	}
	var entries map[string]companyFileEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, forgeerrors.Wrap(err, "invalid company bindings format", forgeerrors.CategoryDatabase)
	}
	return entries, nil
}

func entriesToCompanies(entries map[string]companyFileEntry) []Company {
	companies := make([]Company, 0, len(entries))
	for name, e := range entries {
		companies = append(companies, Company{Name: name, Language: e.Language, Country: e.Country, Region: e.Region})
	}
	return companies
}

func entriesToMap(entries map[string]companyFileEntry) map[string]Company {
	out := make(map[string]Company, len(entries))
	for name, e := range entries {
		out[name] = Company{Name: name, Language: e.Language, Country: e.Country, Region: e.Region}
	}
	return out
}

func (r *Registry) rebuildIndex() {
	r.byLang = make(map[string][]Company, len(r.packs))
	for _, c := range r.companies {
		r.byLang[c.Language] = append(r.byLang[c.Language], c)
	}
}

// Pack returns the language pack for code, falling back to English if code
// is unsupported.
func (r *Registry) Pack(code string) Pack {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if p, ok := r.packs[code]; ok {
		return p
	}
	return r.packs["en"]
}

// SupportsLanguage reports whether code has a dedicated pack (as opposed to
// falling back to English).
func (r *Registry) SupportsLanguage(code string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.packs[code]
	return ok
}

// RandomCompany returns a random company bound to language, using the
// per-language cache; if no company matches, it synthesizes a generic one
// named after the language pack.
func (r *Registry) RandomCompany(rng *rand.Rand, language string) Company {
	r.mu.RLock()
	candidates := r.byLang[language]
	r.mu.RUnlock()

	if len(candidates) == 0 {
		pack := r.Pack(language)
		return Company{Name: "Example Corp", Language: pack.Code, Country: "United States", Region: "North America"}
	}
	return candidates[rng.Intn(len(candidates))]
}

// CompanyInfo resolves a specific company name, case-insensitively, falling
// back to English/US when the name is unknown — mirrors the original
// prompt system's partial-match lookup.
func (r *Registry) CompanyInfo(name string) Company {
	if name == "" {
		return Company{Name: "Example Corp", Language: "en", Country: "United States", Region: "North America"}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	lower := strings.ToLower(name)
	for _, c := range r.companies {
		if strings.ToLower(c.Name) == lower {
			return c
		}
	}
	for _, c := range r.companies {
		cl := strings.ToLower(c.Name)
		if strings.Contains(cl, lower) || strings.Contains(lower, cl) {
			return c
		}
	}
	return Company{Name: name, Language: "en", Country: "United States", Region: "North America"}
}
