// Package content assembles a ContentStructure — title, localized sections,
// generated credentials, and metadata — for one synthetic document, ready
// to be handed to a format binder. An Assembler is owned by a single
// worker: its per-language company cache is confined to that worker and
// carries no lock, per the forge's shared-resource policy (only the
// credential generator's uniqueness set is cross-worker shared state).
package content

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/forgecraft/credentialforge/internal/credential"
	"github.com/forgecraft/credentialforge/internal/forgeerrors"
	"github.com/forgecraft/credentialforge/internal/langpack"
	"github.com/forgecraft/credentialforge/internal/neural"
	"github.com/forgecraft/credentialforge/internal/request"
)

// Section is one titled body block of a ContentStructure.
type Section struct {
	Title string
	Body  string
}

// ContentStructure is the intermediate representation every format binder
// consumes.
type ContentStructure struct {
	Title       string
	Sections    []Section
	Credentials []credential.Credential
	Metadata    map[string]any
	Language    string
	FormatType  string
	// CredentialsPreEmbedded is true when the assembler has already placed
	// Credentials into a section body or Metadata; binders must not embed
	// them again. It is false for formats whose binder embeds credentials
	// natively (xlsx/ods family, pptx/ppt/odp), in which case the binder
	// alone is responsible for rendering Credentials.
	CredentialsPreEmbedded bool
}

// Input bundles one Assemble call's parameters.
type Input struct {
	Topic           string
	CredentialTypes []string
	Language        string
	Format          string
	Context         map[string]string
	MinCredentials  int
	MaxCredentials  int
	EmbedStrategy   request.EmbedStrategy
	UseNeuralContent bool
}

// Assembler produces ContentStructures. It holds a read-only LanguagePack
// registry, a shared Credentials generator (externally lock-protected —
// see internal/credential), and an optional neural Generator used when
// Input.UseNeuralContent is set.
type Assembler struct {
	Langs       *langpack.Registry
	Credentials *credential.Generator
	Neural      *neural.Generator

	companyCache map[string]langpack.Company
}

// NewAssembler constructs an Assembler; neuralGen may be nil to disable
// neural content generation regardless of Input.UseNeuralContent.
func NewAssembler(langs *langpack.Registry, credentials *credential.Generator, neuralGen *neural.Generator) *Assembler {
	return &Assembler{
		Langs:        langs,
		Credentials:  credentials,
		Neural:       neuralGen,
		companyCache: make(map[string]langpack.Company),
	}
}

// selfEmbeddingKinds lists structure kinds whose binder embeds credentials
// natively (a dedicated credentials sheet or slide), so the assembler must
// not also embed them into a body section.
var selfEmbeddingKinds = map[StructureKind]bool{
	StructureSpreadsheet:  true,
	StructurePresentation: true,
}

// Assemble builds one ContentStructure. Given identical (rng seed sequence)
// and in, it is deterministic modulo neural non-determinism at temperature
// > 0.
func (a *Assembler) Assemble(ctx context.Context, in Input, rng *rand.Rand) (*ContentStructure, error) {
	if err := ctx.Err(); err != nil {
		return nil, forgeerrors.Wrap(err, "assemble cancelled", forgeerrors.CategoryCancelled)
	}

	tmpl := templateFor(in.Format)
	pack := a.Langs.Pack(in.Language)
	company := a.companyFor(in.Language, rng)

	title := a.generateTitle(ctx, in.Topic, company, in.UseNeuralContent)

	sections := make([]Section, 0, len(tmpl.sections))
	for _, key := range tmpl.sections {
		body := a.generateSectionBody(ctx, key, in.Topic, pack, company, in.UseNeuralContent)
		sections = append(sections, Section{Title: sectionTitle(pack, key), Body: body})
	}

	creds, err := a.generateCredentials(ctx, in, pack, company, rng)
	if err != nil {
		return nil, err
	}

	cs := &ContentStructure{
		Title:       title,
		Sections:    sections,
		Credentials: creds,
		Language:    in.Language,
		FormatType:  in.Format,
	}
	cs.Metadata = map[string]any{
		"topic":       in.Topic,
		"language":    in.Language,
		"format":      in.Format,
		"generatedAt": time.Now().UTC().Format(time.RFC3339),
		"company":     company.Name,
	}
	for k, v := range in.Context {
		cs.Metadata[k] = v
	}

	a.embedCredentials(cs, pack, tmpl.kind, in.EmbedStrategy, rng)
	return cs, nil
}

func (a *Assembler) companyFor(language string, rng *rand.Rand) langpack.Company {
	if c, ok := a.companyCache[language]; ok {
		return c
	}
	c := a.Langs.RandomCompany(rng, language)
	a.companyCache[language] = c
	return c
}

func (a *Assembler) generateTitle(ctx context.Context, topic string, company langpack.Company, useNeural bool) string {
	if useNeural && a.Neural != nil && a.Neural.State() == neural.StateReady {
		prompt := fmt.Sprintf("Write a short, realistic document title about %s for %s. Title only, no quotes.", topic, company.Name)
		if out, err := a.Neural.Generate(ctx, prompt, neural.Options{MaxTokens: 32, Temperature: 0.7}); err == nil {
			if cleaned := clean(out); cleaned != "" && !exceedsEnglishTokenThreshold(cleaned, company.Language) {
				return strings.TrimSpace(strings.SplitN(cleaned, "\n", 2)[0])
			}
		}
	}
	return fmt.Sprintf("%s: %s", company.Name, titleCase(topic))
}

func (a *Assembler) generateSectionBody(ctx context.Context, sectionKey, topic string, pack langpack.Pack, company langpack.Company, useNeural bool) string {
	if useNeural && a.Neural != nil && a.Neural.State() == neural.StateReady {
		prompt := fmt.Sprintf("Write a short paragraph for the %q section of a document about %s at %s. Output only the paragraph text.", sectionKey, topic, company.Name)
		if out, err := a.Neural.Generate(ctx, prompt, neural.Options{MaxTokens: 200, Temperature: 0.7}); err == nil {
			if cleaned := clean(out); cleaned != "" {
				if exceedsEnglishTokenThreshold(cleaned, pack.Code) {
					if retried, err := a.Neural.Generate(ctx, fmt.Sprintf("Translate the following to %s, output only the translation:\n%s", pack.Name, cleaned), neural.Options{MaxTokens: 200, Temperature: 0.3}); err == nil {
						if recleaned := clean(retried); recleaned != "" {
							return recleaned
						}
					}
				} else {
					return cleaned
				}
			}
		}
	}
	return renderTemplate(pack.BodyTemplate, topic, company.Name)
}

func renderTemplate(tmpl, topic, company string) string {
	replacer := strings.NewReplacer("{topic}", topic, "{company}", company)
	return replacer.Replace(tmpl)
}

func (a *Assembler) generateCredentials(ctx context.Context, in Input, pack langpack.Pack, company langpack.Company, rng *rand.Rand) ([]credential.Credential, error) {
	n := in.MinCredentials
	if in.MaxCredentials > in.MinCredentials {
		n = in.MinCredentials + rng.Intn(in.MaxCredentials-in.MinCredentials+1)
	}
	if n > len(in.CredentialTypes) {
		n = len(in.CredentialTypes)
	}

	types := sampleWithoutReplacement(rng, in.CredentialTypes, n)
	creds := make([]credential.Credential, 0, len(types))
	for _, credType := range types {
		c, err := a.Credentials.Generate(ctx, credType, credential.Context{Company: company.Name, Topic: in.Topic, Language: in.Language})
		if err != nil {
			return nil, err
		}
		c.Label = pack.CredentialLabel(credType)
		creds = append(creds, c)
	}
	return creds, nil
}

func sampleWithoutReplacement(rng *rand.Rand, items []string, n int) []string {
	pool := append([]string(nil), items...)
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	if n > len(pool) {
		n = len(pool)
	}
	return pool[:n]
}

func (a *Assembler) embedCredentials(cs *ContentStructure, pack langpack.Pack, kind StructureKind, strategy request.EmbedStrategy, rng *rand.Rand) {
	if selfEmbeddingKinds[kind] {
		cs.CredentialsPreEmbedded = false
		return
	}

	effective := strategy
	if strategy == request.EmbedRandom {
		if rng.Intn(2) == 0 {
			effective = request.EmbedBody
		} else {
			effective = request.EmbedMetadata
		}
	}

	if effective == request.EmbedMetadata {
		cs.Metadata["credentials"] = cs.Credentials
		cs.CredentialsPreEmbedded = true
		return
	}

	idx := targetSectionIndex(cs.Sections)
	block := formatCredentialBlock(pack, cs.Credentials)
	cs.Sections[idx].Body = strings.TrimRight(cs.Sections[idx].Body, "\n") + "\n\n" + block
	cs.CredentialsPreEmbedded = true
}

func targetSectionIndex(sections []Section) int {
	for _, candidate := range configSectionCandidates {
		for i, s := range sections {
			if strings.Contains(strings.ToLower(s.Title), strings.ToLower(candidate)) {
				return i
			}
		}
	}
	return 0
}

func formatCredentialBlock(pack langpack.Pack, creds []credential.Credential) string {
	var b strings.Builder
	b.WriteString(pack.ConfigSectionName)
	b.WriteString(":\n")
	for _, c := range creds {
		label := c.Label
		if label == "" {
			label = pack.CredentialLabel(c.Type)
		}
		fmt.Fprintf(&b, "%s: %s\n", label, c.Value)
	}
	return strings.TrimRight(b.String(), "\n")
}
