// Package request defines the Request type — the forge's unit of user
// intent — and its validation against a pattern database and the closed
// set of supported output formats.
package request

import (
	"fmt"

	"github.com/forgecraft/credentialforge/internal/forgeerrors"
	"github.com/forgecraft/credentialforge/internal/patterndb"
)

// EmbedStrategy declares where a binder should place credentials.
type EmbedStrategy string

const (
	EmbedRandom   EmbedStrategy = "random"
	EmbedMetadata EmbedStrategy = "metadata"
	EmbedBody     EmbedStrategy = "body"
)

// SupportedFormats is the closed set of output format identifiers.
var SupportedFormats = map[string]bool{
	"eml": true, "msg": true,
	"xlsm": true, "xlsx": true, "xltm": true, "xls": true, "xlsb": true,
	"docx": true, "doc": true, "docm": true, "rtf": true,
	"odf": true, "ods": true, "odp": true, "odt": true,
	"pptx": true, "ppt": true,
	"pdf": true,
	"png": true, "jpg": true, "jpeg": true, "bmp": true,
	"vsd": true, "vsdx": true, "vsdm": true, "vssx": true, "vssm": true, "vstx": true, "vstm": true,
}

// SupportedLanguages is the closed set of language codes; Languages == nil
// in a Request means "choose per file based on the selected company".
var SupportedLanguages = map[string]bool{
	"en": true, "fr": true, "es": true, "de": true, "it": true,
	"pt": true, "nl": true, "tr": true, "zh": true, "ja": true,
}

// Request is the user's intent: how many files, in which formats, with
// which credential types, about which topics, in which languages.
type Request struct {
	OutputDir       string
	NumFiles        int
	BatchSize       int
	Formats         []string
	CredentialTypes []string
	Topics          []string
	// Languages is nil to mean "choose per file from the selected
	// company's language"; otherwise a non-empty set of codes to sample
	// from.
	Languages             []string
	EmbedStrategy         EmbedStrategy
	Seed                  *int64
	MinCredentialsPerFile int
	MaxCredentialsPerFile int
	UseNeuralContent      bool
	UseNeuralCredentials  bool
	MemoryLimitGiB        float64
	MaxWorkers            int
	UseProcessIsolation   bool
	// RateLimitPerMin caps how many file jobs the worker pool admits per
	// minute; 0 disables rate limiting.
	RateLimitPerMin int
}

// Validate checks every Request invariant against db, returning the first
// violation found as a CategoryValidation error.
func (r Request) Validate(db *patterndb.Database) error {
	if r.OutputDir == "" {
		return fail("outputDir must not be empty")
	}
	if r.NumFiles < 1 {
		return fail("numFiles must be >= 1")
	}
	if r.BatchSize < 1 {
		return fail("batchSize must be >= 1")
	}
	if len(r.Formats) == 0 {
		return fail("formats must not be empty")
	}
	for _, f := range r.Formats {
		if !SupportedFormats[f] {
			return fail(fmt.Sprintf("unsupported format: %s", f))
		}
	}
	if len(r.CredentialTypes) == 0 {
		return fail("credentialTypes must not be empty")
	}
	for _, ct := range r.CredentialTypes {
		if !db.HasCredentialType(ct) {
			return fail(fmt.Sprintf("unknown credential type: %s", ct))
		}
	}
	if len(r.Topics) == 0 {
		return fail("topics must not be empty")
	}
	for _, lang := range r.Languages {
		if !SupportedLanguages[lang] {
			return fail(fmt.Sprintf("unsupported language: %s", lang))
		}
	}
	switch r.EmbedStrategy {
	case EmbedRandom, EmbedMetadata, EmbedBody:
	default:
		return fail(fmt.Sprintf("invalid embedStrategy: %s", r.EmbedStrategy))
	}
	if r.MinCredentialsPerFile < 1 {
		return fail("minCredentialsPerFile must be >= 1")
	}
	if r.MaxCredentialsPerFile < r.MinCredentialsPerFile {
		return fail("maxCredentialsPerFile must be >= minCredentialsPerFile")
	}
	if r.MaxCredentialsPerFile > len(r.CredentialTypes) {
		return fail("maxCredentialsPerFile must be <= |credentialTypes|")
	}
	return nil
}

func fail(msg string) error {
	return forgeerrors.New(msg, forgeerrors.CategoryValidation)
}
