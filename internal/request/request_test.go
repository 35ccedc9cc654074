package request

import (
	"testing"

	"github.com/forgecraft/credentialforge/internal/forgeerrors"
	"github.com/forgecraft/credentialforge/internal/patterndb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() Request {
	return Request{
		OutputDir:             "/tmp/out",
		NumFiles:              10,
		BatchSize:             4,
		Formats:               []string{"eml", "xlsx"},
		CredentialTypes:       []string{"aws_access_key", "jwt_token"},
		Topics:                []string{"infrastructure migration"},
		Languages:             []string{"en"},
		EmbedStrategy:         EmbedBody,
		MinCredentialsPerFile: 1,
		MaxCredentialsPerFile: 2,
	}
}

func TestValidate_AcceptsWellFormedRequest(t *testing.T) {
	db := patterndb.NewDefault()
	require.NoError(t, validRequest().Validate(db))
}

func TestValidate_RejectsUnknownCredentialType(t *testing.T) {
	db := patterndb.NewDefault()
	r := validRequest()
	r.CredentialTypes = []string{"not_a_real_type"}
	err := r.Validate(db)
	require.Error(t, err)
	assert.Equal(t, forgeerrors.CategoryValidation, forgeerrors.CategoryOf(err))
}

func TestValidate_RejectsUnsupportedFormat(t *testing.T) {
	db := patterndb.NewDefault()
	r := validRequest()
	r.Formats = []string{"exe"}
	require.Error(t, r.Validate(db))
}

func TestValidate_RejectsBadCredentialBounds(t *testing.T) {
	db := patterndb.NewDefault()

	r := validRequest()
	r.MinCredentialsPerFile = 0
	require.Error(t, r.Validate(db))

	r = validRequest()
	r.MaxCredentialsPerFile = 0
	require.Error(t, r.Validate(db))

	r = validRequest()
	r.MaxCredentialsPerFile = len(r.CredentialTypes) + 1
	require.Error(t, r.Validate(db))
}

func TestValidate_RejectsUnsupportedLanguage(t *testing.T) {
	db := patterndb.NewDefault()
	r := validRequest()
	r.Languages = []string{"xx"}
	require.Error(t, r.Validate(db))
}

func TestValidate_NilLanguagesMeansPerFileChoice(t *testing.T) {
	db := patterndb.NewDefault()
	r := validRequest()
	r.Languages = nil
	require.NoError(t, r.Validate(db))
}

func TestValidate_RejectsEmptyTopics(t *testing.T) {
	db := patterndb.NewDefault()
	r := validRequest()
	r.Topics = nil
	require.Error(t, r.Validate(db))
}
