// Package validator checks a previously generated file for credential
// detectability against a pattern database: which registered credential
// types appear in the file, and how many times.
package validator

import (
	"fmt"
	"os"
	"regexp"

	"github.com/forgecraft/credentialforge/internal/forgeerrors"
	"github.com/forgecraft/credentialforge/internal/patterndb"
)

// Report is the outcome of validating one file.
type Report struct {
	File             string
	Valid            bool
	CredentialsFound map[string]int
	Errors           []string
}

// ValidateFile reads path and counts, for every credential type registered
// in db, how many times its pattern matches the raw file bytes. Binary
// container formats (docx, xlsx, pdf, images, ...) still match on any
// credential text that survives as plaintext inside the container (e.g.
// embedded XML parts), matching the source tool's own byte-level approach.
func ValidateFile(path string, db *patterndb.Database) (Report, error) {
	report := Report{File: path, CredentialsFound: make(map[string]int)}

	data, err := os.ReadFile(path)
	if err != nil {
		return report, forgeerrors.Wrap(err, fmt.Sprintf("failed to read file: %s", path), forgeerrors.CategoryValidation)
	}

	for _, credType := range db.ListTypes() {
		entry, err := db.Get(credType)
		if err != nil {
			report.Errors = append(report.Errors, err.Error())
			continue
		}
		re, err := regexp.Compile(entry.Regex)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("invalid regex for %q: %v", credType, err))
			continue
		}
		if n := len(re.FindAll(data, -1)); n > 0 {
			report.CredentialsFound[credType] = n
		}
	}

	report.Valid = len(report.Errors) == 0 && len(report.CredentialsFound) > 0
	return report, nil
}
