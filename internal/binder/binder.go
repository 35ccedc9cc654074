// Package binder serializes a content.ContentStructure to a concrete file
// on disk, one Binder implementation per format family. Every Synthesize
// call writes atomically (write-to-temp-then-rename) so a crash mid-write
// never leaves a half-written artifact at the final path, and falls back
// to a plain-text rendering if its underlying serializer errors.
package binder

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/forgecraft/credentialforge/internal/content"
	"github.com/forgecraft/credentialforge/internal/credential"
	"github.com/forgecraft/credentialforge/internal/forgeerrors"
	natomic "github.com/natefinch/atomic"
)

// Binder serializes a ContentStructure to outputDir, returning the path to
// the file it wrote.
type Binder interface {
	Synthesize(cs *content.ContentStructure, outputDir string) (string, error)
}

// New returns the Binder registered for format, or a textBinder fallback if
// format has no dedicated implementation (mirrors the "no serializer
// available → textual .txt fallback" common rule).
func New(format string) Binder {
	if b, ok := registry[format]; ok {
		return b
	}
	return textBinder{}
}

var registry = map[string]Binder{
	"eml": emailBinder{ext: "eml"},
	"msg": emailBinder{ext: "msg"},

	"xlsx": spreadsheetBinder{ext: "xlsx"},
	"xls":  spreadsheetBinder{ext: "xls"},
	"xlsm": spreadsheetBinder{ext: "xlsm"},
	"xlsb": spreadsheetBinder{ext: "xlsb"},
	"xltm": spreadsheetBinder{ext: "xltm"},
	"ods":  spreadsheetBinder{ext: "ods"},

	"docx": wordBinder{ext: "docx"},
	"doc":  wordBinder{ext: "doc"},
	"docm": wordBinder{ext: "docm"},
	"odt":  wordBinder{ext: "odt"},
	"odf":  wordBinder{ext: "odf"},
	"rtf":  rtfBinder{},

	"pptx": presentationBinder{ext: "pptx"},
	"ppt":  presentationBinder{ext: "ppt"},
	"odp":  presentationBinder{ext: "odp"},

	"pdf": pdfBinder{},

	"png":  imageBinder{ext: "png"},
	"jpg":  imageBinder{ext: "jpg"},
	"jpeg": imageBinder{ext: "jpeg"},
	"bmp":  imageBinder{ext: "bmp"},

	"vsdx": diagramBinder{ext: "vsdx"},
	"vsd":  diagramBinder{ext: "vsd"},
	"vsdm": diagramBinder{ext: "vsdm"},
	"vssx": diagramBinder{ext: "vssx"},
	"vssm": diagramBinder{ext: "vssm"},
	"vstx": diagramBinder{ext: "vstx"},
	"vstm": diagramBinder{ext: "vstm"},
}

var slugInvalid = regexp.MustCompile(`[^a-z0-9_-]+`)

// filename builds "<kind>_<slug-of-title>_<yyyymmdd_hhmmss>_<rand4>.<ext>".
func filename(kind, title, ext string, rng *rand.Rand) string {
	slug := strings.ToLower(strings.ReplaceAll(title, " ", "_"))
	slug = slugInvalid.ReplaceAllString(slug, "")
	if slug == "" {
		slug = "document"
	}
	ts := time.Now().Format("20060102_150405")
	id := 1000 + rng.Intn(9000)
	return fmt.Sprintf("%s_%s_%s_%04d.%s", kind, slug, ts, id, ext)
}

// writeFile ensures outputDir exists and atomically writes data to
// filepath.Join(outputDir, name), returning the final path.
func writeFile(outputDir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", forgeerrors.Wrap(err, "failed to create output directory", forgeerrors.CategorySynthesizer)
	}
	path := filepath.Join(outputDir, name)
	if err := natomic.WriteFile(path, strings.NewReader(string(data))); err != nil {
		return "", forgeerrors.Wrap(err, fmt.Sprintf("failed to write %s", path), forgeerrors.CategorySynthesizer)
	}
	return path, nil
}

// credentialsFromMetadata reports whether the assembler used the metadata
// embed strategy, stashing cs.Credentials into cs.Metadata["credentials"]
// instead of a body section. Binders with a genuine metadata container
// (email headers, OOXML/ODF core properties, a PDF Info dictionary) must
// write the credentials there in this case rather than dropping them.
func credentialsFromMetadata(cs *content.ContentStructure) ([]credential.Credential, bool) {
	creds, ok := cs.Metadata["credentials"].([]credential.Credential)
	return creds, ok && len(creds) > 0
}

// credentialLines renders "label: value" lines for cs's credentials,
// falling back to the type itself when Label is empty.
func credentialLines(cs *content.ContentStructure) []string {
	lines := make([]string, 0, len(cs.Credentials))
	for _, c := range cs.Credentials {
		label := c.Label
		if label == "" {
			label = c.Type
		}
		lines = append(lines, fmt.Sprintf("%s: %s", label, c.Value))
	}
	return lines
}

// textBinder is the universal fallback: a plain-text rendering of the
// ContentStructure, used when no dedicated serializer is available.
type textBinder struct{}

func (textBinder) Synthesize(cs *content.ContentStructure, outputDir string) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", cs.Title)
	for _, s := range cs.Sections {
		fmt.Fprintf(&b, "%s\n%s\n\n", s.Title, s.Body)
	}
	if !cs.CredentialsPreEmbedded {
		b.WriteString("Credentials:\n")
		for _, line := range credentialLines(cs) {
			b.WriteString(line + "\n")
		}
	} else if _, ok := credentialsFromMetadata(cs); ok {
		b.WriteString("Credentials:\n")
		for _, line := range credentialLines(cs) {
			b.WriteString(line + "\n")
		}
	}
	name := filename(cs.FormatType, cs.Title, "txt", rand.New(rand.NewSource(time.Now().UnixNano())))
	return writeFile(outputDir, name, []byte(b.String()))
}
