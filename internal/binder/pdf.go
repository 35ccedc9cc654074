package binder

import (
	"bytes"
	"math/rand"
	"strings"
	"time"

	"github.com/forgecraft/credentialforge/internal/content"
	"github.com/forgecraft/credentialforge/internal/forgeerrors"
	"github.com/go-pdf/fpdf"
)

// pdfBinder renders a single-column document: centered level-0 title,
// section headings, wrapped paragraphs, and a final credentials block.
type pdfBinder struct{}

func (pdfBinder) Synthesize(cs *content.ContentStructure, outputDir string) (string, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	if _, ok := credentialsFromMetadata(cs); ok {
		pdf.SetSubject(strings.Join(credentialLines(cs), "; "), true)
	}
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 20)
	pdf.CellFormat(0, 12, cs.Title, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	for _, s := range cs.Sections {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 8, s.Title, "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.MultiCell(0, 6, s.Body, "", "L", false)
		pdf.Ln(2)
	}

	if !cs.CredentialsPreEmbedded {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 8, "Configuration Details", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		for _, line := range credentialLines(cs) {
			pdf.MultiCell(0, 6, line, "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return "", forgeerrors.Wrap(err, "failed to render pdf", forgeerrors.CategorySynthesizer)
	}

	name := filename("document", cs.Title, "pdf", rand.New(rand.NewSource(time.Now().UnixNano())))
	return writeFile(outputDir, name, buf.Bytes())
}
