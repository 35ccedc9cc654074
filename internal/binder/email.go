package binder

import (
	"fmt"
	"math/rand"
	"mime/multipart"
	"strings"
	"time"

	"github.com/forgecraft/credentialforge/internal/content"
	"github.com/forgecraft/credentialforge/internal/forgeerrors"
	"github.com/google/uuid"
)

// emailBinder renders eml/msg as a multipart/alternative MIME message with
// plain-text and HTML parts assembled from the ContentStructure's sections.
// msg is written with the same MIME body under a .msg extension — the
// forge has no true Outlook MSG (CFBF) writer in its dependency stack, so
// this is a documented simplification (see DESIGN.md).
type emailBinder struct {
	ext string
}

func (b emailBinder) Synthesize(cs *content.ContentStructure, outputDir string) (string, error) {
	var buf strings.Builder
	writer := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s <noreply@%s>\r\n", companyName(cs), domainFor(cs))
	fmt.Fprintf(&buf, "To: recipient@example.com\r\n")
	fmt.Fprintf(&buf, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	fmt.Fprintf(&buf, "Message-ID: <%s@%s>\r\n", uuid.NewString(), domainFor(cs))
	fmt.Fprintf(&buf, "Subject: %s\r\n", subjectLine(cs))
	if _, ok := credentialsFromMetadata(cs); ok {
		fmt.Fprintf(&buf, "X-Config-Data: %s\r\n", strings.Join(credentialLines(cs), "; "))
	}
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", writer.Boundary())

	plain, html := renderBodies(cs)

	plainPart, err := writer.CreatePart(map[string][]string{"Content-Type": {"text/plain; charset=utf-8"}})
	if err != nil {
		return "", forgeerrors.Wrap(err, "failed to create plain-text MIME part", forgeerrors.CategorySynthesizer)
	}
	if _, err := plainPart.Write([]byte(plain)); err != nil {
		return "", forgeerrors.Wrap(err, "failed to write plain-text MIME part", forgeerrors.CategorySynthesizer)
	}

	htmlPart, err := writer.CreatePart(map[string][]string{"Content-Type": {"text/html; charset=utf-8"}})
	if err != nil {
		return "", forgeerrors.Wrap(err, "failed to create HTML MIME part", forgeerrors.CategorySynthesizer)
	}
	if _, err := htmlPart.Write([]byte(html)); err != nil {
		return "", forgeerrors.Wrap(err, "failed to write HTML MIME part", forgeerrors.CategorySynthesizer)
	}

	if err := writer.Close(); err != nil {
		return "", forgeerrors.Wrap(err, "failed to close MIME writer", forgeerrors.CategorySynthesizer)
	}

	name := filename("email", cs.Title, b.ext, rand.New(rand.NewSource(time.Now().UnixNano())))
	return writeFile(outputDir, name, []byte(buf.String()))
}

func companyName(cs *content.ContentStructure) string {
	if company, ok := cs.Metadata["company"].(string); ok && company != "" {
		return company
	}
	return "Example Corp"
}

func domainFor(cs *content.ContentStructure) string {
	name := strings.ToLower(companyName(cs))
	name = strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' {
			return r
		}
		return -1
	}, name)
	if name == "" {
		name = "example"
	}
	return name + ".com"
}

func subjectLine(cs *content.ContentStructure) string {
	for _, s := range cs.Sections {
		if strings.EqualFold(s.Title, "subject") {
			return firstLine(s.Body)
		}
	}
	return cs.Title
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// renderBodies joins every section into a plain-text body and a minimal
// HTML equivalent, embedding credentials unless the assembler already did.
func renderBodies(cs *content.ContentStructure) (plain, html string) {
	var p, h strings.Builder
	for _, s := range cs.Sections {
		if strings.EqualFold(s.Title, "subject") {
			continue
		}
		fmt.Fprintf(&p, "%s\n\n", s.Body)
		fmt.Fprintf(&h, "<p><strong>%s</strong></p><p>%s</p>", s.Title, strings.ReplaceAll(s.Body, "\n", "<br>"))
	}
	if !cs.CredentialsPreEmbedded {
		p.WriteString("Configuration Details:\n")
		h.WriteString("<p><strong>Configuration Details</strong></p><ul>")
		for _, line := range credentialLines(cs) {
			p.WriteString(line + "\n")
			fmt.Fprintf(&h, "<li>%s</li>", line)
		}
		h.WriteString("</ul>")
	}
	return p.String(), h.String()
}
