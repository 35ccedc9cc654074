package binder

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/forgecraft/credentialforge/internal/content"
	"github.com/forgecraft/credentialforge/internal/forgeerrors"
)

// wordBinder covers docx/doc/docm (OOXML WordprocessingML) and odt/odf
// (OpenDocument Text). No library in the forge's dependency stack authors
// either container format, so both are hand-rolled zip+XML, consistent
// with the spec's own precedent for RTF (see DESIGN.md).
type wordBinder struct {
	ext string
}

func (b wordBinder) Synthesize(cs *content.ContentStructure, outputDir string) (string, error) {
	var data []byte
	var err error
	if b.ext == "odt" || b.ext == "odf" {
		data, err = buildODT(cs)
	} else {
		data, err = buildDOCX(cs)
	}
	if err != nil {
		return "", err
	}
	name := filename("document", cs.Title, b.ext, rand.New(rand.NewSource(time.Now().UnixNano())))
	return writeFile(outputDir, name, data)
}

// docxParagraph and docxHeading are minimal WordprocessingML building
// blocks; document.xml is assembled by hand rather than via a library,
// since none in the pack authors OOXML WordprocessingML.
func buildDOCX(cs *content.ContentStructure) ([]byte, error) {
	var body strings.Builder
	body.WriteString(wordHeading(0, cs.Title))
	for _, s := range cs.Sections {
		body.WriteString(wordHeading(1, s.Title))
		for _, p := range strings.Split(s.Body, "\n\n") {
			body.WriteString(wordParagraph(p))
		}
	}
	if !cs.CredentialsPreEmbedded {
		body.WriteString(wordHeading(1, "Configuration Details"))
		for _, line := range credentialLines(cs) {
			body.WriteString(wordParagraph(line))
		}
	}

	documentXML := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>%s<w:sectPr/></w:body>
</w:document>`, body.String())

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	files := map[string]string{
		"[Content_Types].xml": contentTypesXML,
		"_rels/.rels":         relsXML,
		"word/document.xml":   documentXML,
	}
	if _, ok := credentialsFromMetadata(cs); ok {
		files["[Content_Types].xml"] = contentTypesXMLWithCoreProps
		files["_rels/.rels"] = relsXMLWithCoreProps
		files["docProps/core.xml"] = coreXML(cs)
	}
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			return nil, forgeerrors.Wrap(err, "failed to add docx entry", forgeerrors.CategorySynthesizer)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			return nil, forgeerrors.Wrap(err, "failed to write docx entry", forgeerrors.CategorySynthesizer)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, forgeerrors.Wrap(err, "failed to close docx archive", forgeerrors.CategorySynthesizer)
	}
	return buf.Bytes(), nil
}

func wordHeading(level int, text string) string {
	style := "Title"
	if level > 0 {
		style = fmt.Sprintf("Heading%d", level)
	}
	return fmt.Sprintf(`<w:p><w:pPr><w:pStyle w:val=%q/></w:pPr><w:r><w:t xml:space="preserve">%s</w:t></w:r></w:p>`, style, xmlEscape(text))
}

func wordParagraph(text string) string {
	return fmt.Sprintf(`<w:p><w:r><w:t xml:space="preserve">%s</w:t></w:r></w:p>`, xmlEscape(text))
}

func xmlEscape(s string) string {
	var b bytes.Buffer
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

const contentTypesXMLWithCoreProps = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>
</Types>`

const relsXMLWithCoreProps = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/>
</Relationships>`

// coreXML renders the OOXML core-properties part, carrying the assembler's
// metadata-strategy credentials in dc:description since no body section
// holds them in that case.
func coreXML(cs *content.ContentStructure) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/">
<dc:description>%s</dc:description>
</cp:coreProperties>`, xmlEscape(strings.Join(credentialLines(cs), "; ")))
}

// buildODT assembles a minimal OpenDocument Text package. The mimetype
// entry must be the first zip entry and stored uncompressed per the ODF
// packaging spec.
func buildODT(cs *content.ContentStructure) ([]byte, error) {
	var body strings.Builder
	body.WriteString(odtHeading("Title", cs.Title))
	for _, s := range cs.Sections {
		body.WriteString(odtHeading("Heading_20_1", s.Title))
		for _, p := range strings.Split(s.Body, "\n\n") {
			body.WriteString(odtParagraph(p))
		}
	}
	if !cs.CredentialsPreEmbedded {
		body.WriteString(odtHeading("Heading_20_1", "Configuration Details"))
		for _, line := range credentialLines(cs) {
			body.WriteString(odtParagraph(line))
		}
	}

	contentXML := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<office:document-content xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0" xmlns:text="urn:oasis:names:tc:opendocument:xmlns:text:1.0">
<office:body><office:text>%s</office:text></office:body>
</office:document-content>`, body.String())

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	mimeWriter, err := zw.CreateHeader(&zip.FileHeader{Name: "mimetype", Method: zip.Store})
	if err != nil {
		return nil, forgeerrors.Wrap(err, "failed to add odt mimetype entry", forgeerrors.CategorySynthesizer)
	}
	if _, err := mimeWriter.Write([]byte("application/vnd.oasis.opendocument.text")); err != nil {
		return nil, forgeerrors.Wrap(err, "failed to write odt mimetype", forgeerrors.CategorySynthesizer)
	}

	manifest := `<?xml version="1.0" encoding="UTF-8"?>
<manifest:manifest xmlns:manifest="urn:oasis:names:tc:opendocument:xmlns:manifest:1.0">
<manifest:file-entry manifest:full-path="/" manifest:media-type="application/vnd.oasis.opendocument.text"/>
<manifest:file-entry manifest:full-path="content.xml" manifest:media-type="text/xml"/>
</manifest:manifest>`

	files := map[string]string{
		"META-INF/manifest.xml": manifest,
		"content.xml":           contentXML,
	}
	if _, ok := credentialsFromMetadata(cs); ok {
		files["META-INF/manifest.xml"] = manifest[:strings.LastIndex(manifest, "</manifest:manifest>")] +
			`<manifest:file-entry manifest:full-path="meta.xml" manifest:media-type="text/xml"/>` +
			"</manifest:manifest>"
		files["meta.xml"] = odtMetaXML(cs)
	}
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			return nil, forgeerrors.Wrap(err, "failed to add odt entry", forgeerrors.CategorySynthesizer)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			return nil, forgeerrors.Wrap(err, "failed to write odt entry", forgeerrors.CategorySynthesizer)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, forgeerrors.Wrap(err, "failed to close odt archive", forgeerrors.CategorySynthesizer)
	}
	return buf.Bytes(), nil
}

func odtHeading(style, text string) string {
	return fmt.Sprintf(`<text:h text:style-name=%q>%s</text:h>`, style, xmlEscape(text))
}

func odtParagraph(text string) string {
	return fmt.Sprintf(`<text:p>%s</text:p>`, xmlEscape(text))
}

// odtMetaXML renders the ODF metadata part, carrying the assembler's
// metadata-strategy credentials as user-defined metadata fields since no
// body paragraph holds them in that case.
func odtMetaXML(cs *content.ContentStructure) string {
	var fields strings.Builder
	for i, line := range credentialLines(cs) {
		fmt.Fprintf(&fields, `<meta:user-defined meta:name="config-%d">%s</meta:user-defined>`, i, xmlEscape(line))
	}
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<office:document-meta xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0" xmlns:meta="urn:oasis:names:tc:opendocument:xmlns:meta:1.0">
<office:meta>%s</office:meta>
</office:document-meta>`, fields.String())
}
