package binder

import (
	"archive/zip"
	"bytes"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/forgecraft/credentialforge/internal/content"
	"github.com/forgecraft/credentialforge/internal/forgeerrors"
)

// diagramBinder covers the vsd/vsdx family with a simplified Visio-like
// page: one shape per title/section/credentials-list entry, each carrying
// PinX/PinY/Width/Height and a Text node. True VSDX is OOXML (zip+XML), so
// that container is used for every extension in this family rather than
// attempting the legacy binary OLE/CFBF .vsd format, which no library in
// the pack authors (see DESIGN.md).
type diagramBinder struct {
	ext string
}

func (b diagramBinder) Synthesize(cs *content.ContentStructure, outputDir string) (string, error) {
	var shapes strings.Builder
	id := 1
	writeShape(&shapes, &id, cs.Title, 4.25, 0.5)

	y := 1.5
	for _, s := range cs.Sections {
		writeShape(&shapes, &id, fmt.Sprintf("%s: %s", s.Title, firstLine(s.Body)), 4.25, y)
		y += 1.0
	}

	if !cs.CredentialsPreEmbedded {
		for _, line := range credentialLines(cs) {
			writeShape(&shapes, &id, line, 4.25, y)
			y += 0.5
		}
	} else if _, ok := credentialsFromMetadata(cs); ok {
		for _, line := range credentialLines(cs) {
			writeShape(&shapes, &id, line, 4.25, y)
			y += 0.5
		}
	}

	pageXML := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<VisioDocument xmlns="http://schemas.microsoft.com/office/visio/2012/main">
<Pages><Page><Shapes>%s</Shapes></Page></Pages>
</VisioDocument>`, shapes.String())

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	entries := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="xml" ContentType="application/xml"/></Types>`,
		"visio/pages/page1.xml": pageXML,
	}
	for name, content := range entries {
		w, err := zw.Create(name)
		if err != nil {
			return "", forgeerrors.Wrap(err, "failed to add diagram entry", forgeerrors.CategorySynthesizer)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			return "", forgeerrors.Wrap(err, "failed to write diagram entry", forgeerrors.CategorySynthesizer)
		}
	}
	if err := zw.Close(); err != nil {
		return "", forgeerrors.Wrap(err, "failed to close diagram archive", forgeerrors.CategorySynthesizer)
	}

	name := filename("diagram", cs.Title, b.ext, rand.New(rand.NewSource(time.Now().UnixNano())))
	return writeFile(outputDir, name, buf.Bytes())
}

func writeShape(b *strings.Builder, id *int, text string, pinX, pinY float64) {
	fmt.Fprintf(b, `<Shape ID="%d"><PinX>%.2f</PinX><PinY>%.2f</PinY><Width>3</Width><Height>0.5</Height><Text>%s</Text></Shape>`,
		*id, pinX, pinY, xmlEscape(text))
	*id++
}
