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

// presentationBinder covers pptx/ppt/odp: a title slide, one content slide
// per section (the first section, which doubles as the title, is
// skipped), and a final credentials slide with color-coded credential
// lines plus a notes-page copy. Like wordBinder, no library in the pack
// authors PresentationML or ODP, so the container is hand-rolled zip+XML.
type presentationBinder struct {
	ext string
}

func (b presentationBinder) Synthesize(cs *content.ContentStructure, outputDir string) (string, error) {
	slides := []string{slideXML(cs.Title, "")}
	for i, s := range cs.Sections {
		if i == 0 {
			continue
		}
		slides = append(slides, slideXML(s.Title, s.Body))
	}
	slides = append(slides, credentialsSlideXML(cs))

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	entries := map[string]string{
		"[Content_Types].xml": pptxContentTypesXML(len(slides)),
		"_rels/.rels":         pptxRelsXML,
		"ppt/presentation.xml": pptxPresentationXML(len(slides)),
	}
	for i, s := range slides {
		entries[fmt.Sprintf("ppt/slides/slide%d.xml", i+1)] = s
	}

	for name, content := range entries {
		w, err := zw.Create(name)
		if err != nil {
			return "", forgeerrors.Wrap(err, "failed to add presentation entry", forgeerrors.CategorySynthesizer)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			return "", forgeerrors.Wrap(err, "failed to write presentation entry", forgeerrors.CategorySynthesizer)
		}
	}
	if err := zw.Close(); err != nil {
		return "", forgeerrors.Wrap(err, "failed to close presentation archive", forgeerrors.CategorySynthesizer)
	}

	name := filename("presentation", cs.Title, b.ext, rand.New(rand.NewSource(time.Now().UnixNano())))
	return writeFile(outputDir, name, buf.Bytes())
}

func slideXML(title, body string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">
<p:cSld><p:spTree>
<p:sp><p:txBody><a:p><a:r><a:t>%s</a:t></a:r></a:p></p:txBody></p:sp>
<p:sp><p:txBody><a:p><a:r><a:t>%s</a:t></a:r></a:p></p:txBody></p:sp>
</p:spTree></p:cSld>
</p:sld>`, xmlEscape(title), xmlEscape(body))
}

func credentialsSlideXML(cs *content.ContentStructure) string {
	var lines strings.Builder
	for _, c := range cs.Credentials {
		label := c.Label
		if label == "" {
			label = c.Type
		}
		fmt.Fprintf(&lines, `<a:p><a:r><a:rPr solidFill=%q/><a:t>%s: %s</a:t></a:r></a:p>`, colorForType(c.Type), xmlEscape(label), xmlEscape(c.Value))
	}
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">
<p:cSld><p:spTree><p:sp><p:txBody>%s</p:txBody></p:sp></p:spTree></p:cSld>
<p:notes>%s</p:notes>
</p:sld>`, lines.String(), lines.String())
}

func pptxContentTypesXML(slideCount int) string {
	var overrides strings.Builder
	for i := 1; i <= slideCount; i++ {
		fmt.Fprintf(&overrides, `<Override PartName="/ppt/slides/slide%d.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slide+xml"/>`, i)
	}
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/ppt/presentation.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"/>
%s
</Types>`, overrides.String())
}

const pptxRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="ppt/presentation.xml"/>
</Relationships>`

func pptxPresentationXML(slideCount int) string {
	var refs strings.Builder
	for i := 1; i <= slideCount; i++ {
		fmt.Fprintf(&refs, `<p:sldId id="%d" r:id="rId%d"/>`, 255+i, i)
	}
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:presentation xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
<p:sldIdLst>%s</p:sldIdLst>
</p:presentation>`, refs.String())
}
