package binder

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/forgecraft/credentialforge/internal/content"
)

// rtfBinder hand-rolls a minimal `{\rtf1\ansi\deff0 ...}` document — no
// library in the forge's dependency stack authors RTF.
type rtfBinder struct{}

func (rtfBinder) Synthesize(cs *content.ContentStructure, outputDir string) (string, error) {
	var b strings.Builder
	b.WriteString(`{\rtf1\ansi\deff0{\fonttbl{\f0 Calibri;}}`)
	fmt.Fprintf(&b, `\f0\fs36\b %s\b0\par`, rtfEscape(cs.Title))

	for _, s := range cs.Sections {
		fmt.Fprintf(&b, `\fs28\b %s\b0\par`, rtfEscape(s.Title))
		for _, p := range strings.Split(s.Body, "\n\n") {
			fmt.Fprintf(&b, `\fs22 %s\par`, rtfEscape(p))
		}
	}

	if !cs.CredentialsPreEmbedded {
		fmt.Fprintf(&b, `\fs28\b %s\b0\par`, rtfEscape("Configuration Details"))
		for _, line := range credentialLines(cs) {
			fmt.Fprintf(&b, `\fs22 %s\par`, rtfEscape(line))
		}
	} else if _, ok := credentialsFromMetadata(cs); ok {
		fmt.Fprintf(&b, `\fs28\b %s\b0\par`, rtfEscape("Configuration Details"))
		for _, line := range credentialLines(cs) {
			fmt.Fprintf(&b, `\fs22 %s\par`, rtfEscape(line))
		}
	}
	b.WriteString("}")

	name := filename("document", cs.Title, "rtf", rand.New(rand.NewSource(time.Now().UnixNano())))
	return writeFile(outputDir, name, []byte(b.String()))
}

// rtfEscape escapes RTF control characters and non-ASCII runes as unicode
// escapes, matching the minimal subset {\rtf1\ansi...} can render safely.
func rtfEscape(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\\', '{', '}':
			b.WriteByte('\\')
			b.WriteRune(r)
		default:
			if r > 127 {
				fmt.Fprintf(&b, `\u%d?`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}
