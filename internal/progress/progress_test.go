package progress

import (
	"bytes"
	"testing"
)

func TestNew_DisabledIsNoop(t *testing.T) {
	r := New(Config{Enabled: false})
	r.Start(10)
	r.FileCompleted("a.eml")
	r.FileFailed(1, nil)
	r.Finish()
}

func TestNew_EnabledRendersToWriter(t *testing.T) {
	var buf bytes.Buffer
	r := New(Config{Enabled: true, Writer: &buf})
	r.Start(3)
	r.FileCompleted("a.eml")
	r.FileCompleted("b.eml")
	r.FileFailed(2, nil)
	r.Finish()

	if buf.Len() == 0 {
		t.Error("expected progress output to be written")
	}
}
