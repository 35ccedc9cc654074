package binder

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"image/png"
	"math/rand"
	"strings"
	"time"

	"github.com/forgecraft/credentialforge/internal/content"
	"github.com/forgecraft/credentialforge/internal/forgeerrors"
	"github.com/fogleman/gg"
	"golang.org/x/image/bmp"
	"golang.org/x/image/font/basicfont"
)

const (
	canvasWidth  = 1000
	canvasHeight = 1400
	lineHeight   = 20
)

// imageBinder rasterizes a single page: title centered, a metadata block,
// the first lines of each section, and a credentials block, truncated to
// the canvas. png/jpg/jpeg use the stdlib encoders; bmp uses
// golang.org/x/image/bmp since the stdlib has no BMP encoder.
type imageBinder struct {
	ext string
}

func (b imageBinder) Synthesize(cs *content.ContentStructure, outputDir string) (string, error) {
	dc := gg.NewContext(canvasWidth, canvasHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetRGB(0, 0, 0)
	dc.SetFontFace(basicfont.Face7x13)

	y := float64(40)
	dc.DrawStringAnchored(cs.Title, canvasWidth/2, y, 0.5, 0.5)
	y += lineHeight * 2

	for k, v := range cs.Metadata {
		if k == "credentials" {
			continue
		}
		y = drawLine(dc, fmt.Sprintf("%s: %v", k, v), y)
	}
	y += lineHeight

	for _, s := range cs.Sections {
		if y > canvasHeight-lineHeight {
			break
		}
		y = drawLine(dc, s.Title, y)
		for _, line := range firstLines(s.Body, 3) {
			if y > canvasHeight-lineHeight {
				break
			}
			y = drawLine(dc, line, y)
		}
		y += lineHeight / 2
	}

	if !cs.CredentialsPreEmbedded {
		for _, line := range credentialLines(cs) {
			if y > canvasHeight-lineHeight {
				break
			}
			y = drawLine(dc, line, y)
		}
	} else if _, ok := credentialsFromMetadata(cs); ok {
		for _, line := range credentialLines(cs) {
			if y > canvasHeight-lineHeight {
				break
			}
			y = drawLine(dc, line, y)
		}
	}

	var buf bytes.Buffer
	var err error
	switch b.ext {
	case "jpg", "jpeg":
		err = jpeg.Encode(&buf, dc.Image(), &jpeg.Options{Quality: 90})
	case "bmp":
		err = bmp.Encode(&buf, dc.Image())
	default:
		err = png.Encode(&buf, dc.Image())
	}
	if err != nil {
		return "", forgeerrors.Wrap(err, "failed to encode raster image", forgeerrors.CategorySynthesizer)
	}

	name := filename("image", cs.Title, b.ext, rand.New(rand.NewSource(time.Now().UnixNano())))
	return writeFile(outputDir, name, buf.Bytes())
}

func drawLine(dc *gg.Context, text string, y float64) float64 {
	dc.DrawStringAnchored(text, 40, y, 0, 0.5)
	return y + lineHeight
}

func firstLines(body string, n int) []string {
	lines := strings.Split(body, "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	return lines
}
