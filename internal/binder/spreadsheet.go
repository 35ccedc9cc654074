package binder

import (
	"bytes"
	"fmt"
	"math/rand"
	"time"

	"github.com/forgecraft/credentialforge/internal/content"
	"github.com/forgecraft/credentialforge/internal/forgeerrors"
	"github.com/xuri/excelize/v2"
)

// credentialFamilyColors assigns a fill color per rough credential family,
// matching §4.6's "color-coded by type family" requirement.
var credentialFamilyColors = map[string]string{
	"aws":    "FFE8CC",
	"azure":  "CCE5FF",
	"google": "D9F2D9",
	"github": "E0E0E0",
	"slack":  "F0E0FF",
}

func colorForType(credType string) string {
	for prefix, color := range credentialFamilyColors {
		if len(credType) >= len(prefix) && credType[:len(prefix)] == prefix {
			return color
		}
	}
	return "FFFFFF"
}

// spreadsheetBinder covers xlsx/xls/xlsm/xlsb/ods. excelize natively writes
// the OOXML xlsx format; non-xlsx extensions in this family are saved with
// the same workbook content under their requested extension, a documented
// simplification since excelize does not emit true legacy .xls/.xlsb/.ods
// binaries (see DESIGN.md).
type spreadsheetBinder struct {
	ext string
}

func (b spreadsheetBinder) Synthesize(cs *content.ContentStructure, outputDir string) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	const infoSheet = "Document Info"
	f.SetSheetName("Sheet1", infoSheet)
	f.SetCellValue(infoSheet, "A1", "Title")
	f.SetCellValue(infoSheet, "B1", cs.Title)
	row := 2
	for k, v := range cs.Metadata {
		if k == "credentials" {
			continue
		}
		f.SetCellValue(infoSheet, fmt.Sprintf("A%d", row), k)
		f.SetCellValue(infoSheet, fmt.Sprintf("B%d", row), fmt.Sprintf("%v", v))
		row++
	}

	for _, s := range cs.Sections {
		sheetName := sanitizeSheetName(s.Title)
		idx, err := f.NewSheet(sheetName)
		if err != nil {
			return "", forgeerrors.Wrap(err, "failed to create section sheet", forgeerrors.CategorySynthesizer)
		}
		f.SetCellValue(sheetName, "A1", s.Title)
		f.SetCellValue(sheetName, "A2", s.Body)
		_ = idx
	}

	if err := b.writeCredentialsSheet(f, cs); err != nil {
		return "", err
	}
	f.SetActiveSheet(0)

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return "", forgeerrors.Wrap(err, "failed to render workbook", forgeerrors.CategorySynthesizer)
	}

	name := filename("spreadsheet", cs.Title, b.ext, rand.New(rand.NewSource(time.Now().UnixNano())))
	return writeFile(outputDir, name, buf.Bytes())
}

func (spreadsheetBinder) writeCredentialsSheet(f *excelize.File, cs *content.ContentStructure) error {
	const sheet = "Credentials"
	if _, err := f.NewSheet(sheet); err != nil {
		return forgeerrors.Wrap(err, "failed to create credentials sheet", forgeerrors.CategorySynthesizer)
	}
	f.SetCellValue(sheet, "A1", "Type")
	f.SetCellValue(sheet, "B1", "Value")
	f.SetCellValue(sheet, "C1", "Label")

	for i, c := range cs.Credentials {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), c.Type)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), c.Value)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), c.Label)

		style, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{colorForType(c.Type)}, Pattern: 1},
		})
		if err == nil {
			_ = f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("C%d", row), style)
		}
	}
	return nil
}

func sanitizeSheetName(name string) string {
	if len(name) > 31 {
		name = name[:31]
	}
	if name == "" {
		name = "Section"
	}
	return name
}
