// Package report renders stored feedback records as downloadable documents.
package report

import (
	"bytes"
	"fmt"
	"os"

	"github.com/go-pdf/fpdf"
	"github.com/myssom/letterbrick/internal/feedback"
)

const (
	Title    = "레터브릭 필사 평가 리포트"
	FileName = "letterbrick_report.pdf"
)

// Exporter turns labelled sections into a finished document.
type Exporter interface {
	Render(title string, sections []feedback.Section) ([]byte, error)
}

const fontFamily = "Report"

// PDF renders A4 reports. Hangul needs a UTF-8 TrueType font (NanumGothic
// works); without one the core Helvetica font is used and non-Latin text
// does not survive.
type PDF struct {
	font []byte
}

// NewPDF loads the TTF at fontPath. An empty path selects the core font.
func NewPDF(fontPath string) (*PDF, error) {
	if fontPath == "" {
		return &PDF{}, nil
	}
	font, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("read report font: %w", err)
	}
	return &PDF{font: font}, nil
}

func (p *PDF) Render(title string, sections []feedback.Section) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetTitle(title, true)
	doc.SetAutoPageBreak(true, 15)

	family := "Helvetica"
	marker := "* "
	tr := func(s string) string { return s }
	if p.font != nil {
		doc.AddUTF8FontFromBytes(fontFamily, "", p.font)
		doc.AddUTF8FontFromBytes(fontFamily, "B", p.font)
		family = fontFamily
		marker = "■ "
	} else {
		tr = doc.UnicodeTranslatorFromDescriptor("")
	}

	doc.AddPage()
	doc.SetFont(family, "", 12)
	doc.CellFormat(0, 10, tr(title), "", 1, "C", false, 0, "")
	doc.Ln(10)

	for _, s := range sections {
		doc.SetFont(family, "B", 12)
		doc.CellFormat(0, 10, tr(marker+s.Label), "", 1, "", false, 0, "")
		doc.SetFont(family, "", 12)
		for _, line := range Flatten(s.Text) {
			doc.MultiCell(0, 8, tr(line), "", "", false)
		}
		doc.Ln(5)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
