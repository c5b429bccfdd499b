package letters

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"sponsor-letters/pkg/models"
)

const (
	pdfFont   = "Helvetica"
	pdfMargin = 20.0 // mm
	pdfLine   = 5.5
	pdfIndent = 5.0
)

// PDF met la lettre en page (format Letter, police Helvetica). Les titres de
// section passent en gras et les puces sont indentées.
func (r *Renderer) PDF(p models.LetterPayload) ([]byte, error) {
	doc := fpdf.New("P", "mm", "Letter", "")
	doc.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	doc.SetAutoPageBreak(true, pdfMargin)
	doc.SetTitle(pdfTitle(p), true)
	doc.SetCreator(r.issuer.ShortName, true)
	// polices de base : cp1252 couvre •, ’ et les tirets
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.AddPage()

	for _, b := range r.blocks(p) {
		switch b.kind {
		case blockTitle:
			doc.SetFont(pdfFont, "B", 16)
			doc.MultiCell(0, 8, tr(b.text), "", "C", false)
			doc.Ln(2)
		case blockHeading:
			doc.SetFont(pdfFont, "B", 11)
			doc.MultiCell(0, pdfLine+0.5, tr(strings.Trim(b.text, "*")), "", "L", false)
		case blockLabel:
			doc.SetFont(pdfFont, "B", 10)
			doc.MultiCell(0, pdfLine, tr(b.text), "", "L", false)
		case blockBullet:
			doc.SetFont(pdfFont, "", 10)
			doc.SetX(pdfMargin + pdfIndent)
			doc.MultiCell(0, pdfLine, tr(b.text), "", "L", false)
		case blockSubBullet:
			doc.SetFont(pdfFont, "", 10)
			doc.SetX(pdfMargin + 2*pdfIndent)
			doc.MultiCell(0, pdfLine, tr(strings.TrimSpace(b.text)), "", "L", false)
		case blockBlank:
			doc.Ln(pdfLine / 2)
		default:
			doc.SetFont(pdfFont, "", 10)
			doc.MultiCell(0, pdfLine, tr(b.text), "", "J", false)
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func pdfTitle(p models.LetterPayload) string {
	doc := p.DocumentType
	if doc == "" {
		doc = models.DocumentLOR
	}
	return strings.TrimSpace(fmt.Sprintf("%s %s %s", doc, p.CompanyName, p.MeetingName))
}
