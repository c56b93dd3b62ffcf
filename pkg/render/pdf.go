// pkg/render/pdf.go

package render

import (
	"bytes"
	"fmt"
	"math"

	"github.com/bizbooks-service/pkg/document"
	"github.com/jung-kurt/gofpdf"
)

const (
	pdfMargin     = 15.0
	pdfLineHeight = 7.0
	pdfLogoHeight = 18.0
	pdfFont       = "Arial"
)

// PDFRenderer paints blocks top to bottom on portrait pages with gofpdf.
type PDFRenderer struct{}

func NewPDFRenderer() *PDFRenderer { return &PDFRenderer{} }

func (r *PDFRenderer) Extension() string   { return "pdf" }
func (r *PDFRenderer) ContentType() string { return "application/pdf" }

func (r *PDFRenderer) Render(doc *document.Document, pageWidth float64) (out []byte, err error) {
	if pageWidth <= 0 {
		pageWidth = A4Width
	}
	defer func() {
		if rec := recover(); rec != nil {
			out, err = nil, failure(fmt.Errorf("%v", rec))
		}
	}()

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: pageWidth, Ht: math.Round(pageWidth * math.Sqrt2)},
	})
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.SetTitle(doc.Title, true)
	pdf.AddPage()

	p := &pdfPainter{
		pdf:   pdf,
		tr:    pdf.UnicodeTranslatorFromDescriptor(""),
		width: pageWidth - 2*pdfMargin,
	}
	for i, b := range doc.Blocks {
		if err := p.paint(b); err != nil {
			return nil, failure(fmt.Errorf("block %d (%s): %w", i, b.Kind(), err))
		}
		if pdf.Err() {
			return nil, failure(pdf.Error())
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, failure(err)
	}
	return buf.Bytes(), nil
}

type pdfPainter struct {
	pdf    *gofpdf.Fpdf
	tr     func(string) string
	width  float64
	images int
}

func (p *pdfPainter) paint(b document.Block) error {
	switch b := b.(type) {
	case document.TextBlock:
		p.text(b)
	case *document.ImageBlock:
		return p.image(b)
	case document.KeyValueBlock:
		p.keyValues(b)
	case document.TableBlock:
		p.table(b)
	case document.TotalBlock:
		p.total(b)
	case document.NotesBlock:
		p.notes(b)
	default:
		return fmt.Errorf("unsupported block %T", b)
	}
	return nil
}

func (p *pdfPainter) text(b document.TextBlock) {
	switch b.Style {
	case document.StyleTitle:
		p.pdf.Ln(4)
		p.pdf.SetFont(pdfFont, "B", 18)
		p.pdf.CellFormat(p.width, 10, p.tr(b.Text), "", 1, "L", false, 0, "")
		p.pdf.Ln(2)
	case document.StyleHeading:
		p.pdf.SetFont(pdfFont, "B", 14)
		p.pdf.CellFormat(p.width, 8, p.tr(b.Text), "", 1, "L", false, 0, "")
	case document.StyleBold:
		p.pdf.Ln(3)
		p.pdf.SetFont(pdfFont, "B", 11)
		p.pdf.CellFormat(p.width, pdfLineHeight, p.tr(b.Text), "", 1, "L", false, 0, "")
	default:
		p.pdf.SetFont(pdfFont, "", 10)
		p.pdf.CellFormat(p.width, 5, p.tr(b.Text), "", 1, "L", false, 0, "")
	}
}

func (p *pdfPainter) image(b *document.ImageBlock) error {
	if len(b.Data) == 0 {
		return nil
	}
	png, err := prepareLogo(b.Data)
	if err != nil {
		return err
	}
	p.images++
	name := fmt.Sprintf("image-%d", p.images)
	opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
	p.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
	if p.pdf.Err() {
		return p.pdf.Error()
	}
	p.pdf.ImageOptions(name, pdfMargin, 0, 0, pdfLogoHeight, true, opts, 0, "")
	p.pdf.Ln(2)
	return nil
}

func (p *pdfPainter) keyValues(b document.KeyValueBlock) {
	keyW := p.width * 0.3
	for _, kv := range b.Pairs {
		p.pdf.SetFont(pdfFont, "B", 10)
		p.pdf.CellFormat(keyW, 6, p.tr(kv.Key+":"), "", 0, "L", false, 0, "")
		p.pdf.SetFont(pdfFont, "", 10)
		p.pdf.CellFormat(p.width-keyW, 6, p.tr(kv.Value), "", 1, "L", false, 0, "")
	}
	p.pdf.Ln(3)
}

func (p *pdfPainter) columnWidths(cols []document.Column) []float64 {
	var sum float64
	for _, c := range cols {
		sum += c.Weight
	}
	widths := make([]float64, len(cols))
	for i, c := range cols {
		if sum <= 0 {
			widths[i] = p.width / float64(len(cols))
			continue
		}
		widths[i] = p.width * c.Weight / sum
	}
	return widths
}

func align(a document.Align) string {
	if a == document.AlignRight {
		return "R"
	}
	return "L"
}

func (p *pdfPainter) table(b document.TableBlock) {
	widths := p.columnWidths(b.Columns)

	p.pdf.SetFont(pdfFont, "B", 10)
	p.pdf.SetFillColor(230, 230, 230)
	for i, c := range b.Columns {
		p.pdf.CellFormat(widths[i], pdfLineHeight, p.tr(c.Title), "1", 0, align(c.Align), true, 0, "")
	}
	p.pdf.Ln(-1)

	p.pdf.SetFont(pdfFont, "", 10)
	for _, row := range b.Rows {
		for i, c := range b.Columns {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			p.pdf.CellFormat(widths[i], pdfLineHeight, p.tr(cell), "1", 0, align(c.Align), false, 0, "")
		}
		p.pdf.Ln(-1)
	}
	p.pdf.Ln(3)
}

func (p *pdfPainter) total(b document.TotalBlock) {
	p.pdf.SetFont(pdfFont, "B", 12)
	p.pdf.CellFormat(p.width*0.7, 8, p.tr(b.Label+":"), "", 0, "R", false, 0, "")
	p.pdf.CellFormat(p.width*0.3, 8, p.tr(b.Amount), "", 1, "R", false, 0, "")
	p.pdf.Ln(3)
}

func (p *pdfPainter) notes(b document.NotesBlock) {
	p.pdf.SetFont(pdfFont, "B", 10)
	p.pdf.CellFormat(p.width, 6, "Notes", "", 1, "L", false, 0, "")
	p.pdf.SetFont(pdfFont, "", 10)
	p.pdf.MultiCell(p.width, 5, p.tr(b.Text), "", "L", false)
}
