// pkg/render/xlsx.go

package render

import (
	"fmt"

	"github.com/bizbooks-service/pkg/document"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Sheet1"

// XLSXRenderer writes blocks as consecutive spreadsheet rows. Images are skipped.
type XLSXRenderer struct{}

func NewXLSXRenderer() *XLSXRenderer { return &XLSXRenderer{} }

func (r *XLSXRenderer) Extension() string { return "xlsx" }
func (r *XLSXRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Render ignores pageWidth; spreadsheets have no page.
func (r *XLSXRenderer) Render(doc *document.Document, _ float64) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, failure(err)
	}
	right, err := f.NewStyle(&excelize.Style{Alignment: &excelize.Alignment{Horizontal: "right"}})
	if err != nil {
		return nil, failure(err)
	}

	w := &sheetWriter{f: f, row: 1, bold: bold, right: right}
	for _, b := range doc.Blocks {
		if err := w.write(b); err != nil {
			return nil, failure(err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, failure(err)
	}
	return buf.Bytes(), nil
}

type sheetWriter struct {
	f     *excelize.File
	row   int
	bold  int
	right int
}

func (w *sheetWriter) cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func (w *sheetWriter) set(col int, value string, style int) error {
	c := w.cell(col, w.row)
	if err := w.f.SetCellValue(sheetName, c, value); err != nil {
		return err
	}
	if style != 0 {
		return w.f.SetCellStyle(sheetName, c, c, style)
	}
	return nil
}

func (w *sheetWriter) write(b document.Block) error {
	switch b := b.(type) {
	case document.TextBlock:
		style := 0
		if b.Style != document.StyleNormal {
			style = w.bold
		}
		if err := w.set(1, b.Text, style); err != nil {
			return err
		}
		w.row++
	case *document.ImageBlock:
	case document.KeyValueBlock:
		for _, kv := range b.Pairs {
			if err := w.set(1, kv.Key, w.bold); err != nil {
				return err
			}
			if err := w.set(2, kv.Value, 0); err != nil {
				return err
			}
			w.row++
		}
		w.row++
	case document.TableBlock:
		for i, c := range b.Columns {
			if err := w.set(i+1, c.Title, w.bold); err != nil {
				return err
			}
		}
		w.row++
		for _, r := range b.Rows {
			for i, c := range b.Columns {
				style := 0
				if c.Align == document.AlignRight {
					style = w.right
				}
				val := ""
				if i < len(r) {
					val = r[i]
				}
				if err := w.set(i+1, val, style); err != nil {
					return err
				}
			}
			w.row++
		}
		w.row++
	case document.TotalBlock:
		if err := w.set(1, b.Label, w.bold); err != nil {
			return err
		}
		if err := w.set(2, b.Amount, w.right); err != nil {
			return err
		}
		w.row += 2
	case document.NotesBlock:
		if err := w.set(1, "Notes", w.bold); err != nil {
			return err
		}
		if err := w.set(2, b.Text, 0); err != nil {
			return err
		}
		w.row++
	default:
		return fmt.Errorf("unsupported block %T", b)
	}
	return nil
}
