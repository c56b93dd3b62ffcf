// pkg/render/render.go

// Package render paints a document block list into a binary file format.
package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bizbooks-service/pkg/document"
)

var ErrRenderFailure = errors.New("render failure")

// A4Width is the default page width in millimetres.
const A4Width = 210.0

// Renderer turns a document into a file. Only block order and content are
// guaranteed; layout is up to the implementation.
type Renderer interface {
	Render(doc *document.Document, pageWidth float64) ([]byte, error)
	Extension() string
	ContentType() string
}

// Format names an export file format.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
)

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatPDF:
		return FormatPDF, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

// ForFormat returns the renderer for f.
func ForFormat(f Format) Renderer {
	if f == FormatXLSX {
		return NewXLSXRenderer()
	}
	return NewPDFRenderer()
}

// FileName joins a document base name with the renderer's extension.
func FileName(doc *document.Document, r Renderer) string {
	return doc.FileName + "." + r.Extension()
}

func failure(err error) error {
	return fmt.Errorf("%w: %v", ErrRenderFailure, err)
}
