// pkg/document/block.go

// Package document arranges aggregated financial data into an ordered list
// of renderable blocks, independent of the output file format.
package document

// Kind identifies a block type for renderers.
type Kind string

const (
	KindText     Kind = "text"
	KindImage    Kind = "image"
	KindKeyValue Kind = "key_value"
	KindTable    Kind = "table"
	KindTotal    Kind = "total"
	KindNotes    Kind = "notes"
)

// Block is one renderable unit. Block order is the visual order.
type Block interface {
	Kind() Kind
}

type Style int

const (
	StyleNormal Style = iota
	StyleBold
	StyleHeading
	StyleTitle
)

type TextBlock struct {
	Text  string
	Style Style
}

// ImageBlock references an image such as a company logo. Data is filled in
// by whoever has access to object storage before rendering, so builders
// always emit *ImageBlock.
type ImageBlock struct {
	Ref  string
	Data []byte
}

type KeyValue struct {
	Key   string
	Value string
}

type KeyValueBlock struct {
	Pairs []KeyValue
}

type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// Column describes a table column. Weight is its share of the table width.
type Column struct {
	Title  string
	Align  Align
	Weight float64
}

type TableBlock struct {
	Columns []Column
	Rows    [][]string
}

// TotalBlock is a single labelled total line for ungrouped documents.
type TotalBlock struct {
	Label  string
	Amount string
}

type NotesBlock struct {
	Text string
}

func (TextBlock) Kind() Kind     { return KindText }
func (ImageBlock) Kind() Kind    { return KindImage }
func (KeyValueBlock) Kind() Kind { return KindKeyValue }
func (TableBlock) Kind() Kind    { return KindTable }
func (TotalBlock) Kind() Kind    { return KindTotal }
func (NotesBlock) Kind() Kind    { return KindNotes }

// Document is an ephemeral export artifact ready for a renderer.
type Document struct {
	Title string
	// FileName is the base name without extension.
	FileName string
	Blocks   []Block
}

// Images returns the image blocks so callers can attach data before rendering.
func (d *Document) Images() []*ImageBlock {
	var out []*ImageBlock
	for _, b := range d.Blocks {
		if img, ok := b.(*ImageBlock); ok {
			out = append(out, img)
		}
	}
	return out
}
