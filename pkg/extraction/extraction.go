// Package extraction turns uploaded documents into plain text for
// summarization. PDF, Word and Excel files are parsed natively; anything
// that decodes as UTF-8 text passes through unchanged.
package extraction

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
	"github.com/xuri/excelize/v2"
)

// Result is the extracted text plus document metadata.
type Result struct {
	Content   string            `json:"content"`
	Title     string            `json:"title,omitempty"`
	Pages     int               `json:"pages,omitempty"`
	WordCount int               `json:"word_count,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// Parser extracts text from one document format.
type Parser interface {
	// CanParse reports whether this parser handles the named file.
	CanParse(name string) bool

	// Parse extracts text from the document bytes.
	Parse(ctx context.Context, name string, data []byte) (*Result, error)

	// Extensions lists the file extensions this parser supports.
	Extensions() []string
}

// Registry dispatches documents to the first parser that accepts them.
type Registry struct {
	parsers []Parser
}

// NewRegistry builds a registry with the built-in parsers registered.
func NewRegistry() *Registry {
	return &Registry{
		parsers: []Parser{
			&PDFParser{},
			&DocxParser{},
			&ExcelParser{},
			&TextParser{},
		},
	}
}

// FindParser returns the first parser that accepts the named file, or nil.
func (r *Registry) FindParser(name string) Parser {
	for _, p := range r.parsers {
		if p.CanParse(name) {
			return p
		}
	}
	return nil
}

// Extract parses the document with the first matching parser.
func (r *Registry) Extract(ctx context.Context, name string, data []byte) (*Result, error) {
	p := r.FindParser(name)
	if p == nil {
		return nil, fmt.Errorf("no parser available for %q", filepath.Ext(name))
	}
	return p.Parse(ctx, name, data)
}

// Extensions lists every supported file extension.
func (r *Registry) Extensions() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range r.parsers {
		for _, ext := range p.Extensions() {
			if !seen[ext] {
				seen[ext] = true
				out = append(out, ext)
			}
		}
	}
	return out
}

func hasExt(name string, exts ...string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

// PDFParser extracts text from PDF documents.
type PDFParser struct{}

func (p *PDFParser) CanParse(name string) bool { return hasExt(name, ".pdf") }
func (p *PDFParser) Extensions() []string      { return []string{".pdf"} }

func (p *PDFParser) Parse(ctx context.Context, name string, data []byte) (*Result, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse pdf %s: %w", name, err)
	}

	var parts []string
	totalPages := reader.NumPage()
	for pageNum := 1; pageNum <= totalPages; pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			parts = append(parts, fmt.Sprintf("--- Page %d (extraction failed: %v) ---", pageNum, err))
			continue
		}
		if strings.TrimSpace(text) != "" {
			parts = append(parts, fmt.Sprintf("--- Page %d ---\n%s", pageNum, text))
		}
	}

	content := strings.Join(parts, "\n\n")
	return &Result{
		Content:   content,
		Title:     filepath.Base(name),
		Pages:     totalPages,
		WordCount: len(strings.Fields(content)),
		Metadata:  map[string]string{"type": "pdf"},
	}, nil
}

// DocxParser extracts text from Word documents.
type DocxParser struct{}

func (p *DocxParser) CanParse(name string) bool { return hasExt(name, ".docx") }
func (p *DocxParser) Extensions() []string      { return []string{".docx"} }

func (p *DocxParser) Parse(ctx context.Context, name string, data []byte) (*Result, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse docx %s: %w", name, err)
	}
	defer doc.Close()

	content := doc.Editable().GetContent()
	return &Result{
		Content:   content,
		Title:     filepath.Base(name),
		Pages:     len(strings.Split(content, "\n\n")),
		WordCount: len(strings.Fields(content)),
		Metadata:  map[string]string{"type": "docx"},
	}, nil
}

// ExcelParser extracts cell text from Excel workbooks, sheet by sheet. Cell
// extraction is capped per sheet to keep the output manageable.
type ExcelParser struct{}

const maxCellsPerSheet = 1000

func (p *ExcelParser) CanParse(name string) bool { return hasExt(name, ".xlsx") }
func (p *ExcelParser) Extensions() []string      { return []string{".xlsx"} }

func (p *ExcelParser) Parse(ctx context.Context, name string, data []byte) (*Result, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse xlsx %s: %w", name, err)
	}
	defer f.Close()

	var parts []string
	sheets := f.GetSheetList()
	for _, sheet := range sheets {
		var b strings.Builder
		fmt.Fprintf(&b, "--- Sheet: %s ---\n", sheet)

		rows, err := f.GetRows(sheet)
		if err != nil {
			fmt.Fprintf(&b, "Error reading sheet: %v\n", err)
			parts = append(parts, b.String())
			continue
		}

		cells := 0
	rowLoop:
		for rowIdx, row := range rows {
			for colIdx, cell := range row {
				if cells >= maxCellsPerSheet {
					b.WriteString("... (truncated)\n")
					break rowLoop
				}
				if text := strings.TrimSpace(cell); text != "" {
					ref, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
					fmt.Fprintf(&b, "%s: %s\n", ref, text)
					cells++
				}
			}
		}
		parts = append(parts, strings.TrimSpace(b.String()))
	}

	content := strings.Join(parts, "\n\n")
	return &Result{
		Content:   content,
		Title:     filepath.Base(name),
		Pages:     len(sheets),
		WordCount: len(strings.Fields(content)),
		Metadata:  map[string]string{"type": "xlsx"},
	}, nil
}

// TextParser passes through anything that decodes as UTF-8 text.
type TextParser struct{}

func (p *TextParser) CanParse(name string) bool {
	return hasExt(name, ".txt", ".md", ".markdown", ".text", ".log", ".csv")
}

func (p *TextParser) Extensions() []string {
	return []string{".txt", ".md", ".markdown", ".text", ".log", ".csv"}
}

func (p *TextParser) Parse(ctx context.Context, name string, data []byte) (*Result, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%s is not valid utf-8 text", name)
	}
	content := string(data)
	return &Result{
		Content:   content,
		Title:     filepath.Base(name),
		WordCount: len(strings.Fields(content)),
		Metadata:  map[string]string{"type": "text"},
	}, nil
}

// MIMEType returns the MIME type for a file name based on its extension.
func MIMEType(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return "application/pdf"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case ".md", ".markdown":
		return "text/markdown"
	case ".txt", ".text", ".log":
		return "text/plain"
	case ".csv":
		return "text/csv"
	default:
		return "application/octet-stream"
	}
}
