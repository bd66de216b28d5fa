package extraction

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryDispatch(t *testing.T) {
	r := NewRegistry()

	assert.IsType(t, &PDFParser{}, r.FindParser("report.pdf"))
	assert.IsType(t, &DocxParser{}, r.FindParser("letter.DOCX"))
	assert.IsType(t, &ExcelParser{}, r.FindParser("numbers.xlsx"))
	assert.IsType(t, &TextParser{}, r.FindParser("notes.md"))
	assert.Nil(t, r.FindParser("archive.zip"))
}

func TestRegistryExtractUnknownExtension(t *testing.T) {
	r := NewRegistry()
	_, err := r.Extract(context.Background(), "archive.zip", []byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no parser available")
}

func TestRegistryExtensions(t *testing.T) {
	exts := NewRegistry().Extensions()
	assert.Contains(t, exts, ".pdf")
	assert.Contains(t, exts, ".docx")
	assert.Contains(t, exts, ".xlsx")
	assert.Contains(t, exts, ".txt")
	assert.Contains(t, exts, ".csv")
}

func TestTextParserPassthrough(t *testing.T) {
	p := &TextParser{}
	res, err := p.Parse(context.Background(), "notes.txt", []byte("hello plain world"))
	require.NoError(t, err)

	assert.Equal(t, "hello plain world", res.Content)
	assert.Equal(t, "notes.txt", res.Title)
	assert.Equal(t, 3, res.WordCount)
	assert.Equal(t, "text", res.Metadata["type"])
}

func TestTextParserRejectsBinary(t *testing.T) {
	p := &TextParser{}
	_, err := p.Parse(context.Background(), "blob.txt", []byte{0xff, 0xfe, 0x00, 0x80})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not valid utf-8")
}

func TestMIMEType(t *testing.T) {
	cases := map[string]string{
		"a.pdf":   "application/pdf",
		"a.docx":  "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"a.xlsx":  "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"a.md":    "text/markdown",
		"a.txt":   "text/plain",
		"a.csv":   "text/csv",
		"a.weird": "application/octet-stream",
	}
	for name, want := range cases {
		assert.Equal(t, want, MIMEType(name), name)
	}
}
