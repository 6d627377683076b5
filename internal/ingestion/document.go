// Package ingestion turns uploaded resumes and job descriptions into clean plain text.
package ingestion

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"io"
	"mime"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// MaxFileSize is the largest document accepted, in bytes.
const MaxFileSize = 10 << 20

// Format is a supported document format.
type Format string

// Supported formats.
const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatDOC  Format = "doc"
	FormatText Format = "txt"
)

var (
	// ErrUnsupportedFormat is returned for documents that are not PDF, Word or plain text.
	ErrUnsupportedFormat = errors.New("unsupported file format: upload a PDF, DOC, DOCX or TXT file")
	// ErrFileTooLarge is returned for documents over MaxFileSize.
	ErrFileTooLarge = errors.New("file size must be less than 10MB")
	// ErrEmptyDocument is returned when no text could be extracted.
	ErrEmptyDocument = errors.New("no text could be extracted from the document")
)

// Error wraps a failure to read a specific document.
type Error struct {
	Name   string
	Format Format
	Err    error
}

func (e *Error) Error() string {
	if e.Format != "" {
		return fmt.Sprintf("ingest %s (%s): %v", e.Name, e.Format, e.Err)
	}
	return fmt.Sprintf("ingest %s: %v", e.Name, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

var contentTypes = map[string]Format{
	"application/pdf":    FormatPDF,
	"application/msword": FormatDOC,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": FormatDOCX,
	"text/plain":    FormatText,
	"text/markdown": FormatText,
}

var extensions = map[string]Format{
	".pdf":      FormatPDF,
	".doc":      FormatDOC,
	".docx":     FormatDOCX,
	".txt":      FormatText,
	".text":     FormatText,
	".md":       FormatText,
	".markdown": FormatText,
}

// DetectFormat resolves a document's format from its content type, then its
// file extension, then its leading bytes.
func DetectFormat(name, contentType string, data []byte) (Format, error) {
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		if f, ok := contentTypes[mediaType]; ok {
			return f, nil
		}
	}
	if f, ok := extensions[strings.ToLower(filepath.Ext(name))]; ok {
		return f, nil
	}

	switch {
	case bytes.HasPrefix(data, []byte("%PDF-")):
		return FormatPDF, nil
	case bytes.HasPrefix(data, []byte{0xD0, 0xCF, 0x11, 0xE0}):
		return FormatDOC, nil
	case bytes.HasPrefix(data, []byte("PK\x03\x04")) && bytes.Contains(data, []byte("word/")):
		return FormatDOCX, nil
	case len(data) > 0 && utf8.Valid(data) && !bytes.ContainsRune(data, 0):
		return FormatText, nil
	}
	return "", ErrUnsupportedFormat
}

// FromBytes extracts and cleans the text of an in-memory document.
func FromBytes(name, contentType string, data []byte) (string, *Metadata, error) {
	if len(data) > MaxFileSize {
		return "", nil, &Error{Name: name, Err: ErrFileTooLarge}
	}

	format, err := DetectFormat(name, contentType, data)
	if err != nil {
		return "", nil, &Error{Name: name, Err: err}
	}

	var raw string
	switch format {
	case FormatPDF:
		raw, err = extractPDF(data)
	case FormatDOCX:
		raw, err = extractDOCX(data)
	case FormatDOC:
		raw, err = extractDOC(data)
	default:
		raw, err = decodeText(data)
	}
	if err != nil {
		return "", nil, &Error{Name: name, Format: format, Err: err}
	}

	text := CleanText(raw)
	if text == "" {
		return "", nil, &Error{Name: name, Format: format, Err: ErrEmptyDocument}
	}

	meta := NewMetadata(text, name)
	meta.Format = format
	meta.SizeBytes = len(data)
	return text, meta, nil
}

// ReadFile extracts and cleans the text of a document on disk.
func ReadFile(path string) (string, *Metadata, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("file not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.Size() > MaxFileSize {
		return "", nil, &Error{Name: filepath.Base(path), Err: ErrFileTooLarge}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read file: %w", err)
	}
	return FromBytes(filepath.Base(path), "", data)
}

// ReadLimited reads r up to MaxFileSize and reports ErrFileTooLarge beyond it.
func ReadLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxFileSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxFileSize {
		return nil, ErrFileTooLarge
	}
	return data, nil
}

func extractPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to read PDF text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("failed to read PDF text: %w", err)
	}
	return buf.String(), nil
}

var (
	wordParagraphEnd = regexp.MustCompile(`</w:p>|<w:br\s*/>|<w:cr\s*/>`)
	wordTab          = regexp.MustCompile(`<w:tab\s*/>`)
	xmlTag           = regexp.MustCompile(`<[^>]+>`)
)

func extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open DOCX: %w", err)
	}
	defer func() { _ = doc.Close() }()

	body := doc.Editable().GetContent()
	body = wordParagraphEnd.ReplaceAllString(body, "\n")
	body = wordTab.ReplaceAllString(body, "\t")
	body = xmlTag.ReplaceAllString(body, "")
	return html.UnescapeString(body), nil
}

// minRunLength is the shortest printable run kept from a legacy .doc file.
const minRunLength = 4

// extractDOC recovers readable text from a Word 97-2003 binary. The file is
// read both as UTF-16LE and as Windows-1252 and the interpretation yielding
// more printable text wins. Formatting tables produce some noise.
func extractDOC(data []byte) (string, error) {
	wide, _ := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder().Bytes(data[:len(data)&^1])
	narrow, _ := charmap.Windows1252.NewDecoder().Bytes(data)

	a, b := printableRuns(string(wide)), printableRuns(string(narrow))
	if len(b) > len(a) {
		a = b
	}
	if strings.TrimSpace(a) == "" {
		return "", ErrEmptyDocument
	}
	return a, nil
}

func printableRuns(s string) string {
	var out, run strings.Builder
	count := 0
	flush := func() {
		if count >= minRunLength {
			out.WriteString(run.String())
			out.WriteByte('\n')
		}
		run.Reset()
		count = 0
	}
	for _, r := range s {
		switch {
		case r == '\r' || r == '\n':
			flush()
		case r == '\t' || (r >= ' ' && r < 0x7f) || (r >= 0xa0 && r < 0x2000) || (r >= 0x2010 && r <= 0x2027):
			run.WriteRune(r)
			count++
		default:
			flush()
		}
	}
	flush()
	return out.String()
}

func decodeText(data []byte) (string, error) {
	if utf8.Valid(data) {
		return strings.TrimPrefix(string(data), "\ufeff"), nil
	}
	out, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode text: %w", err)
	}
	return string(out), nil
}
