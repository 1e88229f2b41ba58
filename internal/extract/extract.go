package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

const (
	MimePDF  = "application/pdf"
	MimeText = "text/plain"
)

var (
	// ErrEmptyDocument indicates a zero-length body.
	ErrEmptyDocument = errors.New("empty document")

	// ErrInvalidDocument indicates a body that does not parse as its declared type.
	ErrInvalidDocument = errors.New("invalid document")
)

// ValidatePDF checks that data is a readable PDF with at least one page and
// returns the page count.
func ValidatePDF(data []byte) (int, error) {
	if len(data) == 0 {
		return 0, ErrEmptyDocument
	}
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	pages := reader.NumPage()
	if pages == 0 {
		return 0, fmt.Errorf("%w: no pages", ErrInvalidDocument)
	}
	return pages, nil
}

// TextFromBytes returns the plain text of a PDF or text payload.
func TextFromBytes(ctx context.Context, data []byte, mimeType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", ErrEmptyDocument
	}
	switch normalizeMimeType(mimeType) {
	case MimePDF:
		return extractPDF(data)
	case MimeText:
		return string(data), nil
	default:
		return "", fmt.Errorf("unsupported mime type: %s", normalizeMimeType(mimeType))
	}
}

func extractPDF(data []byte) (string, error) {
	pdfReader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func normalizeMimeType(mimeType string) string {
	return strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
}
