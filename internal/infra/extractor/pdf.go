package extractor

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// pdfMagic starts every PDF file.
var pdfMagic = []byte("%PDF-")

// pdfMarkers are placeholder labels some clients prepend to pasted PDF text.
var pdfMarkers = []string{"[PDF]", "PDF Document"}

// IsPDF reports whether data starts with the PDF signature.
func IsPDF(data []byte) bool {
	return bytes.HasPrefix(data, pdfMagic)
}

// PDFText returns the plain text of a PDF file.
func PDFText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPDFUnreadable, err)
	}

	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPDFUnreadable, err)
	}

	var buf strings.Builder
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("%w: %v", ErrPDFUnreadable, err)
	}
	return CleanText(buf.String()), nil
}

// StripPDFMarkers removes placeholder labels from already extracted PDF text.
func StripPDFMarkers(text string) string {
	for _, m := range pdfMarkers {
		text = strings.ReplaceAll(text, m, "")
	}
	return strings.TrimSpace(text)
}
