// Package menuimport turns a printed price list into menu items.
package menuimport

import (
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
)

// ExtractText returns the plain text of every page of the PDF at path.
func ExtractText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w", err)
	}
	defer f.Close()

	rd, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extracting text: %w", err)
	}
	b, err := io.ReadAll(rd)
	if err != nil {
		return "", fmt.Errorf("reading text: %w", err)
	}
	return string(b), nil
}
