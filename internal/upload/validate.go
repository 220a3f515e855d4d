// ABOUTME: Local checks for a transcript before it is selected or uploaded
// ABOUTME: Requires a readable regular file starting with the %PDF magic

package upload

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

var pdfMagic = []byte("%PDF")

// ErrNotPDF is returned by Validate for files without the PDF header.
var ErrNotPDF = errors.New("not a PDF file")

// Validate checks that path is a regular file with a PDF header.
func Validate(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("checking %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	head := make([]byte, len(pdfMagic))
	if _, err := io.ReadFull(f, head); err != nil || !bytes.Equal(head, pdfMagic) {
		return fmt.Errorf("%s: %w", path, ErrNotPDF)
	}
	return nil
}
