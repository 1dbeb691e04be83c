// Package docx extracts text from DOCX documents.
package docx

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/crucible-labs/forge-cli/internal/core/domain"
	"github.com/crucible-labs/forge-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// wordprocessingNS is the WordprocessingML main namespace.
const wordprocessingNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// Extractor handles DOCX documents. A DOCX file is a ZIP archive whose
// body lives in the word/document.xml entry.
type Extractor struct{}

// New creates a new DOCX extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedExtensions returns the extensions this extractor handles.
func (e *Extractor) SupportedExtensions() []string {
	return []string{".docx"}
}

// Extract opens the archive, locates the document body, and walks it.
func (e *Extractor) Extract(_ context.Context, path string) (string, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("%w: open archive: %v", domain.ErrExtraction, err)
	}
	defer archive.Close()

	var docFile *zip.File
	for _, f := range archive.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", fmt.Errorf("%w: word/document.xml not found in archive", domain.ErrExtraction)
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", fmt.Errorf("%w: open document.xml: %v", domain.ErrExtraction, err)
	}
	defer rc.Close()

	return parseDocument(rc)
}

// parseDocument walks every paragraph of the document body in document
// order. Within a paragraph, every descendant contributes by kind: text
// runs their literal content, tabs a single tab, line and page breaks a
// single newline; pieces are concatenated with no separator. Empty
// paragraphs are preserved as zero-length lines, and paragraphs are
// joined with single newlines. Two consecutive empty paragraphs thus
// produce exactly one blank line, the structural signal segmentation
// splits on.
func parseDocument(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)

	var (
		paragraphs []string
		current    strings.Builder
		paraDepth  int
		inText     bool
	)

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("%w: parse document.xml: %v", domain.ErrExtraction, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != wordprocessingNS {
				continue
			}
			switch t.Name.Local {
			case "p":
				if paraDepth == 0 {
					current.Reset()
				}
				paraDepth++
			case "t":
				if paraDepth > 0 {
					inText = true
				}
			case "tab":
				if paraDepth > 0 {
					current.WriteByte('\t')
				}
			case "br", "cr":
				if paraDepth > 0 {
					current.WriteByte('\n')
				}
			}

		case xml.CharData:
			if inText {
				current.Write(t)
			}

		case xml.EndElement:
			if t.Name.Space != wordprocessingNS {
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if paraDepth > 0 {
					paraDepth--
					if paraDepth == 0 {
						paragraphs = append(paragraphs, current.String())
					}
				}
			}
		}
	}

	return strings.Join(paragraphs, "\n"), nil
}
