package entity

import (
	"fmt"
	"strings"
)

// TextElement is one OCR-identified text fragment. Category mirrors the OCR
// engine's element classes (Title, NarrativeText, ListItem). Immutable once
// produced.
type TextElement struct {
	Category string `json:"category"`
	Content  string `json:"content"`
}

// Page is one document page. FullText is the concatenation of element
// contents in extraction order. PageNumber is 1-based and unique within a
// Document.
type Page struct {
	PageNumber int           `json:"page_number"`
	FullText   string        `json:"full_text"`
	Elements   []TextElement `json:"elements"`
}

// NewPage builds a Page with FullText derived from the elements.
func NewPage(number int, elements []TextElement) Page {
	parts := make([]string, 0, len(elements))
	for _, el := range elements {
		parts = append(parts, el.Content)
	}
	return Page{
		PageNumber: number,
		FullText:   strings.Join(parts, " "),
		Elements:   elements,
	}
}

// IsEmpty reports whether the page carries no usable text.
func (p Page) IsEmpty() bool {
	return strings.TrimSpace(p.FullText) == ""
}

// Document is the extracted representation of one PDF. Created once per run
// by the page extractor and read-only thereafter; pages appear in ascending
// page-number order with no gaps.
type Document struct {
	Filename string `json:"filename"`
	Pages    []Page `json:"pages"`
}

func (d *Document) TotalPages() int { return len(d.Pages) }

// PageByNumber returns the page with the given 1-based number.
func (d *Document) PageByNumber(n int) (Page, bool) {
	for _, p := range d.Pages {
		if p.PageNumber == n {
			return p, true
		}
	}
	return Page{}, false
}

// pageHeader tags a page's text with its number so defect records can
// reference provenance.
func pageHeader(n int) string {
	return fmt.Sprintf("=== Страница %d ===", n)
}

// AllText renders the whole document as page-tagged plain text.
func (d *Document) AllText() string {
	blocks := make([]string, 0, len(d.Pages))
	for _, p := range d.Pages {
		lines := make([]string, 0, len(p.Elements))
		for _, el := range p.Elements {
			lines = append(lines, el.Content)
		}
		blocks = append(blocks, pageHeader(p.PageNumber)+"\n"+strings.Join(lines, "\n"))
	}
	return strings.Join(blocks, "\n\n")
}

// CombinedText concatenates the given pages (in the order given) into one
// page-tagged block for a single extraction request. Unknown page numbers
// are skipped.
func (d *Document) CombinedText(pages []int) string {
	blocks := make([]string, 0, len(pages))
	for _, n := range pages {
		p, ok := d.PageByNumber(n)
		if !ok {
			continue
		}
		blocks = append(blocks, pageHeader(n)+"\n"+strings.TrimSpace(p.FullText))
	}
	return strings.Join(blocks, "\n\n")
}
