package ocr

import (
	"strings"
	"unicode"
)

const (
	CategoryTitle     = "Title"
	CategoryListItem  = "ListItem"
	CategoryNarrative = "NarrativeText"
)

// Categorize splits raw page text into whitespace-normalized fragments and
// assigns each a coarse element category. Empty pages yield no fragments.
func Categorize(pageNumber int, raw string) []PageFragment {
	var fragments []PageFragment
	for _, block := range splitBlocks(raw) {
		content := normalizeWhitespace(block)
		if content == "" {
			continue
		}
		fragments = append(fragments, PageFragment{
			PageNumber: pageNumber,
			Category:   classify(content),
			Content:    content,
		})
	}
	return fragments
}

func splitBlocks(raw string) []string {
	return strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n\n")
}

func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func classify(content string) string {
	if isListItem(content) {
		return CategoryListItem
	}
	if isTitle(content) {
		return CategoryTitle
	}
	return CategoryNarrative
}

func isListItem(s string) bool {
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "•") || strings.HasPrefix(s, "–") {
		return true
	}
	// "1." / "1)" list markers
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return i > 0 && i < len(s) && (s[i] == '.' || s[i] == ')')
}

// isTitle treats short, mostly-uppercase lines as section headers, which is
// how expertise reports mark construction-type sections.
func isTitle(s string) bool {
	runes := []rune(s)
	if len(runes) > 80 {
		return false
	}
	letters, upper := 0, 0
	for _, r := range runes {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				upper++
			}
		}
	}
	return letters > 0 && upper*10 >= letters*8
}
