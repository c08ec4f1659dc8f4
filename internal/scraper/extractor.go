package scraper

import (
	"strings"

	"github.com/hleung/imagehound/internal/browser"
)

// placeholderPrefix marks the inline animated placeholders image-search
// results pages use for tiles that have not loaded yet.
const placeholderPrefix = "data:image/gif"

// Candidate is a downloadable image discovered on the results page.
type Candidate struct {
	URL    string
	Width  int
	Height int
}

// ExtractCandidates filters raw image elements down to downloadable
// candidates. The eagerly-loaded src attribute wins over the lazy-load
// data-src fallback. Elements with no resolvable URL, placeholder URLs,
// or dimensions below the minimum are dropped. DOM order is preserved as
// the relevance signal; nothing is deduplicated or reordered, and
// truncation to the requested count is left to the caller.
func ExtractCandidates(elements []browser.ImageElement, minWidth, minHeight int) []Candidate {
	candidates := make([]Candidate, 0, len(elements))
	for _, el := range elements {
		url := el.Src
		if url == "" {
			url = el.DataSrc
		}
		if url == "" || strings.Contains(url, placeholderPrefix) {
			continue
		}
		if el.Width < minWidth || el.Height < minHeight {
			continue
		}
		candidates = append(candidates, Candidate{URL: url, Width: el.Width, Height: el.Height})
	}
	return candidates
}
