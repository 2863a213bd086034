package capture

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Title extracts the page title from captured HTML, preferring <title> and
// falling back to the og:title meta tag. Returns "" when neither is present.
func Title(html []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return ""
	}
	if t := strings.TrimSpace(doc.Find("title").First().Text()); t != "" {
		return t
	}
	if og, ok := doc.Find(`meta[property="og:title"]`).First().Attr("content"); ok {
		return strings.TrimSpace(og)
	}
	return ""
}

// TitleOrFallback extracts the page title, falling back to the given value
// (typically the URL) when the page carries none.
func TitleOrFallback(html []byte, fallback string) string {
	if t := Title(html); t != "" {
		return t
	}
	return fallback
}
