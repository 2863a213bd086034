package filename

import (
	"net/url"
	"strings"
)

// Budget carries the byte limits a stem is assembled against. All fields
// are encoded UTF-8 byte counts.
type Budget struct {
	// TotalBytes is the target length for the whole filename, extension
	// included. Stems aim for this, not the filesystem ceiling.
	TotalBytes int
	// CeilingBytes is the hard filesystem limit a filename must never
	// exceed. Encode enforces it as the last line of defense.
	CeilingBytes int
	// MinContent is the smallest content slice worth keeping. When the
	// remaining budget after the platform/user prefix falls below it, the
	// stem collapses to the prefix alone.
	MinContent int
	// ExtBytes is reserved for the file extension (dot included) before
	// any truncation happens, so appending it can never overflow.
	ExtBytes int
}

// DefaultBudget matches the archive layout: ~150-byte filenames with a
// .html extension, bounded by the common 255-byte filesystem limit.
var DefaultBudget = Budget{
	TotalBytes:   150,
	CeilingBytes: 255,
	MinContent:   12,
	ExtBytes:     len(".html"),
}

// minTotalBytes keeps degenerate budgets large enough for a timestamp
// fallback suffix plus a few bytes of stem.
const minTotalBytes = 24

// normalized clamps nonsensical budget values to workable ones.
func (b Budget) normalized() Budget {
	if b.CeilingBytes <= 0 {
		b.CeilingBytes = DefaultBudget.CeilingBytes
	}
	if b.TotalBytes <= 0 {
		b.TotalBytes = DefaultBudget.TotalBytes
	}
	if b.TotalBytes > b.CeilingBytes {
		b.TotalBytes = b.CeilingBytes
	}
	if b.ExtBytes < 0 {
		b.ExtBytes = 0
	}
	if b.TotalBytes < minTotalBytes+b.ExtBytes {
		b.TotalBytes = minTotalBytes + b.ExtBytes
	}
	if b.MinContent <= 0 {
		b.MinContent = DefaultBudget.MinContent
	}
	return b
}

// stemBudget is the byte allowance for the stem alone, extension reserved.
func (b Budget) stemBudget() int {
	return b.TotalBytes - b.ExtBytes
}

// untitledToken names pages whose titles carry no usable text at all.
const untitledToken = "untitled"

// urlMarker separates the descriptive prefix from the encoded source URL in
// URL-bearing stems.
const urlMarker = "[URL]"

// minEncodedURL is the least number of encoded-URL bytes worth keeping when
// a URL-bearing stem is squeezed; below that the tail stops identifying the
// page and the user token goes first instead.
const minEncodedURL = 24

// urlIndicatorFragments mark a title as URL-bearing: the stem must then
// preserve the source URL rather than descriptive content.
var urlIndicatorFragments = []string{
	"[url]",
	"http://",
	"https://",
	"%3a%2f%2f",
	"twitter.com",
	"x.com/",
	"instagram.com",
	"linkedin.com",
	"youtube.com",
	"youtu.be",
	"reddit.com",
	"tiktok.com",
}

// hasURLIndicators reports whether the title embeds a URL or a domain/path
// blob that stands in for one.
func hasURLIndicators(text string) bool {
	lower := strings.ToLower(text)
	for _, frag := range urlIndicatorFragments {
		if strings.Contains(lower, frag) {
			return true
		}
	}
	return false
}

// Assemble builds a stem (no extension) from a structured title within the
// budget. Titles carrying URL indicators keep the source URL in encoded
// form; everything else preserves as much descriptive content as fits.
// sourceURL, when known, takes precedence over any URL reconstructed from
// the title itself.
func Assemble(st StructuredTitle, sourceURL string, b Budget) string {
	b = b.normalized()
	max := b.stemBudget()

	if hasURLIndicators(st.Raw) {
		if stem := assembleURLStem(st, sourceURL, max); stem != "" {
			return stem
		}
	}
	return assembleContentStem(st, max, b.MinContent)
}

// assembleURLStem builds "{platform}_上的_{user}_[URL]_{encoded-url}". When
// over budget it shrinks pieces in order of descending dispensability: the
// encoded URL tail, then the user token, then the platform prefix.
func assembleURLStem(st StructuredTitle, sourceURL string, max int) string {
	raw := sourceURL
	if raw == "" {
		raw = reconstructURL(st.Raw)
	}
	if raw == "" {
		return ""
	}

	// The URL itself names the platform and author when the title does not.
	if !st.Platform.Known() {
		if fromURL := Extract(raw); fromURL.Platform.Known() {
			st.Platform = fromURL.Platform
			if st.User == "" {
				st.User = fromURL.User
			}
		}
	}

	encoded := url.QueryEscape(raw)

	user := st.User
	if user == "" {
		user = defaultUser
	}
	prefix := st.Platform.String() + "_" + connective + "_" + user

	stem := prefix + "_" + urlMarker + "_" + encoded
	if len(stem) <= max {
		return stem
	}

	// Trim the URL tail first; it degrades gracefully.
	head := prefix + "_" + urlMarker + "_"
	if avail := max - len(head); avail >= minEncodedURL {
		return head + trimEncoded(encoded, avail)
	}

	// Not enough room for a meaningful URL: sacrifice the user token.
	head = st.Platform.String() + "_" + urlMarker + "_"
	if avail := max - len(head); avail >= minEncodedURL {
		return head + trimEncoded(encoded, avail)
	}

	// Minimal skeleton. trimEncoded may return an empty tail under an
	// absurdly small budget; Truncate keeps the result within bounds.
	head = "Web_" + urlMarker + "_"
	if avail := max - len(head); avail > 0 {
		return head + trimEncoded(encoded, avail)
	}
	return Truncate(head, max)
}

// assembleContentStem builds "{platform}_上的_{user}_{content}" or, without a
// recognized platform, the truncated content alone.
func assembleContentStem(st StructuredTitle, max, minContent int) string {
	if !st.Platform.Known() {
		content := Truncate(st.Content, max)
		if content == "" {
			return untitledToken
		}
		return content
	}

	prefix := st.Platform.String() + "_" + connective
	if st.User != "" {
		prefix += "_" + st.User
	}
	prefix = Truncate(prefix, max)

	avail := max - len(prefix) - 1
	if st.Content == "" || avail < minContent {
		return prefix
	}
	return prefix + "_" + Truncate(st.Content, avail)
}

// reconstructURL rebuilds a source URL from a domain/path blob embedded in
// a legacy title, e.g. "twitter.com_user_status_123" becomes
// "https://x.com/user/status/123". Returns "" when no blob is present.
func reconstructURL(text string) string {
	blob := domainPathRe.FindString(text)
	if blob == "" {
		return ""
	}
	blob = strings.ReplaceAll(blob, "_", "/")
	// twitter.com redirects to x.com; archive under the canonical host.
	if strings.HasPrefix(blob, "twitter.com/") || blob == "twitter.com" {
		blob = "x.com" + strings.TrimPrefix(blob, "twitter.com")
	}
	return "https://" + blob
}

// trimEncoded cuts a percent-encoded string to at most maxBytes without
// splitting a %XX escape sequence.
func trimEncoded(encoded string, maxBytes int) string {
	if maxBytes <= 0 {
		return ""
	}
	if len(encoded) <= maxBytes {
		return encoded
	}
	cut := maxBytes
	// A '%' in either of the last two positions starts a broken escape.
	for i := cut - 1; i >= 0 && i >= cut-2; i-- {
		if encoded[i] == '%' {
			cut = i
			break
		}
	}
	return encoded[:cut]
}
