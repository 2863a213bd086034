package filename

import (
	"regexp"
	"strings"
)

// Platform identifies the social/content platform a title was recognized as.
type Platform int

const (
	// PlatformUnknown marks titles that match no platform rule.
	PlatformUnknown Platform = iota
	// PlatformX covers both x.com and legacy twitter.com shapes.
	PlatformX
	PlatformInstagram
	PlatformLinkedIn
	PlatformYouTube
	PlatformReddit
	PlatformTikTok
)

var platformNames = map[Platform]string{
	PlatformX:         "X",
	PlatformInstagram: "Instagram",
	PlatformLinkedIn:  "LinkedIn",
	PlatformYouTube:   "YouTube",
	PlatformReddit:    "Reddit",
	PlatformTikTok:    "TikTok",
}

// String returns the platform label used in assembled filenames.
func (p Platform) String() string {
	if name, ok := platformNames[p]; ok {
		return name
	}
	return "Web"
}

// Known reports whether p identifies a concrete platform.
func (p Platform) Known() bool { return p != PlatformUnknown }

// StructuredTitle is a title decomposed into platform, author, and content
// segments. Derived once per raw title via Extract; immutable afterwards.
type StructuredTitle struct {
	Platform Platform
	User     string // cleaned author token; empty when the rule captured none
	Content  string // remaining descriptive text; may be empty
	Raw      string // the sanitized input the extraction was derived from
}

// extractRule pairs a compiled pattern with the platform it identifies and
// a function mapping capture groups to the author token. Rules are evaluated
// in order by [Extract]; first match wins. Patterns that capture a numeric
// status/post id are ordered before generic domain-only patterns.
type extractRule struct {
	name     string
	pattern  *regexp.Regexp
	platform func(m []string) Platform
	user     func(m []string) string
}

// connective is the "on <platform>" marker in zh-locale social titles,
// e.g. "X 上的 宝玉：...". It doubles as the joiner in assembled stems.
const connective = "上的"

// defaultUser stands in when a rule matches but captures no usable author.
const defaultUser = "user"

var (
	reXStatus = regexp.MustCompile(
		`(?i)\b(?:twitter|x)\.com[/_]@?([A-Za-z0-9_]{1,20})[/_]status(?:es)?[/_][0-9]+`)

	reConnective = regexp.MustCompile(
		`(?i)^(?:\([0-9]+\)\s*)?(x|twitter|instagram|linkedin|youtube|reddit|tiktok)[ _]?上的[ _]?([^：:_ ]+)`)

	reInstagramPost = regexp.MustCompile(
		`(?i)\binstagram\.com[/_](?:p|reel|tv)[/_][A-Za-z0-9_-]+`)

	// Handle and subreddit captures exclude underscores: legacy filenames
	// join path segments with "_", so an underscore in the class would
	// swallow the segments after the name.
	reTikTokUser = regexp.MustCompile(
		`(?i)\btiktok\.com[/_]@([A-Za-z0-9.]+)`)

	reYouTubeHandle = regexp.MustCompile(
		`(?i)\byoutube\.com[/_]@([A-Za-z0-9.-]+)`)

	reYouTubeWatch = regexp.MustCompile(
		`(?i)\b(?:youtube\.com[/_]watch\S*|youtu\.be[/_][A-Za-z0-9_-]+)`)

	reYouTubeSuffix = regexp.MustCompile(
		`(?i)\s*[-–—|]\s*youtube\s*$`)

	reLinkedInPath = regexp.MustCompile(
		`(?i)\blinkedin\.com[/_](?:in|posts|pulse)[/_]([A-Za-z0-9%_.-]+)`)

	reRedditSub = regexp.MustCompile(
		`(?i)\breddit\.com[/_]r[/_]([A-Za-z0-9]+)`)

	reXDomain         = regexp.MustCompile(`(?i)\b(?:twitter|x)\.com\b`)
	reInstagramDomain = regexp.MustCompile(`(?i)\binstagram\.com\b`)
	reLinkedInDomain  = regexp.MustCompile(`(?i)\blinkedin\.com\b`)
	reYouTubeDomain   = regexp.MustCompile(`(?i)\b(?:youtube\.com|youtu\.be)\b`)
	reRedditDomain    = regexp.MustCompile(`(?i)\breddit\.com\b`)
	reTikTokDomain    = regexp.MustCompile(`(?i)\btiktok\.com\b`)
)

var platformByName = map[string]Platform{
	"x":         PlatformX,
	"twitter":   PlatformX,
	"instagram": PlatformInstagram,
	"linkedin":  PlatformLinkedIn,
	"youtube":   PlatformYouTube,
	"reddit":    PlatformReddit,
	"tiktok":    PlatformTikTok,
}

func fixedPlatform(p Platform) func([]string) Platform {
	return func([]string) Platform { return p }
}

func namedPlatform(group int) func([]string) Platform {
	return func(m []string) Platform {
		return platformByName[strings.ToLower(m[group])]
	}
}

func capturedUser(group int) func([]string) string {
	return func(m []string) string { return m[group] }
}

func noUser([]string) string { return "" }

// extractRules is the ordered platform pattern table. First match wins.
var extractRules = []extractRule{
	{"x-status", reXStatus, fixedPlatform(PlatformX), capturedUser(1)},
	{"connective", reConnective, namedPlatform(1), capturedUser(2)},
	{"instagram-post", reInstagramPost, fixedPlatform(PlatformInstagram), noUser},
	{"tiktok-user", reTikTokUser, fixedPlatform(PlatformTikTok), capturedUser(1)},
	{"youtube-handle", reYouTubeHandle, fixedPlatform(PlatformYouTube), capturedUser(1)},
	{"youtube-watch", reYouTubeWatch, fixedPlatform(PlatformYouTube), noUser},
	{"youtube-suffix", reYouTubeSuffix, fixedPlatform(PlatformYouTube), noUser},
	{"linkedin-path", reLinkedInPath, fixedPlatform(PlatformLinkedIn), capturedUser(1)},
	{"reddit-sub", reRedditSub, fixedPlatform(PlatformReddit), capturedUser(1)},
	{"x-domain", reXDomain, fixedPlatform(PlatformX), noUser},
	{"instagram-domain", reInstagramDomain, fixedPlatform(PlatformInstagram), noUser},
	{"linkedin-domain", reLinkedInDomain, fixedPlatform(PlatformLinkedIn), noUser},
	{"youtube-domain", reYouTubeDomain, fixedPlatform(PlatformYouTube), noUser},
	{"reddit-domain", reRedditDomain, fixedPlatform(PlatformReddit), noUser},
	{"tiktok-domain", reTikTokDomain, fixedPlatform(PlatformTikTok), noUser},
}

// structuralKeywords are path segments that regularly leak into author
// captures and never name a person.
var structuralKeywords = map[string]bool{
	"status":   true,
	"statuses": true,
	"watch":    true,
	"posts":    true,
	"post":     true,
	"comments": true,
	"video":    true,
	"shorts":   true,
	"share":    true,
	"home":     true,
	"user":     true,
	"p":        true,
	"reel":     true,
	"tv":       true,
	"www":      true,
}

// Extract applies the ordered platform pattern table to a sanitized title.
// If no rule matches, the entire text becomes Content with no platform.
func Extract(text string) StructuredTitle {
	trimmed := strings.TrimSpace(text)
	for _, rule := range extractRules {
		m := rule.pattern.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		return StructuredTitle{
			Platform: rule.platform(m),
			User:     cleanUser(rule.user(m)),
			Content:  extractContent(trimmed, rule.pattern),
			Raw:      trimmed,
		}
	}
	return StructuredTitle{Platform: PlatformUnknown, Content: trimmed, Raw: trimmed}
}

// cleanUser normalizes a captured author token: path separators removed,
// surrounding separators trimmed, structural path keywords rejected.
// Returns defaultUser when nothing usable remains of a non-empty capture.
func cleanUser(user string) string {
	user = strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' {
			return -1
		}
		return r
	}, user)
	user = strings.Trim(user, " _-–—：:\"'“”@")
	if user == "" {
		return ""
	}
	if structuralKeywords[strings.ToLower(user)] {
		return defaultUser
	}
	return user
}

var (
	// urlFragmentRe matches explicit URLs, percent-encoded URLs, and [URL]
	// marker tokens embedded in titles.
	urlFragmentRe = regexp.MustCompile(
		`(?i)(?:\[URL\][ _]?)?https?(?::|%3a)(?:/|%2f){2}\S*|\[URL\]`)

	// domainPathRe matches bare domain/path blobs such as
	// "x.com_user_status_123" that legacy filenames carry in place of URLs.
	domainPathRe = regexp.MustCompile(
		`(?i)\b(?:[a-z0-9-]+\.)+[a-z]{2,6}(?:[/_][A-Za-z0-9@?=&%._~-]+)*`)
)

// contentTrimCutset holds the separator and quotation characters trimmed
// from the edges of extracted content.
const contentTrimCutset = " \t_-–—·|:：;；,，、.。\"'“”‘’()（）[]【】<>《》"

// extractContent strips the matched platform/author prefix and any embedded
// URL or path fragments from the title, leaving the descriptive remainder.
// URL and domain blobs go first: a rule match usually covers only the head
// of a blob, and removing it would orphan the tail segments.
func extractContent(text string, matched *regexp.Regexp) string {
	out := urlFragmentRe.ReplaceAllString(text, " ")
	out = domainPathRe.ReplaceAllString(out, " ")
	out = matched.ReplaceAllString(out, " ")
	out = strings.Join(strings.Fields(out), " ")
	return strings.Trim(out, contentTrimCutset)
}
