// Package links decides which discovered anchors are worth following as
// article candidates. The validator is pure: it never fetches anything and
// operates only on the anchor text and URLs the discovery layer hands it.
package links

import (
	"net/url"
	"path"
	"regexp"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// Anchors with fewer words than this are treated as navigation ("Home",
// "More", "Subscribe"), not article links.
const minAnchorWordCount = 5

// allowedURLPatterns accept article URLs from sources whose paths or domains
// the generic heuristics would reject, e.g. syndication mirrors.
var allowedURLPatterns = []*regexp.Regexp{
	regexp.MustCompile(`apnews\.com/[a-z0-9]`),
}

// nonArticleSegments are URL path segments that indicate listing or utility
// pages rather than articles.
var nonArticleSegments = map[string]bool{
	"login":    true,
	"signin":   true,
	"signup":   true,
	"register": true,
	"search":   true,
	"contact":  true,
	"about":    true,
	"privacy":  true,
	"terms":    true,
	"tag":      true,
	"tags":     true,
	"category": true,
	"author":   true,
	"page":     true,
	"feed":     true,
	"rss":      true,
	"sitemap":  true,
	"account":  true,
}

// nonArticleExtensions are file extensions that indicate non-article resources.
var nonArticleExtensions = map[string]bool{
	".pdf":  true,
	".xml":  true,
	".json": true,
	".css":  true,
	".js":   true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".svg":  true,
	".ico":  true,
	".zip":  true,
	".mp3":  true,
	".mp4":  true,
}

// IsValidLink reports whether a discovered anchor is worth fetching as an
// article candidate. Rules apply in order: the anchor must read like a
// headline; a per-source override pattern, when present, decides alone;
// otherwise the candidate must stay on the listing page's registrable domain
// with an article-shaped path, or match the fixed allow-list.
func IsValidLink(pageURL, candidateURL, anchorText string, override *regexp.Regexp) bool {
	if wordCount(anchorText) < minAnchorWordCount {
		return false
	}

	if override != nil {
		return override.MatchString(candidateURL)
	}

	if matchesAllowList(candidateURL) {
		return true
	}

	return sameRegistrableDomain(pageURL, candidateURL) && hasArticlePath(candidateURL)
}

// wordCount splits on runs of whitespace after trimming.
func wordCount(s string) int {
	return len(strings.Fields(s))
}

// matchesAllowList checks the fixed allow-list of known article URL shapes.
func matchesAllowList(candidateURL string) bool {
	for _, re := range allowedURLPatterns {
		if re.MatchString(candidateURL) {
			return true
		}
	}
	return false
}

// sameRegistrableDomain compares the eTLD+1 of both URLs, so subdomains of
// one publisher (www, amp, editions) count as the same site.
func sameRegistrableDomain(pageURL, candidateURL string) bool {
	pageDomain := registrableDomain(pageURL)
	candidateDomain := registrableDomain(candidateURL)

	return pageDomain != "" && pageDomain == candidateDomain
}

// registrableDomain returns the eTLD+1 for a URL, or "" when it has none.
func registrableDomain(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Hostname() == "" {
		return ""
	}

	domain, err := publicsuffix.EffectiveTLDPlusOne(parsed.Hostname())
	if err != nil {
		return ""
	}
	return domain
}

// hasArticlePath checks that the candidate's path is plausible as an article:
// not a section or tag root, not a known non-article file type, and with at
// least one meaningful path component.
func hasArticlePath(candidateURL string) bool {
	parsed, err := url.Parse(candidateURL)
	if err != nil {
		return false
	}

	trimmed := strings.TrimRight(parsed.Path, "/")
	if trimmed == "" {
		return false
	}

	lowerPath := strings.ToLower(trimmed)
	if nonArticleExtensions[path.Ext(lowerPath)] {
		return false
	}

	segments := strings.Split(strings.TrimLeft(lowerPath, "/"), "/")
	for _, seg := range segments {
		if nonArticleSegments[seg] {
			return false
		}
	}

	// A bare one-word segment like /world is a section front, not an article.
	last := segments[len(segments)-1]
	if len(segments) == 1 && !strings.ContainsAny(last, "-_.") {
		return false
	}

	return true
}
