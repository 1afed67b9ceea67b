// Package domain provides domain models used across the application.
package domain

import (
	"strings"
	"time"
)

// Article is the canonical, deduplicated record for one piece of content.
// Its ID is content-addressed from the canonical URL, so repeat sightings of
// the same story across batches and categories converge on one document.
// Field names are a contract with downstream consumers (search UI, analytics).
type Article struct {
	// Content-addressed identifier, see identity.ResolveID.
	ID string `json:"id"`
	// Source that first surfaced the article.
	SourceID string `json:"sourceId"`
	// Categories the article has been observed under. Grows, never shrinks.
	CategoryIDs []string `json:"categoryIds"`
	// Title of the article.
	Title string `json:"title"`
	// Authors in the order the publisher lists them.
	Authors []string `json:"authors"`
	// Description, usually from og:description.
	Description string `json:"description"`
	// Full extracted body text.
	Text string `json:"text"`
	// Title, description and text concatenated for downstream clustering.
	ClusterText string `json:"clusterText"`
	// Representative image URL.
	ImageURL string `json:"imageUrl"`
	// Publish date as declared by the publisher, when available.
	PublishDate *time.Time `json:"publishDate"`
	// URL the article was fetched from.
	URL string `json:"url"`
	// Publisher-declared canonical URL, when present.
	CanonicalURL string `json:"canonicalUrl"`
	// AMP variant URL, when present.
	AMPURL string `json:"ampUrl"`
	// When the article was first and most recently observed.
	FirstSeenAt time.Time `json:"firstSeenAt"`
	LastSeenAt  time.Time `json:"lastSeenAt"`
}

// BuildClusterText concatenates title, description and text the way the
// articles index expects clusterText to be populated.
func BuildClusterText(title, description, text string) string {
	return strings.Join([]string{title, description, text}, " ")
}

// HasCategory reports whether the article already carries the category.
func (a *Article) HasCategory(categoryID string) bool {
	for _, c := range a.CategoryIDs {
		if c == categoryID {
			return true
		}
	}
	return false
}
