package domain

import "time"

// Extraction holds the structured fields pulled out of one fetched article
// page. It is what the content extractor hands to the ingest coordinator.
type Extraction struct {
	Title        string
	Authors      []string
	Description  string
	Text         string
	ImageURL     string
	PublishDate  *time.Time
	URL          string
	CanonicalURL string
	AMPURL       string
}

// IdentityURL returns the URL the article's identity is derived from: the
// canonical URL when the publisher declares one, otherwise the fetched URL.
func (e *Extraction) IdentityURL() string {
	if e.CanonicalURL != "" {
		return e.CanonicalURL
	}
	return e.URL
}

// Candidate is one anchor discovered on a listing page, carrying the
// discovery context the coordinator needs to build a LinkObservation.
type Candidate struct {
	AnchorText string
	URL        string
	PageURL    string
	SourceID   string
	CategoryID string
	Position   int
}
