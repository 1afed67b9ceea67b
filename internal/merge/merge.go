// Package merge builds the atomic upsert operations that fold repeated
// observations of one article into a single articles document. All
// cross-observation coordination lives in the operation itself: the store
// applies it as one conditional update, so concurrent sightings of the same
// article id cannot race and drop a category or a timestamp.
package merge

import (
	"time"

	"github.com/jonesrussell/newspipe/internal/domain"
)

// categoryScript is the painless script applied when the article document
// already exists: add the category if absent, bump lastSeenAt. Content
// fields are never overwritten on repeat sightings.
const categoryScript = `
if (!ctx._source.categoryIds.contains(params.categoryId)) {
    ctx._source.categoryIds.add(params.categoryId)
}
ctx._source.lastSeenAt = params.lastSeenAt
`

// Script is the conditional part of an upsert, run by the store when the
// document exists.
type Script struct {
	Source string         `json:"source"`
	Lang   string         `json:"lang"`
	Params map[string]any `json:"params"`
}

// UpsertOp is one atomic insert-or-update against the articles index. The
// JSON form is the exact update body the store executes: the upsert document
// is used when no article exists yet, the script when one does.
type UpsertOp struct {
	ArticleID string `json:"-"`

	Script Script         `json:"script"`
	Upsert domain.Article `json:"upsert"`
}

// BuildUpsert constructs the upsert operation for one observation of an
// article. articleID must already be resolved from the extraction's identity
// URL; now is the observation time stamped into firstSeenAt/lastSeenAt.
func BuildUpsert(articleID, sourceID, categoryID string, ext *domain.Extraction, now time.Time) UpsertOp {
	return UpsertOp{
		ArticleID: articleID,
		Script: Script{
			Source: categoryScript,
			Lang:   "painless",
			Params: map[string]any{
				"categoryId": categoryID,
				"lastSeenAt": now,
			},
		},
		Upsert: domain.Article{
			ID:           articleID,
			SourceID:     sourceID,
			CategoryIDs:  []string{categoryID},
			Title:        ext.Title,
			Authors:      ext.Authors,
			Description:  ext.Description,
			Text:         ext.Text,
			ClusterText:  domain.BuildClusterText(ext.Title, ext.Description, ext.Text),
			ImageURL:     ext.ImageURL,
			PublishDate:  ext.PublishDate,
			URL:          ext.URL,
			CanonicalURL: ext.CanonicalURL,
			AMPURL:       ext.AMPURL,
			FirstSeenAt:  now,
			LastSeenAt:   now,
		},
	}
}
