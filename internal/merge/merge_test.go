package merge_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/newspipe/internal/domain"
	"github.com/jonesrussell/newspipe/internal/merge"
)

func sampleExtraction() *domain.Extraction {
	return &domain.Extraction{
		Title:        "Fire Crews Battle Blaze Overnight",
		Authors:      []string{"Jordan Reyes"},
		Description:  "Crews contained the fire by morning.",
		Text:         "Fire crews worked through the night...",
		ImageURL:     "https://example.com/img/blaze.jpg",
		URL:          "https://example.com/news/fire-crews-battle-blaze-overnight",
		CanonicalURL: "https://example.com/news/fire-crews-battle-blaze-overnight",
		AMPURL:       "https://example.com/amp/fire-crews-battle-blaze-overnight",
	}
}

func TestBuildUpsert_UpsertDocumentForNewArticle(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 2, 14, 6, 30, 0, 0, time.UTC)
	op := merge.BuildUpsert("abc123", "example", "world", sampleExtraction(), now)

	assert.Equal(t, "abc123", op.ArticleID)
	assert.Equal(t, "abc123", op.Upsert.ID)
	assert.Equal(t, "example", op.Upsert.SourceID)
	assert.Equal(t, []string{"world"}, op.Upsert.CategoryIDs)
	assert.Equal(t, now, op.Upsert.FirstSeenAt)
	assert.Equal(t, now, op.Upsert.LastSeenAt)
	assert.Contains(t, op.Upsert.ClusterText, "Fire Crews Battle Blaze Overnight")
	assert.Contains(t, op.Upsert.ClusterText, "Crews contained the fire by morning.")
}

func TestBuildUpsert_ScriptOnlyTouchesMembershipAndRecency(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	op := merge.BuildUpsert("abc123", "example", "politics", sampleExtraction(), now)

	assert.Equal(t, "painless", op.Script.Lang)
	assert.Equal(t, "politics", op.Script.Params["categoryId"])
	assert.Equal(t, now, op.Script.Params["lastSeenAt"])

	// The existing-document path must never overwrite content fields.
	assert.NotContains(t, op.Script.Source, "title")
	assert.NotContains(t, op.Script.Source, "text")
	assert.Contains(t, op.Script.Source, "categoryIds.contains")
	assert.Contains(t, op.Script.Source, "lastSeenAt")
}

func TestBuildUpsert_MarshalsAsUpdateBody(t *testing.T) {
	t.Parallel()

	op := merge.BuildUpsert("abc123", "example", "world", sampleExtraction(), time.Now().UTC())

	body, err := json.Marshal(op)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body, &decoded))

	// The wire form is exactly the two-part update body: script + upsert.
	assert.Contains(t, decoded, "script")
	assert.Contains(t, decoded, "upsert")
	assert.NotContains(t, decoded, "ArticleID")
}

func TestBuildUpsert_SameObservationIsIdempotent(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	first := merge.BuildUpsert("abc123", "example", "world", sampleExtraction(), now)
	second := merge.BuildUpsert("abc123", "example", "world", sampleExtraction(), now)

	assert.Equal(t, first, second)
}
