package links_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonesrussell/newspipe/internal/links"
)

const listingPage = "https://example.com/news"

func TestIsValidLink_RejectsShortAnchorText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		anchor string
	}{
		{"single word", "Subscribe"},
		{"navigation", "More"},
		{"four words", "Read the full story"},
		{"empty", ""},
		{"whitespace only", "   \t  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ok := links.IsValidLink(
				listingPage,
				"https://example.com/news/fire-crews-battle-blaze-overnight",
				tt.anchor,
				nil,
			)
			assert.False(t, ok)
		})
	}
}

func TestIsValidLink_AcceptsHeadlineOnOwnDomain(t *testing.T) {
	t.Parallel()

	ok := links.IsValidLink(
		listingPage,
		"https://example.com/news/fire-crews-battle-blaze-overnight",
		"Fire Crews Battle Blaze Overnight",
		nil,
	)
	assert.True(t, ok)
}

func TestIsValidLink_AcceptsSubdomainOfSameSite(t *testing.T) {
	t.Parallel()

	ok := links.IsValidLink(
		"https://www.example.com/news",
		"https://amp.example.com/news/fire-crews-battle-blaze-overnight",
		"Fire Crews Battle Blaze Overnight",
		nil,
	)
	assert.True(t, ok)
}

func TestIsValidLink_RejectsForeignDomain(t *testing.T) {
	t.Parallel()

	ok := links.IsValidLink(
		listingPage,
		"https://other.com/news/fire-crews-battle-blaze-overnight",
		"Fire Crews Battle Blaze Overnight",
		nil,
	)
	assert.False(t, ok)
}

func TestIsValidLink_RejectsNonArticlePaths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
	}{
		{"site root", "https://example.com/"},
		{"section front", "https://example.com/world"},
		{"tag page", "https://example.com/tag/fires"},
		{"pdf", "https://example.com/reports/q3-summary.pdf"},
		{"feed", "https://example.com/feed/atom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ok := links.IsValidLink(listingPage, tt.url, "Fire Crews Battle Blaze Overnight", nil)
			assert.False(t, ok)
		})
	}
}

func TestIsValidLink_OverridePatternDecidesAlone(t *testing.T) {
	t.Parallel()

	override := regexp.MustCompile(`syndication\.mirror\.net/stories/`)

	// Off-domain URL the heuristics would reject, accepted by the override.
	assert.True(t, links.IsValidLink(
		listingPage,
		"https://syndication.mirror.net/stories/12345",
		"Fire Crews Battle Blaze Overnight",
		override,
	))

	// Same-domain article URL the heuristics would accept, rejected because
	// the override does not match it.
	assert.False(t, links.IsValidLink(
		listingPage,
		"https://example.com/news/fire-crews-battle-blaze-overnight",
		"Fire Crews Battle Blaze Overnight",
		override,
	))
}

func TestIsValidLink_OverrideStillRequiresHeadlineAnchor(t *testing.T) {
	t.Parallel()

	override := regexp.MustCompile(`.`)

	ok := links.IsValidLink(listingPage, "https://anything.net/x", "Subscribe", override)
	assert.False(t, ok)
}

func TestIsValidLink_AllowListAcceptsKnownShapes(t *testing.T) {
	t.Parallel()

	ok := links.IsValidLink(
		listingPage,
		"https://apnews.com/a1b2c3d4e5",
		"Fire Crews Battle Blaze Overnight",
		nil,
	)
	assert.True(t, ok)
}
