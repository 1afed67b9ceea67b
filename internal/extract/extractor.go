// Package extract turns fetched article pages into structured fields. The
// page is gated on its og:type declaration; pages that do not declare
// themselves articles are skipped without any write.
package extract

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/newspipe/internal/domain"
)

// ErrNotArticle indicates the fetched page is not an article. Not a failure:
// the candidate is dropped and nothing is written.
var ErrNotArticle = errors.New("page is not an article")

// dateLayouts are the publish-date formats publishers commonly emit.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Extractor reads structured article fields out of fetched page bodies.
type Extractor struct{}

// New creates an extractor.
func New() *Extractor {
	return &Extractor{}
}

// Fields holds the raw strings read from the page before assembly. Kept
// unexported; callers receive a domain.Extraction from FromHTML.
type fields struct {
	ogType       string
	title        string
	description  string
	canonicalURL string
	ampURL       string
	imageURL     string
	publishDate  string
	authors      []string
}

// FromHTML parses the page and returns the extracted article fields, or
// ErrNotArticle when the page does not declare og:type=article.
func (e *Extractor) FromHTML(pageURL string, body []byte) (*domain.Extraction, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page %s: %w", pageURL, err)
	}

	f := readFields(doc)
	if !strings.EqualFold(f.ogType, "article") {
		return nil, ErrNotArticle
	}

	return &domain.Extraction{
		Title:        f.title,
		Authors:      f.authors,
		Description:  f.description,
		Text:         readBodyText(doc),
		ImageURL:     f.imageURL,
		PublishDate:  parsePublishDate(f.publishDate),
		URL:          pageURL,
		CanonicalURL: f.canonicalURL,
		AMPURL:       f.ampURL,
	}, nil
}

// readFields collects the meta and link tags the pipeline persists.
func readFields(doc *goquery.Document) fields {
	f := fields{
		ogType:       metaProperty(doc, "og:type"),
		title:        metaProperty(doc, "og:title"),
		description:  metaProperty(doc, "og:description"),
		imageURL:     metaProperty(doc, "og:image"),
		canonicalURL: linkHref(doc, "canonical"),
		ampURL:       linkHref(doc, "amphtml"),
		publishDate:  metaProperty(doc, "article:published_time"),
	}

	if f.title == "" {
		f.title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	doc.Find(`meta[name="author"], meta[property="article:author"]`).
		Each(func(_ int, sel *goquery.Selection) {
			if author := strings.TrimSpace(sel.AttrOr("content", "")); author != "" {
				f.authors = append(f.authors, author)
			}
		})

	return f
}

// readBodyText assembles the article text from paragraph elements, preferring
// the article container when the page has one.
func readBodyText(doc *goquery.Document) string {
	container := doc.Find("article").First()
	if container.Length() == 0 {
		container = doc.Find("body").First()
	}

	var paragraphs []string
	container.Find("p").Each(func(_ int, sel *goquery.Selection) {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})

	return strings.Join(paragraphs, "\n\n")
}

// metaProperty returns the content attribute of a meta property tag.
func metaProperty(doc *goquery.Document, property string) string {
	sel := doc.Find(fmt.Sprintf(`meta[property=%q]`, property)).First()
	return strings.TrimSpace(sel.AttrOr("content", ""))
}

// linkHref returns the href of a link rel tag.
func linkHref(doc *goquery.Document, rel string) string {
	sel := doc.Find(fmt.Sprintf(`link[rel=%q]`, rel)).First()
	return strings.TrimSpace(sel.AttrOr("href", ""))
}

// parsePublishDate tries the known layouts; unparseable dates are dropped
// rather than failing the extraction.
func parsePublishDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return &ts
		}
	}
	return nil
}
