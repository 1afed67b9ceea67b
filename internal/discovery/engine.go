package discovery

import (
	"bytes"
	"context"
	"errors"
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"github.com/jonesrussell/newspipe/internal/config"
	"github.com/jonesrussell/newspipe/internal/domain"
	"github.com/jonesrussell/newspipe/internal/extract"
	"github.com/jonesrussell/newspipe/internal/ingest"
	"github.com/jonesrussell/newspipe/internal/links"
	"github.com/jonesrussell/newspipe/internal/logger"
	"github.com/jonesrussell/newspipe/internal/metrics"
	"github.com/jonesrussell/newspipe/internal/sources"
)

// candidateKey carries the discovery context on article requests.
const candidateKey = "candidate"

// Engine drives one crawl run: listing pages in, ingested articles out.
type Engine struct {
	sources     *sources.Sources
	coordinator *ingest.Coordinator
	extractor   *extract.Extractor
	metrics     *metrics.Metrics
	renderer    *Renderer
	logger      logger.Interface

	listings *colly.Collector
	articles *colly.Collector

	// runCtx is the context of the in-flight run, set by Run before any
	// request goes out. Collector callbacks have no context parameter.
	runCtx context.Context
}

// NewEngine wires a discovery engine for one run. renderer may be nil when
// no rendering service is configured; render-flagged sources are then
// fetched directly.
func NewEngine(
	srcs *sources.Sources,
	coordinator *ingest.Coordinator,
	extractor *extract.Extractor,
	runMetrics *metrics.Metrics,
	renderer *Renderer,
	cfg config.CrawlerConfig,
	log logger.Interface,
) (*Engine, error) {
	listings := colly.NewCollector(
		colly.Async(),
		colly.UserAgent(cfg.UserAgent),
	)
	if err := listings.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: cfg.Parallelism,
		Delay:       cfg.RequestDelay,
	}); err != nil {
		return nil, err
	}
	listings.SetRequestTimeout(cfg.RequestTimeout)

	engine := &Engine{
		sources:     srcs,
		coordinator: coordinator,
		extractor:   extractor,
		metrics:     runMetrics,
		renderer:    renderer,
		logger:      log,
		listings:    listings,
		articles:    listings.Clone(),
	}
	engine.registerHandlers()

	return engine, nil
}

// registerHandlers installs the listing and article callbacks.
func (e *Engine) registerHandlers() {
	e.listings.OnResponse(func(r *colly.Response) {
		e.metrics.IncrementPagesVisited()

		source, section, ok := e.lookupSection(r.Request.Ctx)
		if !ok {
			return
		}
		e.handleListing(r.Request.URL.String(), r.Body, source, section)
	})

	e.listings.OnError(func(r *colly.Response, err error) {
		e.metrics.IncrementRequestsFailed()
		e.logger.Warn("Listing fetch failed", "url", r.Request.URL.String(), "error", err)
	})

	e.articles.OnResponse(func(r *colly.Response) {
		e.metrics.IncrementPagesVisited()

		cand, ok := r.Request.Ctx.GetAny(candidateKey).(*domain.Candidate)
		if !ok {
			return
		}
		e.handleArticle(r.Request.URL.String(), r.Body, cand)
	})

	e.articles.OnError(func(r *colly.Response, err error) {
		e.metrics.IncrementRequestsFailed()
		e.logger.Warn("Article fetch failed", "url", r.Request.URL.String(), "error", err)
	})
}

// Run crawls every section of every configured source, waits for all
// submitted work to finish, then closes the batch and persists its summary.
func (e *Engine) Run(ctx context.Context) (*domain.BatchSummary, error) {
	e.runCtx = ctx

	for _, source := range e.sources.All() {
		for _, section := range source.Sections {
			e.visitListing(ctx, source, section)
		}
	}

	e.listings.Wait()
	e.articles.Wait()

	return e.coordinator.Close(ctx, e.metrics.Snapshot())
}

// visitListing fetches one listing page, through the rendering service when
// the source asks for it.
func (e *Engine) visitListing(ctx context.Context, source sources.Source, section sources.Section) {
	if source.Render && e.renderer != nil {
		html, err := e.renderer.Render(ctx, section.URL)
		if err != nil {
			e.metrics.IncrementRequestsFailed()
			e.logger.Warn("Render failed",
				"source", source.ID,
				"url", section.URL,
				"error", err)
			return
		}
		e.metrics.IncrementPagesVisited()
		e.handleListing(section.URL, html, &source, &section)
		return
	}

	reqCtx := colly.NewContext()
	reqCtx.Put("sourceID", source.ID)
	reqCtx.Put("categoryID", section.CategoryID)

	if err := e.listings.Request("GET", section.URL, nil, reqCtx, nil); err != nil {
		e.metrics.IncrementRequestsFailed()
		e.logger.Warn("Listing request failed",
			"source", source.ID,
			"url", section.URL,
			"error", err)
	}
}

// lookupSection recovers the source/section a listing response belongs to.
func (e *Engine) lookupSection(reqCtx *colly.Context) (*sources.Source, *sources.Section, bool) {
	sourceID := reqCtx.Get("sourceID")
	categoryID := reqCtx.Get("categoryID")
	if sourceID == "" {
		return nil, nil, false
	}

	source, err := e.sources.FindByID(sourceID)
	if err != nil {
		return nil, nil, false
	}
	for i := range source.Sections {
		if source.Sections[i].CategoryID == categoryID {
			return source, &source.Sections[i], true
		}
	}
	return nil, nil, false
}

// handleListing filters the anchors on one listing page and enqueues the
// accepted candidates. Position is the ordinal rank among accepted links.
func (e *Engine) handleListing(pageURL string, body []byte, source *sources.Source, section *sources.Section) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		e.logger.Warn("Failed to parse listing page", "url", pageURL, "error", err)
		return
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return
	}

	position := 0
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href := sel.AttrOr("href", "")
		anchorText := sel.Text()

		absURL := resolveURL(base, href)
		if absURL == "" {
			return
		}

		if !links.IsValidLink(pageURL, absURL, anchorText, source.CompiledLinkPattern()) {
			e.metrics.IncrementCandidatesRejected()
			return
		}
		e.metrics.IncrementCandidatesAccepted()

		cand := &domain.Candidate{
			AnchorText: anchorText,
			URL:        absURL,
			PageURL:    pageURL,
			SourceID:   source.ID,
			CategoryID: section.CategoryID,
			Position:   position,
		}
		position++

		e.visitArticle(cand)
	})
}

// visitArticle enqueues one accepted candidate for fetch and extraction.
func (e *Engine) visitArticle(cand *domain.Candidate) {
	reqCtx := colly.NewContext()
	reqCtx.Put(candidateKey, cand)

	if err := e.articles.Request("GET", cand.URL, nil, reqCtx, nil); err != nil {
		var alreadyVisited *colly.AlreadyVisitedError
		if errors.As(err, &alreadyVisited) {
			return
		}
		e.metrics.IncrementRequestsFailed()
		e.logger.Debug("Article request failed", "url", cand.URL, "error", err)
	}
}

// handleArticle extracts one fetched candidate and hands it to the ingest
// pipeline. Non-articles are dropped without a write.
func (e *Engine) handleArticle(pageURL string, body []byte, cand *domain.Candidate) {
	ext, err := e.extractor.FromHTML(pageURL, body)
	if err != nil {
		if errors.Is(err, extract.ErrNotArticle) {
			e.metrics.IncrementExtractionsSkipped()
			return
		}
		e.logger.Warn("Extraction failed", "url", pageURL, "error", err)
		return
	}

	if ingestErr := e.coordinator.Ingest(e.runCtx, cand, ext); ingestErr != nil {
		e.metrics.IncrementWriteFailures()
		e.logger.Error("Ingest failed",
			"url", pageURL,
			"source", cand.SourceID,
			"error", ingestErr)
	}
}

// resolveURL makes href absolute against the listing page URL.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	abs := base.ResolveReference(ref)
	if abs.Scheme != "http" && abs.Scheme != "https" {
		return ""
	}
	return abs.String()
}
