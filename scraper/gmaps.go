package scraper

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/use-agent/leadgen/models"
)

const (
	searchBaseURL = "https://www.google.com/maps/search/"
	placeBaseURL  = "https://www.google.com/maps/place/"

	// Selectors for the JS-rendered results panel. Google rotates its
	// class names periodically; these are current and known-fragile.
	resultsFeedSelector = `div[role="feed"]`
	resultTileSelector  = `div.Nv2PK`
	detailPanelSelector = `div[role="main"]`
)

// resultTile is one entry in the results feed. Lead parses the tile's
// inline fields; Fill runs the click-through detail pass for a lead
// that made it into the batch.
type resultTile interface {
	Lead() (models.Lead, bool)
	Fill(ctx context.Context, lead *models.Lead)
}

// tileFeed yields result tiles one scroll cycle at a time.
type tileFeed interface {
	NextCycle(ctx context.Context) ([]resultTile, error)
}

// collectLeads drains the feed for up to maxResults/10 scroll cycles
// (at least one), deduplicating by business name and capping the batch
// at maxResults. Only leads that enter the batch get the detail pass.
func collectLeads(ctx context.Context, feed tileFeed, maxResults int) ([]models.Lead, error) {
	cycles := maxResults / 10
	if cycles < 1 {
		cycles = 1
	}

	leads := make([]models.Lead, 0, maxResults)
	seen := make(map[string]struct{}, maxResults)

	for i := 0; i < cycles && len(leads) < maxResults; i++ {
		tiles, err := feed.NextCycle(ctx)
		if err != nil {
			return nil, err
		}

		for _, tile := range tiles {
			if len(leads) >= maxResults {
				break
			}

			lead, ok := tile.Lead()
			if !ok {
				continue
			}
			if _, dup := seen[lead.Name]; dup {
				continue
			}

			tile.Fill(ctx, &lead)

			seen[lead.Name] = struct{}{}
			leads = append(leads, lead)
			slog.Info("scraped", "name", lead.Name)
		}
	}
	return leads, nil
}

// ScrapeBusinesses drives the search-scroll-extract loop for one query.
//
// Flow (mirrors the results panel's scroll-triggered loading):
//  1. Navigate to the search URL and wait for the results feed.
//  2. For a bounded number of cycles (maxResults/10, at least one):
//     scroll the feed to its bottom, pause, re-query the result tiles.
//  3. Per tile: parse the listing fields, skip names already seen,
//     click through for phone/website/place URL, then go back.
//
// Detail-pass failures are logged and skipped; the lead keeps whatever
// tile-level fields were extracted.
func (s *Scraper) ScrapeBusinesses(ctx context.Context, query, location string, maxResults int) ([]models.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	searchURL := searchBaseURL + url.PathEscape(query+" "+location)
	slog.Info("starting scrape",
		"query", query,
		"location", location,
		"max_results", maxResults,
	)

	p := s.page.Context(ctx)

	if err := p.Navigate(searchURL); err != nil {
		return nil, models.NewServiceError(
			models.ErrCodeScrapeFailed,
			"navigation to search URL failed",
			err,
		)
	}
	if err := sleepCtx(ctx, s.scraperCfg.SettleDelay); err != nil {
		return nil, models.NewServiceError(models.ErrCodeScrapeFailed, "scrape canceled", err)
	}

	if _, err := p.Timeout(s.scraperCfg.NavigationTimeout).Element(resultsFeedSelector); err != nil {
		return nil, models.NewServiceError(
			models.ErrCodeScrapeFailed,
			"results feed did not appear",
			err,
		)
	}

	leads, err := collectLeads(ctx, &pageFeed{s: s, p: p}, maxResults)
	if err != nil {
		return nil, err
	}

	slog.Info("scraping completed", "found", len(leads))
	return leads, nil
}

// pageFeed adapts the live results page to tileFeed.
type pageFeed struct {
	s *Scraper
	p *rod.Page
}

func (f *pageFeed) NextCycle(ctx context.Context) ([]resultTile, error) {
	f.s.scrollResults(f.p)
	if err := sleepCtx(ctx, f.s.scraperCfg.ScrollPause); err != nil {
		return nil, models.NewServiceError(models.ErrCodeScrapeFailed, "scrape canceled", err)
	}

	els, err := f.p.Elements(resultTileSelector)
	if err != nil {
		// A failed tile query skips this cycle, not the whole scrape.
		slog.Warn("failed to query result tiles", "error", err)
		return nil, nil
	}

	tiles := make([]resultTile, 0, len(els))
	for _, el := range els {
		tiles = append(tiles, &pageTile{s: f.s, p: f.p, el: el})
	}
	return tiles, nil
}

// pageTile wraps one rod element in the results feed.
type pageTile struct {
	s  *Scraper
	p  *rod.Page
	el *rod.Element
}

func (t *pageTile) Lead() (models.Lead, bool) {
	tileHTML, err := t.el.HTML()
	if err != nil {
		return models.Lead{}, false
	}
	return parseTile(tileHTML)
}

func (t *pageTile) Fill(ctx context.Context, lead *models.Lead) {
	if err := t.s.fillDetails(ctx, t.p, t.el, lead); err != nil {
		slog.Warn("detail extraction failed",
			"name", lead.Name,
			"error", err,
		)
	}
}

// fillDetails clicks into a listing, extracts phone/website/place URL from
// the opened panel, and navigates back to the results feed.
func (s *Scraper) fillDetails(ctx context.Context, p *rod.Page, tile *rod.Element, lead *models.Lead) error {
	if err := tile.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return err
	}
	if err := sleepCtx(ctx, s.scraperCfg.DetailPause); err != nil {
		return err
	}

	// NavigateBack must run even when panel extraction fails, otherwise the
	// next tile gets parsed against the wrong page.
	defer func() {
		if backErr := p.NavigateBack(); backErr != nil {
			slog.Warn("failed to navigate back to results", "error", backErr)
		}
		_ = sleepCtx(ctx, s.scraperCfg.DetailPause)
	}()

	currentURL := evalStringOrEmpty(p, `() => window.location.href`)
	if strings.Contains(currentURL, "place/") {
		lead.GoogleMapsURL = currentURL
		lead.PlaceID = PlaceIDFromURL(currentURL)
		if coords := CoordsFromURL(currentURL); coords != nil {
			lead.Coordinates = coords
		}
	}

	panel, err := p.Element(detailPanelSelector)
	if err != nil {
		return err
	}
	panelHTML, err := panel.HTML()
	if err != nil {
		return err
	}

	phone, website := parseDetailPanel(panelHTML)
	if phone != "" {
		lead.Phone = phone
	}
	if website != "" {
		lead.Website = website
	}
	return nil
}

// GetBusinessDetails opens a single place page and extracts its opening
// hours text. Best-effort: an empty map means the page gave nothing away.
func (s *Scraper) GetBusinessDetails(ctx context.Context, placeID string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.page.Context(ctx)

	if err := p.Navigate(placeBaseURL + url.PathEscape(placeID)); err != nil {
		return nil, models.NewServiceError(
			models.ErrCodeScrapeFailed,
			"navigation to place URL failed",
			err,
		)
	}
	if err := sleepCtx(ctx, s.scraperCfg.SettleDelay); err != nil {
		return nil, models.NewServiceError(models.ErrCodeScrapeFailed, "scrape canceled", err)
	}

	details := make(map[string]string)

	// The hours widget exposes the full weekly table via aria-label.
	if el, err := p.Timeout(s.scraperCfg.NavigationTimeout).Element(`div.t39EBf`); err == nil {
		if label, _ := el.Attribute("aria-label"); label != nil {
			details["hours"] = strings.TrimSpace(*label)
		}
	}

	return details, nil
}

// scrollResults scrolls the results feed to its bottom to trigger the
// next page of lazy-loaded listings.
func (s *Scraper) scrollResults(p *rod.Page) {
	_, err := p.Eval(`() => {
		const feed = document.querySelector('div[role="feed"]');
		if (feed) {
			feed.scrollTop = feed.scrollHeight;
		}
	}`)
	if err != nil {
		slog.Warn("scroll failed", "error", err)
	}
}

// evalStringOrEmpty evaluates a JS expression and returns the string result,
// swallowing any errors (useful for optional metadata extraction).
func evalStringOrEmpty(page *rod.Page, js string) string {
	res, err := page.Eval(js)
	if err != nil {
		return ""
	}
	return res.Value.Str()
}

// sleepCtx pauses for d or until ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
