package enrich

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"github.com/use-agent/leadgen/config"
	"github.com/use-agent/leadgen/models"
	"golang.org/x/time/rate"
)

// Enricher fills in lead emails: Hunter.io first, then a scan of the
// lead's own website when Hunter comes up empty.
type Enricher struct {
	hunter  *HunterClient
	fetcher *httpFetcher

	// limiter paces all outbound lookups; both Hunter and the scraped
	// websites will ban clients that hammer them.
	limiter *rate.Limiter
}

// NewEnricher creates an Enricher from config. proxy applies to website
// fallback fetches only; Hunter is always contacted directly.
func NewEnricher(cfg config.HunterConfig, proxy string) *Enricher {
	return &Enricher{
		hunter:  NewHunterClient(cfg.BaseURL, cfg.Timeout),
		fetcher: newHTTPFetcher(proxy),
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
	}
}

// EnrichLeads looks up an email for every lead that has a website and no
// email yet. Per-lead failures are logged and skipped; the returned slice
// always has the same length and order as the input.
func (e *Enricher) EnrichLeads(ctx context.Context, leads []models.Lead, apiKey string) ([]models.Lead, error) {
	enriched := make([]models.Lead, len(leads))
	copy(enriched, leads)

	for i := range enriched {
		lead := &enriched[i]
		if lead.Email != "" {
			continue
		}

		domain := DomainFromWebsite(lead.Website)
		if domain == "" {
			continue
		}

		if err := e.limiter.Wait(ctx); err != nil {
			return enriched, models.NewServiceError(models.ErrCodeEnrichFailed, "enrichment canceled", err)
		}

		email, err := e.hunter.FindEmail(ctx, apiKey, domain, lead.Name)
		if err != nil {
			slog.Warn("hunter lookup failed", "name", lead.Name, "domain", domain, "error", err)
		}

		if email == "" {
			email = e.websiteEmail(ctx, lead.Website)
		}

		if email != "" {
			lead.Email = email
			slog.Info("enriched", "name", lead.Name, "domain", domain)
		}
	}

	return enriched, nil
}

// websiteEmail fetches the lead's website and scans the HTML for a
// contact address. Best-effort: any failure returns "".
func (e *Enricher) websiteEmail(ctx context.Context, website string) string {
	if err := e.limiter.Wait(ctx); err != nil {
		return ""
	}
	body, err := e.fetcher.fetch(ctx, website)
	if err != nil {
		slog.Debug("website fetch failed", "website", website, "error", err)
		return ""
	}
	return ScanForEmail(string(body))
}

// DomainFromWebsite extracts a bare registrable-looking domain from a
// website URL. Returns "" when the input is empty or unparseable.
func DomainFromWebsite(website string) string {
	if website == "" {
		return ""
	}
	if !strings.Contains(website, "://") {
		website = "https://" + website
	}
	u, err := url.Parse(website)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}
