package models

// ScrapeRequest is the payload for POST /scrape.
type ScrapeRequest struct {
	// Query is the business search term (e.g. "restaurants", "dentists"). Required.
	Query string `json:"query" binding:"required"`

	// Location is where to search (e.g. "New York, NY"). Required.
	Location string `json:"location" binding:"required"`

	// MaxResults caps the number of leads returned. Optional, but an
	// explicit value must be in [1, 200]; a pointer keeps "absent" and
	// "zero" apart so 0 fails validation instead of being defaulted.
	// Default: 50.
	MaxResults *int `json:"max_results,omitempty" binding:"omitempty,min=1,max=200"`
}

// Defaults applies default values to unset fields.
func (r *ScrapeRequest) Defaults() {
	if r.MaxResults == nil {
		n := 50
		r.MaxResults = &n
	}
}

// EnrichmentRequest is the payload for POST /enrich.
type EnrichmentRequest struct {
	// ScrapeID identifies a previously scraped batch. Required.
	ScrapeID string `json:"scrape_id" binding:"required"`

	// HunterAPIKey is the Hunter.io API key used for email lookups. Required.
	HunterAPIKey string `json:"hunter_api_key" binding:"required"`
}

// ExportRequest is the payload for POST /export.
type ExportRequest struct {
	// ScrapeID identifies a previously scraped batch. Required.
	ScrapeID string `json:"scrape_id" binding:"required"`

	// Format selects the export target: "csv", "json" or "sheets".
	Format string `json:"format" binding:"required,oneof=csv json sheets"`

	// Filename overrides the timestamped default for file exports.
	Filename string `json:"filename,omitempty"`

	// SheetsURL is required when Format is "sheets".
	SheetsURL string `json:"sheets_url,omitempty"`
}
