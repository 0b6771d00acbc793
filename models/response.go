package models

// ScrapeResponse is the response for POST /scrape.
type ScrapeResponse struct {
	ScrapeID   string `json:"scrape_id"`
	Leads      []Lead `json:"leads"`
	TotalFound int    `json:"total_found"`
	Status     string `json:"status"`
}

// EnrichmentResponse is the response for POST /enrich.
type EnrichmentResponse struct {
	ScrapeID        string `json:"scrape_id"`
	EnrichedLeads   []Lead `json:"enriched_leads"`
	EnrichmentCount int    `json:"enrichment_count"`
	Status          string `json:"status"`
}

// ExportResponse is the response for POST /export.
type ExportResponse struct {
	Message  string         `json:"message"`
	FilePath string         `json:"file_path,omitempty"`
	Summary  *ExportSummary `json:"summary,omitempty"`
}

// ExportSummary reports coverage statistics for an exported batch.
type ExportSummary struct {
	TotalLeads       int            `json:"total_leads"`
	LeadsWithEmail   int            `json:"leads_with_email"`
	LeadsWithPhone   int            `json:"leads_with_phone"`
	LeadsWithWebsite int            `json:"leads_with_website"`
	EmailCoverage    float64        `json:"email_coverage"`
	PhoneCoverage    float64        `json:"phone_coverage"`
	WebsiteCoverage  float64        `json:"website_coverage"`
	AverageRating    float64        `json:"average_rating"`
	Categories       map[string]int `json:"categories"`
}

// LeadsResponse is the response for GET /leads/:id.
type LeadsResponse struct {
	ScrapeID string `json:"scrape_id"`
	Leads    []Lead `json:"leads"`
	Total    int    `json:"total"`
}

// HealthResponse is the response for GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Uptime  string `json:"uptime"`
	Version string `json:"version"`
}

// ExportFile describes one file in the export directory.
type ExportFile struct {
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	Created  string `json:"created"`
	Modified string `json:"modified"`
}
