package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/leadgen/models"
)

// Enrich returns a handler for POST /enrich.
//
// Loads the stored batch, runs email enrichment over it, and writes the
// enriched leads back under the same scrape ID.
func Enrich(en LeadEnricher, st BatchStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.EnrichmentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, err.Error())
			return
		}

		leads, ok := st.Get(req.ScrapeID)
		if !ok {
			respondNotFound(c)
			return
		}

		enriched, err := en.EnrichLeads(c.Request.Context(), leads, req.HunterAPIKey)
		if err != nil {
			respondError(c, models.ErrCodeEnrichFailed, err)
			return
		}

		// The batch can vanish between Get and Replace (concurrent
		// DELETE); reporting success for unstored leads would lie.
		if !st.Replace(req.ScrapeID, enriched) {
			respondNotFound(c)
			return
		}

		count := 0
		for _, lead := range enriched {
			if lead.Email != "" {
				count++
			}
		}

		c.JSON(http.StatusOK, models.EnrichmentResponse{
			ScrapeID:        req.ScrapeID,
			EnrichedLeads:   enriched,
			EnrichmentCount: count,
			Status:          "success",
		})
	}
}
