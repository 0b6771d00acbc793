package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/leadgen/models"
)

// Scrape returns a handler for POST /scrape.
//
// Flow: validate request → drive the browser scrape → store the batch
// under a fresh scrape ID → return it with the leads.
func Scrape(sc BusinessScraper, st BatchStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ScrapeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, err.Error())
			return
		}
		req.Defaults()

		leads, err := sc.ScrapeBusinesses(c.Request.Context(), req.Query, req.Location, *req.MaxResults)
		if err != nil {
			respondError(c, models.ErrCodeScrapeFailed, err)
			return
		}

		scrapeID := st.Put(leads)

		c.JSON(http.StatusOK, models.ScrapeResponse{
			ScrapeID:   scrapeID,
			Leads:      leads,
			TotalFound: len(leads),
			Status:     "success",
		})
	}
}
