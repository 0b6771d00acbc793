package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/leadgen/models"
)

// GetLeads returns a handler for GET /leads/:id.
func GetLeads(st BatchStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		leads, ok := st.Get(id)
		if !ok {
			respondNotFound(c)
			return
		}
		c.JSON(http.StatusOK, models.LeadsResponse{
			ScrapeID: id,
			Leads:    leads,
			Total:    len(leads),
		})
	}
}

// DeleteLeads returns a handler for DELETE /leads/:id.
func DeleteLeads(st BatchStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !st.Delete(c.Param("id")) {
			respondNotFound(c)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Leads deleted successfully"})
	}
}

// PlaceDetails returns a handler for GET /places/:place_id.
// Looks up a single place page for extra detail (opening hours).
func PlaceDetails(sc BusinessScraper) gin.HandlerFunc {
	return func(c *gin.Context) {
		placeID := c.Param("place_id")
		details, err := sc.GetBusinessDetails(c.Request.Context(), placeID)
		if err != nil {
			respondError(c, models.ErrCodeScrapeFailed, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"place_id": placeID,
			"details":  details,
		})
	}
}
