// Package handler contains the gin handlers for the leadgen API.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/leadgen/models"
)

// BusinessScraper is the scraping surface the handlers depend on.
type BusinessScraper interface {
	ScrapeBusinesses(ctx context.Context, query, location string, maxResults int) ([]models.Lead, error)
	GetBusinessDetails(ctx context.Context, placeID string) (map[string]string, error)
}

// LeadEnricher is the enrichment surface the handlers depend on.
type LeadEnricher interface {
	EnrichLeads(ctx context.Context, leads []models.Lead, apiKey string) ([]models.Lead, error)
}

// BatchStore is the lead storage surface the handlers depend on.
type BatchStore interface {
	Put(leads []models.Lead) string
	Get(id string) ([]models.Lead, bool)
	Replace(id string, leads []models.Lead) bool
	Delete(id string) bool
}

// respondError maps a ServiceError to the right HTTP status and writes a
// structured JSON error. Anything untyped becomes a generic 500 (the
// catch-and-report boundary policy).
func respondError(c *gin.Context, fallbackCode string, err error) {
	svcErr, ok := err.(*models.ServiceError)
	if !ok {
		svcErr = models.NewServiceError(fallbackCode, err.Error(), err)
	}
	c.JSON(statusFor(svcErr.Code), gin.H{"error": svcErr.ToDetail()})
}

// respondNotFound writes the uniform missing-scrape-ID error.
func respondNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": models.ErrorDetail{
		Code:    models.ErrCodeNotFound,
		Message: "Scrape ID not found",
	}})
}

// respondBadRequest writes a 400 with the given message.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": models.ErrorDetail{
		Code:    models.ErrCodeInvalidInput,
		Message: message,
	}})
}

func statusFor(code string) int {
	switch code {
	case models.ErrCodeInvalidInput:
		return http.StatusBadRequest
	case models.ErrCodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
