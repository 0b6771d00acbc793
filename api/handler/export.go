package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/leadgen/export"
	"github.com/use-agent/leadgen/models"
)

// Export returns a handler for POST /export.
func Export(ex *export.Manager, st BatchStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ExportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, err.Error())
			return
		}

		leads, ok := st.Get(req.ScrapeID)
		if !ok {
			respondNotFound(c)
			return
		}

		var path string
		var err error
		switch req.Format {
		case "csv":
			path, err = ex.ToCSV(leads, req.Filename)
		case "json":
			path, err = ex.ToJSON(leads, req.Filename)
		case "sheets":
			if req.SheetsURL == "" {
				respondBadRequest(c, "Google Sheets URL required")
				return
			}
			path, err = ex.ToSheets(leads, req.SheetsURL)
		}
		if err != nil {
			respondError(c, models.ErrCodeExportFailed, err)
			return
		}

		c.JSON(http.StatusOK, models.ExportResponse{
			Message:  fmt.Sprintf("Exported to %s", path),
			FilePath: path,
			Summary:  export.Summary(leads),
		})
	}
}

// ListExports returns a handler for GET /exports.
func ListExports(ex *export.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		files, err := ex.List()
		if err != nil {
			respondError(c, models.ErrCodeExportFailed, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"exports": files,
			"total":   len(files),
		})
	}
}
