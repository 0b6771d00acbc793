package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/leadgen/api/handler"
	"github.com/use-agent/leadgen/config"
	"github.com/use-agent/leadgen/enrich"
	"github.com/use-agent/leadgen/export"
	"github.com/use-agent/leadgen/scraper"
	"github.com/use-agent/leadgen/store"
)

// NewRouter creates a configured Gin engine with all routes.
//
// Global middleware: Recovery → Logger. There is no authentication and no
// inbound rate limiting on this surface.
func NewRouter(sc *scraper.Scraper, en *enrich.Enricher, st *store.Store, ex *export.Manager, cfg *config.Config, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	r.GET("/", handler.Root())
	r.GET("/health", handler.Health(startTime))

	r.POST("/scrape", handler.Scrape(sc, st))
	r.POST("/enrich", handler.Enrich(en, st))
	r.POST("/export", handler.Export(ex, st))

	r.GET("/leads/:id", handler.GetLeads(st))
	r.DELETE("/leads/:id", handler.DeleteLeads(st))

	r.GET("/exports", handler.ListExports(ex))
	r.GET("/places/:place_id", handler.PlaceDetails(sc))

	return r
}
