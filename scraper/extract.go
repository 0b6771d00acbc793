package scraper

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/use-agent/leadgen/models"
)

var (
	ratingRe  = regexp.MustCompile(`(\d+\.?\d*)`)
	reviewsRe = regexp.MustCompile(`(\d+)`)
	placeIDRe = regexp.MustCompile(`place/([^/]+)`)
	coordsRe  = regexp.MustCompile(`@(-?\d+\.?\d*),(-?\d+\.?\d*)`)
)

// parseTile extracts the listing fields visible on a result tile.
// Returns false when no business name can be found (sponsored slots,
// separators and other non-listing tiles).
func parseTile(tileHTML string) (models.Lead, bool) {
	var lead models.Lead

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(tileHTML))
	if err != nil {
		return lead, false
	}

	// The place anchor carries both the name (aria-label) and the maps URL.
	anchor := doc.Find(`a[href*="/maps/place/"]`).First()
	if name, ok := anchor.Attr("aria-label"); ok {
		lead.Name = strings.TrimSpace(name)
	}
	if lead.Name == "" {
		lead.Name = strings.TrimSpace(doc.Find(".qBF1Pd").First().Text())
	}
	if lead.Name == "" {
		return lead, false
	}

	if href, ok := anchor.Attr("href"); ok {
		lead.GoogleMapsURL = href
		lead.PlaceID = PlaceIDFromURL(href)
		lead.Coordinates = CoordsFromURL(href)
	}

	lead.Rating = ExtractRating(doc.Find("span.MW4etd").First().Text())
	lead.ReviewsCount = ExtractReviews(doc.Find("span.UY7F9").First().Text())

	// Tile metadata rows look like "Category · Address".
	doc.Find("div.W4Efsd").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		text := strings.TrimSpace(row.Text())
		if !strings.Contains(text, "·") {
			return true
		}
		parts := strings.SplitN(text, "·", 2)
		lead.Category = strings.TrimSpace(parts[0])
		if len(parts) > 1 {
			lead.Address = strings.TrimSpace(parts[1])
		}
		return false
	})

	return lead, true
}

// parseDetailPanel extracts phone and website from the opened place panel.
func parseDetailPanel(panelHTML string) (phone, website string) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(panelHTML))
	if err != nil {
		return "", ""
	}

	if href, ok := doc.Find(`a[data-item-id="authority"]`).First().Attr("href"); ok {
		website = href
	}

	doc.Find(`button[data-item-id]`).EachWithBreak(func(_ int, btn *goquery.Selection) bool {
		id, _ := btn.Attr("data-item-id")
		if strings.HasPrefix(id, "phone:tel:") {
			phone = strings.TrimPrefix(id, "phone:tel:")
			return false
		}
		return true
	})

	return phone, website
}

// ExtractRating parses the first decimal number out of a rating string
// such as "4.5 stars" or "4,5" variants normalized upstream.
func ExtractRating(text string) float64 {
	m := ratingRe.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	f, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	return f
}

// ExtractReviews parses a review count out of strings like "(1,234)".
func ExtractReviews(text string) int {
	m := reviewsRe.FindStringSubmatch(strings.ReplaceAll(text, ",", ""))
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// PlaceIDFromURL extracts the place segment from a Google Maps place URL.
func PlaceIDFromURL(rawURL string) string {
	m := placeIDRe.FindStringSubmatch(rawURL)
	if m == nil {
		return ""
	}
	return m[1]
}

// CoordsFromURL extracts the "@lat,lng" viewport segment from a maps URL.
func CoordsFromURL(rawURL string) *models.Coordinates {
	m := coordsRe.FindStringSubmatch(rawURL)
	if m == nil {
		return nil
	}
	lat, latErr := strconv.ParseFloat(m[1], 64)
	lng, lngErr := strconv.ParseFloat(m[2], 64)
	if latErr != nil || lngErr != nil {
		return nil
	}
	return &models.Coordinates{Lat: lat, Lng: lng}
}
