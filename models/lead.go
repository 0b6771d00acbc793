package models

// Coordinates is a lat/lng pair extracted from a Google Maps place URL.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Lead is a single business record scraped from Google Maps.
// Name is the only field guaranteed to be present; everything else is
// best-effort extraction and may be empty.
type Lead struct {
	Name          string       `json:"name"`
	Address       string       `json:"address,omitempty"`
	Phone         string       `json:"phone,omitempty"`
	Website       string       `json:"website,omitempty"`
	Email         string       `json:"email,omitempty"`
	Rating        float64      `json:"rating,omitempty"`
	ReviewsCount  int          `json:"reviews_count,omitempty"`
	Category      string       `json:"category,omitempty"`
	GoogleMapsURL string       `json:"google_maps_url,omitempty"`
	PlaceID       string       `json:"place_id,omitempty"`
	Coordinates   *Coordinates `json:"coordinates,omitempty"`
}
