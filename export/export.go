// Package export writes lead batches to flat files.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/use-agent/leadgen/models"
)

// csvHeaders is the fixed CSV column set.
var csvHeaders = []string{
	"Name",
	"Address",
	"Phone",
	"Email",
	"Website",
	"Category",
	"Rating",
	"Reviews Count",
	"Google Maps URL",
	"Place ID",
	"Coordinates",
}

// Manager writes exports into a single directory, created on demand.
type Manager struct {
	dir string
}

// NewManager creates a Manager writing into dir.
func NewManager(dir string) (*Manager, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("export: create dir %s: %w", dir, err)
	}
	return &Manager{dir: dir}, nil
}

// ToCSV writes the leads to a CSV file and returns its path.
// An empty filename produces a timestamped default.
func (m *Manager) ToCSV(leads []models.Lead, filename string) (string, error) {
	if filename == "" {
		filename = "leads_" + time.Now().Format("20060102_150405") + ".csv"
	}
	if !strings.HasSuffix(filename, ".csv") {
		filename += ".csv"
	}

	path := filepath.Join(m.dir, filepath.Base(filename))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("export: create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeaders); err != nil {
		return "", fmt.Errorf("export: write header: %w", err)
	}
	for _, lead := range leads {
		if err := w.Write(csvRow(lead)); err != nil {
			return "", fmt.Errorf("export: write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("export: flush: %w", err)
	}

	slog.Info("exported leads", "format", "csv", "count", len(leads), "path", path)
	return path, nil
}

// ToJSON writes the leads to an indented JSON file and returns its path.
func (m *Manager) ToJSON(leads []models.Lead, filename string) (string, error) {
	if filename == "" {
		filename = "leads_" + time.Now().Format("20060102_150405") + ".json"
	}
	if !strings.HasSuffix(filename, ".json") {
		filename += ".json"
	}

	path := filepath.Join(m.dir, filepath.Base(filename))
	data, err := json.MarshalIndent(leads, "", "  ")
	if err != nil {
		return "", fmt.Errorf("export: marshal leads: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("export: write %s: %w", path, err)
	}

	slog.Info("exported leads", "format", "json", "count", len(leads), "path", path)
	return path, nil
}

// ToExcel writes an Excel-openable CSV named after the requested .xlsx
// file. A real spreadsheet writer would need an xlsx dependency; Excel
// opens the CSV directly.
func (m *Manager) ToExcel(leads []models.Lead, filename string) (string, error) {
	if filename == "" {
		filename = "leads_" + time.Now().Format("20060102_150405") + ".xlsx"
	}
	if !strings.HasSuffix(filename, ".xlsx") {
		filename += ".xlsx"
	}

	path, err := m.ToCSV(leads, strings.TrimSuffix(filename, ".xlsx")+".csv")
	if err != nil {
		return "", err
	}
	slog.Info("Excel-compatible CSV created, open in Excel and save as .xlsx", "path", path)
	return path, nil
}

// ToSheets is a stub: it writes an import-ready CSV and returns its path.
// A real Google Sheets API integration is out of scope.
func (m *Manager) ToSheets(leads []models.Lead, sheetsURL string) (string, error) {
	slog.Warn("Google Sheets export not implemented, writing import-ready CSV",
		"sheets_url", sheetsURL,
	)
	filename := "leads_for_sheets_" + time.Now().Format("20060102_150405") + ".csv"
	return m.ToCSV(leads, filename)
}

// List returns all export files, newest first.
func (m *Manager) List() ([]models.ExportFile, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, fmt.Errorf("export: read dir: %w", err)
	}

	files := make([]models.ExportFile, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, infoErr := entry.Info()
		if infoErr != nil {
			continue
		}
		// os.FileInfo carries no portable creation time, so the
		// modification time stands in for both.
		files = append(files, models.ExportFile{
			Filename: entry.Name(),
			Size:     info.Size(),
			Created:  info.ModTime().Format(time.RFC3339),
			Modified: info.ModTime().Format(time.RFC3339),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Modified > files[j].Modified
	})
	return files, nil
}

// CleanupOlderThan removes export files with a modification time older
// than the given age.
func (m *Manager) CleanupOlderThan(age time.Duration) error {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return fmt.Errorf("export: read dir: %w", err)
	}

	cutoff := time.Now().Add(-age)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, infoErr := entry.Info()
		if infoErr != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			path := filepath.Join(m.dir, entry.Name())
			if rmErr := os.Remove(path); rmErr != nil {
				slog.Warn("failed to delete old export", "path", path, "error", rmErr)
				continue
			}
			slog.Info("deleted old export", "path", path)
		}
	}
	return nil
}

// Summary computes coverage statistics for a batch.
func Summary(leads []models.Lead) *models.ExportSummary {
	s := &models.ExportSummary{
		TotalLeads: len(leads),
		Categories: make(map[string]int),
	}

	var ratingSum float64
	var rated int
	for _, lead := range leads {
		if lead.Email != "" {
			s.LeadsWithEmail++
		}
		if lead.Phone != "" {
			s.LeadsWithPhone++
		}
		if lead.Website != "" {
			s.LeadsWithWebsite++
		}
		if lead.Rating > 0 {
			ratingSum += lead.Rating
			rated++
		}
		if lead.Category != "" {
			s.Categories[lead.Category]++
		}
	}

	if s.TotalLeads > 0 {
		s.EmailCoverage = round2(float64(s.LeadsWithEmail) / float64(s.TotalLeads) * 100)
		s.PhoneCoverage = round2(float64(s.LeadsWithPhone) / float64(s.TotalLeads) * 100)
		s.WebsiteCoverage = round2(float64(s.LeadsWithWebsite) / float64(s.TotalLeads) * 100)
	}
	if rated > 0 {
		s.AverageRating = round2(ratingSum / float64(rated))
	}
	return s
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// csvRow formats one lead as a CSV record matching csvHeaders.
func csvRow(lead models.Lead) []string {
	rating := ""
	if lead.Rating > 0 {
		rating = strconv.FormatFloat(lead.Rating, 'f', -1, 64)
	}
	reviews := ""
	if lead.ReviewsCount > 0 {
		reviews = strconv.Itoa(lead.ReviewsCount)
	}
	coords := ""
	if lead.Coordinates != nil {
		coords = fmt.Sprintf("%g,%g", lead.Coordinates.Lat, lead.Coordinates.Lng)
	}
	return []string{
		lead.Name,
		lead.Address,
		lead.Phone,
		lead.Email,
		lead.Website,
		lead.Category,
		rating,
		reviews,
		lead.GoogleMapsURL,
		lead.PlaceID,
		coords,
	}
}
