package export

import (
	"math"
	"regexp"

	"github.com/use-agent/leadgen/models"
)

var (
	validEmailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	nonPhoneRe   = regexp.MustCompile(`[^\d+]`)
	websiteRe    = regexp.MustCompile(`^https?://|^[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
)

// LeadIssue lists what is wrong with one lead in a batch.
type LeadIssue struct {
	LeadIndex int      `json:"lead_index"`
	LeadName  string   `json:"lead_name"`
	Issues    []string `json:"issues"`
}

// ValidationReport summarizes data quality across a batch.
type ValidationReport struct {
	TotalLeads       int         `json:"total_leads"`
	LeadsWithIssues  int         `json:"leads_with_issues"`
	Issues           []LeadIssue `json:"issues"`
	DataQualityScore float64     `json:"data_quality_score"`
}

// Validate checks every lead for missing or malformed fields and scores
// overall batch quality as the percentage of clean leads.
func Validate(leads []models.Lead) *ValidationReport {
	report := &ValidationReport{TotalLeads: len(leads)}

	for i, lead := range leads {
		var issues []string

		if lead.Name == "" {
			issues = append(issues, "Missing name")
		}
		if lead.Email != "" && !validEmailRe.MatchString(lead.Email) {
			issues = append(issues, "Invalid email format")
		}
		if lead.Phone != "" {
			digits := nonPhoneRe.ReplaceAllString(lead.Phone, "")
			if len(digits) < 10 {
				issues = append(issues, "Phone number too short")
			}
		}
		if lead.Website != "" && !websiteRe.MatchString(lead.Website) {
			issues = append(issues, "Invalid website URL")
		}

		if len(issues) > 0 {
			report.Issues = append(report.Issues, LeadIssue{
				LeadIndex: i,
				LeadName:  lead.Name,
				Issues:    issues,
			})
		}
	}

	report.LeadsWithIssues = len(report.Issues)
	if report.TotalLeads > 0 {
		clean := float64(report.TotalLeads-report.LeadsWithIssues) / float64(report.TotalLeads) * 100
		report.DataQualityScore = math.Round(clean*100) / 100
	}
	return report
}
