package domain

import "strings"

// Default substitutions used when a lead record is missing a field. Scripts
// must never surface a raw bracket token to the prospect.
const (
	DefaultProspectName = "there"
	DefaultResourceName = "our team"
	DefaultJobTitle     = "your role"
	DefaultCompanyName  = "your company"
	DefaultEmail        = "email@domain.com"
)

// ProspectData is the personalization record for one call target. Fields are
// plain text and are only ever substituted literally into script templates.
type ProspectData struct {
	Name     string `json:"prospect_name"`
	Company  string `json:"company_name"`
	JobTitle string `json:"job_title"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Timezone string `json:"timezone,omitempty"`
	Industry string `json:"industry,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// IsEmpty reports whether the record carries no usable identity at all.
func (p ProspectData) IsEmpty() bool {
	return strings.TrimSpace(p.Name) == "" &&
		strings.TrimSpace(p.Company) == "" &&
		strings.TrimSpace(p.Email) == "" &&
		strings.TrimSpace(p.Phone) == ""
}

// NameOrDefault returns the prospect name or the documented fallback.
func (p ProspectData) NameOrDefault() string {
	if v := strings.TrimSpace(p.Name); v != "" {
		return v
	}
	return DefaultProspectName
}

// JobTitleOrDefault returns the job title or the documented fallback.
func (p ProspectData) JobTitleOrDefault() string {
	if v := strings.TrimSpace(p.JobTitle); v != "" {
		return v
	}
	return DefaultJobTitle
}

// CompanyOrDefault returns the company name or the documented fallback.
func (p ProspectData) CompanyOrDefault() string {
	if v := strings.TrimSpace(p.Company); v != "" {
		return v
	}
	return DefaultCompanyName
}

// EmailOrDefault returns the email or the documented fallback.
func (p ProspectData) EmailOrDefault() string {
	if v := strings.TrimSpace(p.Email); v != "" {
		return v
	}
	return DefaultEmail
}
