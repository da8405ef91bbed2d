package campaign

import (
	"fmt"
	"strings"

	"github.com/demandify-media/caller-voice-service/internal/domain"
)

// Script placeholder tokens, substituted verbatim with lead fields. A lead
// field that is empty substitutes the documented default instead, so a raw
// bracket token never reaches the prospect. Replacement values contain no
// tokens themselves, which keeps substitution idempotent.
const (
	TokenProspectName = "[Prospect Name]"
	TokenResourceName = "[Resource Name]"
	TokenJobTitle     = "[Job Title]"
	TokenCompanyName  = "[Company Name]"
	TokenEmail        = "[____@abc.com]"
)

// Render substitutes every placeholder token in text with the matching lead
// field. resourceName is the calling agent's self-introduced name.
func Render(text string, lead domain.ProspectData, resourceName string) string {
	if strings.TrimSpace(resourceName) == "" {
		resourceName = domain.DefaultResourceName
	}

	replacer := strings.NewReplacer(
		TokenProspectName, lead.NameOrDefault(),
		TokenResourceName, resourceName,
		TokenJobTitle, lead.JobTitleOrDefault(),
		TokenCompanyName, lead.CompanyOrDefault(),
		TokenEmail, lead.EmailOrDefault(),
	)
	return replacer.Replace(text)
}

// LeadContext builds the structured preface prepended to the session script
// so the voice model can reference exact lead values.
func LeadContext(lead domain.ProspectData, resourceName string) string {
	return fmt.Sprintf("Lead Context:\n"+
		"- Prospect Name: %s\n"+
		"- Job Title: %s\n"+
		"- Company: %s\n"+
		"- Email: %s\n"+
		"- Phone: %s\n"+
		"- Timezone: %s\n"+
		"- Caller (Resource Name): %s\n\n",
		lead.Name, lead.JobTitle, lead.Company, lead.Email, lead.Phone, lead.Timezone, resourceName)
}

// SessionInstructions renders the full per-lead session payload: lead
// context preface plus the placeholder-substituted session script.
func (c Campaign) SessionInstructions(lead domain.ProspectData) string {
	return LeadContext(lead, c.Flow.CallerName) + Render(c.SessionScript, lead, c.Flow.CallerName)
}
