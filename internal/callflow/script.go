package callflow

import (
	"fmt"

	"github.com/demandify-media/caller-voice-service/internal/domain"
)

// Script carries the campaign-specific text consumed by the state machine:
// the opening line, the fixed pitch and discovery questions, and the closing
// statements. It is configuration, not logic.
type Script struct {
	CampaignKey string

	// CallerName is the agent's self-introduced name; OnBehalfOf names the
	// agency/vendor pairing spoken in the opening line.
	CallerName string
	OnBehalfOf string

	ValuePitch string

	DiscoveryCQ1  string
	DiscoveryCQ1A string
	DiscoveryCQ1B string
	DiscoveryCQ2  string
	DiscoveryCQ3  string

	// EmailConfirmationFormat takes the prospect email as its single verb
	// argument.
	EmailConfirmationFormat string

	ClosingStatement string
	ClosingPositive  string
	ClosingSoft      string

	// FallbackQuestion re-anchors the conversation after an uncategorized
	// objection.
	FallbackQuestion string

	// TerminalReply is returned for any utterance processed after the call
	// has ended.
	TerminalReply string
}

// Validate checks every required script text is present.
func (s Script) Validate() error {
	required := map[string]string{
		"caller_name":               s.CallerName,
		"on_behalf_of":              s.OnBehalfOf,
		"value_pitch":               s.ValuePitch,
		"discovery_cq1":             s.DiscoveryCQ1,
		"discovery_cq1a":            s.DiscoveryCQ1A,
		"discovery_cq1b":            s.DiscoveryCQ1B,
		"discovery_cq2":             s.DiscoveryCQ2,
		"discovery_cq3":             s.DiscoveryCQ3,
		"email_confirmation_format": s.EmailConfirmationFormat,
		"closing_statement":         s.ClosingStatement,
		"closing_positive":          s.ClosingPositive,
		"closing_soft":              s.ClosingSoft,
		"fallback_question":         s.FallbackQuestion,
		"terminal_reply":            s.TerminalReply,
	}
	for name, text := range required {
		if text == "" {
			return fmt.Errorf("script field %q is empty", name)
		}
	}
	return nil
}

// Greeting renders the personalized opening line for a prospect.
func (s Script) Greeting(prospect domain.ProspectData) string {
	return fmt.Sprintf("Hi %s, this is %s from %s, how are you today?",
		prospect.NameOrDefault(), s.CallerName, s.OnBehalfOf)
}

// Qualification renders the title/company confirmation question.
func (s Script) Qualification(prospect domain.ProspectData) string {
	return fmt.Sprintf("I believe you're the %s at %s, is that correct?",
		prospect.JobTitleOrDefault(), prospect.CompanyOrDefault())
}

// EmailConfirmation renders the email read-back question.
func (s Script) EmailConfirmation(prospect domain.ProspectData) string {
	return fmt.Sprintf(s.EmailConfirmationFormat, prospect.EmailOrDefault())
}

// DefaultScript returns the SplashBI Oracle-reporting campaign flow.
func DefaultScript() Script {
	return Script{
		CampaignKey: "splashbi",
		CallerName:  "Demandify Caller",
		OnBehalfOf:  "DemandTeq on behalf of SplashBI",
		ValuePitch: "The reason for my call is to schedule a short conversation with a subject matter expert " +
			"from SplashBI to explore how we're helping companies modernize Oracle reporting across " +
			"EBS, Fusion Cloud, and EPM—with a platform that enables real-time access, " +
			"planning-to-actuals integration, and self-service reporting across teams. " +
			"We're looking to arrange a quick session either next week or the week after. Would that work for you?",
		DiscoveryCQ1:  "What are your current challenges with Oracle reporting or BI tools?",
		DiscoveryCQ1A: "Do you have enough resources to support the business?",
		DiscoveryCQ1B: "Could you identify your most immediate pain areas? Manual processes delaying close cycles, lack of unified data, or reliance on outdated tools?",
		DiscoveryCQ2:  "When it comes to evaluating solutions like this, what role do you typically play in the decision-making process?",
		DiscoveryCQ3:  "If this solution resonates with your team, what's your typical evaluation timeframe—1-3 months, 3-6 months, or 6-9 months?",
		EmailConfirmationFormat: "While we're setting up the call, I'd also like to send you a quick overview titled: " +
			"'SplashBI for Oracle Reporting.' It outlines how we help organizations streamline reporting " +
			"across Oracle EBS, Fusion Cloud, and EPM. I have your email as %s, is that correct?",
		ClosingStatement: "Perfect! A team member from SplashBI will follow up with you next week or the week after. " +
			"Thanks again for your time—I'll share the details shortly.",
		ClosingPositive:  "Excellent. You'll hear from our team within 48 hours.",
		ClosingSoft:      "Absolutely. How about I have them follow up next week? If you're not interested then, just let them know.",
		FallbackQuestion: "what's your biggest reporting challenge right now?",
		TerminalReply:    "Thanks again for your time today. Our team will be in touch—have a great rest of your day.",
	}
}
