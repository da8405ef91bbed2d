package callflow

import (
	"regexp"
	"strings"

	"github.com/demandify-media/caller-voice-service/internal/domain"
)

// Objection probes are checked before anything else; an utterance that also
// contains a question mark or a positive word still classifies as objection.
var objectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bnot interested\b`),
	regexp.MustCompile(`\bdon'?t need\b`),
	regexp.MustCompile(`\balready have\b`),
	regexp.MustCompile(`\bno budget\b`),
	regexp.MustCompile(`\btoo expensive\b`),
	regexp.MustCompile(`\bbad time\b`),
	regexp.MustCompile(`\btoo busy\b`),
	regexp.MustCompile(`\bsend.*info\b`),
	regexp.MustCompile(`\bemail.*me\b`),
}

var questionWords = []string{"what", "how", "why", "when", "where", "who"}

var positiveWords = []string{
	"good", "great", "fine", "yes", "sure", "okay", "sounds good", "interested",
}

var negativeWords = []string{
	"no", "not really", "bad", "terrible", "awful", "busy", "rough",
}

var skepticismWords = []string{"skeptical", "doubt", "not sure", "prove"}

// Classify maps a free-text prospect utterance to a sentiment category.
// It is pure, case-insensitive, and total: every input resolves to exactly
// one category, with neutral as the catch-all.
func Classify(utterance string) domain.ResponseSentiment {
	lower := strings.ToLower(utterance)

	for _, pattern := range objectionPatterns {
		if pattern.MatchString(lower) {
			return domain.SentimentObjection
		}
	}

	if strings.Contains(utterance, "?") || containsAny(lower, questionWords) {
		return domain.SentimentQuestion
	}

	if containsAny(lower, positiveWords) {
		return domain.SentimentPositive
	}

	if containsAny(lower, negativeWords) {
		return domain.SentimentNegative
	}

	return domain.SentimentNeutral
}

// DetectPersonality estimates the prospect's communication style from a
// single utterance. Long answers read as chatty, terse ones as brief,
// hedging language as skeptical, everything else as professional.
func DetectPersonality(utterance string) domain.Personality {
	wordCount := len(strings.Fields(utterance))

	switch {
	case wordCount > 20:
		return domain.PersonalityChatty
	case wordCount < 5:
		return domain.PersonalityBrief
	case containsAny(strings.ToLower(utterance), skepticismWords):
		return domain.PersonalitySkeptical
	default:
		return domain.PersonalityProfessional
	}
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
