package callflow

import (
	"testing"

	"github.com/demandify-media/caller-voice-service/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestClassifyObjections(t *testing.T) {
	cases := []string{
		"Not interested",
		"we don't need this",
		"we dont need this",
		"We already have a solution",
		"there is no budget for this",
		"that sounds too expensive",
		"this is a bad time",
		"I'm too busy right now",
		"just send me the info",
		"email the details to me",
	}
	for _, utterance := range cases {
		assert.Equal(t, domain.SentimentObjection, Classify(utterance), "utterance: %q", utterance)
	}
}

func TestClassifyObjectionBeatsPositive(t *testing.T) {
	// Objection probes run before the positive-word scan.
	assert.Equal(t, domain.SentimentObjection, Classify("not interested but good talking to you"))
}

func TestClassifyObjectionBeatsQuestion(t *testing.T) {
	assert.Equal(t, domain.SentimentObjection, Classify("why would I be interested? I'm not interested"))
}

func TestClassifyQuestion(t *testing.T) {
	assert.Equal(t, domain.SentimentQuestion, Classify("Is this a sales pitch?"))
	assert.Equal(t, domain.SentimentQuestion, Classify("how does it compare"))
	assert.Equal(t, domain.SentimentQuestion, Classify("who is this"))
}

func TestClassifyPositive(t *testing.T) {
	assert.Equal(t, domain.SentimentPositive, Classify("Sure, sounds good"))
	assert.Equal(t, domain.SentimentPositive, Classify("I'm doing great"))
}

func TestClassifyNegative(t *testing.T) {
	assert.Equal(t, domain.SentimentNegative, Classify("rough day"))
	assert.Equal(t, domain.SentimentNegative, Classify("terrible timing"))
}

func TestClassifyIsTotal(t *testing.T) {
	// Every input resolves to exactly one category; the empty string and
	// unmatchable text fall through to neutral.
	assert.Equal(t, domain.SentimentNeutral, Classify(""))
	assert.Equal(t, domain.SentimentNeutral, Classify("mmm"))
	assert.Equal(t, domain.SentimentNeutral, Classify("the quarterly close just wrapped"))
}

func TestDetectPersonality(t *testing.T) {
	assert.Equal(t, domain.PersonalityBrief, DetectPersonality("yes"))
	assert.Equal(t, domain.PersonalityBrief, DetectPersonality(""))

	long := "well let me tell you it has honestly been one of those quarters where every single report " +
		"needs three revisions before anyone signs off on anything at all"
	assert.Equal(t, domain.PersonalityChatty, DetectPersonality(long))

	assert.Equal(t, domain.PersonalitySkeptical, DetectPersonality("I doubt that would really help us"))
	assert.Equal(t, domain.PersonalityProfessional, DetectPersonality("We review vendors each quarter internally"))
}
