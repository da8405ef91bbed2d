package callflow

import (
	"fmt"

	"github.com/demandify-media/caller-voice-service/internal/domain"
)

// TemplateSet holds every phrasing bucket the state machine draws from.
// Buckets are validated once at construction so stage handlers never hit an
// empty lookup at runtime.
type TemplateSet struct {
	GreetingAcks map[domain.ResponseSentiment][]string

	PermissionRequests    []string
	PermissionPositive    []string
	PermissionConditional []string
	PermissionReschedule  []string

	QualificationConfirmed  []string
	QualificationCorrection []string

	ValuePitchPositiveAcks []string
	ValuePitchNeutralAcks  []string

	RapportBuilders []string

	EmailConfirmed  []string
	EmailCorrection []string

	Acknowledgments []string
	Transitions     []string
}

// DefaultTemplates returns the stock phrasing buckets.
func DefaultTemplates() *TemplateSet {
	return &TemplateSet{
		GreetingAcks: map[domain.ResponseSentiment][]string{
			domain.SentimentPositive: {
				"That's wonderful to hear.",
				"Glad to catch you on a good day.",
				"Perfect.",
				"That's great.",
			},
			domain.SentimentNegative: {
				"I understand—we all have those days.",
				"I appreciate your honesty.",
				"I hear you.",
				"Sorry to hear that.",
			},
			domain.SentimentNeutral: {
				"Thanks for taking my call.",
				"I appreciate you picking up.",
				"Thank you.",
			},
		},
		PermissionRequests: []string{
			"I know you're busy, so is now a good time for just a few minutes?",
			"Would you have about 3-4 minutes to chat?",
			"I promise to be brief—do you have a moment?",
			"Could I have just a few minutes of your time?",
		},
		PermissionPositive: []string{
			"Great, thank you.",
			"Perfect, I appreciate it.",
			"Wonderful.",
			"Excellent.",
		},
		PermissionConditional: []string{
			"Absolutely, I'll be brief.",
			"Of course, just a few minutes.",
			"I respect your time—this will be quick.",
			"Perfect, I'll keep this short.",
		},
		PermissionReschedule: []string{
			"I completely understand. When would be a better time to reach you?",
			"No problem at all. What day this week works better?",
			"Of course. Should I try back tomorrow morning or afternoon?",
			"That's fine. When would be more convenient?",
		},
		QualificationConfirmed: []string{
			"Perfect, thank you.",
			"Great, I have the right person.",
			"Excellent.",
			"That's right.",
		},
		QualificationCorrection: []string{
			"Got it, thanks for the clarification.",
			"Perfect, I'll make note of that.",
			"Appreciate the correction.",
			"Thank you for updating me.",
		},
		ValuePitchPositiveAcks: []string{
			"I'm glad it resonates.",
			"That's great to hear.",
			"Perfect.",
		},
		ValuePitchNeutralAcks: []string{
			"I understand.",
			"That makes sense.",
			"Fair enough.",
		},
		RapportBuilders: []string{
			"You're absolutely right about that.",
			"That's exactly what I hear from other teams.",
			"You're definitely not alone in that challenge.",
			"That sounds frustrating.",
			"I can relate to that.",
			"That's a common concern.",
		},
		EmailConfirmed: []string{
			"Perfect.",
			"Great, I have it right.",
		},
		EmailCorrection: []string{
			"Got it, let me update that.",
			"Thanks for the correction.",
		},
		Acknowledgments: []string{
			"I appreciate that.",
			"That's fair.",
			"I understand.",
			"Good point.",
			"I can see that.",
			"That's reasonable.",
			"Makes sense.",
			"I hear you.",
		},
		Transitions: []string{
			"You know what...",
			"Here's the thing...",
			"Let me ask you this...",
			"I'm curious...",
			"That's interesting...",
			"Fair enough...",
			"I hear you...",
			"That makes total sense...",
		},
	}
}

// Validate checks every bucket is populated.
func (t *TemplateSet) Validate() error {
	for _, sentiment := range []domain.ResponseSentiment{
		domain.SentimentPositive, domain.SentimentNegative, domain.SentimentNeutral,
	} {
		if len(t.GreetingAcks[sentiment]) == 0 {
			return fmt.Errorf("greeting bucket %q is empty", sentiment)
		}
	}

	named := map[string][]string{
		"permission_requests":      t.PermissionRequests,
		"permission_positive":      t.PermissionPositive,
		"permission_conditional":   t.PermissionConditional,
		"permission_reschedule":    t.PermissionReschedule,
		"qualification_confirmed":  t.QualificationConfirmed,
		"qualification_correction": t.QualificationCorrection,
		"value_pitch_positive":     t.ValuePitchPositiveAcks,
		"value_pitch_neutral":      t.ValuePitchNeutralAcks,
		"rapport_builders":         t.RapportBuilders,
		"email_confirmed":          t.EmailConfirmed,
		"email_correction":         t.EmailCorrection,
		"acknowledgments":          t.Acknowledgments,
		"transitions":              t.Transitions,
	}
	for name, bucket := range named {
		if len(bucket) == 0 {
			return fmt.Errorf("template bucket %q is empty", name)
		}
	}
	return nil
}

// greetingBucket returns the acknowledgment bucket for a sentiment, falling
// back to neutral for sentiments without a dedicated bucket.
func (t *TemplateSet) greetingBucket(sentiment domain.ResponseSentiment) []string {
	if bucket, ok := t.GreetingAcks[sentiment]; ok {
		return bucket
	}
	return t.GreetingAcks[domain.SentimentNeutral]
}
