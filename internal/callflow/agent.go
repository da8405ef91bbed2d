package callflow

import (
	"fmt"
	"strings"

	"github.com/demandify-media/caller-voice-service/internal/domain"
)

const (
	minRapport = -5
	maxRapport = 5
)

// Agent is the call-flow state machine for a single cold-call session. It
// owns the current stage, conversation history, and prospect state. One
// agent is constructed per call; instances are not shared across sessions.
//
// Agent is not safe for concurrent use; the call driver serializes access.
type Agent struct {
	prospect   domain.ProspectData
	script     Script
	templates  *TemplateSet
	selector   TemplateSelector
	objections *ObjectionHandler

	stage          domain.CallStage
	history        []domain.ConversationTurn
	objectionCount int
	rapport        int
	personality    domain.Personality
}

// NewAgent builds a session state machine for one prospect. The selector
// controls template choice; pass nil for uniform random selection.
func NewAgent(prospect domain.ProspectData, script Script, selector TemplateSelector) (*Agent, error) {
	if err := script.Validate(); err != nil {
		return nil, fmt.Errorf("invalid script: %w", err)
	}
	templates := DefaultTemplates()
	if err := templates.Validate(); err != nil {
		return nil, fmt.Errorf("invalid templates: %w", err)
	}
	if selector == nil {
		selector = NewRandomSelector()
	}

	return &Agent{
		prospect:    prospect,
		script:      script,
		templates:   templates,
		selector:    selector,
		objections:  NewObjectionHandler(templates, selector, script.FallbackQuestion),
		stage:       domain.StageGreeting,
		personality: domain.PersonalityNeutral,
	}, nil
}

// InitiateCall returns the personalized opening line. The agent stays at the
// greeting stage until the prospect's first reply is processed.
func (a *Agent) InitiateCall() string {
	return a.script.Greeting(a.prospect)
}

// RefreshProspect replaces the lead record mid-call, e.g. after the prospect
// corrects a title or email.
func (a *Agent) RefreshProspect(prospect domain.ProspectData) {
	a.prospect = prospect
}

// Stage returns the current call stage.
func (a *Agent) Stage() domain.CallStage { return a.stage }

// Ended reports whether the session has reached the terminal stage.
func (a *Agent) Ended() bool { return a.stage.Terminal() }

// History returns the append-only turn log.
func (a *Agent) History() []domain.ConversationTurn { return a.history }

// Process classifies one prospect utterance, advances the stage, and returns
// the next agent line. It is total: every input, at every stage, yields a
// reply.
func (a *Agent) Process(utterance string) string {
	sentiment := Classify(utterance)
	stageAtTurn := a.stage

	a.personality = DetectPersonality(utterance)
	if sentiment == domain.SentimentPositive {
		a.adjustRapport(1)
	}

	var reply string
	switch a.stage {
	case domain.StageGreeting:
		reply = a.handleGreeting(utterance, sentiment)
	case domain.StagePermission:
		reply = a.handlePermission(utterance, sentiment)
	case domain.StageQualification:
		reply = a.handleQualification(utterance, sentiment)
	case domain.StageValuePitch:
		reply = a.handleValuePitch(utterance, sentiment)
	case domain.StageDiscoveryCQ1, domain.StageDiscoveryCQ1A, domain.StageDiscoveryCQ1B,
		domain.StageDiscoveryCQ2, domain.StageDiscoveryCQ3:
		reply = a.handleDiscovery(utterance, sentiment)
	case domain.StageEmailConfirmation:
		reply = a.handleEmailConfirmation(utterance, sentiment)
	case domain.StageClosing:
		reply = a.handleClosing(utterance, sentiment)
	case domain.StageEnded:
		reply = a.script.TerminalReply
	default:
		reply = a.handleObjection(utterance)
	}

	a.history = append(a.history, domain.ConversationTurn{
		Stage:       stageAtTurn,
		Utterance:   utterance,
		Sentiment:   sentiment,
		Personality: a.personality,
		Reply:       reply,
	})

	return reply
}

// Summary derives the end-of-call report from accumulated state. It is a
// pure projection and can be taken at any point in the session.
func (a *Agent) Summary() domain.CallSummary {
	outcome := domain.OutcomeInProgress
	if a.stage.Terminal() {
		outcome = domain.OutcomeQualified
	}
	return domain.CallSummary{
		FinalStage:         a.stage,
		ConversationLength: len(a.history),
		ObjectionCount:     a.objectionCount,
		RapportLevel:       a.rapport,
		Personality:        a.personality,
		Outcome:            outcome,
	}
}

// handleObjection routes through the objection handler without moving the
// stage, so the script resumes where it was interrupted.
func (a *Agent) handleObjection(utterance string) string {
	a.objectionCount++
	a.adjustRapport(-1)
	return a.objections.Handle(utterance)
}

func (a *Agent) handleGreeting(utterance string, sentiment domain.ResponseSentiment) string {
	if sentiment == domain.SentimentObjection {
		return a.handleObjection(utterance)
	}

	ack := a.selector.Choose(a.templates.greetingBucket(sentiment))
	permission := a.selector.Choose(a.templates.PermissionRequests)
	a.stage = domain.StagePermission

	return ack + " " + permission
}

func (a *Agent) handlePermission(utterance string, sentiment domain.ResponseSentiment) string {
	lower := strings.ToLower(utterance)

	// An explicit "no" here is a designed terminal transition, not an
	// objection to rebut: offer to reschedule and end the call.
	if sentiment == domain.SentimentNegative || strings.Contains(lower, "no") {
		a.stage = domain.StageEnded
		return a.selector.Choose(a.templates.PermissionReschedule)
	}

	var ack string
	if containsAny(lower, []string{"quick", "brief", "short", "make it fast"}) {
		ack = a.selector.Choose(a.templates.PermissionConditional)
	} else {
		ack = a.selector.Choose(a.templates.PermissionPositive)
	}

	a.stage = domain.StageQualification
	return ack + " " + a.script.Qualification(a.prospect)
}

func (a *Agent) handleQualification(utterance string, sentiment domain.ResponseSentiment) string {
	lower := strings.ToLower(utterance)

	var ack string
	switch {
	case strings.Contains(lower, "yes") || strings.Contains(lower, "correct"):
		ack = a.selector.Choose(a.templates.QualificationConfirmed)
	case containsAny(lower, []string{"actually", "no", "wrong"}):
		ack = a.selector.Choose(a.templates.QualificationCorrection)
	default:
		ack = a.selector.Choose(a.templates.QualificationConfirmed)
	}

	a.stage = domain.StageValuePitch
	return ack + " " + a.script.ValuePitch
}

func (a *Agent) handleValuePitch(utterance string, sentiment domain.ResponseSentiment) string {
	if sentiment == domain.SentimentObjection {
		return a.handleObjection(utterance)
	}

	var ack string
	if sentiment == domain.SentimentPositive {
		ack = a.selector.Choose(a.templates.ValuePitchPositiveAcks)
	} else {
		ack = a.selector.Choose(a.templates.ValuePitchNeutralAcks)
	}

	a.stage = domain.StageDiscoveryCQ1
	return ack + " " + a.script.DiscoveryCQ1
}

func (a *Agent) handleDiscovery(utterance string, sentiment domain.ResponseSentiment) string {
	if sentiment == domain.SentimentObjection {
		return a.handleObjection(utterance)
	}

	ack := a.selector.Choose(a.templates.RapportBuilders)

	var next string
	switch a.stage {
	case domain.StageDiscoveryCQ1:
		a.stage = domain.StageDiscoveryCQ1A
		next = a.script.DiscoveryCQ1A
	case domain.StageDiscoveryCQ1A:
		a.stage = domain.StageDiscoveryCQ1B
		next = a.script.DiscoveryCQ1B
	case domain.StageDiscoveryCQ1B:
		a.stage = domain.StageDiscoveryCQ2
		next = a.script.DiscoveryCQ2
	case domain.StageDiscoveryCQ2:
		a.stage = domain.StageDiscoveryCQ3
		next = a.script.DiscoveryCQ3
	default:
		a.stage = domain.StageEmailConfirmation
		next = a.script.EmailConfirmation(a.prospect)
	}

	return ack + " " + next
}

func (a *Agent) handleEmailConfirmation(utterance string, sentiment domain.ResponseSentiment) string {
	lower := strings.ToLower(utterance)

	var ack string
	if strings.Contains(lower, "yes") || strings.Contains(lower, "correct") {
		ack = a.selector.Choose(a.templates.EmailConfirmed)
	} else {
		ack = a.selector.Choose(a.templates.EmailCorrection)
	}

	a.stage = domain.StageClosing
	return ack + " " + a.script.ClosingStatement
}

func (a *Agent) handleClosing(utterance string, sentiment domain.ResponseSentiment) string {
	a.stage = domain.StageEnded
	if sentiment == domain.SentimentPositive {
		return a.script.ClosingPositive
	}
	return a.script.ClosingSoft
}

func (a *Agent) adjustRapport(delta int) {
	a.rapport += delta
	if a.rapport > maxRapport {
		a.rapport = maxRapport
	}
	if a.rapport < minRapport {
		a.rapport = minRapport
	}
}
