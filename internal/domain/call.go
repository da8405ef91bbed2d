package domain

// CallStage is a discrete point in the fixed cold-call script sequence.
// Stages only ever advance forward, or jump directly to StageEnded on a hard
// decline; they never regress.
type CallStage int

const (
	StageGreeting CallStage = iota
	StagePermission
	StageQualification
	StageValuePitch
	StageDiscoveryCQ1
	StageDiscoveryCQ1A
	StageDiscoveryCQ1B
	StageDiscoveryCQ2
	StageDiscoveryCQ3
	StageEmailConfirmation
	StageClosing
	StageEnded
)

var callStageNames = map[CallStage]string{
	StageGreeting:          "greeting",
	StagePermission:        "permission",
	StageQualification:     "qualification",
	StageValuePitch:        "value_pitch",
	StageDiscoveryCQ1:      "discovery_cq1",
	StageDiscoveryCQ1A:     "discovery_cq1a",
	StageDiscoveryCQ1B:     "discovery_cq1b",
	StageDiscoveryCQ2:      "discovery_cq2",
	StageDiscoveryCQ3:      "discovery_cq3",
	StageEmailConfirmation: "email_confirmation",
	StageClosing:           "closing",
	StageEnded:             "ended",
}

func (s CallStage) String() string {
	if name, ok := callStageNames[s]; ok {
		return name
	}
	return "unknown"
}

// Terminal reports whether no transition leaves this stage.
func (s CallStage) Terminal() bool {
	return s == StageEnded
}

// ResponseSentiment is the coarse intent category assigned to every prospect
// utterance by the classifier.
type ResponseSentiment string

const (
	SentimentPositive     ResponseSentiment = "positive"
	SentimentNegative     ResponseSentiment = "negative"
	SentimentNeutral      ResponseSentiment = "neutral"
	SentimentObjection    ResponseSentiment = "objection"
	SentimentQuestion     ResponseSentiment = "question"
	SentimentInterruption ResponseSentiment = "interruption"
)

// Personality is the coarse communication-style estimate for a prospect.
// It is overwritten each turn by the most recent classification.
type Personality string

const (
	PersonalityChatty       Personality = "chatty"
	PersonalityBrief        Personality = "brief"
	PersonalitySkeptical    Personality = "skeptical"
	PersonalityProfessional Personality = "professional"
	PersonalityNeutral      Personality = "neutral"
)

// ConversationTurn is one processed prospect utterance. The history is
// append-only and is only read back for reporting, never for decisions.
type ConversationTurn struct {
	Stage       CallStage         `json:"stage"`
	Utterance   string            `json:"utterance"`
	Sentiment   ResponseSentiment `json:"sentiment"`
	Personality Personality       `json:"personality"`
	Reply       string            `json:"reply"`
}

// CallOutcome labels a finished or in-flight session for reporting.
type CallOutcome string

const (
	OutcomeQualified  CallOutcome = "qualified"
	OutcomeInProgress CallOutcome = "in_progress"
)

// CallSummary is the end-of-call record derived from session state.
type CallSummary struct {
	FinalStage         CallStage   `json:"final_stage"`
	ConversationLength int         `json:"conversation_length"`
	ObjectionCount     int         `json:"objection_count"`
	RapportLevel       int         `json:"rapport_level"`
	Personality        Personality `json:"prospect_personality"`
	Outcome            CallOutcome `json:"outcome"`
}
