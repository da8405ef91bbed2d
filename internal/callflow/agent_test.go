package callflow

import (
	"testing"

	"github.com/demandify-media/caller-voice-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProspect() domain.ProspectData {
	return domain.ProspectData{
		Name:     "John Smith",
		Company:  "ABC Corporation",
		JobTitle: "IT Director",
		Email:    "john.smith@abc.com",
	}
}

func newTestAgent(t *testing.T) *Agent {
	t.Helper()
	agent, err := NewAgent(sampleProspect(), DefaultScript(), FirstSelector{})
	require.NoError(t, err)
	return agent
}

func TestInitiateCall(t *testing.T) {
	agent := newTestAgent(t)

	greeting := agent.InitiateCall()
	assert.Contains(t, greeting, "Hi John Smith")
	assert.Contains(t, greeting, "DemandTeq on behalf of SplashBI")
	assert.Equal(t, domain.StageGreeting, agent.Stage())
}

func TestGreetingAdvancesToPermission(t *testing.T) {
	agent := newTestAgent(t)

	reply := agent.Process("I'm doing well, thanks.")
	assert.Equal(t, domain.StagePermission, agent.Stage())
	assert.Contains(t, reply, "is now a good time")
}

func TestPermissionAdvancesToQualification(t *testing.T) {
	agent := newTestAgent(t)
	agent.Process("I'm doing well, thanks.")

	reply := agent.Process("Sure, I have a few minutes.")
	assert.Equal(t, domain.StageQualification, agent.Stage())
	assert.Contains(t, reply, "IT Director at ABC Corporation")
}

func TestPermissionHardDeclineEndsCall(t *testing.T) {
	agent := newTestAgent(t)
	agent.Process("I'm doing well, thanks.")

	reply := agent.Process("No, this is a terrible moment.")
	assert.Equal(t, domain.StageEnded, agent.Stage())
	assert.Contains(t, reply, "better time")

	summary := agent.Summary()
	assert.Equal(t, domain.StageEnded, summary.FinalStage)
}

func TestPermissionUrgencyUsesConditionalBucket(t *testing.T) {
	agent := newTestAgent(t)
	agent.Process("I'm doing well, thanks.")

	reply := agent.Process("Okay but make it quick.")
	assert.Equal(t, domain.StageQualification, agent.Stage())
	assert.Contains(t, reply, "Absolutely, I'll be brief.")
}

func TestObjectionDoesNotAdvanceStage(t *testing.T) {
	agent := newTestAgent(t)
	agent.Process("I'm doing well, thanks.")
	agent.Process("Sure, I have a few minutes.")
	agent.Process("Yes, that's correct.")
	require.Equal(t, domain.StageValuePitch, agent.Stage())

	reply := agent.Process("Not interested")
	assert.Equal(t, domain.StageValuePitch, agent.Stage(), "objection must park the stage")
	assert.NotEmpty(t, reply)

	summary := agent.Summary()
	assert.Equal(t, 1, summary.ObjectionCount)
}

func TestFullHappyPath(t *testing.T) {
	agent := newTestAgent(t)
	agent.InitiateCall()

	utterances := []string{
		"I'm doing well, thanks.",
		"Sure, I have a few minutes.",
		"Yes, that's correct.",
		"We're struggling with slow reporting and too much manual work.",
		"Not really, we're understaffed.",
		"Manual processes are killing us.",
		"I'm the decision maker.",
		"Probably 3-6 months.",
		"Yes, that email is right.",
	}

	stages := []domain.CallStage{
		domain.StagePermission,
		domain.StageQualification,
		domain.StageValuePitch,
		domain.StageDiscoveryCQ1,
		domain.StageDiscoveryCQ1A,
		domain.StageDiscoveryCQ1B,
		domain.StageDiscoveryCQ2,
		domain.StageDiscoveryCQ3,
		domain.StageEmailConfirmation,
	}

	for i, utterance := range utterances {
		reply := agent.Process(utterance)
		assert.NotEmpty(t, reply)
		assert.Equal(t, stages[i], agent.Stage(), "after utterance %d: %q", i, utterance)
	}

	reply := agent.Process("Yes, that works for me.")
	assert.Equal(t, domain.StageClosing, agent.Stage())
	assert.Contains(t, reply, "follow up with you next week")

	agent.Process("Sounds good, talk soon.")
	assert.Equal(t, domain.StageEnded, agent.Stage())

	summary := agent.Summary()
	assert.Equal(t, domain.OutcomeQualified, summary.Outcome)
	assert.Equal(t, 11, summary.ConversationLength)
}

func TestDiscoveryEmailInterpolation(t *testing.T) {
	agent := newTestAgent(t)
	for _, u := range []string{
		"I'm doing well, thanks.",
		"Sure, I have a few minutes.",
		"Yes, that's correct.",
		"Slow reporting mostly.",
		"Understaffed, honestly.",
		"Manual processes mostly.",
		"I'm the decision maker.",
		"It varies by quarter.",
	} {
		agent.Process(u)
	}
	require.Equal(t, domain.StageDiscoveryCQ3, agent.Stage())

	reply := agent.Process("Probably 3-6 months.")
	assert.Equal(t, domain.StageEmailConfirmation, agent.Stage())
	assert.Contains(t, reply, "john.smith@abc.com")
}

func TestStageNeverRegresses(t *testing.T) {
	agent := newTestAgent(t)

	utterances := []string{
		"I'm doing well, thanks.",
		"Sure, I have a few minutes.",
		"Not interested",
		"Yes, that's correct.",
		"We already have a tool",
		"Slow reporting.",
		"Understaffed.",
		"Manual processes.",
		"Decision maker.",
		"3-6 months.",
		"Yes, correct.",
		"Sounds good.",
	}

	last := agent.Stage()
	for _, utterance := range utterances {
		agent.Process(utterance)
		current := agent.Stage()
		assert.GreaterOrEqual(t, int(current), int(last), "stage regressed after %q", utterance)
		last = current
	}
}

func TestTerminalStageIsStable(t *testing.T) {
	agent := newTestAgent(t)
	agent.Process("I'm doing well, thanks.")
	agent.Process("No thanks.")
	require.Equal(t, domain.StageEnded, agent.Stage())

	first := agent.Process("hello? are you still there")
	second := agent.Process("okay then")
	assert.Equal(t, first, second, "terminal reply must be stable")
	assert.Equal(t, domain.StageEnded, agent.Stage())
}

func TestReplayWithSameSeedIsDeterministic(t *testing.T) {
	utterances := []string{
		"I'm doing well, thanks.",
		"Sure, I have a few minutes.",
		"Not interested",
		"Yes, that's correct.",
		"Slow reporting.",
	}

	run := func() []string {
		agent, err := NewAgent(sampleProspect(), DefaultScript(), NewSeededSelector(42))
		require.NoError(t, err)
		replies := make([]string, 0, len(utterances))
		for _, u := range utterances {
			replies = append(replies, agent.Process(u))
		}
		return replies
	}

	assert.Equal(t, run(), run())
}

func TestRapportTracking(t *testing.T) {
	agent := newTestAgent(t)

	agent.Process("I'm doing well, thanks.") // neutral: no change
	assert.Equal(t, 0, agent.Summary().RapportLevel)

	agent.Process("Sure, I have a few minutes.") // positive: +1
	agent.Process("Yes, that's correct.")        // positive: +1
	agent.Process("Not interested")              // objection: -1
	assert.Equal(t, 1, agent.Summary().RapportLevel)
	assert.Equal(t, 1, agent.Summary().ObjectionCount)
}

func TestEmptyProspectFieldsUseDefaults(t *testing.T) {
	agent, err := NewAgent(domain.ProspectData{}, DefaultScript(), FirstSelector{})
	require.NoError(t, err)

	greeting := agent.InitiateCall()
	assert.Contains(t, greeting, "Hi there,")

	agent.Process("I'm doing well, thanks.")
	reply := agent.Process("Sure, go ahead.")
	assert.Contains(t, reply, "your role at your company")
}

func TestSummaryInProgress(t *testing.T) {
	agent := newTestAgent(t)
	agent.Process("I'm doing well, thanks.")

	summary := agent.Summary()
	assert.Equal(t, domain.OutcomeInProgress, summary.Outcome)
	assert.Equal(t, domain.StagePermission, summary.FinalStage)
	assert.Equal(t, 1, summary.ConversationLength)
}
