package call

import (
	"fmt"
	"sync"
	"time"

	"github.com/demandify-media/caller-voice-service/internal/callflow"
	"github.com/demandify-media/caller-voice-service/internal/campaign"
	"github.com/demandify-media/caller-voice-service/internal/domain"
)

// SessionDriver wraps one call-flow agent for a single live session. The
// agent itself is not safe for concurrent use, so every entry point here
// takes the mutex.
type SessionDriver struct {
	mu    sync.Mutex
	agent *callflow.Agent

	campaignKey string
	leadIndex   int // 1-based
	lead        domain.ProspectData
	roomName    string
	startedAt   time.Time
}

// NewSessionDriver builds the driver for one lead and campaign.
func NewSessionDriver(c campaign.Campaign, lead domain.ProspectData, leadIndex int, roomName string) (*SessionDriver, error) {
	agent, err := callflow.NewAgent(lead, c.Flow, nil)
	if err != nil {
		return nil, fmt.Errorf("build call-flow agent: %w", err)
	}
	return &SessionDriver{
		agent:       agent,
		campaignKey: c.Key,
		leadIndex:   leadIndex,
		lead:        lead,
		roomName:    roomName,
		startedAt:   time.Now(),
	}, nil
}

// Greeting returns the opening line.
func (d *SessionDriver) Greeting() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.agent.InitiateCall()
}

// Respond advances the call flow with one prospect utterance.
func (d *SessionDriver) Respond(utterance string) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	reply := d.agent.Process(utterance)
	return reply, d.agent.Ended()
}

// Stage returns the current call-flow stage.
func (d *SessionDriver) Stage() domain.CallStage {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.agent.Stage()
}

// TurnCount returns how many prospect turns have been processed.
func (d *SessionDriver) TurnCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.agent.History())
}

// Lead returns the lead being called.
func (d *SessionDriver) Lead() domain.ProspectData { return d.lead }

// LeadIndex returns the 1-based lead index.
func (d *SessionDriver) LeadIndex() int { return d.leadIndex }

// CampaignKey returns the campaign running this session.
func (d *SessionDriver) CampaignKey() string { return d.campaignKey }

// RoomName returns the LiveKit room for this session.
func (d *SessionDriver) RoomName() string { return d.roomName }

// BuildRecord snapshots the finished session into persistence models.
func (d *SessionDriver) BuildRecord() (*domain.CallRecord, []domain.CallTurnRecord) {
	d.mu.Lock()
	defer d.mu.Unlock()

	summary := d.agent.Summary()
	history := d.agent.History()

	record := &domain.CallRecord{
		RoomName:       d.roomName,
		CampaignKey:    d.campaignKey,
		LeadIndex:      d.leadIndex,
		ProspectName:   d.lead.Name,
		CompanyName:    d.lead.Company,
		JobTitle:       d.lead.JobTitle,
		Email:          d.lead.Email,
		FinalStage:     summary.FinalStage.String(),
		TurnCount:      summary.ConversationLength,
		ObjectionCount: summary.ObjectionCount,
		RapportLevel:   summary.RapportLevel,
		Personality:    string(summary.Personality),
		Outcome:        summary.Outcome,
		StartedAt:      d.startedAt,
		EndedAt:        time.Now(),
	}

	turns := make([]domain.CallTurnRecord, 0, len(history))
	for _, turn := range history {
		turns = append(turns, domain.CallTurnRecord{
			Stage:       turn.Stage.String(),
			Utterance:   turn.Utterance,
			Sentiment:   string(turn.Sentiment),
			Personality: string(turn.Personality),
			Reply:       turn.Reply,
		})
	}
	return record, turns
}
