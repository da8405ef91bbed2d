// Package call owns the console's single call slot: starting a session for a
// lead, tracking its status, ending it, and optionally auto-dialing the next
// lead when a call finishes.
package call

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/demandify-media/caller-voice-service/internal/adapters/livekit"
	"github.com/demandify-media/caller-voice-service/internal/campaign"
	"github.com/demandify-media/caller-voice-service/internal/domain"
	"github.com/demandify-media/caller-voice-service/internal/leads"
	"github.com/demandify-media/caller-voice-service/internal/repository"
	"github.com/demandify-media/caller-voice-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RoomConnector is the transport side of a session: it joins the room as the
// agent participant and routes utterances through the driver.
type RoomConnector interface {
	ConnectAgent(sessionID, roomName string, driver livekit.Driver) error
	CleanupRoom(sessionID string)
}

// CallerService manages the single outbound call slot.
type CallerService struct {
	campaigns *campaign.Registry
	leads     *leads.Loader
	rooms     RoomConnector
	repo      repository.CallRecordRepository

	mutex            sync.Mutex
	status           Status
	selectedCampaign string
	currentLeadIdx   int // 1-based, 0 = none
	autoNext         bool
	driver           *SessionDriver
	sessionID        string
	endAutoNext      *bool // per-end override, nil = use autoNext

	subMutex    sync.Mutex
	subscribers map[chan StatusSnapshot]struct{}
}

// NewCallerService creates the call service. rooms may be nil in tests.
func NewCallerService(campaigns *campaign.Registry, loader *leads.Loader, rooms RoomConnector, repo repository.CallRecordRepository) *CallerService {
	return &CallerService{
		campaigns:   campaigns,
		leads:       loader,
		rooms:       rooms,
		repo:        repo,
		status:      StatusIdle,
		subscribers: make(map[chan StatusSnapshot]struct{}),
	}
}

// SelectCampaign sets the campaign used when none is given per call. An
// empty key clears the selection.
func (s *CallerService) SelectCampaign(key string) error {
	if key != "" && !s.campaigns.Has(key) {
		return fmt.Errorf("unknown campaign %q", key)
	}
	s.mutex.Lock()
	s.selectedCampaign = key
	s.mutex.Unlock()
	s.broadcast()
	return nil
}

// SetAutoNext toggles automatic dialing of the next lead when a call ends.
func (s *CallerService) SetAutoNext(enabled bool) {
	s.mutex.Lock()
	s.autoNext = enabled
	s.mutex.Unlock()
	s.broadcast()
}

// StartCall occupies the slot with a session for the 1-based lead index.
// The agent connects to the room in the background.
func (s *CallerService) StartCall(leadIndex int, campaignKey string) (StartResult, error) {
	lead, ok := s.leads.ByIndex(leadIndex)
	if !ok {
		return StartResult{}, fmt.Errorf("no lead at index %d", leadIndex)
	}

	s.mutex.Lock()
	if s.status != StatusIdle {
		s.mutex.Unlock()
		return StartResult{}, fmt.Errorf("a call is already %s", s.status)
	}

	effective := campaignKey
	if effective == "" {
		effective = s.selectedCampaign
	}
	var camp campaign.Campaign
	if effective == "" {
		camp = s.campaigns.Default()
		effective = camp.Key
	} else {
		var err error
		camp, err = s.campaigns.Get(effective)
		if err != nil {
			s.mutex.Unlock()
			return StartResult{}, err
		}
	}

	roomName := fmt.Sprintf("room-%d", leadIndex)
	driver, err := NewSessionDriver(camp, lead, leadIndex, roomName)
	if err != nil {
		s.mutex.Unlock()
		return StartResult{}, err
	}

	sessionID := uuid.New().String()
	s.driver = driver
	s.sessionID = sessionID
	s.status = StatusRunning
	s.currentLeadIdx = leadIndex
	s.selectedCampaign = effective
	s.endAutoNext = nil
	s.mutex.Unlock()

	logger.Base().Info("Call started",
		zap.String("session_id", sessionID),
		zap.String("room_name", roomName),
		zap.Int("lead_index", leadIndex),
		zap.String("campaign", effective))

	if s.rooms != nil {
		go func() {
			if err := s.rooms.ConnectAgent(sessionID, roomName, driver); err != nil {
				logger.Base().Error("Agent failed to join room", zap.String("session_id", sessionID), zap.Error(err))
				s.HandleSessionEnded(sessionID)
			}
		}()
	}

	s.broadcast()
	return StartResult{
		SessionID: sessionID,
		RoomName:  roomName,
		LeadIndex: leadIndex,
		Campaign:  effective,
		Lead:      lead,
	}, nil
}

// StartBrowserCall starts a call for the browser join flow. Room names are
// derived from the lead index, so a caller-supplied room must match; an
// empty room accepts the derived name.
func (s *CallerService) StartBrowserCall(roomName string, leadIndex int, campaignKey string) (StartResult, error) {
	expected := fmt.Sprintf("room-%d", leadIndex)
	if roomName != "" && roomName != expected {
		return StartResult{}, fmt.Errorf("room %q does not match lead %d", roomName, leadIndex)
	}
	return s.StartCall(leadIndex, campaignKey)
}

// EndCall ends the running call. autoNext overrides the global toggle for
// this one transition, matching the console's "end & next" button.
func (s *CallerService) EndCall(autoNext bool) (StatusSnapshot, bool) {
	s.mutex.Lock()
	if s.driver == nil {
		prev := s.currentLeadIdx
		camp := s.selectedCampaign
		s.mutex.Unlock()
		if autoNext && prev > 0 {
			if _, err := s.StartCall(prev+1, camp); err != nil {
				logger.Base().Info("Auto-next has no further leads", zap.Int("after_index", prev))
			}
		}
		return s.Status(), false
	}

	sessionID := s.sessionID
	s.status = StatusStopping
	s.endAutoNext = &autoNext
	s.mutex.Unlock()
	s.broadcast()

	if s.rooms != nil {
		s.rooms.CleanupRoom(sessionID)
	} else {
		s.HandleSessionEnded(sessionID)
	}
	return s.Status(), true
}

// StopAll disables auto-next and ends any running call.
func (s *CallerService) StopAll() StatusSnapshot {
	s.mutex.Lock()
	s.autoNext = false
	s.mutex.Unlock()

	snapshot, _ := s.EndCall(false)
	return snapshot
}

// HandleSessionEnded finishes a session: persists the record, frees the
// slot, and auto-dials the next lead when enabled. Wire it as the room
// manager's session-ended hook.
func (s *CallerService) HandleSessionEnded(sessionID string) {
	s.mutex.Lock()
	if sessionID != s.sessionID || s.driver == nil {
		s.mutex.Unlock()
		return
	}
	driver := s.driver
	leadIdx := s.currentLeadIdx
	camp := s.selectedCampaign
	next := s.autoNext
	if s.endAutoNext != nil {
		next = *s.endAutoNext
	}
	s.driver = nil
	s.sessionID = ""
	s.status = StatusIdle
	s.endAutoNext = nil
	s.mutex.Unlock()

	s.persist(driver)
	s.broadcast()

	if next {
		if _, err := s.StartCall(leadIdx+1, camp); err != nil {
			logger.Base().Info("Auto-next stopped", zap.Int("after_index", leadIdx), zap.Error(err))
		}
	}
}

func (s *CallerService) persist(driver *SessionDriver) {
	if s.repo == nil {
		return
	}
	record, turns := driver.BuildRecord()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.repo.SaveCall(ctx, record, turns); err != nil {
		logger.Base().Error("Failed to persist call record", zap.String("room_name", record.RoomName), zap.Error(err))
		return
	}
	logger.Base().Info("Call record saved",
		zap.String("call_id", record.ID),
		zap.String("outcome", string(record.Outcome)),
		zap.Int("turns", record.TurnCount))
}

// Status returns the current slot snapshot.
func (s *CallerService) Status() StatusSnapshot {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.snapshotLocked()
}

func (s *CallerService) snapshotLocked() StatusSnapshot {
	snapshot := StatusSnapshot{
		Status:    s.status,
		Running:   s.status == StatusRunning,
		LeadIndex: s.currentLeadIdx,
		Campaign:  s.selectedCampaign,
		AutoNext:  s.autoNext,
	}
	if s.selectedCampaign != "" {
		if c, err := s.campaigns.Get(s.selectedCampaign); err == nil {
			snapshot.CampaignLabel = campaign.DisplayLabel(c.DisplayName)
		}
	}
	if s.driver != nil {
		snapshot.RoomName = s.driver.RoomName()
		snapshot.Stage = s.driver.Stage().String()
		snapshot.TurnCount = s.driver.TurnCount()
		snapshot.Lead = s.driver.Lead()
	} else if s.currentLeadIdx > 0 {
		if lead, ok := s.leads.ByIndex(s.currentLeadIdx); ok {
			snapshot.Lead = lead
		}
	}
	return snapshot
}

// Subscribe registers a status listener for the websocket stream. The
// returned cancel func must be called when the client goes away.
func (s *CallerService) Subscribe() (<-chan StatusSnapshot, func()) {
	ch := make(chan StatusSnapshot, 8)

	s.subMutex.Lock()
	s.subscribers[ch] = struct{}{}
	s.subMutex.Unlock()

	cancel := func() {
		s.subMutex.Lock()
		if _, ok := s.subscribers[ch]; ok {
			delete(s.subscribers, ch)
			close(ch)
		}
		s.subMutex.Unlock()
	}

	// Seed the new listener with the current state.
	ch <- s.Status()
	return ch, cancel
}

func (s *CallerService) broadcast() {
	snapshot := s.Status()

	s.subMutex.Lock()
	defer s.subMutex.Unlock()
	for ch := range s.subscribers {
		select {
		case ch <- snapshot:
		default:
			// Slow listener; it will catch up on the next tick.
		}
	}
}

// StartWatcher pushes a periodic snapshot to subscribers while a call is
// running, so dashboards see stage and turn-count changes without polling.
func (s *CallerService) StartWatcher(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.mutex.Lock()
			running := s.status == StatusRunning
			s.mutex.Unlock()
			if running {
				s.broadcast()
			}
		}
	}
}

// SelectedCampaign returns the sticky campaign selection.
func (s *CallerService) SelectedCampaign() string {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.selectedCampaign
}

// LeadForIndex exposes lead lookup for the API layer.
func (s *CallerService) LeadForIndex(idx1 int) (domain.ProspectData, bool) {
	return s.leads.ByIndex(idx1)
}
