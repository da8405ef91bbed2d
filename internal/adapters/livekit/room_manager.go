package livekit

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/demandify-media/caller-voice-service/pkg/logger"
	"github.com/livekit/protocol/auth"
	"github.com/livekit/protocol/livekit"
	lksdk "github.com/livekit/server-sdk-go"
	"go.uber.org/zap"
)

const (
	// botIdentityPrefix marks the agent participant so it can filter out its
	// own events.
	botIdentityPrefix = "caller-agent-"

	// tokenTTL matches the dashboard's short-lived browser join tokens.
	tokenTTL = 10 * time.Minute
)

// Driver produces the agent's side of a conversation. Respond reports
// whether the reply ended the call.
type Driver interface {
	Greeting() string
	Respond(utterance string) (reply string, ended bool)
}

// utteranceMessage is the inbound data-packet payload from the browser.
type utteranceMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// replyMessage is the outbound data-packet payload to the browser.
type replyMessage struct {
	Type  string `json:"type"`
	Text  string `json:"text"`
	Final bool   `json:"final"`
}

// AgentRoom stores LiveKit-specific resources for one active session
type AgentRoom struct {
	Room      *lksdk.Room
	RoomName  string
	CreatedAt time.Time
	ReadyChan chan struct{} // Notification channel: room is ready

	greetOnce sync.Once
	driver    Driver
}

// RoomManager manages LiveKit rooms and routes conversation text between the
// browser participant and the call-flow driver
type RoomManager struct {
	config *LiveKitConfig
	rooms  map[string]*AgentRoom // sessionID -> room
	mutex  sync.RWMutex

	// onSessionEnded is invoked after a room finishes, so the call service
	// can persist the outcome and free the slot.
	onSessionEnded func(sessionID string)
}

// NewRoomManager creates a new LiveKit room manager
func NewRoomManager(config *LiveKitConfig) (*RoomManager, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid LiveKit config: %w", err)
	}

	rm := &RoomManager{
		config: config,
		rooms:  make(map[string]*AgentRoom),
	}

	logger.Base().Info("LiveKit RoomManager initialized", zap.String("server_url", config.ServerURL))
	return rm, nil
}

// SetOnSessionEnded registers the session-finished hook. Must be called
// before ConnectAgent.
func (rm *RoomManager) SetOnSessionEnded(fn func(sessionID string)) {
	rm.onSessionEnded = fn
}

// GenerateToken generates a LiveKit access token for a browser participant
func (rm *RoomManager) GenerateToken(roomName, participantName string) (string, error) {
	at := auth.NewAccessToken(rm.config.APIKey, rm.config.APISecret)

	canPublish := true
	canSubscribe := true

	grant := &auth.VideoGrant{
		RoomJoin:     true,
		Room:         roomName,
		CanPublish:   &canPublish,
		CanSubscribe: &canSubscribe,
	}

	at.SetVideoGrant(grant).
		SetIdentity(participantName).
		SetName(participantName).
		SetValidFor(tokenTTL)

	token, err := at.ToJWT()
	if err != nil {
		return "", fmt.Errorf("failed to generate JWT: %w", err)
	}

	return token, nil
}

// ConnectAgent joins a LiveKit room as the agent participant and routes data
// packets through the driver. The greeting is sent when the first non-agent
// participant shows up.
func (rm *RoomManager) ConnectAgent(sessionID, roomName string, driver Driver) error {
	logger.Base().Info("Agent joining room", zap.String("room_name", roomName), zap.String("session_id", sessionID))

	readyChan := make(chan struct{})
	agentRoom := &AgentRoom{
		RoomName:  roomName,
		CreatedAt: time.Now(),
		ReadyChan: readyChan,
		driver:    driver,
	}

	rm.mutex.Lock()
	if _, exists := rm.rooms[sessionID]; exists {
		rm.mutex.Unlock()
		return fmt.Errorf("session %s already has an active room", sessionID)
	}
	rm.rooms[sessionID] = agentRoom
	rm.mutex.Unlock()

	roomCallback := &lksdk.RoomCallback{
		ParticipantCallback: lksdk.ParticipantCallback{
			OnDataReceived: func(data []byte, rp *lksdk.RemoteParticipant) {
				rm.handleUtterance(sessionID, data, rp)
			},
		},
		OnParticipantConnected: func(rp *lksdk.RemoteParticipant) {
			identity := rp.Identity()
			if strings.HasPrefix(identity, botIdentityPrefix) {
				return
			}
			logger.Base().Info("Participant connected", zap.String("participant_identity", identity), zap.String("room_name", roomName))
			rm.sendGreeting(sessionID)
		},
		OnParticipantDisconnected: func(rp *lksdk.RemoteParticipant) {
			logger.Base().Info("Participant disconnected", zap.String("participant_identity", rp.Identity()), zap.String("room_name", roomName))
			rm.CleanupRoom(sessionID)
		},
		OnDisconnected: func() {
			logger.Base().Info("Agent disconnected from room", zap.String("room_name", roomName))
		},
	}

	room, err := lksdk.ConnectToRoom(rm.config.ServerURL, lksdk.ConnectInfo{
		APIKey:              rm.config.APIKey,
		APISecret:           rm.config.APISecret,
		RoomName:            roomName,
		ParticipantIdentity: botIdentityPrefix + sessionID,
	}, roomCallback)
	if err != nil {
		rm.mutex.Lock()
		delete(rm.rooms, sessionID)
		rm.mutex.Unlock()
		return fmt.Errorf("failed to connect to room: %w", err)
	}

	rm.mutex.Lock()
	agentRoom.Room = room
	close(agentRoom.ReadyChan)
	rm.mutex.Unlock()

	logger.Base().Info("Agent joined room", zap.String("room_name", roomName), zap.String("session_id", sessionID))

	// A participant may have joined before the agent finished connecting.
	for _, p := range room.GetParticipants() {
		if !strings.HasPrefix(p.Identity(), botIdentityPrefix) {
			rm.sendGreeting(sessionID)
			break
		}
	}

	return nil
}

// sendGreeting publishes the opening line exactly once per session.
func (rm *RoomManager) sendGreeting(sessionID string) {
	rm.mutex.RLock()
	agentRoom, exists := rm.rooms[sessionID]
	rm.mutex.RUnlock()
	if !exists || agentRoom.driver == nil {
		return
	}

	agentRoom.greetOnce.Do(func() {
		greeting := agentRoom.driver.Greeting()
		if err := rm.publishReply(sessionID, greeting, false); err != nil {
			logger.Base().Error("Failed to publish greeting", zap.String("session_id", sessionID), zap.Error(err))
			return
		}
		logger.Base().Info("Greeting sent", zap.String("session_id", sessionID))
	})
}

// handleUtterance decodes an inbound data packet and answers it through the
// driver.
func (rm *RoomManager) handleUtterance(sessionID string, data []byte, rp *lksdk.RemoteParticipant) {
	if strings.HasPrefix(rp.Identity(), botIdentityPrefix) {
		return
	}

	var msg utteranceMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		// Plain-text packets are accepted as bare utterances.
		msg = utteranceMessage{Type: "utterance", Text: string(data)}
	}
	if msg.Type != "utterance" || strings.TrimSpace(msg.Text) == "" {
		return
	}

	rm.mutex.RLock()
	agentRoom, exists := rm.rooms[sessionID]
	rm.mutex.RUnlock()
	if !exists || agentRoom.driver == nil {
		return
	}

	reply, ended := agentRoom.driver.Respond(msg.Text)
	if err := rm.publishReply(sessionID, reply, ended); err != nil {
		logger.Base().Error("Failed to publish reply", zap.String("session_id", sessionID), zap.Error(err))
		return
	}

	if ended {
		logger.Base().Info("Call flow reached terminal stage", zap.String("session_id", sessionID))
		rm.CleanupRoom(sessionID)
	}
}

// publishReply sends one agent line to every participant in the room.
func (rm *RoomManager) publishReply(sessionID, text string, final bool) error {
	rm.mutex.RLock()
	agentRoom, exists := rm.rooms[sessionID]
	rm.mutex.RUnlock()
	if !exists || agentRoom.Room == nil {
		return fmt.Errorf("no active room for session %s", sessionID)
	}

	payload, err := json.Marshal(replyMessage{Type: "reply", Text: text, Final: final})
	if err != nil {
		return fmt.Errorf("encode reply: %w", err)
	}

	return agentRoom.Room.LocalParticipant.PublishData(payload, livekit.DataPacket_RELIABLE, nil)
}

// CleanupRoom disconnects the agent and releases the session
func (rm *RoomManager) CleanupRoom(sessionID string) {
	rm.mutex.Lock()
	agentRoom, exists := rm.rooms[sessionID]
	if !exists {
		rm.mutex.Unlock()
		return
	}
	delete(rm.rooms, sessionID)
	rm.mutex.Unlock()

	duration := time.Since(agentRoom.CreatedAt).Seconds()
	logger.Base().Info("Room finished", zap.String("room_name", agentRoom.RoomName), zap.String("session_id", sessionID), zap.Float64("duration", duration))

	if agentRoom.Room != nil {
		agentRoom.Room.Disconnect()
	}

	if rm.onSessionEnded != nil {
		rm.onSessionEnded(sessionID)
	}

	logger.Base().Info("Room cleaned up", zap.String("session_id", sessionID))
}

// GetConfigInternal returns the LiveKit configuration
func (rm *RoomManager) GetConfigInternal() *LiveKitConfig {
	return rm.config
}

// GetRoomCount returns the number of active rooms
func (rm *RoomManager) GetRoomCount() int {
	rm.mutex.RLock()
	defer rm.mutex.RUnlock()
	return len(rm.rooms)
}

// StartCleanupRoutine starts a background routine to clean up expired rooms
func (rm *RoomManager) StartCleanupRoutine(ctx context.Context) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	logger.Base().Info("Started cleanup routine")

	for {
		select {
		case <-ctx.Done():
			logger.Base().Info("Cleanup routine stopped")
			return
		case <-ticker.C:
			rm.cleanupExpiredRooms(30 * time.Minute)
		}
	}
}

// cleanupExpiredRooms removes rooms that have been active for too long
func (rm *RoomManager) cleanupExpiredRooms(duration time.Duration) {
	rm.mutex.RLock()
	now := time.Now()
	var expiredIDs []string

	for sessionID, agentRoom := range rm.rooms {
		if now.Sub(agentRoom.CreatedAt) > duration {
			expiredIDs = append(expiredIDs, sessionID)
		}
	}
	rm.mutex.RUnlock()

	// Cleanup after releasing the lock to avoid deadlock
	for _, id := range expiredIDs {
		logger.Base().Info("Cleaning up expired room", zap.String("session_id", id))
		rm.CleanupRoom(id)
	}
}
