package call

import "github.com/demandify-media/caller-voice-service/internal/domain"

// Status is the single call slot's lifecycle state.
type Status string

const (
	StatusIdle     Status = "idle"
	StatusRunning  Status = "running"
	StatusStopping Status = "stopping"
)

// StatusSnapshot is the console's view of the call slot, returned by the
// status API and pushed over the status websocket.
type StatusSnapshot struct {
	Status        Status              `json:"status"`
	Running       bool                `json:"running"`
	LeadIndex     int                 `json:"lead_index,omitempty"` // 1-based, 0 = none
	Campaign      string              `json:"campaign,omitempty"`
	CampaignLabel string              `json:"campaign_label,omitempty"`
	AutoNext      bool                `json:"auto_next"`
	RoomName      string              `json:"room_name,omitempty"`
	Stage         string              `json:"stage,omitempty"`
	TurnCount     int                 `json:"turn_count"`
	Lead          domain.ProspectData `json:"lead"`
}

// StartResult is returned from StartCall so the API layer can report what
// actually got dialed.
type StartResult struct {
	SessionID string              `json:"session_id"`
	RoomName  string              `json:"room_name"`
	LeadIndex int                 `json:"lead_index"`
	Campaign  string              `json:"campaign"`
	Lead      domain.ProspectData `json:"lead"`
}
