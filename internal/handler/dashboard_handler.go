package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/demandify-media/caller-voice-service/internal/campaign"
	"github.com/demandify-media/caller-voice-service/internal/leads"
	"github.com/demandify-media/caller-voice-service/internal/repository"
	"github.com/demandify-media/caller-voice-service/internal/services/call"
	"github.com/demandify-media/caller-voice-service/pkg/logger"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/jinzhu/copier"
	"go.uber.org/zap"
)

// DashboardHandler serves the operator console API: lead pages, campaign
// selection, the call slot controls, and call history.
type DashboardHandler struct {
	service   *call.CallerService
	campaigns *campaign.Registry
	loader    *leads.Loader
	repo      repository.CallRecordRepository

	upgrader websocket.Upgrader
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service *call.CallerService, campaigns *campaign.Registry, loader *leads.Loader, repo repository.CallRecordRepository) *DashboardHandler {
	return &DashboardHandler{
		service:   service,
		campaigns: campaigns,
		loader:    loader,
		repo:      repo,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The console is served from the same origin; cross-origin
			// embeds are not a concern for an internal tool.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// SetupDashboardRoutes registers the console API on the /api subrouter
func (h *DashboardHandler) SetupDashboardRoutes(apiRouter *mux.Router) {
	apiRouter.HandleFunc("/leads", h.HandleLeads).Methods("GET")
	apiRouter.HandleFunc("/campaigns", h.HandleCampaigns).Methods("GET")
	apiRouter.HandleFunc("/select_campaign", h.HandleSelectCampaign).Methods("POST")
	apiRouter.HandleFunc("/start_call", h.HandleStartCall).Methods("POST")
	apiRouter.HandleFunc("/end_call", h.HandleEndCall).Methods("POST")
	apiRouter.HandleFunc("/status", h.HandleStatus).Methods("GET")
	apiRouter.HandleFunc("/auto_next", h.HandleAutoNext).Methods("POST")
	apiRouter.HandleFunc("/stop_all", h.HandleStopAll).Methods("POST")
	apiRouter.HandleFunc("/calls", h.HandleListCalls).Methods("GET")
	apiRouter.HandleFunc("/calls/{id}", h.HandleGetCall).Methods("GET")
	apiRouter.HandleFunc("/status/ws", h.HandleStatusWS).Methods("GET")
}

// HandleLeads returns one page of the lead list
func (h *DashboardHandler) HandleLeads(w http.ResponseWriter, r *http.Request) {
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid page number")
			return
		}
		page = parsed
	}

	result, err := h.loader.LoadPage(page)
	if err != nil {
		logger.Base().Error("failed to load leads page", zap.Int("page", page), zap.Error(err))
		writeJSONError(w, http.StatusInternalServerError, "failed to load leads")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type campaignEntry struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Name  string `json:"name"`
}

// HandleCampaigns lists selectable campaigns plus the current selection
func (h *DashboardHandler) HandleCampaigns(w http.ResponseWriter, r *http.Request) {
	var entries []campaignEntry
	for _, key := range h.campaigns.Keys() {
		c, err := h.campaigns.Get(key)
		if err != nil {
			continue
		}
		entries = append(entries, campaignEntry{
			Key:   c.Key,
			Label: campaign.DisplayLabel(c.DisplayName),
			Name:  c.DisplayName,
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"campaigns": entries,
		"selected":  h.service.SelectedCampaign(),
	})
}

// HandleSelectCampaign sets the sticky campaign for future calls
func (h *DashboardHandler) HandleSelectCampaign(w http.ResponseWriter, r *http.Request) {
	values := parseRequestValues(r)
	key := values["campaign"]

	if err := h.service.SelectCampaign(key); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ok":       true,
		"selected": key,
	})
}

// HandleStartCall dials one lead. The console posts the zero-based row
// index; internally leads are numbered from one.
func (h *DashboardHandler) HandleStartCall(w http.ResponseWriter, r *http.Request) {
	values := parseRequestValues(r)

	rawIdx, ok := values["lead_global_index"]
	if !ok || rawIdx == "" {
		writeJSONError(w, http.StatusBadRequest, "lead_global_index is required")
		return
	}
	idx0, err := strconv.Atoi(rawIdx)
	if err != nil || idx0 < 0 {
		writeJSONError(w, http.StatusBadRequest, "invalid lead_global_index")
		return
	}

	result, err := h.service.StartCall(idx0+1, values["campaign"])
	if err != nil {
		writeJSONError(w, http.StatusConflict, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleEndCall ends the running call; auto_next defaults to true so the
// console's plain "end" button advances through the list.
func (h *DashboardHandler) HandleEndCall(w http.ResponseWriter, r *http.Request) {
	values := parseRequestValues(r)

	autoNext := true
	if raw, ok := values["auto_next"]; ok && raw != "" {
		autoNext = parseBoolField(raw)
	}

	snapshot, had := h.service.EndCall(autoNext)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ended":  had,
		"status": snapshot,
	})
}

// HandleStatus returns the current call slot snapshot
func (h *DashboardHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Status())
}

// HandleAutoNext toggles automatic dialing of the next lead
func (h *DashboardHandler) HandleAutoNext(w http.ResponseWriter, r *http.Request) {
	values := parseRequestValues(r)

	raw, ok := values["enabled"]
	if !ok || raw == "" {
		writeJSONError(w, http.StatusBadRequest, "enabled is required")
		return
	}
	enabled := parseBoolField(raw)
	h.service.SetAutoNext(enabled)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ok":        true,
		"auto_next": enabled,
	})
}

// HandleStopAll disables auto-next and ends any running call
func (h *DashboardHandler) HandleStopAll(w http.ResponseWriter, r *http.Request) {
	snapshot := h.service.StopAll()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ok":     true,
		"status": snapshot,
	})
}

// callRecordResponse is the API shape of a persisted call record.
type callRecordResponse struct {
	ID             string    `json:"id"`
	RoomName       string    `json:"room_name"`
	CampaignKey    string    `json:"campaign_key"`
	LeadIndex      int       `json:"lead_index"`
	ProspectName   string    `json:"prospect_name"`
	CompanyName    string    `json:"company_name"`
	JobTitle       string    `json:"job_title"`
	Email          string    `json:"email"`
	FinalStage     string    `json:"final_stage"`
	TurnCount      int       `json:"turn_count"`
	ObjectionCount int       `json:"objection_count"`
	RapportLevel   int       `json:"rapport_level"`
	Personality    string    `json:"prospect_personality"`
	Outcome        string    `json:"outcome"`
	StartedAt      time.Time `json:"started_at"`
	EndedAt        time.Time `json:"ended_at"`
}

// HandleListCalls lists recent call records, optionally by campaign
func (h *DashboardHandler) HandleListCalls(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	var (
		records interface{}
		err     error
	)
	if campaignKey := r.URL.Query().Get("campaign"); campaignKey != "" {
		records, err = h.repo.ListByCampaign(r.Context(), campaignKey, limit)
	} else {
		records, err = h.repo.ListRecent(r.Context(), limit)
	}
	if err != nil {
		logger.Base().Error("failed to list call records", zap.Error(err))
		writeJSONError(w, http.StatusInternalServerError, "failed to list calls")
		return
	}

	responses := []callRecordResponse{}
	if err := copier.Copy(&responses, records); err != nil {
		logger.Base().Error("failed to map call records", zap.Error(err))
		writeJSONError(w, http.StatusInternalServerError, "failed to map calls")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"calls": responses,
		"count": len(responses),
	})
}

// HandleGetCall returns one call record with its transcript
func (h *DashboardHandler) HandleGetCall(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	record, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		logger.Base().Error("failed to load call record", zap.String("call_id", id), zap.Error(err))
		writeJSONError(w, http.StatusInternalServerError, "failed to load call")
		return
	}
	if record == nil {
		writeJSONError(w, http.StatusNotFound, "call not found")
		return
	}

	turns, err := h.repo.GetTurns(r.Context(), id)
	if err != nil {
		logger.Base().Error("failed to load call turns", zap.String("call_id", id), zap.Error(err))
		writeJSONError(w, http.StatusInternalServerError, "failed to load call turns")
		return
	}

	var response callRecordResponse
	if err := copier.Copy(&response, record); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to map call")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"call":  response,
		"turns": turns,
	})
}

// HandleStatusWS streams status snapshots over a websocket until the client
// goes away.
func (h *DashboardHandler) HandleStatusWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Base().Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	snapshots, cancel := h.service.Subscribe()
	defer cancel()
	defer conn.Close()

	// Drain the client side so close frames are noticed.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	for snapshot := range snapshots {
		if err := conn.WriteJSON(snapshot); err != nil {
			return
		}
	}
}

// parseRequestValues flattens a JSON or form POST body into string values.
func parseRequestValues(r *http.Request) map[string]string {
	values := make(map[string]string)

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/json") {
		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
			for k, v := range body {
				switch typed := v.(type) {
				case string:
					values[k] = typed
				case float64:
					// JSON numbers arrive as float64; indexes are integral.
					values[k] = strconv.FormatInt(int64(typed), 10)
				case bool:
					values[k] = strconv.FormatBool(typed)
				default:
					values[k] = fmt.Sprintf("%v", v)
				}
			}
		}
		return values
	}

	if err := r.ParseForm(); err != nil {
		return values
	}
	for k := range r.PostForm {
		values[k] = r.PostForm.Get(k)
	}
	return values
}

// parseBoolField accepts the loose truthy values HTML forms send.
func parseBoolField(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "on", "yes":
		return true
	default:
		return false
	}
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Base().Error("failed to encode response", zap.Error(err))
	}
}

// writeJSONError writes a JSON error response
func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
