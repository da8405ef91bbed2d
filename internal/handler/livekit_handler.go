package handler

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/demandify-media/caller-voice-service/internal/adapters/livekit"
	"github.com/demandify-media/caller-voice-service/internal/services/call"
	"github.com/demandify-media/caller-voice-service/pkg/logger"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// defaultBrowserIdentity is used when the join page does not name the
// participant.
const defaultBrowserIdentity = "browser-user"

// LiveKitHandler issues browser join tokens and drives the browser-call
// entry point.
type LiveKitHandler struct {
	roomManager *livekit.RoomManager
	service     *call.CallerService

	// tokenLimiter throttles the public token endpoint.
	tokenLimiter *rate.Limiter
}

// NewLiveKitHandler creates a new LiveKit handler
func NewLiveKitHandler(roomManager *livekit.RoomManager, service *call.CallerService, tokensPerSecond float64, burst int) *LiveKitHandler {
	if tokensPerSecond <= 0 {
		tokensPerSecond = 5
	}
	if burst <= 0 {
		burst = 10
	}
	return &LiveKitHandler{
		roomManager:  roomManager,
		service:      service,
		tokenLimiter: rate.NewLimiter(rate.Limit(tokensPerSecond), burst),
	}
}

// SetupLiveKitRoutes registers token and browser-join routes. The token
// route goes on the API subrouter, the join flow on the root router.
func (h *LiveKitHandler) SetupLiveKitRoutes(router *mux.Router, apiRouter *mux.Router) {
	apiRouter.HandleFunc("/token", h.HandleToken).Methods("GET")
	router.HandleFunc("/browser/start", h.HandleBrowserStart).Methods("POST")
}

// tokenResponse is the join-token payload for the browser client.
type tokenResponse struct {
	Token     string `json:"token"`
	ServerURL string `json:"server_url"`
	Room      string `json:"room"`
	Identity  string `json:"identity"`
}

// HandleToken issues a short-lived LiveKit join token for one room
func (h *LiveKitHandler) HandleToken(w http.ResponseWriter, r *http.Request) {
	if !h.tokenLimiter.Allow() {
		writeJSONError(w, http.StatusTooManyRequests, "token requests are rate limited, retry shortly")
		return
	}

	roomName := r.URL.Query().Get("room")
	if roomName == "" {
		writeJSONError(w, http.StatusBadRequest, "room is required")
		return
	}
	identity := r.URL.Query().Get("identity")
	if identity == "" {
		identity = defaultBrowserIdentity
	}

	token, err := h.roomManager.GenerateToken(roomName, identity)
	if err != nil {
		logger.Base().Error("failed to generate join token", zap.String("room_name", roomName), zap.Error(err))
		writeJSONError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{
		Token:     token,
		ServerURL: h.roomManager.GetConfigInternal().ServerURL,
		Room:      roomName,
		Identity:  identity,
	})
}

// HandleBrowserStart starts a call for a lead and sends the browser to the
// call page for its room.
func (h *LiveKitHandler) HandleBrowserStart(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.service.StartBrowserCall(values["room"], idx0+1, values["campaign"])
	if err != nil {
		writeJSONError(w, http.StatusConflict, err.Error())
		return
	}

	logger.Base().Info("browser call started",
		zap.String("room_name", result.RoomName),
		zap.Int("lead_index", result.LeadIndex))

	http.Redirect(w, r, "/browser/call?room="+url.QueryEscape(result.RoomName), http.StatusSeeOther)
}
