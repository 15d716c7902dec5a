package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/geoattendance/geoattendance-backend-go/internal/domain/live"
	"github.com/geoattendance/geoattendance-backend-go/internal/handler/http/response"
	"github.com/geoattendance/geoattendance-backend-go/internal/pkg/jwt"
	"github.com/geoattendance/geoattendance-backend-go/internal/pkg/sse"
	liveService "github.com/geoattendance/geoattendance-backend-go/internal/service/live"
	"github.com/go-chi/jwtauth/v5"
)

type LiveHandler interface {
	Snapshot(w http.ResponseWriter, r *http.Request)
	GetSSEToken(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type liveHandlerImpl struct {
	liveSvc    live.LiveService
	hub        *sse.Hub
	jwtService jwt.Service
}

func NewLiveHandler(liveSvc live.LiveService, hub *sse.Hub, jwtService jwt.Service) LiveHandler {
	return &liveHandlerImpl{
		liveSvc:    liveSvc,
		hub:        hub,
		jwtService: jwtService,
	}
}

// SSETokenResponse carries a short-lived token for the EventSource client.
type SSETokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

// Snapshot implements LiveHandler - one on-demand refresh for screen loads.
func (h *liveHandlerImpl) Snapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.liveSvc.GetSnapshot(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, snapshot)
}

// GetSSEToken generates a short-lived token for SSE connections
func (h *liveHandlerImpl) GetSSEToken(w http.ResponseWriter, r *http.Request) {
	_, claims, _ := jwtauth.FromContext(r.Context())
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	token, expiresIn, err := h.jwtService.GenerateSSEToken(userID)
	if err != nil {
		response.InternalServerError(w, "Failed to generate SSE token")
		return
	}

	response.Success(w, SSETokenResponse{
		Token:     token,
		ExpiresIn: expiresIn,
	})
}

// Stream handles the SSE connection for the live tracking screen.
func (h *liveHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	// Token comes via query parameter, EventSource cannot set headers.
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		http.Error(w, "Missing token", http.StatusUnauthorized)
		return
	}

	if _, err := h.jwtService.ValidateSSEToken(tokenStr); err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(liveService.Topic)
	defer cleanup()

	// Send the current state right away so the screen is not blank until
	// the next refresh tick.
	if snapshot, err := h.liveSvc.GetSnapshot(r.Context()); err == nil {
		if data, err := json.Marshal(snapshot); err == nil {
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", liveService.SnapshotEvent, data)
			flusher.Flush()
		}
	}

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
