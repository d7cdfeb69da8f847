package handler

import (
	"context"
	"net/http"

	"github.com/Maksimka7878/PADL/internal/model"
	"github.com/Maksimka7878/PADL/internal/service"
)

// EngagementHandler handles engagement event endpoints
type EngagementHandler struct {
	engagementService *service.EngagementService
}

// NewEngagementHandler creates a new engagement handler
func NewEngagementHandler(engagementService *service.EngagementService) *EngagementHandler {
	return &EngagementHandler{
		engagementService: engagementService,
	}
}

// GetSignals handles GET /v1/engagement/signals - current signals for a user
func (h *EngagementHandler) GetSignals(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")

	signals, err := h.engagementService.Signals(r.Context(), userID)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "get engagement signals"))
		return
	}

	WriteData(w, http.StatusOK, signals, map[string]string{
		"self": "/v1/engagement/signals",
	})
}

// RecordView handles POST /v1/engagement/views - record a lobby view
func (h *EngagementHandler) RecordView(w http.ResponseWriter, r *http.Request) {
	h.recordEvent(w, r, h.engagementService.RecordView)
}

// RecordFavorite handles POST /v1/engagement/favorites - favorite a court
func (h *EngagementHandler) RecordFavorite(w http.ResponseWriter, r *http.Request) {
	h.recordEvent(w, r, h.engagementService.RecordFavorite)
}

// RemoveFavorite handles DELETE /v1/engagement/favorites - unfavorite a court
func (h *EngagementHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	court := r.URL.Query().Get("court_name")

	if err := h.engagementService.RecordUnfavorite(r.Context(), userID, court); err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "remove favorite"))
		return
	}

	WriteNoContent(w)
}

// RecordDismiss handles POST /v1/engagement/dismissals - dismiss a court
func (h *EngagementHandler) RecordDismiss(w http.ResponseWriter, r *http.Request) {
	h.recordEvent(w, r, h.engagementService.RecordDismiss)
}

// recordEvent is the shared body-parsing path for engagement events
func (h *EngagementHandler) recordEvent(w http.ResponseWriter, r *http.Request, record func(ctx context.Context, userID, courtName string) error) {
	var req model.EngagementEventRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	if err := record(r.Context(), req.UserID, req.CourtName); err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "record engagement event"))
		return
	}

	WriteNoContent(w)
}
