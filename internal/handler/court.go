package handler

import (
	"net/http"

	"github.com/Maksimka7878/PADL/internal/service"
)

// CourtHandler handles court catalog and metro reference endpoints
type CourtHandler struct {
	lobbyService *service.LobbyService
	metroService *service.MetroService
}

// NewCourtHandler creates a new court handler
func NewCourtHandler(lobbyService *service.LobbyService, metroService *service.MetroService) *CourtHandler {
	return &CourtHandler{
		lobbyService: lobbyService,
		metroService: metroService,
	}
}

// ListCourts handles GET /v1/courts - list the court catalog
func (h *CourtHandler) ListCourts(w http.ResponseWriter, r *http.Request) {
	courts, err := h.lobbyService.Courts(r.Context())
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "list courts"))
		return
	}

	WriteCollection(w, http.StatusOK, courts, nil, map[string]string{
		"self": "/v1/courts",
	})
}

// GetMetroLines handles GET /v1/metro/lines - the metro line reference
// used by location scoring
func (h *CourtHandler) GetMetroLines(w http.ResponseWriter, r *http.Request) {
	WriteData(w, http.StatusOK, h.metroService.Lines(), map[string]string{
		"self": "/v1/metro/lines",
	})
}
