package handler

import (
	"net/http"
	"strconv"

	"github.com/Maksimka7878/PADL/internal/model"
	"github.com/Maksimka7878/PADL/internal/service"
)

const defaultListLimit = 50

// LobbyHandler handles lobby lifecycle endpoints
type LobbyHandler struct {
	lobbyService *service.LobbyService
}

// NewLobbyHandler creates a new lobby handler
func NewLobbyHandler(lobbyService *service.LobbyService) *LobbyHandler {
	return &LobbyHandler{
		lobbyService: lobbyService,
	}
}

// CreateLobby handles POST /v1/lobbies - create a new lobby
func (h *LobbyHandler) CreateLobby(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		WriteError(w, model.NewBadRequestError("user_id is required"))
		return
	}

	var req model.CreateLobbyRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	lobby, err := h.lobbyService.Create(r.Context(), userID, req)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "create lobby"))
		return
	}

	WriteData(w, http.StatusCreated, lobby, map[string]string{
		"self": "/v1/lobbies/" + lobby.ID,
	})
}

// ListLobbies handles GET /v1/lobbies - list open lobbies
func (h *LobbyHandler) ListLobbies(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			WriteError(w, model.NewBadRequestError("limit must be a positive integer"))
			return
		}
		limit = v
	}

	lobbies, err := h.lobbyService.ListOpen(r.Context(), limit)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "list lobbies"))
		return
	}

	WriteCollection(w, http.StatusOK, lobbies, nil, map[string]string{
		"self": "/v1/lobbies",
	})
}

// GetLobby handles GET /v1/lobbies/{id} - get a lobby by ID
func (h *LobbyHandler) GetLobby(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	lobby, err := h.lobbyService.Get(r.Context(), id)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "get lobby"))
		return
	}

	WriteData(w, http.StatusOK, lobby, map[string]string{
		"self": "/v1/lobbies/" + lobby.ID,
	})
}

// JoinLobby handles POST /v1/lobbies/{id}/join - join a lobby
func (h *LobbyHandler) JoinLobby(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req model.JoinLobbyRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if req.UserID == "" {
		WriteError(w, model.NewBadRequestError("user_id is required"))
		return
	}

	lobby, err := h.lobbyService.Join(r.Context(), id, req.UserID, req.SkillLevel)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "join lobby"))
		return
	}

	WriteData(w, http.StatusOK, lobby, map[string]string{
		"self": "/v1/lobbies/" + lobby.ID,
	})
}

// LeaveLobby handles POST /v1/lobbies/{id}/leave - leave a lobby
func (h *LobbyHandler) LeaveLobby(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		WriteError(w, model.NewBadRequestError("user_id is required"))
		return
	}

	if err := h.lobbyService.Leave(r.Context(), id, userID); err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "leave lobby"))
		return
	}

	WriteNoContent(w)
}

// CloseLobby handles POST /v1/lobbies/{id}/close - close a lobby
func (h *LobbyHandler) CloseLobby(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		WriteError(w, model.NewBadRequestError("user_id is required"))
		return
	}

	if err := h.lobbyService.Close(r.Context(), id, userID); err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "close lobby"))
		return
	}

	WriteNoContent(w)
}

// DeleteLobby handles DELETE /v1/lobbies/{id} - delete a lobby
func (h *LobbyHandler) DeleteLobby(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		WriteError(w, model.NewBadRequestError("user_id is required"))
		return
	}

	if err := h.lobbyService.Delete(r.Context(), id, userID); err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "delete lobby"))
		return
	}

	WriteNoContent(w)
}
