package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Maksimka7878/PADL/internal/database"
	"github.com/Maksimka7878/PADL/internal/model"
	"github.com/Maksimka7878/PADL/internal/service"
)

// ============================================================================
// In-memory repositories
// ============================================================================

type memLobbyRepo struct {
	mu           sync.Mutex
	seq          int
	order        []string
	lobbies      map[string]*model.Lobby
	participants map[string]map[string]bool
}

func newMemLobbyRepo() *memLobbyRepo {
	return &memLobbyRepo{
		lobbies:      make(map[string]*model.Lobby),
		participants: make(map[string]map[string]bool),
	}
}

func (r *memLobbyRepo) Create(ctx context.Context, lobby *model.Lobby) (*model.Lobby, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	stored := *lobby
	stored.ID = fmt.Sprintf("lobby:%d", r.seq)
	now := time.Now().UTC()
	stored.CreatedAt = &now
	stored.UpdatedAt = &now

	r.lobbies[stored.ID] = &stored
	r.order = append(r.order, stored.ID)
	r.participants[stored.ID] = map[string]bool{lobby.CreatorID: true}

	out := stored
	return &out, nil
}

func (r *memLobbyRepo) GetByID(ctx context.Context, id string) (*model.Lobby, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	lobby, ok := r.lobbies[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	out := *lobby
	return &out, nil
}

func (r *memLobbyRepo) ListOpen(ctx context.Context, limit int) ([]model.Lobby, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []model.Lobby
	// Newest first
	for i := len(r.order) - 1; i >= 0 && len(out) < limit; i-- {
		lobby := r.lobbies[r.order[i]]
		if lobby != nil && lobby.Status == model.LobbyStatusOpen {
			out = append(out, *lobby)
		}
	}
	return out, nil
}

func (r *memLobbyRepo) IsParticipant(ctx context.Context, lobbyID, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.participants[lobbyID][userID], nil
}

func (r *memLobbyRepo) AddParticipant(ctx context.Context, lobbyID, userID string, nowFull bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	lobby, ok := r.lobbies[lobbyID]
	if !ok {
		return database.ErrNotFound
	}
	if r.participants[lobbyID][userID] {
		return database.ErrDuplicate
	}

	r.participants[lobbyID][userID] = true
	lobby.ParticipantsCount++
	if nowFull {
		lobby.Status = model.LobbyStatusFull
	}
	return nil
}

func (r *memLobbyRepo) RemoveParticipant(ctx context.Context, lobbyID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	lobby, ok := r.lobbies[lobbyID]
	if !ok {
		return database.ErrNotFound
	}

	delete(r.participants[lobbyID], userID)
	lobby.ParticipantsCount--
	if lobby.Status == model.LobbyStatusFull {
		lobby.Status = model.LobbyStatusOpen
	}
	return nil
}

func (r *memLobbyRepo) SetStatus(ctx context.Context, lobbyID string, status model.LobbyStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	lobby, ok := r.lobbies[lobbyID]
	if !ok {
		return database.ErrNotFound
	}
	lobby.Status = status
	return nil
}

func (r *memLobbyRepo) CloseStarted(ctx context.Context, before time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	closed := 0
	for _, lobby := range r.lobbies {
		if lobby.Status != model.LobbyStatusClosed && !lobby.StartTime.After(before) {
			lobby.Status = model.LobbyStatusClosed
			closed++
		}
	}
	return closed, nil
}

func (r *memLobbyRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.lobbies[id]; !ok {
		return database.ErrNotFound
	}
	delete(r.lobbies, id)
	delete(r.participants, id)
	return nil
}

type memCourtRepo struct {
	courts []model.Court
}

func (r *memCourtRepo) GetByID(ctx context.Context, id string) (*model.Court, error) {
	for _, c := range r.courts {
		if c.ID == id {
			out := c
			return &out, nil
		}
	}
	return nil, database.ErrNotFound
}

func (r *memCourtRepo) List(ctx context.Context) ([]model.Court, error) {
	out := make([]model.Court, len(r.courts))
	copy(out, r.courts)
	return out, nil
}

type memEngagementRepo struct {
	mu      sync.Mutex
	signals map[string]*model.EngagementSignals
}

func newMemEngagementRepo() *memEngagementRepo {
	return &memEngagementRepo{signals: make(map[string]*model.EngagementSignals)}
}

func (r *memEngagementRepo) Get(ctx context.Context, userID string) (*model.EngagementSignals, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sig, ok := r.signals[userID]
	if !ok {
		return nil, database.ErrNotFound
	}
	out := *sig
	return &out, nil
}

func (r *memEngagementRepo) Save(ctx context.Context, userID string, signals *model.EngagementSignals) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := *signals
	r.signals[userID] = &out
	return nil
}

// ============================================================================
// Test environment
// ============================================================================

func floatPtr(v float64) *float64 { return &v }

type testEnv struct {
	mux        *http.ServeMux
	lobbyRepo  *memLobbyRepo
	courtRepo  *memCourtRepo
	engagement *memEngagementRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	lobbyRepo := newMemLobbyRepo()
	courtRepo := &memCourtRepo{courts: []model.Court{
		{ID: "court:arena", Name: "Padel Arena", Address: "Береговой проезд 4", MetroStation: "Фили", PricePerHour: floatPtr(2000)},
		{ID: "court:luzhniki", Name: "Padel Luzhniki", Address: "Лужники 24", MetroStation: "Спортивная", PricePerHour: floatPtr(3500)},
	}}
	engagementRepo := newMemEngagementRepo()

	engagementService, err := service.NewEngagementService(service.EngagementServiceConfig{
		Repo: engagementRepo,
	})
	require.NoError(t, err)

	lobbyService := service.NewLobbyService(service.LobbyServiceConfig{
		LobbyRepo:  lobbyRepo,
		CourtRepo:  courtRepo,
		Engagement: engagementService,
	})

	// Serendipity off and a fixed seed keep feed output deterministic
	feedService := service.NewFeedService(service.FeedServiceConfig{
		SerendipityProbability: 0,
		RandomSeed:             1,
	})

	metroService := service.NewMetroService()

	feedHandler := NewFeedHandler(feedService, lobbyService, engagementService, 0)
	lobbyHandler := NewLobbyHandler(lobbyService)
	engagementHandler := NewEngagementHandler(engagementService)
	courtHandler := NewCourtHandler(lobbyService, metroService)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/feed", feedHandler.GetFeed)
	mux.HandleFunc("GET /v1/feed/sections", feedHandler.GetFeedSections)
	mux.HandleFunc("POST /v1/lobbies", lobbyHandler.CreateLobby)
	mux.HandleFunc("GET /v1/lobbies", lobbyHandler.ListLobbies)
	mux.HandleFunc("GET /v1/lobbies/{id}", lobbyHandler.GetLobby)
	mux.HandleFunc("POST /v1/lobbies/{id}/join", lobbyHandler.JoinLobby)
	mux.HandleFunc("POST /v1/lobbies/{id}/leave", lobbyHandler.LeaveLobby)
	mux.HandleFunc("POST /v1/lobbies/{id}/close", lobbyHandler.CloseLobby)
	mux.HandleFunc("DELETE /v1/lobbies/{id}", lobbyHandler.DeleteLobby)
	mux.HandleFunc("GET /v1/engagement/signals", engagementHandler.GetSignals)
	mux.HandleFunc("POST /v1/engagement/views", engagementHandler.RecordView)
	mux.HandleFunc("POST /v1/engagement/favorites", engagementHandler.RecordFavorite)
	mux.HandleFunc("DELETE /v1/engagement/favorites", engagementHandler.RemoveFavorite)
	mux.HandleFunc("POST /v1/engagement/dismissals", engagementHandler.RecordDismiss)
	mux.HandleFunc("GET /v1/courts", courtHandler.ListCourts)
	mux.HandleFunc("GET /v1/metro/lines", courtHandler.GetMetroLines)

	return &testEnv{
		mux:        mux,
		lobbyRepo:  lobbyRepo,
		courtRepo:  courtRepo,
		engagement: engagementRepo,
	}
}

// do issues a request against the test mux, JSON-encoding body when set
func (e *testEnv) do(t *testing.T, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	e.mux.ServeHTTP(rr, req)
	return rr
}

// decodeData unmarshals the "data" field of a response envelope
func decodeData(t *testing.T, rr *httptest.ResponseRecorder, out interface{}) {
	t.Helper()

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

// seedLobby inserts an open lobby directly into the repository
func (e *testEnv) seedLobby(t *testing.T, lobby model.Lobby) model.Lobby {
	t.Helper()

	if lobby.Status == "" {
		lobby.Status = model.LobbyStatusOpen
	}
	if lobby.RequiredPlayers == 0 {
		lobby.RequiredPlayers = 4
	}
	if lobby.ParticipantsCount == 0 {
		lobby.ParticipantsCount = 1
	}
	if lobby.CreatorID == "" {
		lobby.CreatorID = "user:creator"
	}
	if lobby.StartTime.IsZero() {
		lobby.StartTime = time.Now().Add(5 * time.Hour)
	}

	created, err := e.lobbyRepo.Create(context.Background(), &lobby)
	require.NoError(t, err)
	return *created
}
