package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maksimka7878/PADL/internal/model"
)

func TestGetSignals_ColdStart_ReturnsEmptyRecord(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rr := env.do(t, http.MethodGet, "/v1/engagement/signals?user_id=user:new", nil)

	require.Equal(t, http.StatusOK, rr.Code)

	var signals model.EngagementSignals
	decodeData(t, rr, &signals)
	assert.Zero(t, signals.TotalJoins)
	assert.Empty(t, signals.ViewedCourts)
}

func TestGetSignals_MissingUserID_ReturnsBadRequest(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rr := env.do(t, http.MethodGet, "/v1/engagement/signals", nil)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRecordView_AppearsInSignals(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rr := env.do(t, http.MethodPost, "/v1/engagement/views", model.EngagementEventRequest{
		UserID:    "user:alice",
		CourtName: "Padel Arena",
	})
	require.Equal(t, http.StatusNoContent, rr.Code)

	get := env.do(t, http.MethodGet, "/v1/engagement/signals?user_id=user:alice", nil)
	require.Equal(t, http.StatusOK, get.Code)

	var signals model.EngagementSignals
	decodeData(t, get, &signals)
	assert.Equal(t, []string{"Padel Arena"}, signals.ViewedCourts)
}

func TestRecordView_MissingCourtName_ReturnsBadRequest(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rr := env.do(t, http.MethodPost, "/v1/engagement/views", model.EngagementEventRequest{
		UserID: "user:alice",
	})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRecordFavorite_ThenRemove(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	fav := env.do(t, http.MethodPost, "/v1/engagement/favorites", model.EngagementEventRequest{
		UserID:    "user:alice",
		CourtName: "Padel Arena",
	})
	require.Equal(t, http.StatusNoContent, fav.Code)

	get := env.do(t, http.MethodGet, "/v1/engagement/signals?user_id=user:alice", nil)
	var signals model.EngagementSignals
	decodeData(t, get, &signals)
	require.Equal(t, []string{"Padel Arena"}, signals.FavoriteCourts)

	del := env.do(t, http.MethodDelete, "/v1/engagement/favorites?user_id=user:alice&court_name=Padel+Arena", nil)
	require.Equal(t, http.StatusNoContent, del.Code)

	get = env.do(t, http.MethodGet, "/v1/engagement/signals?user_id=user:alice", nil)
	decodeData(t, get, &signals)
	assert.Empty(t, signals.FavoriteCourts)
}

func TestJoinLobby_RecordsEngagement(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	seeded := env.seedLobby(t, model.Lobby{CourtName: "Padel Arena", Metro: "Фили", MinLevel: 2, MaxLevel: 5})

	join := env.do(t, http.MethodPost, "/v1/lobbies/"+seeded.ID+"/join", model.JoinLobbyRequest{
		UserID:     "user:bob",
		SkillLevel: 3.5,
	})
	require.Equal(t, http.StatusOK, join.Code)

	get := env.do(t, http.MethodGet, "/v1/engagement/signals?user_id=user:bob", nil)
	require.Equal(t, http.StatusOK, get.Code)

	var signals model.EngagementSignals
	decodeData(t, get, &signals)
	assert.Equal(t, 1, signals.TotalJoins)
	assert.Contains(t, signals.JoinedCourts, "Padel Arena")
	assert.Contains(t, signals.PlayedMetros, "Фили")
}
