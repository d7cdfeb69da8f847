package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Maksimka7878/PADL/internal/database"
	"github.com/Maksimka7878/PADL/internal/model"
)

// LobbyRepository handles lobby and participant data access
type LobbyRepository struct {
	db database.Database
}

// NewLobbyRepository creates a new lobby repository
func NewLobbyRepository(db database.Database) *LobbyRepository {
	return &LobbyRepository{db: db}
}

// Create creates a new lobby and registers the creator as its first
// participant.
func (r *LobbyRepository) Create(ctx context.Context, lobby *model.Lobby) (*model.Lobby, error) {
	query := `
		CREATE lobby CONTENT {
			creator_id: $creator_id,
			court_id: $court_id,
			court_name: $court_name,
			metro: $metro,
			address: $address,
			price_per_hour: $price_per_hour,
			start_time: <datetime> $start_time,
			min_level: $min_level,
			max_level: $max_level,
			required_players: $required_players,
			participants_count: $participants_count,
			description: $description,
			creator_rating: $creator_rating,
			status: $status,
			created_at: time::now(),
			updated_at: time::now()
		}
	`

	vars := map[string]interface{}{
		"creator_id":         lobby.CreatorID,
		"court_id":           lobby.CourtID,
		"court_name":         lobby.CourtName,
		"metro":              lobby.Metro,
		"address":            lobby.Address,
		"price_per_hour":     lobby.PricePerHour,
		"start_time":         lobby.StartTime.Format(time.RFC3339),
		"min_level":          lobby.MinLevel,
		"max_level":          lobby.MaxLevel,
		"required_players":   lobby.RequiredPlayers,
		"participants_count": lobby.ParticipantsCount,
		"description":        lobby.Description,
		"creator_rating":     lobby.CreatorRating,
		"status":             string(lobby.Status),
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return nil, err
	}

	// Register the creator's membership
	memberQuery := `
		CREATE participant CONTENT {
			lobby: type::record($lobby_id),
			user_id: $user_id,
			joined_at: time::now()
		}
	`
	memberVars := map[string]interface{}{
		"lobby_id": created.ID,
		"user_id":  lobby.CreatorID,
	}
	if err := r.db.Execute(ctx, memberQuery, memberVars); err != nil {
		return nil, fmt.Errorf("register creator: %w", err)
	}

	out := *lobby
	out.ID = created.ID
	out.CreatedAt = &created.CreatedAt
	out.UpdatedAt = &created.UpdatedAt
	return &out, nil
}

// GetByID retrieves a lobby by ID
func (r *LobbyRepository) GetByID(ctx context.Context, id string) (*model.Lobby, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	return parseLobby(result)
}

// ListOpen returns open lobbies, newest first
func (r *LobbyRepository) ListOpen(ctx context.Context, limit int) ([]model.Lobby, error) {
	query := `
		SELECT * FROM lobby
		WHERE status = $status
		ORDER BY created_at DESC
		LIMIT $limit
	`
	vars := map[string]interface{}{
		"status": string(model.LobbyStatusOpen),
		"limit":  limit,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	return parseLobbies(result), nil
}

// IsParticipant reports whether the user has joined the lobby
func (r *LobbyRepository) IsParticipant(ctx context.Context, lobbyID, userID string) (bool, error) {
	query := `
		SELECT count() as count FROM participant
		WHERE lobby = type::record($lobby_id)
		AND user_id = $user_id
		GROUP ALL
	`
	vars := map[string]interface{}{
		"lobby_id": lobbyID,
		"user_id":  userID,
	}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	if data, ok := result.(map[string]interface{}); ok {
		return extractCountValue(data["count"]) > 0, nil
	}
	return false, nil
}

// AddParticipant atomically inserts a membership row and bumps the
// lobby's participant count, marking it full when the last spot goes.
func (r *LobbyRepository) AddParticipant(ctx context.Context, lobbyID, userID string, nowFull bool) error {
	update := `UPDATE type::record($lobby_id) SET participants_count += 1, updated_at = time::now()`
	if nowFull {
		update += `, status = "full"`
	}

	batch := database.NewAtomicBatch()
	batch.Add(`
		CREATE participant CONTENT {
			lobby: type::record($lobby_id),
			user_id: $user_id,
			joined_at: time::now()
		}
	`, map[string]interface{}{
		"lobby_id": lobbyID,
		"user_id":  userID,
	})
	batch.Add(update, map[string]interface{}{"lobby_id": lobbyID})

	if err := batch.Execute(ctx, r.db); err != nil {
		if isUniqueConstraintError(err) {
			return database.ErrDuplicate
		}
		return err
	}
	return nil
}

// RemoveParticipant atomically removes a membership row and decrements
// the lobby's participant count. A full lobby reopens.
func (r *LobbyRepository) RemoveParticipant(ctx context.Context, lobbyID, userID string) error {
	batch := database.NewAtomicBatch()
	batch.Add(`
		DELETE participant
		WHERE lobby = type::record($lobby_id)
		AND user_id = $user_id
	`, map[string]interface{}{
		"lobby_id": lobbyID,
		"user_id":  userID,
	})
	batch.Add(`
		UPDATE type::record($lobby_id)
		SET participants_count -= 1, updated_at = time::now()
	`, map[string]interface{}{"lobby_id": lobbyID})
	batch.Add(`
		UPDATE type::record($lobby_id)
		SET status = $open
		WHERE status = $full
	`, map[string]interface{}{
		"lobby_id": lobbyID,
		"open":     string(model.LobbyStatusOpen),
		"full":     string(model.LobbyStatusFull),
	})

	return batch.Execute(ctx, r.db)
}

// SetStatus updates a lobby's status
func (r *LobbyRepository) SetStatus(ctx context.Context, lobbyID string, status model.LobbyStatus) error {
	query := `UPDATE type::record($id) SET status = $status, updated_at = time::now()`
	vars := map[string]interface{}{
		"id":     lobbyID,
		"status": string(status),
	}
	return r.db.Execute(ctx, query, vars)
}

// CloseStarted closes every lobby whose start time has passed and
// returns how many were affected.
func (r *LobbyRepository) CloseStarted(ctx context.Context, before time.Time) (int, error) {
	query := `
		UPDATE lobby
		SET status = $closed, updated_at = time::now()
		WHERE status != $closed
		AND start_time < <datetime> $before
		RETURN AFTER
	`
	vars := map[string]interface{}{
		"closed": string(model.LobbyStatusClosed),
		"before": before.Format(time.RFC3339),
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, res := range result {
		if resp, ok := res.(map[string]interface{}); ok {
			if resultData, ok := resp["result"].([]interface{}); ok {
				count += len(resultData)
			}
		}
	}
	return count, nil
}

// Delete removes a lobby and its participant rows
func (r *LobbyRepository) Delete(ctx context.Context, id string) error {
	batch := database.NewAtomicBatch()
	batch.Add(`DELETE participant WHERE lobby = type::record($id)`, map[string]interface{}{"id": id})
	batch.Add(`DELETE type::record($id)`, map[string]interface{}{"id": id})
	return batch.Execute(ctx, r.db)
}

// Helper functions

func parseLobby(result interface{}) (*model.Lobby, error) {
	if result == nil {
		return nil, database.ErrNotFound
	}

	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}

	lobby := &model.Lobby{
		ID:                convertSurrealID(data["id"]),
		CreatorID:         getString(data, "creator_id"),
		CourtID:           getString(data, "court_id"),
		CourtName:         getString(data, "court_name"),
		Metro:             getString(data, "metro"),
		Address:           getString(data, "address"),
		PricePerHour:      getFloatPtr(data, "price_per_hour"),
		MinLevel:          getFloat(data, "min_level"),
		MaxLevel:          getFloat(data, "max_level"),
		RequiredPlayers:   getInt(data, "required_players"),
		ParticipantsCount: getInt(data, "participants_count"),
		Description:       getString(data, "description"),
		CreatorRating:     getFloatPtr(data, "creator_rating"),
		Status:            model.LobbyStatus(getString(data, "status")),
	}

	if t := getTime(data, "start_time"); t != nil {
		lobby.StartTime = *t
	}
	lobby.CreatedAt = getTime(data, "created_at")
	lobby.UpdatedAt = getTime(data, "updated_at")

	return lobby, nil
}

func parseLobbies(result []interface{}) []model.Lobby {
	lobbies := make([]model.Lobby, 0)

	for _, res := range result {
		if resp, ok := res.(map[string]interface{}); ok {
			if resultData, ok := resp["result"].([]interface{}); ok {
				for _, item := range resultData {
					lobby, err := parseLobby(item)
					if err != nil {
						continue
					}
					lobbies = append(lobbies, *lobby)
				}
				continue
			}
		}

		lobby, err := parseLobby(res)
		if err != nil {
			continue
		}
		lobbies = append(lobbies, *lobby)
	}

	return lobbies
}
