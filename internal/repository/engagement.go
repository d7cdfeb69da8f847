package repository

import (
	"context"
	"errors"

	"github.com/Maksimka7878/PADL/internal/database"
	"github.com/Maksimka7878/PADL/internal/model"
)

// EngagementRepository persists per-user engagement signals, one
// record per user.
type EngagementRepository struct {
	db database.Database
}

// NewEngagementRepository creates a new engagement repository
func NewEngagementRepository(db database.Database) *EngagementRepository {
	return &EngagementRepository{db: db}
}

// Get retrieves the engagement signals for a user
func (r *EngagementRepository) Get(ctx context.Context, userID string) (*model.EngagementSignals, error) {
	query := `SELECT * FROM type::thing("engagement_signals", $user_id)`
	vars := map[string]interface{}{"user_id": userID}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	return parseSignals(result)
}

// Save writes the full signal record for a user, creating it on first
// write.
func (r *EngagementRepository) Save(ctx context.Context, userID string, signals *model.EngagementSignals) error {
	query := `
		UPSERT type::thing("engagement_signals", $user_id) CONTENT {
			user_id: $user_id,
			joined_courts: $joined_courts,
			viewed_courts: $viewed_courts,
			favorite_courts: $favorite_courts,
			played_levels: $played_levels,
			played_metros: $played_metros,
			join_time_patterns: $join_time_patterns,
			dismissed_courts: $dismissed_courts,
			total_joins: $total_joins,
			updated_at: time::now()
		}
	`
	vars := map[string]interface{}{
		"user_id":            userID,
		"joined_courts":      signals.JoinedCourts,
		"viewed_courts":      signals.ViewedCourts,
		"favorite_courts":    signals.FavoriteCourts,
		"played_levels":      signals.PlayedLevels,
		"played_metros":      signals.PlayedMetros,
		"join_time_patterns": signals.JoinTimes,
		"dismissed_courts":   signals.DismissedCourts,
		"total_joins":        signals.TotalJoins,
	}

	return r.db.Execute(ctx, query, vars)
}

func parseSignals(result interface{}) (*model.EngagementSignals, error) {
	if result == nil {
		return nil, database.ErrNotFound
	}

	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}

	return &model.EngagementSignals{
		JoinedCourts:    getStringSlice(data, "joined_courts"),
		ViewedCourts:    getStringSlice(data, "viewed_courts"),
		FavoriteCourts:  getStringSlice(data, "favorite_courts"),
		PlayedLevels:    getFloatSlice(data, "played_levels"),
		PlayedMetros:    getStringSlice(data, "played_metros"),
		JoinTimes:       getStringSlice(data, "join_time_patterns"),
		DismissedCourts: getStringSlice(data, "dismissed_courts"),
		TotalJoins:      getInt(data, "total_joins"),
	}, nil
}
