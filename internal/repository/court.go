package repository

import (
	"context"
	"errors"

	"github.com/Maksimka7878/PADL/internal/database"
	"github.com/Maksimka7878/PADL/internal/model"
)

// CourtRepository handles court catalog data access
type CourtRepository struct {
	db database.Database
}

// NewCourtRepository creates a new court repository
func NewCourtRepository(db database.Database) *CourtRepository {
	return &CourtRepository{db: db}
}

// GetByID retrieves a court by ID
func (r *CourtRepository) GetByID(ctx context.Context, id string) (*model.Court, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	return parseCourt(result)
}

// List returns the full court catalog sorted by name
func (r *CourtRepository) List(ctx context.Context) ([]model.Court, error) {
	query := `SELECT * FROM court ORDER BY name ASC`

	result, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	courts := make([]model.Court, 0)
	for _, res := range result {
		if resp, ok := res.(map[string]interface{}); ok {
			if resultData, ok := resp["result"].([]interface{}); ok {
				for _, item := range resultData {
					court, err := parseCourt(item)
					if err != nil {
						continue
					}
					courts = append(courts, *court)
				}
				continue
			}
		}

		court, err := parseCourt(res)
		if err != nil {
			continue
		}
		courts = append(courts, *court)
	}

	return courts, nil
}

func parseCourt(result interface{}) (*model.Court, error) {
	if result == nil {
		return nil, database.ErrNotFound
	}

	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}

	return &model.Court{
		ID:           convertSurrealID(data["id"]),
		Name:         getString(data, "name"),
		Address:      getString(data, "address"),
		MetroStation: getString(data, "metro_station"),
		SurfaceType:  getString(data, "surface_type"),
		PricePerHour: getFloatPtr(data, "price_per_hour"),
	}, nil
}
