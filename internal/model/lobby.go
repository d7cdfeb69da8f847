package model

import "time"

// LobbyStatus represents the lifecycle state of a lobby
type LobbyStatus string

const (
	LobbyStatusOpen   LobbyStatus = "open"
	LobbyStatusFull   LobbyStatus = "full"
	LobbyStatusClosed LobbyStatus = "closed"
)

// Lobby is an open invitation to play at a court at a specific time.
// Court fields are denormalized onto the lobby so the feed can score a
// candidate without a second lookup.
type Lobby struct {
	ID        string `json:"id"`
	CreatorID string `json:"creator_id"`
	CourtID   string `json:"court_id"`

	// Denormalized court info
	CourtName    string   `json:"court_name"`
	Metro        string   `json:"metro"`
	Address      string   `json:"address,omitempty"`
	PricePerHour *float64 `json:"price_per_hour,omitempty"`

	StartTime         time.Time   `json:"start_time"`
	MinLevel          float64     `json:"min_level"`
	MaxLevel          float64     `json:"max_level"`
	RequiredPlayers   int         `json:"required_players"`
	ParticipantsCount int         `json:"participants_count"`
	Description       string      `json:"description,omitempty"`
	CreatorRating     *float64    `json:"creator_rating,omitempty"` // 0-5 scale
	Status            LobbyStatus `json:"status"`
	CreatedAt         *time.Time  `json:"created_at,omitempty"`
	UpdatedAt         *time.Time  `json:"updated_at,omitempty"`
}

// IsFull reports whether the lobby has no open spots.
// participants_count > required_players should not happen, but a lobby
// in that state is still treated as full rather than rejected.
func (l *Lobby) IsFull() bool {
	return l.ParticipantsCount >= l.RequiredPlayers
}

// Court represents a padel venue
type Court struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Address      string   `json:"address"`
	MetroStation string   `json:"metro_station"`
	SurfaceType  string   `json:"surface_type,omitempty"`
	PricePerHour *float64 `json:"price_per_hour,omitempty"`
}

// JoinLobbyRequest is the request body for joining a lobby
type JoinLobbyRequest struct {
	UserID     string  `json:"user_id"`
	SkillLevel float64 `json:"skill_level"`
}

// CreateLobbyRequest is the request body for creating a lobby
type CreateLobbyRequest struct {
	CourtID         string    `json:"court_id"`
	StartTime       time.Time `json:"start_time"`
	MinLevel        float64   `json:"min_level"`
	MaxLevel        float64   `json:"max_level"`
	RequiredPlayers int       `json:"required_players"`
	Description     string    `json:"description,omitempty"`
}
