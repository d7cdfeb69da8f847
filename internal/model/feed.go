package model

import "time"

// RecommendationType categorizes why a lobby is being surfaced,
// driving badge rendering in the client.
type RecommendationType string

const (
	RecommendationPersonalized RecommendationType = "personalized"
	RecommendationPopular      RecommendationType = "popular"
	RecommendationSerendipity  RecommendationType = "serendipity"
	RecommendationFriends      RecommendationType = "friends"
	RecommendationNew          RecommendationType = "new"
)

// TimeOfDay buckets for start-hour preferences
const (
	TimeOfDayMorning   = "morning"   // [6, 12)
	TimeOfDayAfternoon = "afternoon" // [12, 17)
	TimeOfDayEvening   = "evening"   // [17, 21)
	TimeOfDayNight     = "night"     // everything else
)

// UserPreferences is the per-request scoring input for a user.
// FriendIDs is accepted but not yet used by scoring.
type UserPreferences struct {
	SkillLevel     float64  `json:"skill_level"`
	PreferredMetro []string `json:"preferred_metro,omitempty"`
	PreferredTimes []string `json:"preferred_times,omitempty"`
	MaxPrice       *float64 `json:"max_price,omitempty"` // per participant
	FriendIDs      []string `json:"friend_ids,omitempty"`
}

// EngagementSignals is a rolling behavioral summary accumulated from a
// user's past interactions. Set-like fields care about membership only;
// PlayedLevels and JoinTimePatterns are recency-bounded histories whose
// averages and ratios feed the engagement score.
type EngagementSignals struct {
	JoinedCourts    []string  `json:"joined_courts,omitempty"`
	ViewedCourts    []string  `json:"viewed_courts,omitempty"` // last 50
	FavoriteCourts  []string  `json:"favorite_courts,omitempty"`
	PlayedLevels    []float64 `json:"played_levels,omitempty"` // last 20
	PlayedMetros    []string  `json:"played_metros,omitempty"`
	JoinTimes       []string  `json:"join_time_patterns,omitempty"` // last 50, time-of-day labels
	DismissedCourts []string  `json:"dismissed_courts,omitempty"`
	TotalJoins      int       `json:"total_joins"`
}

// ScoredLobby decorates a lobby with its feed score, the human-readable
// reasons it matched, and a recommendation tag. Created fresh on every
// scoring pass, never persisted.
type ScoredLobby struct {
	Lobby
	Score              int                `json:"score"` // 0-100
	MatchReasons       []string           `json:"match_reasons"`
	RecommendationType RecommendationType `json:"recommendation_type"`
}

// FeedFilters is a user-controlled predicate over scored lobbies.
// Every field is optional; an absent field imposes no constraint.
type FeedFilters struct {
	MinLevel *float64   `json:"min_level,omitempty"`
	MaxLevel *float64   `json:"max_level,omitempty"`
	Metro    []string   `json:"metro,omitempty"`
	DateFrom *time.Time `json:"date_from,omitempty"`
	DateTo   *time.Time `json:"date_to,omitempty"`
	MaxPrice *float64   `json:"max_price,omitempty"` // per participant
	HasSpots bool       `json:"has_spots,omitempty"`
}

// EngagementEventRequest is the body for engagement event endpoints
type EngagementEventRequest struct {
	UserID    string `json:"user_id"`
	CourtName string `json:"court_name"`
}

// FeedSections splits a scored feed into named display buckets.
// Buckets are independent projections and may overlap.
type FeedSections struct {
	Recommended  []ScoredLobby `json:"recommended"`
	StartingSoon []ScoredLobby `json:"starting_soon"`
	NearYou      []ScoredLobby `json:"near_you"`
	Popular      []ScoredLobby `json:"popular"`
	NewLobbies   []ScoredLobby `json:"new_lobbies"`
	Serendipity  []ScoredLobby `json:"serendipity"`
}
