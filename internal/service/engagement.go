package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Maksimka7878/PADL/internal/database"
	"github.com/Maksimka7878/PADL/internal/model"
	lru "github.com/hashicorp/golang-lru/v2"
)

// History bounds keep per-user signal records from growing without
// limit. Membership matters for the set-like fields; PlayedLevels and
// JoinTimes keep a recency-bounded history because their averages and
// ratios feed the engagement score.
const (
	maxViewedCourts = 50
	maxPlayedLevels = 20
	maxJoinTimes    = 50

	defaultSignalCacheSize = 1024
)

// EngagementRepository persists per-user behavioral signals
type EngagementRepository interface {
	Get(ctx context.Context, userID string) (*model.EngagementSignals, error)
	Save(ctx context.Context, userID string, signals *model.EngagementSignals) error
}

// EngagementServiceConfig holds engagement service dependencies
type EngagementServiceConfig struct {
	Repo      EngagementRepository
	CacheSize int // defaults to 1024
}

// EngagementService accumulates behavioral signals from view, join,
// favorite, and dismiss events. Hot signals are held in an LRU cache so
// feed requests do not hit the store on every scroll.
type EngagementService struct {
	repo  EngagementRepository
	cache *lru.Cache[string, *model.EngagementSignals]

	// Serializes read-modify-write cycles within this process.
	mu sync.Mutex
}

// NewEngagementService creates a new engagement service
func NewEngagementService(cfg EngagementServiceConfig) (*EngagementService, error) {
	size := cfg.CacheSize
	if size <= 0 {
		size = defaultSignalCacheSize
	}

	cache, err := lru.New[string, *model.EngagementSignals](size)
	if err != nil {
		return nil, fmt.Errorf("create signal cache: %w", err)
	}

	return &EngagementService{
		repo:  cfg.Repo,
		cache: cache,
	}, nil
}

// Signals returns the user's current engagement signals. A user with
// no recorded history gets a fresh zero-value record (cold start), not
// an error.
func (s *EngagementService) Signals(ctx context.Context, userID string) (*model.EngagementSignals, error) {
	if userID == "" {
		return nil, ErrUserIDRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx, userID)
}

// RecordView notes that the user viewed a lobby at the given court
func (s *EngagementService) RecordView(ctx context.Context, userID, courtName string) error {
	return s.update(ctx, userID, courtName, func(sig *model.EngagementSignals) {
		sig.ViewedCourts = appendBounded(sig.ViewedCourts, courtName, maxViewedCourts)
	})
}

// RecordJoin folds a successful lobby join into the user's signals:
// the court and metro sets, the level and time-of-day histories, and
// the lifetime join count.
func (s *EngagementService) RecordJoin(ctx context.Context, userID string, lobby model.Lobby) error {
	return s.update(ctx, userID, lobby.CourtName, func(sig *model.EngagementSignals) {
		sig.JoinedCourts = addToSet(sig.JoinedCourts, lobby.CourtName)
		if lobby.Metro != "" {
			sig.PlayedMetros = addToSet(sig.PlayedMetros, lobby.Metro)
		}
		level := (lobby.MinLevel + lobby.MaxLevel) / 2
		sig.PlayedLevels = append(sig.PlayedLevels, level)
		if len(sig.PlayedLevels) > maxPlayedLevels {
			sig.PlayedLevels = sig.PlayedLevels[len(sig.PlayedLevels)-maxPlayedLevels:]
		}
		// Plain bounded append: duplicates matter here because the
		// engagement score uses the bucket ratio, not membership.
		sig.JoinTimes = append(sig.JoinTimes, timeOfDayBucket(lobby.StartTime.Hour()))
		if len(sig.JoinTimes) > maxJoinTimes {
			sig.JoinTimes = sig.JoinTimes[len(sig.JoinTimes)-maxJoinTimes:]
		}
		sig.TotalJoins++
	})
}

// RecordFavorite adds a court to the user's favorites
func (s *EngagementService) RecordFavorite(ctx context.Context, userID, courtName string) error {
	return s.update(ctx, userID, courtName, func(sig *model.EngagementSignals) {
		sig.FavoriteCourts = addToSet(sig.FavoriteCourts, courtName)
	})
}

// RecordUnfavorite removes a court from the user's favorites
func (s *EngagementService) RecordUnfavorite(ctx context.Context, userID, courtName string) error {
	return s.update(ctx, userID, courtName, func(sig *model.EngagementSignals) {
		sig.FavoriteCourts = removeFromSet(sig.FavoriteCourts, courtName)
	})
}

// RecordDismiss notes that the user dismissed a lobby at the given
// court; scoring penalizes that court going forward.
func (s *EngagementService) RecordDismiss(ctx context.Context, userID, courtName string) error {
	return s.update(ctx, userID, courtName, func(sig *model.EngagementSignals) {
		sig.DismissedCourts = addToSet(sig.DismissedCourts, courtName)
	})
}

func (s *EngagementService) update(ctx context.Context, userID, courtName string, apply func(*model.EngagementSignals)) error {
	if userID == "" {
		return ErrUserIDRequired
	}
	if courtName == "" {
		return ErrCourtNameRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sig, err := s.load(ctx, userID)
	if err != nil {
		return err
	}

	apply(sig)

	if err := s.repo.Save(ctx, userID, sig); err != nil {
		return fmt.Errorf("save engagement signals: %w", err)
	}
	s.cache.Add(userID, sig)
	return nil
}

func (s *EngagementService) load(ctx context.Context, userID string) (*model.EngagementSignals, error) {
	if sig, ok := s.cache.Get(userID); ok {
		return sig, nil
	}

	sig, err := s.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			sig = &model.EngagementSignals{}
			s.cache.Add(userID, sig)
			return sig, nil
		}
		return nil, fmt.Errorf("load engagement signals: %w", err)
	}

	s.cache.Add(userID, sig)
	return sig, nil
}

// appendBounded appends v and trims the slice to its most recent limit
// entries. An existing occurrence is moved to the end so the history
// reflects recency.
func appendBounded(list []string, v string, limit int) []string {
	list = removeFromSet(list, v)
	list = append(list, v)
	if len(list) > limit {
		list = list[len(list)-limit:]
	}
	return list
}

func addToSet(list []string, v string) []string {
	if containsString(list, v) {
		return list
	}
	return append(list, v)
}

func removeFromSet(list []string, v string) []string {
	for i, item := range list {
		if item == v {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
