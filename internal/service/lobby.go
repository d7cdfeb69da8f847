package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Maksimka7878/PADL/internal/database"
	"github.com/Maksimka7878/PADL/internal/model"
)

// Skill levels follow the common padel rating scale
const (
	minSkillLevel = 1.0
	maxSkillLevel = 7.0

	minRequiredPlayers = 2
	maxRequiredPlayers = 8
)

// LobbyRepository persists lobbies and their participant lists
type LobbyRepository interface {
	Create(ctx context.Context, lobby *model.Lobby) (*model.Lobby, error)
	GetByID(ctx context.Context, id string) (*model.Lobby, error)
	ListOpen(ctx context.Context, limit int) ([]model.Lobby, error)
	IsParticipant(ctx context.Context, lobbyID, userID string) (bool, error)
	AddParticipant(ctx context.Context, lobbyID, userID string, nowFull bool) error
	RemoveParticipant(ctx context.Context, lobbyID, userID string) error
	SetStatus(ctx context.Context, lobbyID string, status model.LobbyStatus) error
	CloseStarted(ctx context.Context, before time.Time) (int, error)
	Delete(ctx context.Context, id string) error
}

// CourtRepository reads the court catalog
type CourtRepository interface {
	GetByID(ctx context.Context, id string) (*model.Court, error)
	List(ctx context.Context) ([]model.Court, error)
}

// LobbyServiceConfig holds lobby service dependencies
type LobbyServiceConfig struct {
	LobbyRepo  LobbyRepository
	CourtRepo  CourtRepository
	Engagement *EngagementService
	Now        func() time.Time // defaults to time.Now
}

// LobbyService manages the lobby lifecycle: creation, joining,
// leaving, and closing. It is the candidate source for the feed and
// feeds successful joins into the engagement signals.
type LobbyService struct {
	lobbyRepo  LobbyRepository
	courtRepo  CourtRepository
	engagement *EngagementService
	now        func() time.Time
}

// NewLobbyService creates a new lobby service
func NewLobbyService(cfg LobbyServiceConfig) *LobbyService {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &LobbyService{
		lobbyRepo:  cfg.LobbyRepo,
		courtRepo:  cfg.CourtRepo,
		engagement: cfg.Engagement,
		now:        now,
	}
}

// Create validates and stores a new lobby. The creator counts as the
// first participant.
func (s *LobbyService) Create(ctx context.Context, creatorID string, req model.CreateLobbyRequest) (*model.Lobby, error) {
	if creatorID == "" {
		return nil, ErrUserIDRequired
	}
	if req.CourtID == "" {
		return nil, ErrCourtRequired
	}
	if req.MinLevel > req.MaxLevel || req.MinLevel < minSkillLevel || req.MaxLevel > maxSkillLevel {
		return nil, ErrInvalidLevelRange
	}
	if req.RequiredPlayers < minRequiredPlayers || req.RequiredPlayers > maxRequiredPlayers {
		return nil, ErrInvalidPlayerCount
	}
	if !req.StartTime.After(s.now()) {
		return nil, ErrStartTimeInPast
	}

	court, err := s.courtRepo.GetByID(ctx, req.CourtID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrCourtNotFound
		}
		return nil, fmt.Errorf("get court: %w", err)
	}

	lobby := &model.Lobby{
		CreatorID:         creatorID,
		CourtID:           court.ID,
		CourtName:         court.Name,
		Metro:             court.MetroStation,
		Address:           court.Address,
		PricePerHour:      court.PricePerHour,
		StartTime:         req.StartTime,
		MinLevel:          req.MinLevel,
		MaxLevel:          req.MaxLevel,
		RequiredPlayers:   req.RequiredPlayers,
		ParticipantsCount: 1,
		Description:       req.Description,
		Status:            model.LobbyStatusOpen,
	}

	created, err := s.lobbyRepo.Create(ctx, lobby)
	if err != nil {
		return nil, fmt.Errorf("create lobby: %w", err)
	}

	s.recordJoin(ctx, creatorID, *created)

	return created, nil
}

// Get returns a lobby by ID
func (s *LobbyService) Get(ctx context.Context, id string) (*model.Lobby, error) {
	lobby, err := s.lobbyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrLobbyNotFound
		}
		return nil, fmt.Errorf("get lobby: %w", err)
	}
	return lobby, nil
}

// ListOpen returns open lobbies for feed generation, newest first
func (s *LobbyService) ListOpen(ctx context.Context, limit int) ([]model.Lobby, error) {
	lobbies, err := s.lobbyRepo.ListOpen(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list open lobbies: %w", err)
	}
	return lobbies, nil
}

// Join adds a user to a lobby after capacity, level-range, and
// duplicate checks, then records the join in the engagement signals.
func (s *LobbyService) Join(ctx context.Context, lobbyID, userID string, userLevel float64) (*model.Lobby, error) {
	if userID == "" {
		return nil, ErrUserIDRequired
	}

	lobby, err := s.Get(ctx, lobbyID)
	if err != nil {
		return nil, err
	}

	if lobby.Status == model.LobbyStatusClosed {
		return nil, ErrLobbyClosed
	}
	if lobby.IsFull() {
		return nil, ErrLobbyFull
	}
	if userLevel < lobby.MinLevel || userLevel > lobby.MaxLevel {
		return nil, ErrLevelOutOfRange
	}

	joined, err := s.lobbyRepo.IsParticipant(ctx, lobbyID, userID)
	if err != nil {
		return nil, fmt.Errorf("check participant: %w", err)
	}
	if joined {
		return nil, ErrAlreadyJoined
	}

	nowFull := lobby.ParticipantsCount+1 >= lobby.RequiredPlayers
	if err := s.lobbyRepo.AddParticipant(ctx, lobbyID, userID, nowFull); err != nil {
		return nil, fmt.Errorf("add participant: %w", err)
	}

	s.recordJoin(ctx, userID, *lobby)

	return s.Get(ctx, lobbyID)
}

// Leave removes a user from a lobby and reopens it if it was full
func (s *LobbyService) Leave(ctx context.Context, lobbyID, userID string) error {
	if userID == "" {
		return ErrUserIDRequired
	}

	lobby, err := s.Get(ctx, lobbyID)
	if err != nil {
		return err
	}
	if lobby.Status == model.LobbyStatusClosed {
		return ErrLobbyClosed
	}

	joined, err := s.lobbyRepo.IsParticipant(ctx, lobbyID, userID)
	if err != nil {
		return fmt.Errorf("check participant: %w", err)
	}
	if !joined {
		return ErrNotParticipant
	}

	if err := s.lobbyRepo.RemoveParticipant(ctx, lobbyID, userID); err != nil {
		return fmt.Errorf("remove participant: %w", err)
	}
	return nil
}

// Close marks a lobby closed. Only the creator may close it.
func (s *LobbyService) Close(ctx context.Context, lobbyID, userID string) error {
	lobby, err := s.Get(ctx, lobbyID)
	if err != nil {
		return err
	}
	if lobby.CreatorID != userID {
		return ErrNotLobbyCreator
	}

	if err := s.lobbyRepo.SetStatus(ctx, lobbyID, model.LobbyStatusClosed); err != nil {
		return fmt.Errorf("close lobby: %w", err)
	}
	return nil
}

// Delete removes a lobby and its participant list. Only the creator
// may delete it.
func (s *LobbyService) Delete(ctx context.Context, lobbyID, userID string) error {
	lobby, err := s.Get(ctx, lobbyID)
	if err != nil {
		return err
	}
	if lobby.CreatorID != userID {
		return ErrNotLobbyCreator
	}

	if err := s.lobbyRepo.Delete(ctx, lobbyID); err != nil {
		return fmt.Errorf("delete lobby: %w", err)
	}
	return nil
}

// CloseExpired closes lobbies whose start time has passed and returns
// how many were closed. Called periodically by the lobby sweeper.
func (s *LobbyService) CloseExpired(ctx context.Context) (int, error) {
	n, err := s.lobbyRepo.CloseStarted(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("close expired lobbies: %w", err)
	}
	return n, nil
}

// Courts returns the court catalog
func (s *LobbyService) Courts(ctx context.Context) ([]model.Court, error) {
	courts, err := s.courtRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list courts: %w", err)
	}
	return courts, nil
}

// recordJoin is best-effort: a failed signal write must not fail the
// join itself.
func (s *LobbyService) recordJoin(ctx context.Context, userID string, lobby model.Lobby) {
	if s.engagement == nil {
		return
	}
	if err := s.engagement.RecordJoin(ctx, userID, lobby); err != nil {
		slog.Warn("failed to record join signals",
			slog.String("user_id", userID),
			slog.String("lobby_id", lobby.ID),
			slog.String("error", err.Error()),
		)
	}
}
