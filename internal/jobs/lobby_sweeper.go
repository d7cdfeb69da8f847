package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Maksimka7878/PADL/internal/service"
)

// LobbySweeper periodically closes lobbies whose start time has passed
type LobbySweeper struct {
	lobbyService *service.LobbyService
	interval     time.Duration
	stopCh       chan struct{}
	wg           sync.WaitGroup
	running      bool
	mu           sync.Mutex
}

// NewLobbySweeper creates a new lobby sweeper job
func NewLobbySweeper(lobbyService *service.LobbyService, interval time.Duration) *LobbySweeper {
	if interval == 0 {
		interval = 5 * time.Minute // Default sweep every 5 minutes
	}
	return &LobbySweeper{
		lobbyService: lobbyService,
		interval:     interval,
		stopCh:       make(chan struct{}),
	}
}

// Start begins the lobby sweeper job
func (s *LobbySweeper) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	s.wg.Add(1)
	go s.run()
	slog.Info("lobby sweeper started", slog.Duration("interval", s.interval))
}

// Stop gracefully stops the lobby sweeper job
func (s *LobbySweeper) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	close(s.stopCh)
	s.wg.Wait()
	slog.Info("lobby sweeper stopped")
}

// run is the main loop
func (s *LobbySweeper) run() {
	defer s.wg.Done()

	// Run shortly after start to let the database connection settle
	select {
	case <-time.After(5 * time.Second):
		s.sweep()
	case <-s.stopCh:
		return
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopCh:
			return
		}
	}
}

// sweep closes all lobbies that have already started
func (s *LobbySweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
	defer cancel()

	closed, err := s.lobbyService.CloseExpired(ctx)
	if err != nil {
		slog.Error("lobby sweep failed", slog.String("error", err.Error()))
		return
	}
	if closed > 0 {
		slog.Info("closed expired lobbies", slog.Int("count", closed))
	}
}

// RunOnce runs the sweep once (for testing or manual trigger)
func (s *LobbySweeper) RunOnce(ctx context.Context) (int, error) {
	return s.lobbyService.CloseExpired(ctx)
}

// IsRunning returns whether the sweeper is running
func (s *LobbySweeper) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
