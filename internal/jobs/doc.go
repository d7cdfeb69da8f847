// Package jobs implements background job processing for the PADL API.
//
// The jobs package contains scheduled tasks that run independently of HTTP
// request handling.
//
// # Job Types
//
// Available background jobs:
//
//   - LobbySweeper: Closes lobbies whose start time has passed so stale
//     candidates stop entering the feed
//
// # Lifecycle
//
// Jobs expose Start/Stop for graceful lifecycle management and RunOnce for
// manual triggering and tests:
//
//	sweeper := jobs.NewLobbySweeper(lobbyService, 5*time.Minute)
//	sweeper.Start()
//	defer sweeper.Stop()
//
// # Error Handling
//
// Jobs log errors but don't crash the application.
package jobs
