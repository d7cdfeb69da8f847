// Package service implements the business logic layer for the PADL API.
//
// The service package contains the feed-ranking core (signal calculators,
// lobby scorer, feed generator, section partitioner, manual filter) plus the
// lobby lifecycle and engagement accumulation services around it. Services
// are the primary abstraction between HTTP handlers and data access.
//
// # Service Pattern
//
// All services follow a consistent pattern:
//
//   - Constructor function (NewXxxService) accepts a config struct with dependencies
//   - Methods implement business operations with proper validation
//   - Errors are returned as sentinel errors or wrapped errors for context
//   - Context is passed through for cancellation and request-scoped values
//
// The feed core itself is pure: it performs no I/O, holds no shared mutable
// state beyond its seeded random source, and is deterministic for a fixed
// seed and clock.
//
// # Repository Interfaces
//
// Services define their own repository interfaces, allowing:
//
//   - Easy mocking for unit tests
//   - Decoupling from specific database implementations
//   - Clear contracts for data access requirements
//
// # Error Handling
//
// Services return domain-specific errors defined as package-level variables:
//
//	var (
//	    ErrLobbyNotFound = errors.New("lobby not found")
//	    ErrLobbyFull     = errors.New("lobby is full")
//	)
package service
