// Package model defines domain entities and data structures for the PADL API.
//
// The model package contains all struct definitions for domain objects, request/response
// types, and error definitions. Models are used across all layers of the application.
//
// # Domain Entities
//
// Core domain entities include:
//
//   - Lobby: An open game invitation at a court with a skill range and start time
//   - Court: A padel venue with a metro station and hourly price
//   - UserPreferences: Per-request scoring input for a user
//   - EngagementSignals: Rolling behavioral summary driving personalization
//   - ScoredLobby: A lobby decorated with its feed score and match reasons
//
// # JSON Serialization
//
// All models use json struct tags for API serialization:
//
//	type Court struct {
//	    ID           string `json:"id"`
//	    Name         string `json:"name"`
//	    MetroStation string `json:"metro_station"`
//	}
//
// # Error Types
//
// RFC 9457 Problem Details errors are defined in errors.go:
//
//	type ProblemDetails struct {
//	    Type    string    `json:"type"`
//	    Title   string    `json:"title"`
//	    Status  int       `json:"status"`
//	    Detail  string    `json:"detail"`
//	}
package model
