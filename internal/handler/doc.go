// Package handler provides HTTP request handlers for the PADL API.
//
// The handler package contains all HTTP endpoint implementations organized by
// domain. Each handler struct encapsulates the dependencies needed to serve
// requests for a specific feature area (feed, lobbies, engagement, courts).
//
// # Handler Pattern
//
// All handlers follow a consistent pattern:
//
//   - Constructor function (NewXxxHandler) accepts its service dependencies
//   - Methods handle specific HTTP endpoints
//   - Response helpers from response.go standardize output format
//   - Errors are mapped to RFC 9457 Problem Details responses
//
// # Response Format
//
// Handlers use standardized response functions:
//
//   - WriteData: Single resource with optional HATEOAS links
//   - WriteCollection: List of resources
//   - WriteJSON: Raw JSON response
//   - WriteError: RFC 9457 Problem Details error response
//
// # Caller Identity
//
// There is no authentication layer in this service; callers are identified
// by an explicit user_id query parameter supplied by the fronting gateway.
package handler
