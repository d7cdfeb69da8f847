// Package middleware provides HTTP middleware for the PADL API.
//
// The middleware package contains reusable middleware components for request
// identification, logging, panic recovery, CORS, compression, rate limiting,
// and metrics collection.
//
// # Available Middleware
//
// Core middleware components:
//
//   - RequestID: Attaches a unique request identifier
//   - Logger: Structured request logging via slog
//   - Recovery: Panic recovery with a 500 Problem Details response
//   - CORS: Cross-origin request handling
//   - Compress: gzip response compression
//   - RateLimit: Per-client request rate limiting
//   - Metrics: Prometheus request counters and latency histograms
//
// # Composition
//
// Middleware is composed with Chain, applied in declaration order:
//
//	wrapped := middleware.Chain(mux,
//	    middleware.RequestID,
//	    middleware.Logger,
//	    middleware.Recovery,
//	)
//
// # Context Values
//
// Middleware sets context values accessible via helper functions:
//
//   - GetRequestID(ctx): Returns unique request identifier
package middleware
