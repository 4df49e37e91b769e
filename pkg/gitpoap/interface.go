package gitpoap

import (
	"context"
)

// API defines the interface for the GitPOAP claims API.
// Implementations are safe for concurrent use.
type API interface {
	CreateClaims(ctx context.Context, req ClaimsRequest) (*ClaimsResponse, error)
}

// TokenSource mints the short-lived app-level JWT attached as Bearer token.
// A fresh token is requested per call; no caching happens in this package.
type TokenSource interface {
	GenerateToken() (string, error)
}
