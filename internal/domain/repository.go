package domain

import (
	"context"
	"errors"
)

// ErrSessionNotFound signals a lookup against an unknown session key.
var ErrSessionNotFound = errors.New("session not found")

// ErrNoResults signals that analysis has not been run for a session.
var ErrNoResults = errors.New("no analysis results found")

// interface for session-scoped report state. Sessions live for the
// process lifetime; expiry is the caller's concern, not the core's.
type SessionRepository interface {
	StoreDataset(ctx context.Context, sessionID string, ds *Dataset) error
	GetDataset(ctx context.Context, sessionID string) (*Dataset, error)
	StoreBulkTable(ctx context.Context, sessionID string, table [][]string) error
	GetBulkTable(ctx context.Context, sessionID string) ([][]string, error)
	StoreResults(ctx context.Context, sessionID string, results []FlaggedTerm) error
	GetResults(ctx context.Context, sessionID string) ([]FlaggedTerm, error)
	Delete(ctx context.Context, sessionID string) error
	Count(ctx context.Context) int
}
