// Package adapter provides the transport boundary towards the remote
// school portal that homework and grade records are synced from.
//
// The primary abstraction is [RemoteSource], which decouples the sync
// orchestrator from the portal protocol. The package ships an HTTP/REST
// implementation ([NewHTTPRemoteSource]) that authenticates with the
// student's portal credentials and fetches the agenda and grade lists.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-school-agenda/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/remote_source_mock.go -package=mock

// Credentials are the per-user portal credentials a [RemoteSource] is
// built from.
type Credentials struct {
	Username string
	Password string
}

// RemoteSource defines transport-agnostic access to the remote portal.
// Implementations are responsible for session management, serialisation
// and mapping transport-level errors to the sentinel values defined in
// this package. All failures are opaque to the sync orchestrator: it
// aborts without touching the datasets whatever the cause.
type RemoteSource interface {
	// FetchHomework returns the portal agenda over a window of
	// lookbackDays before now through lookaheadDays after now.
	// The returned records keep the portal-assigned identifiers.
	FetchHomework(ctx context.Context, lookbackDays, lookaheadDays int) ([]models.Task, error)

	// FetchGrades returns every grade the portal reports for the
	// student, passed through verbatim.
	FetchGrades(ctx context.Context) ([]models.Grade, error)
}

// Factory builds a [RemoteSource] for one user's credentials. The sync
// service holds a Factory so tests can substitute mocks and production
// code can pool or rebuild portal sessions per sync cycle.
type Factory func(creds Credentials) RemoteSource
