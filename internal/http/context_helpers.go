package httpx

import (
	"context"

	domainauth "github.com/mcsa-hvr/circuit1021/internal/domain/auth"
	"github.com/mcsa-hvr/circuit1021/internal/service"
)

// WorkspaceFromContext returns the visitor's workspace installed by the session middleware.
func WorkspaceFromContext(ctx context.Context) (*service.Workspace, bool) {
	return service.FromContext(ctx)
}

// SessionFromContext returns a snapshot of the visitor's session. Requests
// that skipped the session middleware read as anonymous.
func SessionFromContext(ctx context.Context) domainauth.Session {
	ws, ok := WorkspaceFromContext(ctx)
	if !ok {
		return domainauth.Session{}
	}
	return ws.Session.Snapshot()
}

// IsAnonymous reports whether the current request carries no authenticated session.
func IsAnonymous(ctx context.Context) bool {
	return SessionFromContext(ctx).State() != domainauth.StateAuthenticated
}
