package service

import (
	"context"
	"log/slog"

	"golang.org/x/oauth2"

	"github.com/mcsa-hvr/circuit1021/internal/ports"
)

// APIFactory builds a backend client whose requests carry the token from src.
type APIFactory func(src oauth2.TokenSource) ports.CircuitAPI

// WorkspaceFactoryOptions groups dependencies for WorkspaceFactory.
type WorkspaceFactoryOptions struct {
	NewAPI APIFactory // Required
	Obs    SessionObservability
}

// WorkspaceFactory opens one Workspace per visitor request or CLI run.
type WorkspaceFactory struct {
	newAPI APIFactory
	obs    SessionObservability
}

// NewWorkspaceFactory constructs a WorkspaceFactory.
func NewWorkspaceFactory(opts WorkspaceFactoryOptions) *WorkspaceFactory {
	if opts.NewAPI == nil {
		panic("NewAPI is required")
	}
	if opts.Obs.Logger == nil {
		opts.Obs.Logger = slog.Default()
	}
	return &WorkspaceFactory{newAPI: opts.NewAPI, obs: opts.Obs}
}

// Open wires a fresh Credentials holder into both a SessionManager backed by
// tokens and an API client. The session starts unresolved.
func (f *WorkspaceFactory) Open(tokens ports.TokenStore) *Workspace {
	creds := &Credentials{}
	api := f.newAPI(creds)
	return &Workspace{
		Session: NewSessionManager(SessionManagerOptions{
			API:         api,
			Tokens:      tokens,
			Credentials: creds,
			Obs:         f.obs,
		}),
		API:    api,
		logger: f.obs.Logger,
	}
}

// Workspace is the explicit session context: the session manager plus the
// API client that shares its credentials. Dashboard operations hang off it.
type Workspace struct {
	Session *SessionManager
	API     ports.CircuitAPI
	logger  *slog.Logger
}

type workspaceKey struct{}

// NewContext returns a copy of ctx carrying ws.
func NewContext(ctx context.Context, ws *Workspace) context.Context {
	return context.WithValue(ctx, workspaceKey{}, ws)
}

// FromContext returns the Workspace stored by NewContext.
func FromContext(ctx context.Context) (*Workspace, bool) {
	ws, ok := ctx.Value(workspaceKey{}).(*Workspace)
	return ws, ok && ws != nil
}
