// ABOUTME: Dependency injection struct for the assistant TUI
// ABOUTME: Service is satisfied by *transport.Client; tests substitute fakes

package interactive

import (
	"context"

	"github.com/mauromedda/academic-assistant/internal/session"
	"github.com/mauromedda/academic-assistant/internal/transport"
)

// Service is the remote assistant as seen by the TUI.
type Service interface {
	PostChat(ctx context.Context, req transport.ChatRequest) (string, error)
	PostUpload(ctx context.Context, path string) (*transport.Document, error)
	Health(ctx context.Context) (transport.HealthStatus, error)
}

// AppDeps bundles all dependencies for the interactive app.
type AppDeps struct {
	Service  Service
	Identity session.Identity
	BaseURL  string
	Version  string
	// StartDir is where the file picker opens; "" means the working directory.
	StartDir string
}
