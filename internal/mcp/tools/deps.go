package tools

import (
	"context"

	"github.com/usestring/wordseer-mcp/internal/config"
	"github.com/usestring/wordseer-mcp/internal/query"
	"github.com/usestring/wordseer-mcp/internal/session"
	"github.com/usestring/wordseer-mcp/pkg/client"
)

// Deps contains all dependencies needed by tool handlers.
type Deps struct {
	Client   *client.Client
	Config   *config.Config
	Identity session.Provider
	Query    *query.Engine
}

// Params resolves the request parameters of one search. Non-empty instance
// and user override the configured identity for this call only.
func (d *Deps) Params(ctx context.Context, instance, user string, includeText bool, params map[string]string) (client.RequestParameters, error) {
	p := session.Override{Base: d.Identity, InstanceID: instance, User: user}
	return session.Resolve(ctx, p, includeText, session.QueryValues(params))
}
