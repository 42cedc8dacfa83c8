package mcpsrv

import (
	"context"
	"net/url"

	"github.com/usestring/wordseer-mcp/internal/config"
	"github.com/usestring/wordseer-mcp/internal/query"
	"github.com/usestring/wordseer-mcp/internal/session"
	"github.com/usestring/wordseer-mcp/pkg/client"
)

// IdentityProvider supplies the instance and user of each search.
type IdentityProvider = session.Provider

// StaticIdentity is an IdentityProvider with a fixed instance and user.
type StaticIdentity = session.Static

// Deps contains all dependencies available to custom tools.
// Custom tools share the client, identity and query engine of the builtin tools.
type Deps struct {
	Client   *client.Client
	Config   *config.Config
	Identity IdentityProvider
	Query    *query.Engine
}

// Params resolves the current identity into the parameters of one search.
func (d *Deps) Params(ctx context.Context, includeText bool, extra url.Values) (client.RequestParameters, error) {
	return session.Resolve(ctx, d.Identity, includeText, extra)
}
