// Package session resolves the identity a search runs under.
//
// The instance and user are looked up from a Provider on every call and
// never cached, so a provider backed by a live session always reflects the
// current state.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/usestring/wordseer-mcp/pkg/client"
)

// ErrNoIdentity is returned when a provider cannot supply an instance or user.
var ErrNoIdentity = errors.New("no search identity")

// Provider supplies the current instance identifier and username.
type Provider interface {
	Instance(ctx context.Context) (string, error)
	Username(ctx context.Context) (string, error)
}

// Static is a Provider with a fixed instance and user, typically from config.
type Static struct {
	InstanceID string
	User       string
}

// Instance returns the configured instance identifier.
func (s Static) Instance(context.Context) (string, error) {
	if s.InstanceID == "" {
		return "", fmt.Errorf("%w: instance not configured", ErrNoIdentity)
	}
	return s.InstanceID, nil
}

// Username returns the configured username.
func (s Static) Username(context.Context) (string, error) {
	if s.User == "" {
		return "", fmt.Errorf("%w: user not configured", ErrNoIdentity)
	}
	return s.User, nil
}

// Override layers explicit values over a base provider. Empty fields fall
// back to the base.
type Override struct {
	Base       Provider
	InstanceID string
	User       string
}

// Instance returns the override instance, or the base provider's.
func (o Override) Instance(ctx context.Context) (string, error) {
	if o.InstanceID != "" {
		return o.InstanceID, nil
	}
	if o.Base == nil {
		return "", fmt.Errorf("%w: instance not configured", ErrNoIdentity)
	}
	return o.Base.Instance(ctx)
}

// Username returns the override user, or the base provider's.
func (o Override) Username(ctx context.Context) (string, error) {
	if o.User != "" {
		return o.User, nil
	}
	if o.Base == nil {
		return "", fmt.Errorf("%w: user not configured", ErrNoIdentity)
	}
	return o.Base.Username(ctx)
}

// Resolve builds the parameters of one search from the provider's current
// identity and the caller's per-query values.
func Resolve(ctx context.Context, p Provider, includeText bool, extra url.Values) (client.RequestParameters, error) {
	instance, err := p.Instance(ctx)
	if err != nil {
		return client.RequestParameters{}, fmt.Errorf("resolving instance: %w", err)
	}
	user, err := p.Username(ctx)
	if err != nil {
		return client.RequestParameters{}, fmt.Errorf("resolving user: %w", err)
	}
	if strings.TrimSpace(instance) == "" {
		return client.RequestParameters{}, fmt.Errorf("%w: empty instance", ErrNoIdentity)
	}
	if strings.TrimSpace(user) == "" {
		return client.RequestParameters{}, fmt.Errorf("%w: empty user", ErrNoIdentity)
	}

	return client.RequestParameters{
		Instance:    instance,
		User:        user,
		IncludeText: includeText,
		Extra:       extra,
	}, nil
}

// QueryValues converts a flat parameter map into url.Values.
func QueryValues(params map[string]string) url.Values {
	if len(params) == 0 {
		return nil
	}
	values := make(url.Values, len(params))
	for k, v := range params {
		values.Set(k, v)
	}
	return values
}
