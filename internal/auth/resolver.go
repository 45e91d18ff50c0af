package auth

import (
	"errors"
	"strings"

	"github.com/olajcodes/profile-agent/internal/config"
)

var (
	// ErrUnauthenticated means no credential was supplied at all.
	ErrUnauthenticated = errors.New("missing credential")
	// ErrInvalidKeyFormat means the supplied key does not look like a
	// provider key. This is a shape check only; the provider performs the
	// real validation.
	ErrInvalidKeyFormat = errors.New("invalid api key format")
	// ErrServerMisconfigured means the admin path was selected but no
	// server-side provider key is configured.
	ErrServerMisconfigured = errors.New("no server-side provider key configured")
)

// Credential is everything a single request needs to talk to a provider.
// Caller-supplied keys pass through verbatim and are never persisted.
type Credential struct {
	Provider   string
	BaseURL    string
	APIKey     string
	ChatModel  string
	EmbedModel string
}

const defaultEmbedModel = "text-embedding-3-small"

// Resolver decides which key and model serve a request: the admin secret
// maps to the first configured provider in priority order, anything else is
// treated as a bring-your-own key after a shape check.
type Resolver struct {
	adminSecret string
	providers   []config.Provider
}

func NewResolver(adminSecret string, providers []config.Provider) *Resolver {
	return &Resolver{adminSecret: adminSecret, providers: providers}
}

// Resolve maps a bearer token and optional model override to a credential.
func (r *Resolver) Resolve(token, model string) (Credential, error) {
	if token == "" {
		return Credential{}, ErrUnauthenticated
	}

	if r.adminSecret != "" && token == r.adminSecret {
		for i := range r.providers {
			p := &r.providers[i]
			if p.APIKey == "" {
				continue
			}
			return credentialFor(p, p.APIKey, model), nil
		}
		return Credential{}, ErrServerMisconfigured
	}

	// Bring-your-own-key: the token must at least look like a key for one
	// of the known providers. The longest matching prefix wins so an
	// "sk-or-" key is not mistaken for a plain "sk-" one.
	var match *config.Provider
	for i := range r.providers {
		p := &r.providers[i]
		if !strings.HasPrefix(token, p.KeyPrefix) {
			continue
		}
		if match == nil || len(p.KeyPrefix) > len(match.KeyPrefix) {
			match = p
		}
	}
	if match == nil {
		return Credential{}, ErrInvalidKeyFormat
	}
	return credentialFor(match, token, model), nil
}

func credentialFor(p *config.Provider, key, model string) Credential {
	cred := Credential{
		Provider:   p.Name,
		BaseURL:    p.BaseURL,
		APIKey:     key,
		ChatModel:  p.ChatModel,
		EmbedModel: p.EmbedModel,
	}
	if model != "" {
		cred.ChatModel = model
	}
	if cred.EmbedModel == "" {
		cred.EmbedModel = defaultEmbedModel
	}
	return cred
}
