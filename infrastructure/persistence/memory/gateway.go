// Package memory implements the persistence gateway in process memory.
// It backs the self-contained demo mode and the test suite: any
// well-formed credentials are accepted and profiles are synthesized on
// the fly.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lasersoldier/MuseMemo/application/ports"
	"github.com/lasersoldier/MuseMemo/domain/prompt"
	pkgerrors "github.com/lasersoldier/MuseMemo/pkg/errors"
)

type account struct {
	id       string
	email    string
	password string
	fullName string
}

// Gateway is an in-memory ports.Gateway
type Gateway struct {
	mu       sync.Mutex
	accounts map[string]*account // keyed by email
	sessions map[string]string   // token -> account id
	profiles map[string]*prompt.Profile
	prompts  map[string]*prompt.Prompt
	order    []string
}

// New creates an empty in-memory gateway
func New() *Gateway {
	return &Gateway{
		accounts: make(map[string]*account),
		sessions: make(map[string]string),
		profiles: make(map[string]*prompt.Profile),
		prompts:  make(map[string]*prompt.Prompt),
	}
}

// Configured reports false: this gateway is the demo backend
func (g *Gateway) Configured() bool { return false }

// SignIn accepts any known account's password, creating the account on
// first sight so demo sessions always succeed.
func (g *Gateway) SignIn(ctx context.Context, email, password string) (*ports.Session, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	acct, ok := g.accounts[email]
	if !ok {
		acct = g.createAccountLocked(email, password)
	} else if acct.password != password {
		return nil, pkgerrors.NewUnauthorizedError("invalid credentials")
	}
	return g.openSessionLocked(acct), nil
}

// SendMagicLink is a no-op in demo mode
func (g *Gateway) SendMagicLink(ctx context.Context, email string) error {
	return nil
}

// SignUp registers a new account
func (g *Gateway) SignUp(ctx context.Context, email, password string) (*ports.Session, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.accounts[email]; ok {
		return nil, pkgerrors.NewConflictError("account already exists")
	}
	acct := g.createAccountLocked(email, password)
	return g.openSessionLocked(acct), nil
}

// SignOut drops the session behind the token
func (g *Gateway) SignOut(ctx context.Context, accessToken string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.sessions, accessToken)
	return nil
}

// SessionUser resolves the identity behind a token
func (g *Gateway) SessionUser(ctx context.Context, accessToken string) (*ports.Identity, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	id, ok := g.sessions[accessToken]
	if !ok {
		return nil, pkgerrors.NewUnauthorizedError("unknown session")
	}
	for _, acct := range g.accounts {
		if acct.id == id {
			return &ports.Identity{ID: acct.id, Email: acct.email, FullName: acct.fullName}, nil
		}
	}
	return nil, pkgerrors.NewNotFoundError("account")
}

// UpdateDisplayName records a name change on the account
func (g *Gateway) UpdateDisplayName(ctx context.Context, accessToken, fullName string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	id, ok := g.sessions[accessToken]
	if !ok {
		return pkgerrors.NewUnauthorizedError("unknown session")
	}
	for _, acct := range g.accounts {
		if acct.id == id {
			acct.fullName = fullName
			return nil
		}
	}
	return pkgerrors.NewNotFoundError("account")
}

// FetchProfile loads a profile row
func (g *Gateway) FetchProfile(ctx context.Context, userID string) (*prompt.Profile, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, ok := g.profiles[userID]
	if !ok {
		return nil, pkgerrors.NewNotFoundError("profile")
	}
	return p.Clone(), nil
}

// InsertProfile creates or replaces a profile row
func (g *Gateway) InsertProfile(ctx context.Context, p *prompt.Profile) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.profiles[p.ID] = p.Clone()
	return nil
}

// UpdateProfile applies a partial update to a profile row
func (g *Gateway) UpdateProfile(ctx context.Context, userID string, patch prompt.ProfilePatch) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, ok := g.profiles[userID]
	if !ok {
		return pkgerrors.NewNotFoundError("profile")
	}
	g.profiles[userID] = p.Apply(patch)
	return nil
}

// ListPrompts returns every stored prompt in insertion order
func (g *Gateway) ListPrompts(ctx context.Context) ([]*prompt.Prompt, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]*prompt.Prompt, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.prompts[id].Clone())
	}
	return out, nil
}

// InsertPrompt creates a prompt record
func (g *Gateway) InsertPrompt(ctx context.Context, p *prompt.Prompt) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.prompts[p.ID]; ok {
		return pkgerrors.NewConflictError("prompt already exists")
	}
	g.prompts[p.ID] = p.Clone()
	g.order = append(g.order, p.ID)
	return nil
}

// UpdatePrompt applies a partial update to a prompt record
func (g *Gateway) UpdatePrompt(ctx context.Context, id string, patch prompt.Patch) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, ok := g.prompts[id]
	if !ok {
		return pkgerrors.NewNotFoundError("prompt")
	}
	g.prompts[id] = p.Apply(patch)
	return nil
}

// UpdatePromptsByOwner applies a partial update to a user's prompts
func (g *Gateway) UpdatePromptsByOwner(ctx context.Context, ownerID string, patch prompt.Patch) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	for id, p := range g.prompts {
		if p.OwnerID == ownerID {
			g.prompts[id] = p.Apply(patch)
		}
	}
	return nil
}

// DeletePrompt removes a prompt record
func (g *Gateway) DeletePrompt(ctx context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.removeLocked(id)
	return nil
}

// DeletePromptsByOwner removes every prompt owned by a user
func (g *Gateway) DeletePromptsByOwner(ctx context.Context, ownerID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	for id, p := range g.prompts {
		if p.OwnerID == ownerID {
			g.removeLocked(id)
		}
	}
	return nil
}

// ResetUsage zeroes the usage counter on every prompt record
func (g *Gateway) ResetUsage(ctx context.Context) error {
	zero := 0
	g.mu.Lock()
	defer g.mu.Unlock()

	for id, p := range g.prompts {
		g.prompts[id] = p.Apply(prompt.Patch{UsageCount: &zero})
	}
	return nil
}

// ResetUsageAndFavorites zeroes usage and clears favorites everywhere
func (g *Gateway) ResetUsageAndFavorites(ctx context.Context) error {
	zero := 0
	fav := false
	g.mu.Lock()
	defer g.mu.Unlock()

	for id, p := range g.prompts {
		g.prompts[id] = p.Apply(prompt.Patch{UsageCount: &zero, IsFavorite: &fav})
	}
	return nil
}

func (g *Gateway) createAccountLocked(email, password string) *account {
	acct := &account{
		id:       uuid.NewString(),
		email:    email,
		password: password,
	}
	if at := strings.Index(email, "@"); at > 0 {
		acct.fullName = email[:at]
	}
	g.accounts[email] = acct
	g.profiles[acct.id] = &prompt.Profile{
		ID:               acct.id,
		Email:            email,
		FullName:         acct.fullName,
		SubscriptionTier: prompt.TierFree,
		CreatedAt:        time.Now().UTC(),
	}
	return acct
}

func (g *Gateway) openSessionLocked(acct *account) *ports.Session {
	token := uuid.NewString()
	g.sessions[token] = acct.id
	return &ports.Session{
		AccessToken: token,
		User: ports.Identity{
			ID:       acct.id,
			Email:    acct.email,
			FullName: acct.fullName,
		},
	}
}

func (g *Gateway) removeLocked(id string) {
	if _, ok := g.prompts[id]; !ok {
		return
	}
	delete(g.prompts, id)
	for i, existing := range g.order {
		if existing == id {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
}

// Interface guard
var _ ports.Gateway = (*Gateway)(nil)
