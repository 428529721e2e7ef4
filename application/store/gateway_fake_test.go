package store

import (
	"context"
	"sync"

	"github.com/lasersoldier/MuseMemo/application/ports"
	"github.com/lasersoldier/MuseMemo/domain/prompt"
)

// fakeGateway records every call and returns scripted results. Errors
// are injected per method name.
type fakeGateway struct {
	mu    sync.Mutex
	calls []string
	errs  map[string]error

	session *ports.Session
	profile *prompt.Profile
	remote  []*prompt.Prompt

	promptPatches map[string][]prompt.Patch
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		errs:          make(map[string]error),
		promptPatches: make(map[string][]prompt.Patch),
		session: &ports.Session{
			AccessToken: "token-1",
			User: ports.Identity{
				ID:       "user-1",
				Email:    "jane@example.com",
				FullName: "Jane Doe",
			},
		},
	}
}

func (g *fakeGateway) record(call string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, call)
	return g.errs[call]
}

func (g *fakeGateway) callCount(call string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := 0
	for _, c := range g.calls {
		if c == call {
			n++
		}
	}
	return n
}

func (g *fakeGateway) Configured() bool { return true }

func (g *fakeGateway) SignIn(ctx context.Context, email, password string) (*ports.Session, error) {
	if err := g.record("SignIn"); err != nil {
		return nil, err
	}
	return g.session, nil
}

func (g *fakeGateway) SendMagicLink(ctx context.Context, email string) error {
	return g.record("SendMagicLink")
}

func (g *fakeGateway) SignUp(ctx context.Context, email, password string) (*ports.Session, error) {
	if err := g.record("SignUp"); err != nil {
		return nil, err
	}
	return g.session, nil
}

func (g *fakeGateway) SignOut(ctx context.Context, accessToken string) error {
	return g.record("SignOut")
}

func (g *fakeGateway) SessionUser(ctx context.Context, accessToken string) (*ports.Identity, error) {
	if err := g.record("SessionUser"); err != nil {
		return nil, err
	}
	ident := g.session.User
	return &ident, nil
}

func (g *fakeGateway) UpdateDisplayName(ctx context.Context, accessToken, fullName string) error {
	return g.record("UpdateDisplayName")
}

func (g *fakeGateway) FetchProfile(ctx context.Context, userID string) (*prompt.Profile, error) {
	if err := g.record("FetchProfile"); err != nil {
		return nil, err
	}
	return g.profile, nil
}

func (g *fakeGateway) InsertProfile(ctx context.Context, p *prompt.Profile) error {
	return g.record("InsertProfile")
}

func (g *fakeGateway) UpdateProfile(ctx context.Context, userID string, patch prompt.ProfilePatch) error {
	return g.record("UpdateProfile")
}

func (g *fakeGateway) ListPrompts(ctx context.Context) ([]*prompt.Prompt, error) {
	if err := g.record("ListPrompts"); err != nil {
		return nil, err
	}
	return g.remote, nil
}

func (g *fakeGateway) InsertPrompt(ctx context.Context, p *prompt.Prompt) error {
	return g.record("InsertPrompt")
}

func (g *fakeGateway) UpdatePrompt(ctx context.Context, id string, patch prompt.Patch) error {
	err := g.record("UpdatePrompt")
	g.mu.Lock()
	g.promptPatches[id] = append(g.promptPatches[id], patch)
	g.mu.Unlock()
	return err
}

func (g *fakeGateway) UpdatePromptsByOwner(ctx context.Context, ownerID string, patch prompt.Patch) error {
	return g.record("UpdatePromptsByOwner")
}

func (g *fakeGateway) DeletePrompt(ctx context.Context, id string) error {
	return g.record("DeletePrompt")
}

func (g *fakeGateway) DeletePromptsByOwner(ctx context.Context, ownerID string) error {
	return g.record("DeletePromptsByOwner")
}

func (g *fakeGateway) ResetUsage(ctx context.Context) error {
	return g.record("ResetUsage")
}

func (g *fakeGateway) ResetUsageAndFavorites(ctx context.Context) error {
	return g.record("ResetUsageAndFavorites")
}

var _ ports.Gateway = (*fakeGateway)(nil)
