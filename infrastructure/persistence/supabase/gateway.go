// Package supabase implements the persistence gateway over a Supabase
// project: GoTrue for session auth and PostgREST for the profiles and
// prompts collections.
package supabase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/supabase-community/gotrue-go/types"
	"github.com/supabase-community/supabase-go"

	"github.com/lasersoldier/MuseMemo/application/ports"
	"github.com/lasersoldier/MuseMemo/domain/prompt"
)

const (
	profilesTable = "profiles"
	promptsTable  = "prompts"
)

// Gateway is a ports.Gateway backed by a Supabase project. CRUD runs
// under the service-role key; per-user authorization happens at the API
// boundary before any call reaches this layer.
type Gateway struct {
	client *supabase.Client
}

// New creates a gateway for the given project URL and service-role key
func New(url, serviceKey string) (*Gateway, error) {
	client, err := supabase.NewClient(url, serviceKey, &supabase.ClientOptions{})
	if err != nil {
		return nil, fmt.Errorf("create supabase client: %w", err)
	}
	return &Gateway{client: client}, nil
}

// Configured reports whether the gateway reaches a real backend
func (g *Gateway) Configured() bool { return true }

// SignIn authenticates with the password grant
func (g *Gateway) SignIn(ctx context.Context, email, password string) (*ports.Session, error) {
	resp, err := g.client.Auth.Token(types.TokenRequest{
		GrantType: "password",
		Email:     email,
		Password:  password,
	})
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}
	return &ports.Session{
		AccessToken: resp.AccessToken,
		User:        identityFromUser(resp.User),
	}, nil
}

// SendMagicLink mails a one-time sign-in link, creating the account on
// first use.
func (g *Gateway) SendMagicLink(ctx context.Context, email string) error {
	err := g.client.Auth.OTP(types.OTPRequest{
		Email:      email,
		CreateUser: true,
	})
	if err != nil {
		return fmt.Errorf("send magic link: %w", err)
	}
	return nil
}

// SignUp registers a new account and signs it in
func (g *Gateway) SignUp(ctx context.Context, email, password string) (*ports.Session, error) {
	if _, err := g.client.Auth.Signup(types.SignupRequest{
		Email:    email,
		Password: password,
	}); err != nil {
		return nil, fmt.Errorf("sign up: %w", err)
	}
	return g.SignIn(ctx, email, password)
}

// SignOut terminates the session behind the access token
func (g *Gateway) SignOut(ctx context.Context, accessToken string) error {
	if err := g.client.Auth.WithToken(accessToken).Logout(); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	return nil
}

// SessionUser resolves the identity behind an access token
func (g *Gateway) SessionUser(ctx context.Context, accessToken string) (*ports.Identity, error) {
	resp, err := g.client.Auth.WithToken(accessToken).GetUser()
	if err != nil {
		return nil, fmt.Errorf("get session user: %w", err)
	}
	ident := identityFromUser(resp.User)
	return &ident, nil
}

// UpdateDisplayName persists a name change on the auth identity record
// so the session metadata survives the next login.
func (g *Gateway) UpdateDisplayName(ctx context.Context, accessToken, fullName string) error {
	_, err := g.client.Auth.WithToken(accessToken).UpdateUser(types.UpdateUserRequest{
		Data: map[string]interface{}{"full_name": fullName},
	})
	if err != nil {
		return fmt.Errorf("update display name: %w", err)
	}
	return nil
}

// FetchProfile loads a profile row; a missing row returns (nil, error)
// and callers treat it as non-fatal.
func (g *Gateway) FetchProfile(ctx context.Context, userID string) (*prompt.Profile, error) {
	data, _, err := g.client.From(profilesTable).
		Select("*", "exact", false).
		Eq("id", userID).
		Single().
		Execute()
	if err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}

	var profile prompt.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return &profile, nil
}

// InsertProfile creates a profile row
func (g *Gateway) InsertProfile(ctx context.Context, p *prompt.Profile) error {
	_, _, err := g.client.From(profilesTable).
		Insert(p, false, "", "", "").
		Execute()
	if err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

// UpdateProfile applies a partial update to a profile row
func (g *Gateway) UpdateProfile(ctx context.Context, userID string, patch prompt.ProfilePatch) error {
	_, _, err := g.client.From(profilesTable).
		Update(patch, "", "").
		Eq("id", userID).
		Execute()
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

// ListPrompts returns every prompt record
func (g *Gateway) ListPrompts(ctx context.Context) ([]*prompt.Prompt, error) {
	data, _, err := g.client.From(promptsTable).
		Select("*", "exact", false).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("list prompts: %w", err)
	}

	var prompts []*prompt.Prompt
	if err := json.Unmarshal(data, &prompts); err != nil {
		return nil, fmt.Errorf("decode prompts: %w", err)
	}
	return prompts, nil
}

// InsertPrompt creates a prompt record
func (g *Gateway) InsertPrompt(ctx context.Context, p *prompt.Prompt) error {
	_, _, err := g.client.From(promptsTable).
		Insert(p, false, "", "", "").
		Execute()
	if err != nil {
		return fmt.Errorf("insert prompt: %w", err)
	}
	return nil
}

// UpdatePrompt applies a partial update to a prompt record
func (g *Gateway) UpdatePrompt(ctx context.Context, id string, patch prompt.Patch) error {
	_, _, err := g.client.From(promptsTable).
		Update(patch, "", "").
		Eq("id", id).
		Execute()
	if err != nil {
		return fmt.Errorf("update prompt: %w", err)
	}
	return nil
}

// UpdatePromptsByOwner applies a partial update to every prompt owned
// by a user.
func (g *Gateway) UpdatePromptsByOwner(ctx context.Context, ownerID string, patch prompt.Patch) error {
	_, _, err := g.client.From(promptsTable).
		Update(patch, "", "").
		Eq("userId", ownerID).
		Execute()
	if err != nil {
		return fmt.Errorf("update prompts by owner: %w", err)
	}
	return nil
}

// DeletePrompt removes a prompt record
func (g *Gateway) DeletePrompt(ctx context.Context, id string) error {
	_, _, err := g.client.From(promptsTable).
		Delete("", "").
		Eq("id", id).
		Execute()
	if err != nil {
		return fmt.Errorf("delete prompt: %w", err)
	}
	return nil
}

// DeletePromptsByOwner removes every prompt owned by a user
func (g *Gateway) DeletePromptsByOwner(ctx context.Context, ownerID string) error {
	_, _, err := g.client.From(promptsTable).
		Delete("", "").
		Eq("userId", ownerID).
		Execute()
	if err != nil {
		return fmt.Errorf("delete prompts by owner: %w", err)
	}
	return nil
}

// ResetUsage zeroes the usage counter on every prompt record. PostgREST
// refuses unfiltered updates, so match every non-empty id.
func (g *Gateway) ResetUsage(ctx context.Context) error {
	_, _, err := g.client.From(promptsTable).
		Update(map[string]interface{}{"usageCount": 0}, "", "").
		Neq("id", "").
		Execute()
	if err != nil {
		return fmt.Errorf("reset usage: %w", err)
	}
	return nil
}

// ResetUsageAndFavorites zeroes usage and clears favorites everywhere
func (g *Gateway) ResetUsageAndFavorites(ctx context.Context) error {
	_, _, err := g.client.From(promptsTable).
		Update(map[string]interface{}{"usageCount": 0, "isFavorite": false}, "", "").
		Neq("id", "").
		Execute()
	if err != nil {
		return fmt.Errorf("reset usage and favorites: %w", err)
	}
	return nil
}

func identityFromUser(u types.User) ports.Identity {
	ident := ports.Identity{
		ID:    u.ID.String(),
		Email: u.Email,
	}
	if name, ok := u.UserMetadata["full_name"].(string); ok {
		ident.FullName = name
	}
	if avatar, ok := u.UserMetadata["avatar_url"].(string); ok {
		ident.AvatarURL = avatar
	}
	return ident
}

// Interface guard
var _ ports.Gateway = (*Gateway)(nil)
