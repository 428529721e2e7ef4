// Package ports defines the interfaces the application layer consumes.
// Implementations live under infrastructure/persistence.
package ports

import (
	"context"

	"github.com/lasersoldier/MuseMemo/domain/prompt"
)

// Identity is the auth-layer view of a user, as carried by a session
type Identity struct {
	ID        string
	Email     string
	FullName  string
	AvatarURL string
}

// Session is an authenticated gateway session
type Session struct {
	AccessToken string
	User        Identity
}

// Gateway is the remote persistence service: session-based auth plus
// record CRUD on the profiles and prompts collections. Absence of a
// profile row for an authenticated session is a valid state; callers
// must not assume referential integrity between the two collections.
type Gateway interface {
	// Configured reports whether the gateway can reach a real backend.
	// An unconfigured gateway serves the self-contained demo mode.
	Configured() bool

	// SignIn authenticates with email and password
	SignIn(ctx context.Context, email, password string) (*Session, error)
	// SendMagicLink starts the passwordless flow by mailing a one-time link
	SendMagicLink(ctx context.Context, email string) error
	// SignUp registers a new account
	SignUp(ctx context.Context, email, password string) (*Session, error)
	// SignOut terminates the session behind the access token
	SignOut(ctx context.Context, accessToken string) error
	// SessionUser resolves the identity behind an access token
	SessionUser(ctx context.Context, accessToken string) (*Identity, error)
	// UpdateDisplayName persists a name change on the auth identity record
	UpdateDisplayName(ctx context.Context, accessToken, fullName string) error

	// FetchProfile loads a profile row by user id
	FetchProfile(ctx context.Context, userID string) (*prompt.Profile, error)
	// InsertProfile creates a profile row
	InsertProfile(ctx context.Context, p *prompt.Profile) error
	// UpdateProfile applies a partial update to a profile row
	UpdateProfile(ctx context.Context, userID string, patch prompt.ProfilePatch) error

	// ListPrompts returns every prompt record, not scoped to a user
	ListPrompts(ctx context.Context) ([]*prompt.Prompt, error)
	// InsertPrompt creates a prompt record
	InsertPrompt(ctx context.Context, p *prompt.Prompt) error
	// UpdatePrompt applies a partial update to a prompt record
	UpdatePrompt(ctx context.Context, id string, patch prompt.Patch) error
	// UpdatePromptsByOwner applies a partial update to every prompt owned
	// by a user
	UpdatePromptsByOwner(ctx context.Context, ownerID string, patch prompt.Patch) error
	// DeletePrompt removes a prompt record
	DeletePrompt(ctx context.Context, id string) error
	// DeletePromptsByOwner removes every prompt owned by a user
	DeletePromptsByOwner(ctx context.Context, ownerID string) error
	// ResetUsage zeroes the usage counter on every prompt record
	ResetUsage(ctx context.Context) error
	// ResetUsageAndFavorites zeroes usage and clears favorites everywhere
	ResetUsageAndFavorites(ctx context.Context) error
}
