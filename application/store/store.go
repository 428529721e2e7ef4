// Package store implements the application state controller: the single
// authoritative in-memory source of truth for the prompt collection and
// the active user. Every mutation applies to local state first and then
// syncs to the persistence gateway in the background; local state is
// never rolled back on remote failure, with profile updates as the one
// documented exception.
package store

import (
	"context"
	"regexp"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/lasersoldier/MuseMemo/application/ports"
	"github.com/lasersoldier/MuseMemo/domain/prompt"
	pkgerrors "github.com/lasersoldier/MuseMemo/pkg/errors"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const minPasswordLength = 6

// Store owns the live prompt collection and the active user for one
// session. The collection is replaced wholesale on every mutation
// (copy-on-write), so snapshots handed to readers are immutable.
type Store struct {
	mu          sync.Mutex
	gateway     ports.Gateway
	logger      *zap.Logger
	syncer      *syncRunner
	user        *prompt.Profile
	accessToken string
	prompts     []*prompt.Prompt
	loading     bool
}

// New creates a store seeded with the built-in starter catalog
func New(gateway ports.Gateway, logger *zap.Logger) *Store {
	return &Store{
		gateway: gateway,
		logger:  logger,
		syncer:  newSyncRunner(logger),
		prompts: prompt.StarterCatalog(),
	}
}

// Close cancels in-flight sync tasks and waits for them
func (s *Store) Close() {
	s.syncer.Close()
}

// DemoMode reports whether the store runs without a real backend
func (s *Store) DemoMode() bool {
	return !s.gateway.Configured()
}

// User returns a copy of the active user, or nil when unauthenticated
func (s *Store) User() *prompt.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	return s.user.Clone()
}

// Prompts returns the current collection snapshot. Callers must treat
// the returned prompts as read-only.
func (s *Store) Prompts() []*prompt.Prompt {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prompts
}

// SavedPrompts is the live workspace projection: every prompt authored
// by the active user or currently favorited. Recomputed on every call,
// never cached.
func (s *Store) SavedPrompts() []*prompt.Prompt {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*prompt.Prompt
	for _, p := range s.prompts {
		if p.Author == prompt.AuthorUser || p.IsFavorite {
			out = append(out, p)
		}
	}
	return out
}

// Loading reports whether an auth operation is in progress
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

// LoginResult reports the outcome of a login attempt
type LoginResult struct {
	// LinkSent is true when the passwordless flow mailed a one-time link
	// instead of establishing a session
	LinkSent    bool
	User        *prompt.Profile
	AccessToken string
}

// Login authenticates against the gateway. An empty password selects
// the passwordless flow. On success the profile is resolved and the
// prompt collection hydrated.
func (s *Store) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if !emailPattern.MatchString(email) {
		return nil, pkgerrors.NewValidationError("please enter a valid email address")
	}

	s.setLoading(true)
	defer s.setLoading(false)

	if password == "" {
		if err := s.gateway.SendMagicLink(ctx, email); err != nil {
			return nil, pkgerrors.NewExternalError("could not send sign-in link", err)
		}
		return &LoginResult{LinkSent: true}, nil
	}

	session, err := s.gateway.SignIn(ctx, email, password)
	if err != nil {
		return nil, pkgerrors.NewUnauthorizedError("authentication failed").WithCause(err)
	}

	user := s.establishSession(ctx, session)
	return &LoginResult{User: user, AccessToken: session.AccessToken}, nil
}

// Register creates a new account, inserts its profile row, and resets
// workspace data to the starter state.
func (s *Store) Register(ctx context.Context, email, password string) (*LoginResult, error) {
	if !emailPattern.MatchString(email) {
		return nil, pkgerrors.NewValidationError("please enter a valid email address")
	}
	if len(password) < minPasswordLength {
		return nil, pkgerrors.NewValidationError("password must be at least 6 characters")
	}

	s.setLoading(true)
	defer s.setLoading(false)

	session, err := s.gateway.SignUp(ctx, email, password)
	if err != nil {
		return nil, pkgerrors.NewExternalError("registration failed", err)
	}

	profile := profileFromIdentity(session.User)
	if err := s.gateway.InsertProfile(ctx, profile); err != nil {
		return nil, pkgerrors.NewExternalError("registration succeeded but profile creation failed", err)
	}

	s.mu.Lock()
	s.user = profile
	s.accessToken = session.AccessToken
	s.prompts = resetToSystemOnly(s.prompts)
	s.mu.Unlock()

	return &LoginResult{User: profile.Clone(), AccessToken: session.AccessToken}, nil
}

// Logout clears the active user unconditionally and requests remote
// session termination in the background; remote errors are swallowed.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	token := s.accessToken
	s.user = nil
	s.accessToken = ""
	s.mu.Unlock()

	if token == "" {
		return
	}
	s.syncer.Go("sign_out", func(ctx context.Context) error {
		return s.gateway.SignOut(ctx, token)
	})
}

// Hydrate resumes an existing gateway session: resolve the identity
// behind the token, build a profile, and load the prompt collection.
func (s *Store) Hydrate(ctx context.Context, accessToken string) (*prompt.Profile, error) {
	ident, err := s.gateway.SessionUser(ctx, accessToken)
	if err != nil {
		return nil, pkgerrors.NewUnauthorizedError("session is not valid").WithCause(err)
	}
	user := s.establishSession(ctx, &ports.Session{AccessToken: accessToken, User: *ident})
	return user, nil
}

// establishSession resolves the richest available profile for a session
// identity and hydrates the prompt collection. A missing profile row is
// non-fatal: the session identity is enough to operate on.
func (s *Store) establishSession(ctx context.Context, session *ports.Session) *prompt.Profile {
	user := profileFromIdentity(session.User)

	if fetched, err := s.gateway.FetchProfile(ctx, session.User.ID); err != nil {
		s.logger.Warn("profile fetch failed, using session identity",
			zap.String("userID", session.User.ID),
			zap.Error(err),
		)
	} else if fetched != nil {
		user = fetched
	}

	s.mu.Lock()
	s.user = user
	s.accessToken = session.AccessToken
	s.mu.Unlock()

	s.refreshPrompts(ctx)
	return user.Clone()
}

// refreshPrompts fetches every remote prompt record and overwrites the
// local collection with the merge of built-ins and remote records.
// Remote records win on id conflicts. Prompts owned by the active user
// get their creator name forced to the current full name so a rename
// never leaves stale display names behind.
func (s *Store) refreshPrompts(ctx context.Context) {
	remote, err := s.gateway.ListPrompts(ctx)
	if err != nil {
		s.logger.Warn("prompt fetch failed, keeping local collection", zap.Error(err))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	merged := make(map[string]*prompt.Prompt)
	var order []string
	for _, p := range prompt.StarterCatalog() {
		merged[p.ID] = p
		order = append(order, p.ID)
	}
	for _, p := range remote {
		record := p.Clone()
		if record.CreatorName == "" {
			record.CreatorName = "User"
		}
		if s.user != nil && record.OwnerID == s.user.ID && s.user.FullName != "" {
			record.CreatorName = s.user.FullName
		}
		if _, seen := merged[record.ID]; !seen {
			order = append(order, record.ID)
		}
		merged[record.ID] = record
	}

	collection := make([]*prompt.Prompt, 0, len(order))
	for _, id := range order {
		collection = append(collection, merged[id])
	}
	s.prompts = collection
}

// UpdateProfile applies a partial profile update. This is the one
// operation with rollback: if any remote write fails, the local user
// reverts to its pre-mutation value and the error is returned. A name
// change cascades to the creator name of every prompt the user authored,
// both locally and remotely.
func (s *Store) UpdateProfile(ctx context.Context, patch prompt.ProfilePatch) error {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return pkgerrors.NewUnauthorizedError("no active user")
	}
	prev := s.user
	next := s.user.Apply(patch)
	s.user = next

	nameChanged := patch.FullName != nil && *patch.FullName != ""
	if nameChanged {
		updated := make([]*prompt.Prompt, len(s.prompts))
		for i, p := range s.prompts {
			if p.OwnerID == next.ID {
				updated[i] = p.Apply(prompt.Patch{CreatorName: patch.FullName})
			} else {
				updated[i] = p
			}
		}
		s.prompts = updated
	}
	userID := next.ID
	token := s.accessToken
	s.mu.Unlock()

	err := s.gateway.UpdateProfile(ctx, userID, patch)
	if err == nil && nameChanged {
		err = s.gateway.UpdateDisplayName(ctx, token, *patch.FullName)
	}
	if err == nil && nameChanged {
		err = s.gateway.UpdatePromptsByOwner(ctx, userID, prompt.Patch{CreatorName: patch.FullName})
	}
	if err != nil {
		s.mu.Lock()
		s.user = prev
		s.mu.Unlock()
		return pkgerrors.NewExternalError("profile update failed", err)
	}
	return nil
}

// AddPrompt creates a user-authored prompt, prepends it locally and
// inserts the record in the background.
func (s *Store) AddPrompt(ctx context.Context, input prompt.CreateInput) (*prompt.Prompt, error) {
	s.mu.Lock()
	owner := s.user
	s.mu.Unlock()

	created, err := prompt.New(input, owner)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.prompts = append([]*prompt.Prompt{created}, s.prompts...)
	s.mu.Unlock()

	record := created.Clone()
	s.syncer.Go("insert_prompt", func(ctx context.Context) error {
		return s.gateway.InsertPrompt(ctx, record)
	})
	return created.Clone(), nil
}

// SavePublicPrompt favorites a catalog prompt into the workspace and
// associates it with the active user remotely.
func (s *Store) SavePublicPrompt(ctx context.Context, id string) (*prompt.Prompt, error) {
	now := time.Now().UTC()
	fav := true

	s.mu.Lock()
	ownerID := ""
	if s.user != nil {
		ownerID = s.user.ID
	}
	updated := s.replace(id, func(p *prompt.Prompt) *prompt.Prompt {
		return p.Apply(prompt.Patch{IsFavorite: &fav, LastUsed: &now})
	})
	s.mu.Unlock()

	if updated == nil {
		return nil, pkgerrors.NewNotFoundError("prompt")
	}

	patch := prompt.Patch{IsFavorite: &fav, LastUsed: &now}
	if ownerID != "" {
		patch.OwnerID = &ownerID
	}
	s.syncer.Go("save_prompt", func(ctx context.Context) error {
		return s.gateway.UpdatePrompt(ctx, id, patch)
	})
	return updated, nil
}

// UnsubscribePrompt removes a prompt from favorites. Idempotent: a
// prompt that is not currently a favorite is left untouched and no
// remote call is made.
func (s *Store) UnsubscribePrompt(ctx context.Context, id string) (*prompt.Prompt, error) {
	now := time.Now().UTC()
	fav := false

	s.mu.Lock()
	var skipped bool
	updated := s.replace(id, func(p *prompt.Prompt) *prompt.Prompt {
		if !p.IsFavorite {
			skipped = true
			return p
		}
		return p.Apply(prompt.Patch{IsFavorite: &fav, LastUsed: &now})
	})
	s.mu.Unlock()

	if updated == nil {
		return nil, pkgerrors.NewNotFoundError("prompt")
	}
	if skipped {
		return updated, nil
	}

	s.syncer.Go("unsubscribe_prompt", func(ctx context.Context) error {
		return s.gateway.UpdatePrompt(ctx, id, prompt.Patch{IsFavorite: &fav, LastUsed: &now})
	})
	return updated, nil
}

// DeletePrompt removes a prompt locally and requests remote deletion
func (s *Store) DeletePrompt(ctx context.Context, id string) error {
	s.mu.Lock()
	found := false
	next := make([]*prompt.Prompt, 0, len(s.prompts))
	for _, p := range s.prompts {
		if p.ID == id {
			found = true
			continue
		}
		next = append(next, p)
	}
	s.prompts = next
	s.mu.Unlock()

	if !found {
		return pkgerrors.NewNotFoundError("prompt")
	}
	s.syncer.Go("delete_prompt", func(ctx context.Context) error {
		return s.gateway.DeletePrompt(ctx, id)
	})
	return nil
}

// UpdatePrompt merges a partial update into a prompt and mirrors it
func (s *Store) UpdatePrompt(ctx context.Context, id string, patch prompt.Patch) (*prompt.Prompt, error) {
	s.mu.Lock()
	updated := s.replace(id, func(p *prompt.Prompt) *prompt.Prompt {
		return p.Apply(patch)
	})
	s.mu.Unlock()

	if updated == nil {
		return nil, pkgerrors.NewNotFoundError("prompt")
	}
	s.syncer.Go("update_prompt", func(ctx context.Context) error {
		return s.gateway.UpdatePrompt(ctx, id, patch)
	})
	return updated, nil
}

// IncrementUsage bumps a prompt's usage counter and refreshes its
// last-used timestamp. Usage counts are local-only: they are not synced
// per increment and reconcile through the bulk reset operations.
func (s *Store) IncrementUsage(ctx context.Context, id string) (*prompt.Prompt, error) {
	now := time.Now().UTC()

	s.mu.Lock()
	updated := s.replace(id, func(p *prompt.Prompt) *prompt.Prompt {
		count := p.UsageCount + 1
		return p.Apply(prompt.Patch{UsageCount: &count, LastUsed: &now})
	})
	s.mu.Unlock()

	if updated == nil {
		return nil, pkgerrors.NewNotFoundError("prompt")
	}
	return updated, nil
}

// ClearUsageCounts zeroes every prompt's usage counter
func (s *Store) ClearUsageCounts(ctx context.Context) {
	zero := 0

	s.mu.Lock()
	next := make([]*prompt.Prompt, len(s.prompts))
	for i, p := range s.prompts {
		next[i] = p.Apply(prompt.Patch{UsageCount: &zero})
	}
	s.prompts = next
	s.mu.Unlock()

	s.syncer.Go("clear_usage", func(ctx context.Context) error {
		return s.gateway.ResetUsage(ctx)
	})
}

// ResetUserData removes every non-system prompt, resets the remaining
// system prompts to zero usage and non-favorite, and zeroes the active
// user's total-usage counter, locally and remotely.
func (s *Store) ResetUserData(ctx context.Context) {
	s.mu.Lock()
	s.prompts = resetToSystemOnly(s.prompts)
	var userID string
	if s.user != nil {
		s.user = s.user.Apply(prompt.ProfilePatch{TotalUsage: intPtr(0)})
		userID = s.user.ID
	}
	s.mu.Unlock()

	s.syncer.Go("reset_user_data", func(ctx context.Context) error {
		if userID != "" {
			if err := s.gateway.DeletePromptsByOwner(ctx, userID); err != nil {
				return err
			}
		}
		if err := s.gateway.ResetUsageAndFavorites(ctx); err != nil {
			return err
		}
		if userID != "" {
			return s.gateway.UpdateProfile(ctx, userID, prompt.ProfilePatch{TotalUsage: intPtr(0)})
		}
		return nil
	})
}

// replace swaps the prompt with the given id using fn, rebuilding the
// collection copy-on-write. Returns the resulting prompt or nil when the
// id is unknown. Caller must hold s.mu.
func (s *Store) replace(id string, fn func(*prompt.Prompt) *prompt.Prompt) *prompt.Prompt {
	var result *prompt.Prompt
	next := make([]*prompt.Prompt, len(s.prompts))
	for i, p := range s.prompts {
		if p.ID == id {
			result = fn(p)
			next[i] = result
		} else {
			next[i] = p
		}
	}
	if result == nil {
		return nil
	}
	s.prompts = next
	return result
}

// resetToSystemOnly keeps only system prompts, zeroing their usage and
// favorite flags.
func resetToSystemOnly(prompts []*prompt.Prompt) []*prompt.Prompt {
	zero := 0
	fav := false

	var out []*prompt.Prompt
	for _, p := range prompts {
		if p.Author != prompt.AuthorSystem {
			continue
		}
		out = append(out, p.Apply(prompt.Patch{UsageCount: &zero, IsFavorite: &fav}))
	}
	return out
}

func profileFromIdentity(ident ports.Identity) *prompt.Profile {
	fullName := ident.FullName
	if fullName == "" {
		if at := strings.Index(ident.Email, "@"); at > 0 {
			fullName = ident.Email[:at]
		}
	}
	return &prompt.Profile{
		ID:               ident.ID,
		Email:            ident.Email,
		FullName:         fullName,
		AvatarURL:        ident.AvatarURL,
		TotalUsage:       0,
		SubscriptionTier: prompt.TierFree,
		CreatedAt:        time.Now().UTC(),
	}
}

func intPtr(v int) *int { return &v }
