package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lasersoldier/MuseMemo/domain/prompt"
)

func TestGateway_NotConfigured(t *testing.T) {
	assert.False(t, New().Configured())
}

func TestSignIn_CreatesAccountOnFirstSight(t *testing.T) {
	g := New()
	ctx := context.Background()

	session, err := g.SignIn(ctx, "demo@example.com", "secret")
	require.NoError(t, err)
	assert.NotEmpty(t, session.AccessToken)
	assert.Equal(t, "demo@example.com", session.User.Email)
	assert.Equal(t, "demo", session.User.FullName)

	// Profile row comes with the account
	profile, err := g.FetchProfile(ctx, session.User.ID)
	require.NoError(t, err)
	assert.Equal(t, prompt.TierFree, profile.SubscriptionTier)
}

func TestSignIn_RejectsWrongPassword(t *testing.T) {
	g := New()
	ctx := context.Background()

	_, err := g.SignIn(ctx, "demo@example.com", "secret")
	require.NoError(t, err)

	_, err = g.SignIn(ctx, "demo@example.com", "wrong")
	assert.Error(t, err)
}

func TestSignUp_ConflictOnDuplicate(t *testing.T) {
	g := New()
	ctx := context.Background()

	_, err := g.SignUp(ctx, "demo@example.com", "secret")
	require.NoError(t, err)

	_, err = g.SignUp(ctx, "demo@example.com", "secret")
	assert.Error(t, err)
}

func TestSessionLifecycle(t *testing.T) {
	g := New()
	ctx := context.Background()

	session, err := g.SignIn(ctx, "demo@example.com", "secret")
	require.NoError(t, err)

	ident, err := g.SessionUser(ctx, session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, ident.ID)

	require.NoError(t, g.SignOut(ctx, session.AccessToken))

	_, err = g.SessionUser(ctx, session.AccessToken)
	assert.Error(t, err, "token is dead after sign-out")
}

func TestUpdateDisplayName(t *testing.T) {
	g := New()
	ctx := context.Background()

	session, err := g.SignIn(ctx, "demo@example.com", "secret")
	require.NoError(t, err)

	require.NoError(t, g.UpdateDisplayName(ctx, session.AccessToken, "Demo User"))

	ident, err := g.SessionUser(ctx, session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "Demo User", ident.FullName)
}

func TestPromptCRUD(t *testing.T) {
	g := New()
	ctx := context.Background()

	p := &prompt.Prompt{
		ID:      "p1",
		Title:   "Test",
		Content: "content",
		Model:   prompt.ModelClaude,
		Tags:    []string{"Writing"},
		Author:  prompt.AuthorUser,
		OwnerID: "user-1",
	}
	require.NoError(t, g.InsertPrompt(ctx, p))

	// Records are stored by value
	p.Title = "mutated after insert"
	listed, err := g.ListPrompts(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Test", listed[0].Title)

	title := "Renamed"
	require.NoError(t, g.UpdatePrompt(ctx, "p1", prompt.Patch{Title: &title}))
	listed, _ = g.ListPrompts(ctx)
	assert.Equal(t, "Renamed", listed[0].Title)

	require.NoError(t, g.DeletePrompt(ctx, "p1"))
	listed, _ = g.ListPrompts(ctx)
	assert.Empty(t, listed)
}

func TestUpdateAndDeleteByOwner(t *testing.T) {
	g := New()
	ctx := context.Background()

	mine := &prompt.Prompt{ID: "p1", Title: "Mine", OwnerID: "user-1", Author: prompt.AuthorUser}
	theirs := &prompt.Prompt{ID: "p2", Title: "Theirs", OwnerID: "user-2", Author: prompt.AuthorUser}
	require.NoError(t, g.InsertPrompt(ctx, mine))
	require.NoError(t, g.InsertPrompt(ctx, theirs))

	name := "New Name"
	require.NoError(t, g.UpdatePromptsByOwner(ctx, "user-1", prompt.Patch{CreatorName: &name}))

	listed, _ := g.ListPrompts(ctx)
	assert.Equal(t, "New Name", listed[0].CreatorName)
	assert.Empty(t, listed[1].CreatorName, "other owners untouched")

	require.NoError(t, g.DeletePromptsByOwner(ctx, "user-1"))
	listed, _ = g.ListPrompts(ctx)
	require.Len(t, listed, 1)
	assert.Equal(t, "p2", listed[0].ID)
}

func TestResetOperations(t *testing.T) {
	g := New()
	ctx := context.Background()

	fav := true
	require.NoError(t, g.InsertPrompt(ctx, &prompt.Prompt{ID: "p1", UsageCount: 9, IsFavorite: fav}))

	require.NoError(t, g.ResetUsage(ctx))
	listed, _ := g.ListPrompts(ctx)
	assert.Zero(t, listed[0].UsageCount)
	assert.True(t, listed[0].IsFavorite, "plain usage reset keeps favorites")

	usage := 5
	require.NoError(t, g.UpdatePrompt(ctx, "p1", prompt.Patch{UsageCount: &usage}))

	require.NoError(t, g.ResetUsageAndFavorites(ctx))
	listed, _ = g.ListPrompts(ctx)
	assert.Zero(t, listed[0].UsageCount)
	assert.False(t, listed[0].IsFavorite)
}

func TestProfileUpdate(t *testing.T) {
	g := New()
	ctx := context.Background()

	session, err := g.SignIn(ctx, "demo@example.com", "secret")
	require.NoError(t, err)

	name := "Demo User"
	require.NoError(t, g.UpdateProfile(ctx, session.User.ID, prompt.ProfilePatch{FullName: &name}))

	profile, err := g.FetchProfile(ctx, session.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Demo User", profile.FullName)

	err = g.UpdateProfile(ctx, "missing", prompt.ProfilePatch{FullName: &name})
	assert.Error(t, err)
}
