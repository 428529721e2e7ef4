package prompt

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var shortCodePattern = regexp.MustCompile(`^[A-Z]{3}-[0-9]{4}$`)

func TestNew_Success(t *testing.T) {
	owner := &Profile{ID: "user-1", Email: "jane@example.com", FullName: "Jane Doe"}

	p, err := New(CreateInput{
		Title:   "Test Prompt",
		Content: "Do the thing with [Placeholder].",
		Model:   ModelClaude,
		Tags:    []string{"Writing"},
	}, owner)

	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Regexp(t, shortCodePattern, p.ShortCode)
	assert.Equal(t, AuthorUser, p.Author)
	assert.True(t, p.IsFavorite, "own prompts start favorited")
	assert.Equal(t, 0, p.UsageCount)
	assert.Equal(t, "user-1", p.OwnerID)
	assert.Equal(t, "Jane Doe", p.CreatorName)
	assert.False(t, p.CreatedAt.IsZero())
}

func TestNew_WithoutOwner(t *testing.T) {
	p, err := New(CreateInput{
		Title:   "Anonymous Prompt",
		Content: "content",
		Model:   ModelChatGPT,
		Tags:    []string{"Code"},
	}, nil)

	require.NoError(t, err)
	assert.Empty(t, p.OwnerID)
	assert.Empty(t, p.CreatorName)
}

func TestNew_Validation(t *testing.T) {
	valid := CreateInput{
		Title:   "Title",
		Content: "Content",
		Model:   ModelGemini,
		Tags:    []string{"Writing"},
	}

	tests := []struct {
		name   string
		mutate func(*CreateInput)
	}{
		{"empty title", func(in *CreateInput) { in.Title = "  " }},
		{"empty content", func(in *CreateInput) { in.Content = "" }},
		{"unknown model", func(in *CreateInput) { in.Model = "GPT-9" }},
		{"no tags", func(in *CreateInput) { in.Tags = nil }},
		{"blank tag", func(in *CreateInput) { in.Tags = []string{"Writing", " "} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			in.Tags = append([]string(nil), valid.Tags...)
			tt.mutate(&in)

			_, err := New(in, nil)
			assert.Error(t, err)
		})
	}
}

func TestNewShortCode_Format(t *testing.T) {
	for _, m := range Models() {
		for i := 0; i < 20; i++ {
			code := NewShortCode(m)
			assert.Regexp(t, shortCodePattern, code, "model %s", m)
		}
	}
	assert.Equal(t, "CHA", NewShortCode(ModelChatGPT)[:3])
	assert.Equal(t, "MID", NewShortCode(ModelMidjourney)[:3])
}

func TestApply_MergesOnlySetFields(t *testing.T) {
	orig := &Prompt{
		ID:         "p1",
		Title:      "Original",
		Content:    "Original content",
		Model:      ModelClaude,
		Tags:       []string{"Writing"},
		UsageCount: 3,
	}

	title := "Renamed"
	updated := orig.Apply(Patch{Title: &title})

	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, "Original content", updated.Content)
	assert.Equal(t, 3, updated.UsageCount)
	assert.Equal(t, "Original", orig.Title, "source prompt is untouched")
}

func TestClone_IsDeep(t *testing.T) {
	orig := &Prompt{ID: "p1", Tags: []string{"a", "b"}}
	clone := orig.Clone()
	clone.Tags[0] = "changed"

	assert.Equal(t, "a", orig.Tags[0])
}

func TestModel_Color(t *testing.T) {
	assert.Equal(t, "#3B82F6", ModelChatGPT.Color())
	assert.Equal(t, "#10B981", ModelMidjourney.Color())
	assert.Equal(t, "#8B5CF6", ModelGemini.Color())
	assert.Equal(t, "#F59E0B", ModelClaude.Color())
	assert.Equal(t, "#64748B", Model("Unknown").Color())
}

func TestStarterCatalog(t *testing.T) {
	catalog := StarterCatalog()
	require.Len(t, catalog, 6)

	for _, p := range catalog {
		assert.Equal(t, AuthorSystem, p.Author, "prompt %s", p.ID)
		assert.True(t, p.Model.Valid(), "prompt %s", p.ID)
		assert.NotEmpty(t, p.Tags, "prompt %s", p.ID)
	}

	// Fresh copies every call
	a := StarterCatalog()
	a[0].Title = "mutated"
	b := StarterCatalog()
	assert.NotEqual(t, "mutated", b[0].Title)
}

func TestProfile_DisplayName(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		want    string
	}{
		{"full name wins", Profile{FullName: "Jane Doe", Email: "jane@example.com"}, "Jane Doe"},
		{"email prefix fallback", Profile{Email: "jane@example.com"}, "jane"},
		{"default", Profile{}, "User"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.profile.DisplayName())
		})
	}
}
