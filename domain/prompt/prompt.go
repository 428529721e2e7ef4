package prompt

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/lasersoldier/MuseMemo/pkg/errors"
)

// Authorship distinguishes built-in catalog prompts from user-created ones
type Authorship string

const (
	AuthorSystem Authorship = "system"
	AuthorUser   Authorship = "user"
)

// Prompt is a reusable instruction template for an AI model.
//
// Field names mirror the persisted column names so records round-trip
// through the gateway unchanged.
type Prompt struct {
	ID             string     `json:"id"`
	ShortCode      string     `json:"shortId"`
	Title          string     `json:"title"`
	Content        string     `json:"content"`
	Model          Model      `json:"model"`
	Tags           []string   `json:"tags"`
	UsageCount     int        `json:"usageCount"`
	IsFavorite     bool       `json:"isFavorite"`
	CreatedAt      time.Time  `json:"createdAt"`
	LastUsed       time.Time  `json:"lastUsed"`
	Author         Authorship `json:"author"`
	CreatorName    string     `json:"creatorName,omitempty"`
	Description    string     `json:"description,omitempty"`
	SampleResponse string     `json:"sampleResponse,omitempty"`
	OwnerID        string     `json:"userId,omitempty"`
}

// CreateInput carries the caller-supplied fields for a new prompt
type CreateInput struct {
	Title          string
	Content        string
	Model          Model
	Tags           []string
	Description    string
	SampleResponse string
}

// New creates a user-authored prompt from input, stamping identity,
// short code and initial flags. The creator fields come from the active
// profile; owner may be nil when running without a session.
func New(input CreateInput, owner *Profile) (*Prompt, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, pkgerrors.NewValidationError("title cannot be empty")
	}
	if strings.TrimSpace(input.Content) == "" {
		return nil, pkgerrors.NewValidationError("content cannot be empty")
	}
	if !input.Model.Valid() {
		return nil, pkgerrors.NewValidationError(fmt.Sprintf("unknown model: %s", input.Model))
	}
	if len(input.Tags) == 0 {
		return nil, pkgerrors.NewValidationError("at least one tag is required")
	}
	for _, tag := range input.Tags {
		if strings.TrimSpace(tag) == "" {
			return nil, pkgerrors.NewValidationError("tags cannot be empty")
		}
	}

	now := time.Now().UTC()
	p := &Prompt{
		ID:             uuid.NewString(),
		ShortCode:      NewShortCode(input.Model),
		Title:          input.Title,
		Content:        input.Content,
		Model:          input.Model,
		Tags:           append([]string(nil), input.Tags...),
		UsageCount:     0,
		IsFavorite:     true,
		CreatedAt:      now,
		LastUsed:       now,
		Author:         AuthorUser,
		Description:    input.Description,
		SampleResponse: input.SampleResponse,
	}
	if owner != nil {
		p.OwnerID = owner.ID
		p.CreatorName = owner.DisplayName()
	}
	return p, nil
}

// NewShortCode derives the cosmetic short code for a model, e.g. "CHA-4821".
// Codes are labels, not identifiers; collisions are not checked.
func NewShortCode(model Model) string {
	name := model.String()
	if len(name) > 3 {
		name = name[:3]
	}
	suffix := 1000 + rand.Intn(9000)
	return fmt.Sprintf("%s-%d", strings.ToUpper(name), suffix)
}

// Patch is a partial update to a prompt; nil fields are left unchanged
type Patch struct {
	Title          *string    `json:"title,omitempty"`
	Content        *string    `json:"content,omitempty"`
	Model          *Model     `json:"model,omitempty"`
	Tags           *[]string  `json:"tags,omitempty"`
	UsageCount     *int       `json:"usageCount,omitempty"`
	IsFavorite     *bool      `json:"isFavorite,omitempty"`
	LastUsed       *time.Time `json:"lastUsed,omitempty"`
	CreatorName    *string    `json:"creatorName,omitempty"`
	Description    *string    `json:"description,omitempty"`
	SampleResponse *string    `json:"sampleResponse,omitempty"`
	OwnerID        *string    `json:"userId,omitempty"`
}

// Apply merges the patch into a copy of the prompt and returns it
func (p *Prompt) Apply(patch Patch) *Prompt {
	out := p.Clone()
	if patch.Title != nil {
		out.Title = *patch.Title
	}
	if patch.Content != nil {
		out.Content = *patch.Content
	}
	if patch.Model != nil {
		out.Model = *patch.Model
	}
	if patch.Tags != nil {
		out.Tags = append([]string(nil), *patch.Tags...)
	}
	if patch.UsageCount != nil {
		out.UsageCount = *patch.UsageCount
	}
	if patch.IsFavorite != nil {
		out.IsFavorite = *patch.IsFavorite
	}
	if patch.LastUsed != nil {
		out.LastUsed = *patch.LastUsed
	}
	if patch.CreatorName != nil {
		out.CreatorName = *patch.CreatorName
	}
	if patch.Description != nil {
		out.Description = *patch.Description
	}
	if patch.SampleResponse != nil {
		out.SampleResponse = *patch.SampleResponse
	}
	if patch.OwnerID != nil {
		out.OwnerID = *patch.OwnerID
	}
	return out
}

// Clone returns a deep copy of the prompt
func (p *Prompt) Clone() *Prompt {
	out := *p
	out.Tags = append([]string(nil), p.Tags...)
	return &out
}

// HasTag reports whether the prompt carries the given tag
func (p *Prompt) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
