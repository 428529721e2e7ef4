package prompt

import (
	"strings"
	"time"
)

// Tier is the subscription level of a user
type Tier string

const (
	TierFree  Tier = "free"
	TierPro   Tier = "pro"
	TierAdmin Tier = "admin"
)

// Profile is the authenticated operator of a workspace.
//
// Column names follow the profiles table.
type Profile struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	FullName         string    `json:"full_name,omitempty"`
	AvatarURL        string    `json:"avatar_url,omitempty"`
	TotalUsage       int       `json:"total_usage"`
	SubscriptionTier Tier      `json:"subscription_tier"`
	CreatedAt        time.Time `json:"created_at"`
}

// DisplayName returns the best human-facing name for the user
func (p *Profile) DisplayName() string {
	if p.FullName != "" {
		return p.FullName
	}
	if at := strings.Index(p.Email, "@"); at > 0 {
		return p.Email[:at]
	}
	return "User"
}

// Clone returns a copy of the profile
func (p *Profile) Clone() *Profile {
	out := *p
	return &out
}

// ProfilePatch is a partial update to a profile; nil fields are unchanged
type ProfilePatch struct {
	FullName         *string `json:"full_name,omitempty"`
	AvatarURL        *string `json:"avatar_url,omitempty"`
	TotalUsage       *int    `json:"total_usage,omitempty"`
	SubscriptionTier *Tier   `json:"subscription_tier,omitempty"`
}

// Apply merges the patch into a copy of the profile and returns it
func (p *Profile) Apply(patch ProfilePatch) *Profile {
	out := p.Clone()
	if patch.FullName != nil {
		out.FullName = *patch.FullName
	}
	if patch.AvatarURL != nil {
		out.AvatarURL = *patch.AvatarURL
	}
	if patch.TotalUsage != nil {
		out.TotalUsage = *patch.TotalUsage
	}
	if patch.SubscriptionTier != nil {
		out.SubscriptionTier = *patch.SubscriptionTier
	}
	return out
}
