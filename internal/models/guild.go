package models

// GuildSettings holds per-community configuration. One record per guild,
// created lazily on first read.
type GuildSettings struct {
	// NarratorRoleID is the guild role a member must hold to become narrator.
	// Empty until configured with setnarratorrole.
	NarratorRoleID string `json:"narrator_role_id,omitempty"`
}
