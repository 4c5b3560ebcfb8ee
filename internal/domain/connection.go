package domain

import "time"

// Connection is a user's link to one provider. At most one exists per (user, provider).
// Token fields hold ciphertext; only the token vault sees plaintext.
type Connection struct {
	ID               string     `json:"id"`
	UserID           string     `json:"user_id"`
	Provider         string     `json:"provider"`
	ProviderUserID   string     `json:"provider_user_id"`
	ProviderUsername string     `json:"provider_username"`
	AccessToken      string     `json:"-"`
	RefreshToken     string     `json:"-"`
	TokenExpiresAt   *time.Time `json:"token_expires_at,omitempty"`
	SyncEnabled      bool       `json:"sync_enabled"`
	LastSyncAt       *time.Time `json:"last_sync_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// HasRefreshToken reports whether an encrypted refresh token is stored
func (c *Connection) HasRefreshToken() bool {
	return c.RefreshToken != ""
}

// Credentials is the plaintext token set handed over when an OAuth flow completes
type Credentials struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    *time.Time
}
