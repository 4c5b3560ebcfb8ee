// Package vault keeps provider credentials encrypted at rest.
// Plaintext tokens exist only in values returned by this package.
package vault

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/CurioSync_Go/internal/domain"
	"github.com/osse101/CurioSync_Go/internal/logger"
	"github.com/osse101/CurioSync_Go/internal/repository"
)

// Vault wraps connection storage with decrypt-on-read and encrypt-on-write
type Vault struct {
	repo   repository.Connection
	cipher Cipher
}

// New creates a vault over the given connection repository
func New(repo repository.Connection, cipher Cipher) *Vault {
	return &Vault{repo: repo, cipher: cipher}
}

// Profile is the provider-side identity captured when an OAuth flow completes
type Profile struct {
	ProviderUserID   string
	ProviderUsername string
}

// Load returns the stored connection with its tokens still encrypted
func (v *Vault) Load(ctx context.Context, userID, provider string) (*domain.Connection, error) {
	return v.repo.GetConnection(ctx, userID, provider)
}

// SaveConnection encrypts creds and upserts the (user, provider) connection
func (v *Vault) SaveConnection(ctx context.Context, userID, provider string, profile Profile, creds domain.Credentials) (*domain.Connection, error) {
	access, refresh, err := v.encryptPair(creds)
	if err != nil {
		return nil, err
	}

	conn := &domain.Connection{
		UserID:           userID,
		Provider:         provider,
		ProviderUserID:   profile.ProviderUserID,
		ProviderUsername: profile.ProviderUsername,
		AccessToken:      access,
		RefreshToken:     refresh,
		TokenExpiresAt:   creds.ExpiresAt,
		SyncEnabled:      true,
	}
	if err := v.repo.UpsertConnection(ctx, conn); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgSaveConnectionFailed, err)
	}

	logger.FromContext(ctx).Info(LogMsgConnectionSaved, "user_id", userID, "provider", provider)
	return conn, nil
}

// AccessToken decrypts the stored access token
func (v *Vault) AccessToken(conn *domain.Connection) (string, error) {
	token, err := v.cipher.Decrypt(conn.AccessToken)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrMsgDecryptTokenFailed, err)
	}
	return token, nil
}

// RefreshToken decrypts the stored refresh token, returning "" when none is stored
func (v *Vault) RefreshToken(conn *domain.Connection) (string, error) {
	if !conn.HasRefreshToken() {
		return "", nil
	}
	token, err := v.cipher.Decrypt(conn.RefreshToken)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrMsgDecryptTokenFailed, err)
	}
	return token, nil
}

// StoreTokens encrypts creds, persists them on the connection row and updates conn in place.
func (v *Vault) StoreTokens(ctx context.Context, conn *domain.Connection, creds domain.Credentials) error {
	access, refresh, err := v.encryptPair(creds)
	if err != nil {
		return err
	}

	if err := v.repo.UpdateTokens(ctx, conn.ID, access, refresh, creds.ExpiresAt); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgStoreTokensFailed, err)
	}

	conn.AccessToken = access
	conn.RefreshToken = refresh
	conn.TokenExpiresAt = creds.ExpiresAt
	conn.UpdatedAt = time.Now()

	logger.FromContext(ctx).Debug(LogMsgTokensStored, "connection_id", conn.ID, "provider", conn.Provider)
	return nil
}

func (v *Vault) encryptPair(creds domain.Credentials) (string, string, error) {
	access, err := v.cipher.Encrypt(creds.AccessToken)
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", ErrMsgEncryptTokenFailed, err)
	}

	var refresh string
	if creds.RefreshToken != "" {
		refresh, err = v.cipher.Encrypt(creds.RefreshToken)
		if err != nil {
			return "", "", fmt.Errorf("%s: %w", ErrMsgEncryptTokenFailed, err)
		}
	}
	return access, refresh, nil
}
