// Package providersync drives provider sync runs and manages the
// connections they read from.
package providersync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/CurioSync_Go/internal/dedup"
	"github.com/osse101/CurioSync_Go/internal/domain"
	"github.com/osse101/CurioSync_Go/internal/event"
	"github.com/osse101/CurioSync_Go/internal/ingest"
	"github.com/osse101/CurioSync_Go/internal/logger"
	"github.com/osse101/CurioSync_Go/internal/provider"
	"github.com/osse101/CurioSync_Go/internal/repository"
	"github.com/osse101/CurioSync_Go/internal/vault"
)

// Service defines the interface for provider sync operations
type Service interface {
	// Sync runs one full sync for (userID, providerName). The result is non-nil for
	// every supported provider. Partial and provider-side failures are reported in
	// the result only; a non-nil error means the store itself failed.
	Sync(ctx context.Context, userID, providerName string, opts domain.SyncOptions) (*domain.SyncResult, error)

	SaveConnection(ctx context.Context, userID, providerName string, profile vault.Profile, creds domain.Credentials) (*domain.Connection, error)
	ListConnections(ctx context.Context, userID string) ([]domain.Connection, error)
	ListSyncEnabled(ctx context.Context) ([]domain.Connection, error)
	SetSyncEnabled(ctx context.Context, userID, providerName string, enabled bool) error
	// Disconnect revokes upstream on a best-effort basis, then always deletes the connection
	Disconnect(ctx context.Context, userID, providerName string) error
}

// TokenSource hands out valid access tokens. *token.Manager satisfies it.
type TokenSource interface {
	EnsureValidToken(ctx context.Context, conn *domain.Connection) (string, bool, error)
}

// CredentialStore encrypts and decrypts connection tokens. *vault.Vault satisfies it.
type CredentialStore interface {
	SaveConnection(ctx context.Context, userID, providerName string, profile vault.Profile, creds domain.Credentials) (*domain.Connection, error)
	AccessToken(conn *domain.Connection) (string, error)
}

// TagIndexer links an imported item's tags into the taxonomy. *tagindex.Indexer satisfies it.
type TagIndexer interface {
	IndexItem(ctx context.Context, itemID string, rawTags []string) (int, error)
}

// Config tunes sync pacing and limits
type Config struct {
	MaxItems   int
	ItemDelay  time.Duration
	GroupDelay time.Duration
	PageDelay  time.Duration
	LockTTL    time.Duration
}

// DefaultConfig returns the standard pacing
func DefaultConfig() Config {
	return Config{
		MaxItems:   DefaultMaxItems,
		ItemDelay:  DefaultItemDelay,
		GroupDelay: DefaultGroupDelay,
		PageDelay:  DefaultPageDelay,
		LockTTL:    DefaultLockTTL,
	}
}

// Deps are the collaborators of the sync service. Tags and Bus may be nil.
type Deps struct {
	Connections repository.Connection
	Items       repository.Item
	Locks       repository.SyncLock
	Credentials CredentialStore
	Tokens      TokenSource
	Clients     []provider.Client
	Pipeline    ingest.Pipeline
	Tags        TagIndexer
	Bus         event.Bus
}

type service struct {
	connections repository.Connection
	items       repository.Item
	locks       repository.SyncLock
	creds       CredentialStore
	tokens      TokenSource
	clients     map[string]provider.Client
	guards      map[string]*dedup.Guard
	pipeline    ingest.Pipeline
	tags        TagIndexer
	bus         event.Bus
	cfg         Config
	sleep       provider.SleepFunc
	now         func() time.Time
}

// NewService creates a new sync service
func NewService(deps Deps, cfg Config) Service {
	defaults := DefaultConfig()
	if cfg.MaxItems <= 0 {
		cfg.MaxItems = defaults.MaxItems
	}
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = defaults.LockTTL
	}

	s := &service{
		connections: deps.Connections,
		items:       deps.Items,
		locks:       deps.Locks,
		creds:       deps.Credentials,
		tokens:      deps.Tokens,
		clients:     make(map[string]provider.Client, len(deps.Clients)),
		guards:      make(map[string]*dedup.Guard, len(deps.Clients)),
		pipeline:    deps.Pipeline,
		tags:        deps.Tags,
		bus:         deps.Bus,
		cfg:         cfg,
		sleep:       provider.Sleep,
		now:         time.Now,
	}
	for _, c := range deps.Clients {
		s.clients[c.Name()] = c
		s.guards[c.Name()] = dedup.NewGuard(deps.Items, c.Name())
	}
	return s
}

func (s *service) client(providerName string) (provider.Client, error) {
	c, ok := s.clients[providerName]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidProvider, providerName)
	}
	return c, nil
}

func (s *service) SaveConnection(ctx context.Context, userID, providerName string, profile vault.Profile, creds domain.Credentials) (*domain.Connection, error) {
	if _, err := s.client(providerName); err != nil {
		return nil, err
	}
	conn, err := s.creds.SaveConnection(ctx, userID, providerName, profile, creds)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info(LogMsgConnectionSaved, "user_id", userID, "provider", providerName)
	return conn, nil
}

func (s *service) ListConnections(ctx context.Context, userID string) ([]domain.Connection, error) {
	return s.connections.ListConnections(ctx, userID)
}

func (s *service) ListSyncEnabled(ctx context.Context) ([]domain.Connection, error) {
	return s.connections.ListSyncEnabledConnections(ctx)
}

func (s *service) SetSyncEnabled(ctx context.Context, userID, providerName string, enabled bool) error {
	if _, err := s.client(providerName); err != nil {
		return err
	}
	return s.connections.SetSyncEnabled(ctx, userID, providerName, enabled)
}

func (s *service) Disconnect(ctx context.Context, userID, providerName string) error {
	log := logger.FromContext(ctx)

	client, err := s.client(providerName)
	if err != nil {
		return err
	}

	conn, err := s.connections.GetConnection(ctx, userID, providerName)
	if err != nil {
		return err
	}

	revoked := false
	accessToken, err := s.creds.AccessToken(conn)
	if err == nil {
		err = client.Revoke(ctx, accessToken)
	}
	if err != nil {
		log.Warn(LogMsgRevokeFailed, "provider", providerName, "error", err)
	} else {
		revoked = true
	}

	if err := s.connections.DeleteConnection(ctx, userID, providerName); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgDeleteFailed, err)
	}

	log.Info(LogMsgConnectionRemoved, "user_id", userID, "provider", providerName, "revoked", revoked)
	s.publish(ctx, event.NewConnectionRemovedEvent(userID, providerName, revoked))
	return nil
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgEventPublishFailed, "event_type", evt.Type, "error", err)
	}
}

// storeError marks failures of the store itself, which propagate to the caller
type storeError struct {
	err error
}

func (e *storeError) Error() string { return e.err.Error() }
func (e *storeError) Unwrap() error { return e.err }

func isStoreError(err error) bool {
	var se *storeError
	return errors.As(err, &se)
}
