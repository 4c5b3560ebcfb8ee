package bootstrap

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/osse101/CurioSync_Go/internal/audit"
	"github.com/osse101/CurioSync_Go/internal/config"
	"github.com/osse101/CurioSync_Go/internal/domain"
	"github.com/osse101/CurioSync_Go/internal/event"
	"github.com/osse101/CurioSync_Go/internal/ingest"
	"github.com/osse101/CurioSync_Go/internal/provider"
	"github.com/osse101/CurioSync_Go/internal/provider/pinterest"
	"github.com/osse101/CurioSync_Go/internal/provider/twitter"
	"github.com/osse101/CurioSync_Go/internal/providersync"
	"github.com/osse101/CurioSync_Go/internal/tagindex"
	"github.com/osse101/CurioSync_Go/internal/token"
	"github.com/osse101/CurioSync_Go/internal/vault"
)

// Services holds the wired application services
type Services struct {
	Vault  *vault.Vault
	Tokens *token.Manager
	Tags   *tagindex.Indexer
	Sync   providersync.Service
	Audit  audit.Service
}

// InitializeServices builds the credential vault, token manager, provider
// clients and the sync and audit services on top of repos. A provider without
// an OAuth client id still syncs, but its tokens cannot be refreshed.
func InitializeServices(cfg *config.Config, repos *Repositories, bus event.Bus) (*Services, error) {
	cipher, err := vault.NewAESGCM(cfg.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateCipher, err)
	}
	credentialVault := vault.New(repos.Connections, cipher)

	providerHTTP := &http.Client{Timeout: ProviderHTTPTimeout}

	clients := []provider.Client{
		twitter.New(twitter.Config{
			BaseURL:      cfg.Twitter.APIBaseURL,
			RevokeURL:    cfg.Twitter.RevokeURL,
			ClientID:     cfg.Twitter.ClientID,
			ClientSecret: cfg.Twitter.ClientSecret,
		}, providerHTTP),
		pinterest.New(pinterest.Config{BaseURL: cfg.Pinterest.APIBaseURL}, providerHTTP, cfg.Sync.PageDelay),
	}

	oauthClients := make(map[string]token.ClientConfig)
	for name, pc := range map[string]config.ProviderConfig{
		domain.ProviderTwitter:   cfg.Twitter,
		domain.ProviderPinterest: cfg.Pinterest,
	} {
		if pc.ClientID == "" {
			slog.Warn(LogMsgRefreshDisabled, "provider", name)
			continue
		}
		oauthClients[name] = token.ClientConfig{
			ClientID:     pc.ClientID,
			ClientSecret: pc.ClientSecret,
			TokenURL:     pc.TokenURL,
		}
	}

	tokens := token.NewManager(credentialVault, token.NewOAuth2Refresher(oauthClients, providerHTTP), bus)
	indexer := tagindex.New(repos.Tags, tagindex.DefaultCacheSize, tagindex.DefaultCacheTTL)
	pipeline := ingest.NewClient(cfg.IngestURL, cfg.IngestAPIKey, &http.Client{Timeout: IngestHTTPTimeout})

	syncService := providersync.NewService(providersync.Deps{
		Connections: repos.Connections,
		Items:       repos.Items,
		Locks:       repos.Locks,
		Credentials: credentialVault,
		Tokens:      tokens,
		Clients:     clients,
		Pipeline:    pipeline,
		Tags:        indexer,
		Bus:         bus,
	}, providersync.Config{
		MaxItems:   cfg.Sync.MaxItems,
		ItemDelay:  cfg.Sync.ItemDelay,
		GroupDelay: cfg.Sync.GroupDelay,
		PageDelay:  cfg.Sync.PageDelay,
		LockTTL:    cfg.Sync.LockTTL,
	})

	auditService := audit.NewService(repos.Tags, repos.Items, bus, providersync.NotePrefixes())

	slog.Info(LogMsgServicesInitialized, "providers", len(clients), "refreshable", len(oauthClients))

	return &Services{
		Vault:  credentialVault,
		Tokens: tokens,
		Tags:   indexer,
		Sync:   syncService,
		Audit:  auditService,
	}, nil
}
