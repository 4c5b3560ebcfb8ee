package providersync

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/CurioSync_Go/internal/domain"
	"github.com/osse101/CurioSync_Go/internal/ingest"
	"github.com/osse101/CurioSync_Go/internal/provider"
	"github.com/osse101/CurioSync_Go/internal/taxonomy"
	"github.com/osse101/CurioSync_Go/internal/vault"
)

// fakeConnections is an in-memory repository.Connection
type fakeConnections struct {
	mu        sync.Mutex
	conns     map[string]*domain.Connection
	lastSync  map[string]time.Time
	getErr    error
	deleted   []string
	updateErr error
}

func newFakeConnections(conns ...*domain.Connection) *fakeConnections {
	f := &fakeConnections{conns: map[string]*domain.Connection{}, lastSync: map[string]time.Time{}}
	for _, c := range conns {
		f.conns[c.UserID+"|"+c.Provider] = c
	}
	return f
}

func (f *fakeConnections) GetConnection(ctx context.Context, userID, providerName string) (*domain.Connection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	c, ok := f.conns[userID+"|"+providerName]
	if !ok {
		return nil, domain.ErrConnectionNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeConnections) ListConnections(ctx context.Context, userID string) ([]domain.Connection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Connection
	for _, c := range f.conns {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeConnections) ListSyncEnabledConnections(ctx context.Context) ([]domain.Connection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Connection
	for _, c := range f.conns {
		if c.SyncEnabled {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeConnections) UpsertConnection(ctx context.Context, conn *domain.Connection) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.conns[conn.UserID+"|"+conn.Provider] = conn
	return nil
}

func (f *fakeConnections) UpdateTokens(ctx context.Context, connectionID, accessToken, refreshToken string, expiresAt *time.Time) error {
	return nil
}

func (f *fakeConnections) UpdateLastSync(ctx context.Context, connectionID string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	f.lastSync[connectionID] = at
	return nil
}

func (f *fakeConnections) SetSyncEnabled(ctx context.Context, userID, providerName string, enabled bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.conns[userID+"|"+providerName]
	if !ok {
		return domain.ErrConnectionNotFound
	}
	c.SyncEnabled = enabled
	return nil
}

func (f *fakeConnections) DeleteConnection(ctx context.Context, userID, providerName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.conns, userID+"|"+providerName)
	f.deleted = append(f.deleted, userID+"|"+providerName)
	return nil
}

// fakeItems is an in-memory repository.Item keyed by provenance
type fakeItems struct {
	mu         sync.Mutex
	provenance map[string]string // user|source|external -> item id
	owners     map[string]string // item id -> user
	attached   map[string]domain.Provenance
	existsErr  error
	attachErr  error
}

func newFakeItems() *fakeItems {
	return &fakeItems{
		provenance: map[string]string{},
		owners:     map[string]string{},
		attached:   map[string]domain.Provenance{},
	}
}

func (f *fakeItems) ExistsByExternalID(ctx context.Context, userID, source, externalID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.existsErr != nil {
		return false, f.existsErr
	}
	_, ok := f.provenance[userID+"|"+source+"|"+externalID]
	return ok, nil
}

func (f *fakeItems) AttachProvenance(ctx context.Context, itemID string, p domain.Provenance) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.attachErr != nil {
		return f.attachErr
	}
	f.attached[itemID] = p
	f.provenance[f.owners[itemID]+"|"+p.Source+"|"+p.ExternalID] = itemID
	return nil
}

func (f *fakeItems) GetItem(ctx context.Context, itemID string) (*domain.Item, error) {
	return nil, domain.ErrItemNotFound
}

func (f *fakeItems) DomainCounts(ctx context.Context, userID string) ([]taxonomy.DomainCount, error) {
	return nil, nil
}

func (f *fakeItems) attachedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.attached)
}

// fakeLocks is an in-memory repository.SyncLock
type fakeLocks struct {
	mu       sync.Mutex
	held     map[string]string
	acquired int
	released int
	err      error
}

func newFakeLocks() *fakeLocks {
	return &fakeLocks{held: map[string]string{}}
}

func (f *fakeLocks) AcquireSyncLock(ctx context.Context, userID, providerName, runID string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	key := userID + "|" + providerName
	if owner, ok := f.held[key]; ok && owner != runID {
		return domain.ErrSyncInProgress
	}
	f.held[key] = runID
	f.acquired++
	return nil
}

func (f *fakeLocks) ReleaseSyncLock(ctx context.Context, userID, providerName, runID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := userID + "|" + providerName
	if f.held[key] == runID {
		delete(f.held, key)
	}
	f.released++
	return nil
}

// fakeTokens hands out a fixed token or error
type fakeTokens struct {
	token string
	err   error
	calls int
}

func (f *fakeTokens) EnsureValidToken(ctx context.Context, conn *domain.Connection) (string, bool, error) {
	f.calls++
	if f.err != nil {
		return "", false, f.err
	}
	return f.token, false, nil
}

// fakeCreds satisfies CredentialStore
type fakeCreds struct {
	accessErr error
	saved     []string
}

func (f *fakeCreds) SaveConnection(ctx context.Context, userID, providerName string, profile vault.Profile, creds domain.Credentials) (*domain.Connection, error) {
	f.saved = append(f.saved, userID+"|"+providerName)
	return &domain.Connection{UserID: userID, Provider: providerName, ProviderUserID: profile.ProviderUserID, SyncEnabled: true}, nil
}

func (f *fakeCreds) AccessToken(conn *domain.Connection) (string, error) {
	if f.accessErr != nil {
		return "", f.accessErr
	}
	return "plain-access", nil
}

// fakeClient serves pages per group keyed by cursor
type fakeClient struct {
	name      string
	groups    []provider.Group
	pages     map[string]map[string]*provider.Page
	groupsErr error
	fetchErr  error
	revokeErr error
	revoked   []string
	fetches   int
	panicOn   string
}

func (f *fakeClient) Name() string { return f.name }

func (f *fakeClient) ListGroups(ctx context.Context, accessToken, providerUserID string) ([]provider.Group, error) {
	if f.groupsErr != nil {
		return nil, f.groupsErr
	}
	return f.groups, nil
}

func (f *fakeClient) FetchPage(ctx context.Context, req provider.PageRequest) (*provider.Page, error) {
	f.fetches++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	if req.Group.ID == f.panicOn {
		panic("malformed payload")
	}
	page, ok := f.pages[req.Group.ID][req.Cursor]
	if !ok {
		return &provider.Page{}, nil
	}
	return page, nil
}

func (f *fakeClient) Revoke(ctx context.Context, accessToken string) error {
	f.revoked = append(f.revoked, accessToken)
	return f.revokeErr
}

// fakePipeline creates an item per call, failing for URLs in failURLs
type fakePipeline struct {
	mu       sync.Mutex
	items    *fakeItems
	userID   string
	calls    []ingest.Request
	failURLs map[string]string
	errURLs  map[string]error
	tags     []string
	nextID   int
}

func (f *fakePipeline) Process(ctx context.Context, req ingest.Request) (*ingest.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)

	if err, ok := f.errURLs[req.URL]; ok {
		return nil, err
	}

	f.nextID++
	item := &domain.Item{ID: fmt.Sprintf("item-%d", f.nextID), UserID: req.UserID, URL: req.URL, Note: req.Note, Tags: f.tags}
	f.items.mu.Lock()
	f.items.owners[item.ID] = req.UserID
	f.items.mu.Unlock()

	if reason, ok := f.failURLs[req.URL]; ok {
		return &ingest.Result{Success: false, Error: reason, Item: item}, nil
	}
	return &ingest.Result{Success: true, Item: item}, nil
}

func (f *fakePipeline) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// fakeTagger records indexing calls
type fakeTagger struct {
	indexed map[string][]string
	err     error
}

func (f *fakeTagger) IndexItem(ctx context.Context, itemID string, rawTags []string) (int, error) {
	if f.indexed == nil {
		f.indexed = map[string][]string{}
	}
	f.indexed[itemID] = rawTags
	return len(rawTags), f.err
}

var errStoreDown = errors.New("store unreachable")
