package providersync

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/osse101/CurioSync_Go/internal/domain"
	"github.com/osse101/CurioSync_Go/internal/event"
	"github.com/osse101/CurioSync_Go/internal/ingest"
	"github.com/osse101/CurioSync_Go/internal/logger"
	"github.com/osse101/CurioSync_Go/internal/provider"
)

// run is the state of one sync invocation. Runs are strictly sequential.
type run struct {
	svc      *service
	client   provider.Client
	userID   string
	opts     domain.SyncOptions
	result   *domain.SyncResult
	conn     *domain.Connection
	token    string
	seen     map[string]struct{}
	imported int // pipeline calls made, used for item pacing
}

// Sync implements Service
func (s *service) Sync(ctx context.Context, userID, providerName string, opts domain.SyncOptions) (*domain.SyncResult, error) {
	client, err := s.client(providerName)
	if err != nil {
		return nil, err
	}
	if opts.MaxItems <= 0 {
		opts.MaxItems = s.cfg.MaxItems
	}

	r := &run{
		svc:    s,
		client: client,
		userID: userID,
		opts:   opts,
		seen:   make(map[string]struct{}),
		result: &domain.SyncResult{
			RunID:     uuid.NewString(),
			Provider:  providerName,
			Errors:    []string{},
			State:     domain.SyncStateInit,
			StartedAt: s.now(),
		},
	}
	ctx = logger.WithSyncRun(ctx, r.result.RunID, userID, providerName)

	err = r.execute(ctx)

	r.result.FinishedAt = s.now()
	s.publish(ctx, event.NewSyncCompletedEvent(r.result.RunID, userID, providerName, r.result.Success,
		r.result.Synced, r.result.Skipped, r.result.Failed, r.result.FinishedAt.Sub(r.result.StartedAt)))

	return r.result, err
}

// execute walks the state machine. Only store failures are returned; every
// other problem ends the run in the aborted state with its reason recorded.
func (r *run) execute(ctx context.Context) (err error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgSyncStarted, "max_items", r.opts.MaxItems, "groups", r.opts.Groups)

	defer func() {
		if rec := recover(); rec != nil {
			r.abort(ctx, fmt.Sprintf("%s: %v", ErrMsgUnexpected, rec))
			err = nil
		}
	}()

	acquired, err := r.acquireLock(ctx)
	if err != nil || !acquired {
		return err
	}
	defer r.releaseLock(ctx)

	r.transition(ctx, domain.SyncStateFetchingConnection)
	if ok, err := r.loadConnection(ctx); !ok {
		return err
	}

	token, _, err := r.svc.tokens.EnsureValidToken(ctx, r.conn)
	if err != nil {
		r.abort(ctx, fmt.Sprintf("%s: %v", ErrMsgTokenUnavailable, err))
		return nil
	}
	r.token = token

	r.transition(ctx, domain.SyncStateFetchingPages)
	groups, err := r.client.ListGroups(ctx, r.token, r.conn.ProviderUserID)
	if err != nil {
		r.abort(ctx, fmt.Sprintf("%s: %v", ErrMsgListGroupsFailed, err))
		return nil
	}
	groups = filterGroups(groups, r.opts.Groups)
	if len(groups) == 0 {
		r.abort(ctx, domain.ErrMsgNoGroups)
		return nil
	}

	if err := r.walkGroups(ctx, groups); err != nil {
		r.abort(ctx, fmt.Sprintf("%s: %v", ErrMsgFetchItemsFailed, err))
		if isStoreError(err) {
			return err
		}
		return nil
	}

	r.transition(ctx, domain.SyncStateFinalizing)
	if err := r.svc.connections.UpdateLastSync(ctx, r.conn.ID, r.svc.now()); err != nil {
		r.abort(ctx, fmt.Sprintf("%s: %v", ErrMsgUpdateLastSyncFailed, err))
		return fmt.Errorf("%s: %w", ErrMsgUpdateLastSyncFailed, err)
	}

	r.result.Success = true
	r.transition(ctx, domain.SyncStateDone)
	log.Info(LogMsgSyncFinished,
		"synced", r.result.Synced,
		"skipped", r.result.Skipped,
		"failed", r.result.Failed)
	return nil
}

func (r *run) acquireLock(ctx context.Context) (bool, error) {
	err := r.svc.locks.AcquireSyncLock(ctx, r.userID, r.result.Provider, r.result.RunID, r.svc.cfg.LockTTL)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, domain.ErrSyncInProgress):
		r.abort(ctx, domain.ErrMsgSyncInProgress)
		return false, nil
	default:
		r.abort(ctx, fmt.Sprintf("%s: %v", ErrMsgAcquireLockFailed, err))
		return false, fmt.Errorf("%s: %w", ErrMsgAcquireLockFailed, err)
	}
}

func (r *run) releaseLock(ctx context.Context) {
	// The run's context may be cancelled; the lease must still be dropped
	ctx = context.WithoutCancel(ctx)
	if err := r.svc.locks.ReleaseSyncLock(ctx, r.userID, r.result.Provider, r.result.RunID); err != nil {
		logger.FromContext(ctx).Warn(LogMsgLockReleaseFailed, "error", err)
	}
}

func (r *run) loadConnection(ctx context.Context) (bool, error) {
	conn, err := r.svc.connections.GetConnection(ctx, r.userID, r.result.Provider)
	switch {
	case errors.Is(err, domain.ErrConnectionNotFound):
		r.abort(ctx, fmt.Sprintf("%s: %s", r.result.Provider, domain.ErrMsgConnectionNotFound))
		return false, nil
	case err != nil:
		r.abort(ctx, fmt.Sprintf("%s: %v", ErrMsgLoadConnectionFailed, err))
		return false, fmt.Errorf("%s: %w", ErrMsgLoadConnectionFailed, err)
	case !conn.SyncEnabled:
		r.abort(ctx, fmt.Sprintf("%s: %s", r.result.Provider, domain.ErrMsgSyncDisabled))
		return false, nil
	}
	r.conn = conn
	return true, nil
}

// walkGroups shares one item budget across all groups and stops enumerating
// groups once it is spent.
func (r *run) walkGroups(ctx context.Context, groups []provider.Group) error {
	pager := provider.NewPager(r.client, r.svc.cfg.PageDelay, r.svc.sleep)
	remaining := r.opts.MaxItems

	for i, group := range groups {
		if remaining <= 0 {
			break
		}
		if i > 0 {
			if err := r.svc.sleep(ctx, r.svc.cfg.GroupDelay); err != nil {
				return err
			}
		}

		req := provider.PageRequest{
			AccessToken:    r.token,
			ProviderUserID: r.conn.ProviderUserID,
			Group:          group,
		}
		visited, err := pager.Walk(ctx, req, remaining, r.importItem)
		remaining -= visited
		if err != nil {
			return err
		}
	}
	return nil
}

// importItem handles one provider item. Pipeline failures are recorded and
// isolated; only lookup and context errors stop the walk.
func (r *run) importItem(ctx context.Context, item provider.Item) error {
	r.transition(ctx, domain.SyncStateImportingItem)
	log := logger.FromContext(ctx)

	if _, dup := r.seen[item.ExternalID]; dup {
		r.result.Skipped++
		log.Debug(LogMsgItemSkipped, "external_id", item.ExternalID)
		return nil
	}
	r.seen[item.ExternalID] = struct{}{}

	imported, err := r.svc.guards[r.result.Provider].IsImported(ctx, r.userID, item.ExternalID)
	if err != nil {
		return &storeError{err: fmt.Errorf("%s: %w", ErrMsgDedupFailed, err)}
	}
	if imported {
		r.result.Skipped++
		log.Debug(LogMsgItemSkipped, "external_id", item.ExternalID)
		return nil
	}

	if r.imported > 0 {
		if err := r.svc.sleep(ctx, r.svc.cfg.ItemDelay); err != nil {
			return err
		}
	}
	r.imported++

	res, err := r.svc.pipeline.Process(ctx, ingest.Request{
		URL:    importURL(item),
		Note:   noteFor(r.result.Provider, item),
		UserID: r.userID,
		PreExtracted: &ingest.PreExtracted{
			Title:       item.Title,
			Description: item.Description,
			ImageURL:    item.MediaURL,
			AltText:     item.AltText,
		},
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		r.recordFailure(ctx, item, err.Error())
		return nil
	}

	if res.Item != nil {
		r.attachProvenance(ctx, item, res)
	}

	if !res.Success {
		reason := res.Error
		if reason == "" {
			reason = ErrMsgPipelineFailed
		}
		r.recordFailure(ctx, item, reason)
		return nil
	}

	r.result.Synced++
	log.Debug(LogMsgItemImported, "external_id", item.ExternalID)

	if r.svc.tags != nil && res.Item != nil {
		if _, err := r.svc.tags.IndexItem(ctx, res.Item.ID, res.Item.Tags); err != nil {
			log.Warn(LogMsgTagIndexFailed, "item_id", res.Item.ID, "error", err)
		}
	}
	return nil
}

// attachProvenance tags the pipeline's item with where it came from, whether or
// not the pipeline succeeded, so it is never fetched again.
func (r *run) attachProvenance(ctx context.Context, item provider.Item, res *ingest.Result) {
	meta := domain.ImportMetadata{
		Provider:          r.result.Provider,
		GroupID:           item.GroupID,
		GroupName:         item.GroupName,
		Permalink:         item.Permalink,
		MediaURL:          item.MediaURL,
		ImageOnly:         item.Link == "",
		DestinationURL:    item.Link,
		AltText:           item.AltText,
		AuthorHandle:      item.AuthorHandle,
		ExternalCreatedAt: item.CreatedAt,
		ImportedAt:        r.svc.now(),
	}
	if !res.Success {
		meta.PipelineError = res.Error
	}

	err := r.svc.items.AttachProvenance(ctx, res.Item.ID, domain.Provenance{
		Source:     r.result.Provider,
		ExternalID: item.ExternalID,
		Metadata:   meta,
	})
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgAttachFailed, "item_id", res.Item.ID, "external_id", item.ExternalID, "error", err)
		r.result.Errors = append(r.result.Errors, fmt.Sprintf("%s %s: %s: %v", r.result.Provider, item.ExternalID, ErrMsgAttachFailed, err))
	}
}

func (r *run) recordFailure(ctx context.Context, item provider.Item, reason string) {
	r.result.Failed++
	r.result.Errors = append(r.result.Errors, fmt.Sprintf("%s %s: %s", r.result.Provider, item.ExternalID, reason))
	logger.FromContext(ctx).Warn(LogMsgItemFailed, "external_id", item.ExternalID, "error", reason)
}

func (r *run) transition(ctx context.Context, to domain.SyncState) {
	if r.result.State == to {
		return
	}
	logger.FromContext(ctx).Debug(LogMsgStateChanged, "from", r.result.State, "to", to)
	r.result.State = to
}

func (r *run) abort(ctx context.Context, reason string) {
	r.result.Success = false
	r.result.Errors = append(r.result.Errors, reason)
	logger.FromContext(ctx).Warn(LogMsgSyncAborted, "state", r.result.State, "reason", reason)
	r.result.State = domain.SyncStateAborted
}

// filterGroups keeps groups whose id or name (case-insensitive) is wanted.
// An empty filter keeps every group.
func filterGroups(groups []provider.Group, wanted []string) []provider.Group {
	if len(wanted) == 0 {
		return groups
	}
	out := make([]provider.Group, 0, len(groups))
	for _, g := range groups {
		for _, w := range wanted {
			if g.ID == w || strings.EqualFold(g.Name, w) {
				out = append(out, g)
				break
			}
		}
	}
	return out
}
