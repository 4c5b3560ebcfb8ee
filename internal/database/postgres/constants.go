package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
)

// Advisory lock hashing
const (
	// HashSeparator joins the parts of an advisory lock key before hashing
	HashSeparator = ":"

	// HashMaskPositiveInt64 keeps advisory lock keys positive
	HashMaskPositiveInt64 = 0x7FFFFFFFFFFFFFFF

	// lockNamespaceSync and lockNamespaceProvenance keep the two lock families apart
	lockNamespaceSync       = "sync"
	lockNamespaceProvenance = "provenance"
)

// =============================================================================
// SQL Query Constants
// =============================================================================

const (
	// SQLAdvisoryLock acquires a PostgreSQL advisory transaction lock
	SQLAdvisoryLock = "SELECT pg_advisory_xact_lock($1)"

	// ---- Connections ----

	sqlEnsureUser = `INSERT INTO users (user_id) VALUES ($1) ON CONFLICT DO NOTHING`

	sqlConnectionColumns = `
		connection_id, user_id, provider, provider_user_id, provider_username,
		access_token_enc, refresh_token_enc, token_expires_at, sync_enabled,
		last_sync_at, created_at, updated_at`

	sqlSelectConnection = `SELECT` + sqlConnectionColumns + `
		FROM provider_connections WHERE user_id = $1 AND provider = $2`

	sqlListConnections = `SELECT` + sqlConnectionColumns + `
		FROM provider_connections WHERE user_id = $1 ORDER BY provider`

	sqlListSyncEnabledConnections = `SELECT` + sqlConnectionColumns + `
		FROM provider_connections WHERE sync_enabled ORDER BY user_id, provider`

	// Reconnecting keeps the row id and last sync time but replaces identity and tokens
	sqlUpsertConnection = `
		INSERT INTO provider_connections (
			connection_id, user_id, provider, provider_user_id, provider_username,
			access_token_enc, refresh_token_enc, token_expires_at, sync_enabled)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id, provider) DO UPDATE SET
			provider_user_id = EXCLUDED.provider_user_id,
			provider_username = EXCLUDED.provider_username,
			access_token_enc = EXCLUDED.access_token_enc,
			refresh_token_enc = EXCLUDED.refresh_token_enc,
			token_expires_at = EXCLUDED.token_expires_at,
			sync_enabled = EXCLUDED.sync_enabled,
			updated_at = NOW()
		RETURNING connection_id, created_at, updated_at, last_sync_at`

	sqlUpdateTokens = `
		UPDATE provider_connections
		SET access_token_enc = $2, refresh_token_enc = $3, token_expires_at = $4, updated_at = NOW()
		WHERE connection_id = $1`

	sqlUpdateLastSync = `
		UPDATE provider_connections SET last_sync_at = $2, updated_at = NOW()
		WHERE connection_id = $1`

	sqlSetSyncEnabled = `
		UPDATE provider_connections SET sync_enabled = $3, updated_at = NOW()
		WHERE user_id = $1 AND provider = $2`

	sqlDeleteConnection = `DELETE FROM provider_connections WHERE user_id = $1 AND provider = $2`

	// ---- Items ----

	sqlExistsByExternalID = `
		SELECT EXISTS (
			SELECT 1 FROM items
			WHERE user_id = $1 AND import_source = $2 AND external_id = $3 AND NOT is_duplicate)`

	sqlSelectItemOwner = `SELECT user_id FROM items WHERE item_id = $1`

	sqlHasOtherProvenanceHolder = `
		SELECT EXISTS (
			SELECT 1 FROM items
			WHERE user_id = $1 AND import_source = $2 AND external_id = $3
			  AND NOT is_duplicate AND item_id <> $4)`

	sqlAttachProvenance = `
		UPDATE items
		SET import_source = $2, external_id = $3, import_metadata = $4, is_duplicate = $5
		WHERE item_id = $1`

	sqlItemColumns = `
		item_id, user_id, url, note, title, summary, image_url, category, domain, tags,
		COALESCE(import_source, ''), COALESCE(external_id, ''), import_metadata,
		is_duplicate, deleted_at, created_at`

	sqlSelectItem = `SELECT` + sqlItemColumns + ` FROM items WHERE item_id = $1`

	sqlDomainCounts = `
		SELECT domain, COUNT(*)
		FROM items
		WHERE user_id = $1 AND deleted_at IS NULL AND NOT is_duplicate AND domain <> ''
		GROUP BY domain
		ORDER BY COUNT(*) DESC, domain`

	// ---- Tags ----

	// The no-op update makes RETURNING yield the existing row on conflict
	sqlGetOrCreateTag = `
		INSERT INTO tags (tag_id, name, display_name)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING tag_id`

	sqlInsertItemTag = `
		INSERT INTO item_tags (item_id, tag_id) VALUES ($1, $2)
		ON CONFLICT DO NOTHING`

	sqlIncrementUsage = `UPDATE tags SET usage_count = usage_count + 1 WHERE tag_id = $1`

	sqlListItemTagSources = `
		SELECT item_id, tags FROM items
		WHERE deleted_at IS NULL AND item_id > $1
		ORDER BY item_id
		LIMIT $2`

	sqlUpsertTags = `
		INSERT INTO tags (name, display_name, usage_count)
		SELECT n, d, c FROM unnest($1::text[], $2::text[], $3::int[]) AS t(n, d, c)
		ON CONFLICT (name) DO UPDATE SET usage_count = EXCLUDED.usage_count
		RETURNING name, tag_id`

	sqlInsertItemTags = `
		INSERT INTO item_tags (item_id, tag_id)
		SELECT i, t FROM unnest($1::uuid[], $2::uuid[]) AS l(i, t)
		ON CONFLICT DO NOTHING`

	sqlSampleTags = `
		SELECT t.tag_id, t.name, t.display_name, t.usage_count, t.created_at
		FROM tags t
		WHERE EXISTS (
			SELECT 1 FROM item_tags it JOIN items i ON i.item_id = it.item_id
			WHERE it.tag_id = t.tag_id AND i.user_id = $1)
		ORDER BY random()
		LIMIT $2`

	sqlJoinedItemIDs = `
		SELECT it.item_id FROM item_tags it
		JOIN items i ON i.item_id = it.item_id
		WHERE it.tag_id = $1 AND i.user_id = $2 AND i.deleted_at IS NULL`

	sqlItemIDsByDisplayName = `
		SELECT DISTINCT i.item_id FROM items i
		JOIN item_tags it ON it.item_id = i.item_id
		JOIN tags t ON t.tag_id = it.tag_id
		WHERE t.display_name = $1 AND i.user_id = $2 AND i.deleted_at IS NULL`

	sqlItemIDsByTagID = `
		SELECT DISTINCT it.item_id FROM item_tags it
		JOIN items i ON i.item_id = it.item_id
		WHERE it.tag_id = $1 AND i.user_id = $2 AND i.deleted_at IS NULL`

	sqlDeletedItemIDs = `
		SELECT DISTINCT it.item_id FROM item_tags it
		JOIN items i ON i.item_id = it.item_id
		WHERE it.tag_id = $1 AND i.deleted_at IS NOT NULL`

	sqlCountActiveItems = `
		SELECT COUNT(DISTINCT it.item_id) FROM item_tags it
		JOIN items i ON i.item_id = it.item_id
		WHERE it.tag_id = $1 AND i.deleted_at IS NULL`

	sqlReconcileUsageCounts = `
		WITH actual AS (
			SELECT t.tag_id, COUNT(DISTINCT i.item_id)::int AS n
			FROM tags t
			LEFT JOIN item_tags it ON it.tag_id = t.tag_id
			LEFT JOIN items i ON i.item_id = it.item_id AND i.deleted_at IS NULL
			GROUP BY t.tag_id
		), drifted AS (
			SELECT t.tag_id, t.name, t.usage_count AS previous, a.n AS actual
			FROM tags t JOIN actual a ON a.tag_id = t.tag_id
			WHERE t.usage_count <> a.n
		)
		UPDATE tags t SET usage_count = d.actual
		FROM drifted d
		WHERE t.tag_id = d.tag_id
		RETURNING t.tag_id, d.name, d.previous, d.actual`

	sqlListUnattributedImports = `SELECT` + sqlItemColumns + ` FROM items
		WHERE import_source IS NULL AND deleted_at IS NULL AND note LIKE ANY($1::text[])
		ORDER BY created_at
		LIMIT $2`

	// ---- Sync locks ----

	// The lease is taken when absent, expired, or already held by the same run
	sqlAcquireSyncLock = `
		INSERT INTO sync_locks (user_id, provider, run_id, acquired_at, expires_at)
		VALUES ($1, $2, $3, NOW(), NOW() + make_interval(secs => $4))
		ON CONFLICT (user_id, provider) DO UPDATE SET
			run_id = EXCLUDED.run_id,
			acquired_at = EXCLUDED.acquired_at,
			expires_at = EXCLUDED.expires_at
		WHERE sync_locks.expires_at <= NOW() OR sync_locks.run_id = EXCLUDED.run_id`

	sqlReleaseSyncLock = `DELETE FROM sync_locks WHERE user_id = $1 AND provider = $2 AND run_id = $3`
)

// Error Messages
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
	ErrMsgAcquireAdvisoryLock       = "failed to acquire advisory lock"
	ErrMsgInvalidID                 = "invalid id"
	ErrMsgQueryFailed               = "query failed"
	ErrMsgScanFailed                = "failed to scan row"
	ErrMsgEncodeMetadataFailed      = "failed to encode import metadata"
	ErrMsgDecodeMetadataFailed      = "failed to decode import metadata"
)

// Log Messages
const (
	LogMsgRollbackFailed   = "Failed to rollback transaction"
	LogMsgDuplicateFlagged = "Item flagged as duplicate of an earlier import"
)
