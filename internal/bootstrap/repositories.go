package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/CurioSync_Go/internal/database/postgres"
	"github.com/osse101/CurioSync_Go/internal/repository"
)

// Repositories holds all repository implementations used by the application.
// Tags serves both the indexer and the taxonomy auditor.
type Repositories struct {
	Connections repository.Connection
	Items       repository.Item
	Locks       repository.SyncLock
	Tags        *postgres.TagRepository
}

// InitializeRepositories creates all repository implementations
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Connections: postgres.NewConnectionRepository(dbPool),
		Items:       postgres.NewItemRepository(dbPool),
		Locks:       postgres.NewSyncLockRepository(dbPool),
		Tags:        postgres.NewTagRepository(dbPool),
	}
}
