package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/CurioSync_Go/internal/audit"
	"github.com/osse101/CurioSync_Go/internal/domain"
	"github.com/osse101/CurioSync_Go/internal/taxonomy"
	"github.com/osse101/CurioSync_Go/internal/vault"
)

// MockSyncService mocks providersync.Service
type MockSyncService struct {
	mock.Mock
}

func (m *MockSyncService) Sync(ctx context.Context, userID, providerName string, opts domain.SyncOptions) (*domain.SyncResult, error) {
	args := m.Called(ctx, userID, providerName, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SyncResult), args.Error(1)
}

func (m *MockSyncService) SaveConnection(ctx context.Context, userID, providerName string, profile vault.Profile, creds domain.Credentials) (*domain.Connection, error) {
	args := m.Called(ctx, userID, providerName, profile, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Connection), args.Error(1)
}

func (m *MockSyncService) ListConnections(ctx context.Context, userID string) ([]domain.Connection, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Connection), args.Error(1)
}

func (m *MockSyncService) ListSyncEnabled(ctx context.Context) ([]domain.Connection, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Connection), args.Error(1)
}

func (m *MockSyncService) SetSyncEnabled(ctx context.Context, userID, providerName string, enabled bool) error {
	return m.Called(ctx, userID, providerName, enabled).Error(0)
}

func (m *MockSyncService) Disconnect(ctx context.Context, userID, providerName string) error {
	return m.Called(ctx, userID, providerName).Error(0)
}

// MockAuditService mocks audit.Service
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) Backfill(ctx context.Context) (*audit.BackfillReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*audit.BackfillReport), args.Error(1)
}

func (m *MockAuditService) Diagnose(ctx context.Context, userID string, sample int) (*audit.DiagnosticReport, error) {
	args := m.Called(ctx, userID, sample)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*audit.DiagnosticReport), args.Error(1)
}

func (m *MockAuditService) Reconcile(ctx context.Context) (*audit.ReconcileReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*audit.ReconcileReport), args.Error(1)
}

func (m *MockAuditService) ScanUnattributed(ctx context.Context, limit int) ([]domain.Item, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *MockAuditService) Platforms(ctx context.Context, userID string) ([]taxonomy.PlatformCount, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]taxonomy.PlatformCount), args.Error(1)
}
