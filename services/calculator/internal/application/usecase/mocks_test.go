package usecase_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/crestbank/crest/pkg/events"
	"github.com/crestbank/crest/services/calculator/internal/domain/model"
)

// --- Mock implementations ---

type mockProductCatalog struct {
	findByIDFunc func(ctx context.Context, id int64) (*model.Product, error)
	listFunc     func(ctx context.Context) ([]*model.Product, error)
}

func (m *mockProductCatalog) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, fmt.Errorf("%w: %d", model.ErrProductNotFound, id)
}

func (m *mockProductCatalog) ListActive(ctx context.Context) ([]*model.Product, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

type mockCustomerDirectory struct {
	classificationsFunc func(ctx context.Context, customerID int64) ([]string, error)
}

func (m *mockCustomerDirectory) Classifications(ctx context.Context, customerID int64) ([]string, error) {
	if m.classificationsFunc != nil {
		return m.classificationsFunc(ctx, customerID)
	}
	return nil, nil
}

type mockResultCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	getErr  error
}

func newMockResultCache() *mockResultCache {
	return &mockResultCache{entries: make(map[string][]byte)}
}

func (m *mockResultCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	raw, ok := m.entries[key]
	return raw, ok, nil
}

func (m *mockResultCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
	return nil
}

type mockEventPublisher struct {
	mu         sync.Mutex
	published  []events.DomainEvent
	topics     []string
	publishErr error
}

func (m *mockEventPublisher) Publish(_ context.Context, topic string, event events.DomainEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.publishErr != nil {
		return m.publishErr
	}
	m.published = append(m.published, event)
	m.topics = append(m.topics, topic)
	return nil
}

func (m *mockEventPublisher) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.published)
}

// --- Shared fixtures ---

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strPtr(s string) *string { return &s }

func int64Ptr(v int64) *int64 { return &v }

func boolPtr(b bool) *bool { return &b }

func mustDec(s string) decimal.Decimal { return decimal.RequireFromString(s) }
