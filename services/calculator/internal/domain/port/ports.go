// Package port declares the calculator's outbound dependencies.
package port

import (
	"context"
	"time"

	"github.com/crestbank/crest/pkg/events"
	"github.com/crestbank/crest/services/calculator/internal/domain/model"
)

// ProductCatalog provides read access to deposit product reference data.
type ProductCatalog interface {
	// FindByID returns the product or model.ErrProductNotFound.
	FindByID(ctx context.Context, id int64) (*model.Product, error)
	// ListActive returns every product currently open for deposits.
	ListActive(ctx context.Context) ([]*model.Product, error)
}

// CustomerDirectory resolves a customer's classification tags.
type CustomerDirectory interface {
	// Classifications returns the customer's tags, or an empty slice for an
	// unknown customer.
	Classifications(ctx context.Context, customerID int64) ([]string, error)
}

// ResultCache memoizes serialized calculation results. A miss is (nil,
// false, nil); cache failures should degrade to misses, not errors.
type ResultCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// EventPublisher emits domain events to the event bus.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event events.DomainEvent) error
}
