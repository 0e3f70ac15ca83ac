// Package postgres implements the product catalog port on PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	pkgpostgres "github.com/crestbank/crest/pkg/postgres"
	"github.com/crestbank/crest/services/calculator/internal/domain/model"
	"github.com/crestbank/crest/services/calculator/internal/domain/port"
	"github.com/crestbank/crest/services/calculator/internal/domain/valueobject"
)

// Compile-time interface check.
var _ port.ProductCatalog = (*ProductRepo)(nil)

// ProductRepo implements ProductCatalog using PostgreSQL. It holds a
// Querier so methods work identically inside and outside a transaction.
type ProductRepo struct {
	db pkgpostgres.Querier
}

// NewProductRepo creates a new ProductRepo.
func NewProductRepo(pool *pgxpool.Pool) *ProductRepo {
	return &ProductRepo{db: pool}
}

const productColumns = `id, code, name, base_rate, max_rate, min_amount, max_amount,
	min_tenure_months, max_tenure_months, calculation_type, compounding_frequency,
	tds_applicable, tds_rate, active, created_at, updated_at`

// FindByID retrieves one product regardless of its active flag; the caller
// decides whether inactive products are acceptable.
func (r *ProductRepo) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE id = $1
	`, id)

	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: id %d", model.ErrProductNotFound, id)
		}
		return nil, fmt.Errorf("find product %d: %w", id, err)
	}
	return product, nil
}

// ListActive returns all products open for new deposits, ordered by code.
func (r *ProductRepo) ListActive(ctx context.Context) ([]*model.Product, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE active
		ORDER BY code
	`)
	if err != nil {
		return nil, fmt.Errorf("query active products: %w", err)
	}
	defer rows.Close()

	var products []*model.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

func scanProduct(row pgx.Row) (*model.Product, error) {
	var (
		p         model.Product
		maxRate   *decimal.Decimal
		tdsRate   *decimal.Decimal
		calcType  string
		frequency *string
	)
	err := row.Scan(
		&p.ID, &p.Code, &p.Name, &p.BaseRate, &maxRate, &p.MinAmount, &p.MaxAmount,
		&p.MinTenureMonths, &p.MaxTenureMonths, &calcType, &frequency,
		&p.TDSApplicable, &tdsRate, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.MaxRate = maxRate
	p.TDSRate = tdsRate
	p.CalculationType = valueobject.CalculationType(calcType)
	if frequency != nil {
		freq, err := valueobject.ParseCompoundingFrequency(*frequency)
		if err != nil {
			return nil, fmt.Errorf("product %d: %w", p.ID, err)
		}
		p.CompoundingFrequency = freq
	}
	return &p, nil
}
