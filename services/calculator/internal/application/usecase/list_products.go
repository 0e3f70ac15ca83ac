package usecase

import (
	"context"

	"github.com/crestbank/crest/services/calculator/internal/application/dto"
	"github.com/crestbank/crest/services/calculator/internal/domain/model"
	"github.com/crestbank/crest/services/calculator/internal/domain/port"
)

// ListProducts exposes the catalog's active products.
type ListProducts struct {
	catalog port.ProductCatalog
}

// NewListProducts creates the use case.
func NewListProducts(catalog port.ProductCatalog) *ListProducts {
	return &ListProducts{catalog: catalog}
}

// Execute returns every active product.
func (uc *ListProducts) Execute(ctx context.Context) ([]dto.ProductResponse, error) {
	products, err := uc.catalog.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// GetProduct looks up a single product by id.
type GetProduct struct {
	catalog port.ProductCatalog
}

// NewGetProduct creates the use case.
func NewGetProduct(catalog port.ProductCatalog) *GetProduct {
	return &GetProduct{catalog: catalog}
}

// Execute returns the product or model.ErrProductNotFound.
func (uc *GetProduct) Execute(ctx context.Context, id int64) (dto.ProductResponse, error) {
	product, err := uc.catalog.FindByID(ctx, id)
	if err != nil {
		return dto.ProductResponse{}, err
	}
	return toProductResponse(product), nil
}

func toProductResponse(p *model.Product) dto.ProductResponse {
	resp := dto.ProductResponse{
		ID:                   p.ID,
		Code:                 p.Code,
		Name:                 p.Name,
		BaseRate:             p.BaseRate.String(),
		MinAmount:            p.MinAmount.StringFixed(2),
		MaxAmount:            p.MaxAmount.StringFixed(2),
		MinTenureMonths:      p.MinTenureMonths,
		MaxTenureMonths:      p.MaxTenureMonths,
		CalculationType:      string(p.CalculationType),
		CompoundingFrequency: string(p.CompoundingFrequency),
		TDSApplicable:        p.TDSApplicable,
		Active:               p.Active,
	}
	if p.MaxRate != nil {
		maxRate := p.MaxRate.String()
		resp.MaxRate = &maxRate
	}
	if p.TDSRate != nil {
		tdsRate := p.TDSRate.String()
		resp.TDSRate = &tdsRate
	}
	return resp
}
