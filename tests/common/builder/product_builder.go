//go:build unit || e2e

package builder

import (
	"time"

	"eventcrm/internal/domain/catalog"
	"eventcrm/internal/usecase/queries"

	"github.com/google/uuid"
)

type ProductBuilder struct {
	ID          uuid.UUID
	Name        string
	Description string
	Unit        string
	BasePrice   float64
}

func NewProductBuilder() *ProductBuilder {
	return &ProductBuilder{
		ID:          uuid.New(),
		Name:        "Stage lighting set",
		Description: "Basic lighting rig with operator",
		Unit:        "szt",
		BasePrice:   1200,
	}
}

func (p *ProductBuilder) BuildDomain() (*catalog.Product, error) {
	return catalog.NewProduct(p.ID, p.Name, p.Description, p.Unit, p.BasePrice)
}

func (p *ProductBuilder) BuildReadModel() queries.ProductView {
	now := time.Now()
	return queries.ProductView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Unit:        p.Unit,
		BasePrice:   p.BasePrice,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (p *ProductBuilder) WithName(name string) *ProductBuilder {
	p.Name = name
	return p
}

func (p *ProductBuilder) WithBasePrice(price float64) *ProductBuilder {
	p.BasePrice = price
	return p
}
