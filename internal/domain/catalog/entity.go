package catalog

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyProductName   = errors.New("product name cannot be empty")
	ErrProductNameTooLong = errors.New("product name is too long (max 255 characters)")
	ErrNegativeBasePrice  = errors.New("base price cannot be negative")
)

const (
	MaxProductNameLength = 255
)

// Product is a catalog entry offered by the company: equipment rental,
// stage services, transport and so on. Prices are kept as plain currency
// amounts because line-item subtotals are computed in the same unit.
type Product struct {
	id          uuid.UUID
	name        string
	description string
	unit        string
	basePrice   float64
	createdAt   time.Time
	updatedAt   time.Time
}

func NewProduct(id uuid.UUID, name, description, unit string, basePrice float64) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyProductName
	}
	if len(name) > MaxProductNameLength {
		return nil, ErrProductNameTooLong
	}
	if basePrice < 0 {
		return nil, ErrNegativeBasePrice
	}

	return &Product{
		id:          id,
		name:        name,
		description: description,
		unit:        unit,
		basePrice:   basePrice,
	}, nil
}

func ReconstructProduct(
	id uuid.UUID,
	name, description, unit string,
	basePrice float64,
	createdAt, updatedAt time.Time,
) *Product {
	return &Product{
		id:          id,
		name:        name,
		description: description,
		unit:        unit,
		basePrice:   basePrice,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (p *Product) ID() uuid.UUID        { return p.id }
func (p *Product) Name() string         { return p.name }
func (p *Product) Description() string  { return p.description }
func (p *Product) Unit() string         { return p.unit }
func (p *Product) BasePrice() float64   { return p.basePrice }
func (p *Product) CreatedAt() time.Time { return p.createdAt }
func (p *Product) UpdatedAt() time.Time { return p.updatedAt }
