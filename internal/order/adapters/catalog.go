package adapters

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/MALLLAG/Domain-Modeling-Made-Functional/internal/order/domain"
	"github.com/MALLLAG/Domain-Modeling-Made-Functional/pkg/logging"
)

// PgxCatalog backs the product-code existence check and the price lookup
// with the products table.
type PgxCatalog struct {
	pool *pgxpool.Pool
}

func NewPgxCatalog(pool *pgxpool.Pool) *PgxCatalog {
	return &PgxCatalog{pool: pool}
}

// CodeExists implements the boolean existence port. A query failure is
// logged and answered as "unknown code"; the address check is the port
// that carries infrastructure failures to the caller.
func (c *PgxCatalog) CodeExists(ctx context.Context, code domain.ProductCode) bool {
	var exists bool
	err := c.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM products WHERE code=$1)`, code.String()).Scan(&exists)
	if err != nil {
		logging.Log(logging.Fields{Service: "catalog", Stage: "check_code", Status: "query_error", Message: err.Error()})
		return false
	}
	return exists
}

// UnitPrice looks up the catalog price for a code. No row is a pricing
// error; a failing query is a ServiceError.
func (c *PgxCatalog) UnitPrice(ctx context.Context, code domain.ProductCode) (domain.Price, error) {
	var raw decimal.Decimal
	err := c.pool.QueryRow(ctx, `SELECT price FROM products WHERE code=$1`, code.String()).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Price{}, &domain.PricingError{Kind: domain.PricingUnknownCode, Code: code.String()}
	}
	if err != nil {
		return domain.Price{}, &domain.ServiceError{Service: "catalog", Cause: err}
	}
	price, err := domain.NewPrice(raw)
	if err != nil {
		return domain.Price{}, &domain.PricingError{Kind: domain.PricingAmountOutOfRange, Code: code.String()}
	}
	return price, nil
}

// MemoryCatalog is the in-process catalog used by tests, the CLI and dev
// mode. The map is read-only after construction.
type MemoryCatalog struct {
	prices map[string]decimal.Decimal
}

func NewMemoryCatalog(prices map[string]decimal.Decimal) *MemoryCatalog {
	copied := make(map[string]decimal.Decimal, len(prices))
	for code, price := range prices {
		copied[code] = price
	}
	return &MemoryCatalog{prices: copied}
}

func (c *MemoryCatalog) CodeExists(_ context.Context, code domain.ProductCode) bool {
	_, ok := c.prices[code.String()]
	return ok
}

func (c *MemoryCatalog) UnitPrice(_ context.Context, code domain.ProductCode) (domain.Price, error) {
	raw, ok := c.prices[code.String()]
	if !ok {
		return domain.Price{}, &domain.PricingError{Kind: domain.PricingUnknownCode, Code: code.String()}
	}
	return domain.NewPrice(raw)
}

// FlatShippingCost returns a fixed-cost shipping calculator.
func FlatShippingCost(cost decimal.Decimal) func(domain.PricedOrder) domain.Price {
	price, err := domain.NewPrice(cost)
	if err != nil {
		price, _ = domain.NewPrice(decimal.Zero)
	}
	return func(domain.PricedOrder) domain.Price {
		return price
	}
}
