package domain

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OptionRepository defines the interface for option position persistence operations
type OptionRepository interface {
	// GetByID retrieves an option by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*Option, error)

	// Create stores a new option
	Create(ctx context.Context, option *Option) error

	// List retrieves all options, optionally filtered by underlying symbol
	// If symbol is empty, returns all options
	List(ctx context.Context, symbol string) ([]*Option, error)
}

// QuoteService is a named source of stock quotes
type QuoteService interface {
	// Name is the identifier the service is looked up by
	Name() string

	// Query returns one Quote per symbol, holding the requested attributes
	Query(ctx context.Context, symbols []string, attrs []QuoteAttribute) ([]Quote, error)
}

// QuoteProvider supplies the live price of an underlying
type QuoteProvider interface {
	LastPrice(ctx context.Context, symbol string) (decimal.Decimal, error)
}
