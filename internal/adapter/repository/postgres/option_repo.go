package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/accounted4/optionspark/internal/domain"
)

// optionRepository implements domain.OptionRepository
type optionRepository struct {
	db *DB
}

// NewOptionRepository creates a new option repository
func NewOptionRepository(db *DB) domain.OptionRepository {
	return &optionRepository{db: db}
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

// GetByID retrieves an option by its ID
func (r *optionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Option, error) {
	query := `
		SELECT id, symbol, option_type, purchase_price, strike_price, premium
		FROM option_positions
		WHERE id = $1
	`

	option, err := scanOption(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrOptionNotFound, id)
		}
		return nil, fmt.Errorf("failed to get option by ID: %w", err)
	}

	return option, nil
}

// Create stores a new option
func (r *optionRepository) Create(ctx context.Context, option *domain.Option) error {
	query := `
		INSERT INTO option_positions (id, symbol, option_type, purchase_price, strike_price, premium)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		option.ID,
		option.Symbol,
		string(option.Type),
		option.PurchasePrice.String(),
		option.StrikePrice.String(),
		option.Premium.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to create option: %w", err)
	}

	return nil
}

// List retrieves all options, optionally filtered by underlying symbol
func (r *optionRepository) List(ctx context.Context, symbol string) ([]*domain.Option, error) {
	query := `
		SELECT id, symbol, option_type, purchase_price, strike_price, premium
		FROM option_positions
		WHERE ($1::text = '' OR symbol = $1)
		ORDER BY symbol, strike_price
	`

	rows, err := r.db.QueryContext(ctx, query, symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to list options: %w", err)
	}
	defer rows.Close()

	options := make([]*domain.Option, 0)
	for rows.Next() {
		option, err := scanOption(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		options = append(options, option)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate options: %w", err)
	}

	return options, nil
}

// scanOption reads one row, parsing the NUMERIC columns as decimals
func scanOption(row rowScanner) (*domain.Option, error) {
	var option domain.Option
	var optionType, purchaseStr, strikeStr, premiumStr string

	if err := row.Scan(
		&option.ID,
		&option.Symbol,
		&optionType,
		&purchaseStr,
		&strikeStr,
		&premiumStr,
	); err != nil {
		return nil, err
	}

	parsedType, err := domain.ParseOptionType(optionType)
	if err != nil {
		return nil, err
	}
	option.Type = parsedType

	if option.PurchasePrice, err = decimal.NewFromString(purchaseStr); err != nil {
		return nil, fmt.Errorf("failed to parse purchase_price: %w", err)
	}
	if option.StrikePrice, err = decimal.NewFromString(strikeStr); err != nil {
		return nil, fmt.Errorf("failed to parse strike_price: %w", err)
	}
	if option.Premium, err = decimal.NewFromString(premiumStr); err != nil {
		return nil, fmt.Errorf("failed to parse premium: %w", err)
	}

	return &option, nil
}
