package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OptionType represents the two kinds of option contract
type OptionType string

const (
	OptionTypeCall OptionType = "CALL"
	OptionTypePut  OptionType = "PUT"
)

// ParseOptionType converts user input into an OptionType
// Unrecognized input is rejected rather than defaulting to PUT
func ParseOptionType(s string) (OptionType, error) {
	switch OptionType(strings.ToUpper(strings.TrimSpace(s))) {
	case OptionTypeCall:
		return OptionTypeCall, nil
	case OptionTypePut:
		return OptionTypePut, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidOptionKind, s)
	}
}

// Option represents a single option position in the domain layer
// Premium is kept for completeness; the diagram geometry never reads it
type Option struct {
	ID            uuid.UUID
	Symbol        string          // Ticker of the underlying, used to look up the current price
	Type          OptionType      // 'CALL' or 'PUT'
	PurchasePrice decimal.Decimal // Underlying price when the option was bought
	StrikePrice   decimal.Decimal
	Premium       decimal.Decimal
}

// NewOption builds a validated Option with a fresh ID
// Prices are not range-checked: zero or negative values are accepted and simply plot off-canvas
func NewOption(kind string, purchasePrice, strikePrice, premium decimal.Decimal) (Option, error) {
	optionType, err := ParseOptionType(kind)
	if err != nil {
		return Option{}, err
	}

	return Option{
		ID:            uuid.New(),
		Type:          optionType,
		PurchasePrice: purchasePrice,
		StrikePrice:   strikePrice,
		Premium:       premium,
	}, nil
}

// Validate ensures the option adheres to domain rules
func (o Option) Validate() error {
	if o.Type != OptionTypeCall && o.Type != OptionTypePut {
		return fmt.Errorf("%w: %q", ErrInvalidOptionKind, string(o.Type))
	}
	return nil
}
