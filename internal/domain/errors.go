package domain

import "errors"

// Validation errors shared by every boundary that builds a diagram request
var (
	ErrInvalidRange       = errors.New("invalid price range: start must be less than end")
	ErrNonFiniteValue     = errors.New("invalid price: value must be finite")
	ErrInvalidOptionKind  = errors.New("invalid option type: must be CALL or PUT")
	ErrOptionNotFound     = errors.New("option not found")
	ErrUnknownQuoteAttr   = errors.New("unknown quote attribute")
	ErrQuoteUnavailable   = errors.New("quote not available")
	ErrQuoteServiceAbsent = errors.New("quote service not found")
)
