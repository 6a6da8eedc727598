package diagram

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/accounted4/optionspark/internal/domain"
	"github.com/accounted4/optionspark/internal/usecase/geometry"
)

// RenderFunc paints a render plan into an encoded document
type RenderFunc func(plan geometry.RenderPlan) ([]byte, error)

// DiagramService validates diagram requests and turns them into render plans and SVG
type DiagramService struct {
	OptionRepo domain.OptionRepository
	Quotes     domain.QuoteProvider
	Render     RenderFunc
	Layout     geometry.Layout
	log        logrus.FieldLogger
}

// NewDiagramService creates a new DiagramService instance
func NewDiagramService(
	optionRepo domain.OptionRepository,
	quotes domain.QuoteProvider,
	render RenderFunc,
	layout geometry.Layout,
	log logrus.FieldLogger,
) *DiagramService {
	return &DiagramService{
		OptionRepo: optionRepo,
		Quotes:     quotes,
		Render:     render,
		Layout:     layout,
		log:        log,
	}
}

// ValidateRequest checks everything the geometry engine assumes but does not enforce
func ValidateRequest(option domain.Option, currentPrice float64, rng domain.PriceRange) error {
	if err := option.Validate(); err != nil {
		return err
	}

	prices := []struct {
		name  string
		value float64
	}{
		{"purchase price", option.PurchasePrice.InexactFloat64()},
		{"strike price", option.StrikePrice.InexactFloat64()},
		{"premium", option.Premium.InexactFloat64()},
		{"current price", currentPrice},
	}
	for _, p := range prices {
		if !domain.IsFinite(p.value) {
			return fmt.Errorf("%w: %s is %v", domain.ErrNonFiniteValue, p.name, p.value)
		}
	}

	return rng.Validate()
}

// Plan validates the request and computes the render plan.
// The computation itself is pure; ctx only lets a cancelled caller skip it.
func (s *DiagramService) Plan(ctx context.Context, option domain.Option, currentPrice float64, rng domain.PriceRange) (geometry.RenderPlan, error) {
	if err := ctx.Err(); err != nil {
		return geometry.RenderPlan{}, err
	}
	if err := ValidateRequest(option, currentPrice, rng); err != nil {
		return geometry.RenderPlan{}, err
	}

	s.log.WithFields(logrus.Fields{
		"option_id":     option.ID,
		"option_type":   option.Type,
		"current_price": currentPrice,
		"range_start":   rng.Start,
		"range_end":     rng.End,
	}).Debug("Computing render plan")

	return geometry.ComputeRenderPlan(option, currentPrice, rng, s.Layout), nil
}

// RenderSVG validates the request and renders it as an SVG document
func (s *DiagramService) RenderSVG(ctx context.Context, option domain.Option, currentPrice float64, rng domain.PriceRange) ([]byte, error) {
	plan, err := s.Plan(ctx, option, currentPrice, rng)
	if err != nil {
		return nil, err
	}
	return s.Render(plan)
}

// RenderStored renders a persisted option against the live price of its underlying
// Logic:
//  1. Reject a bad range before touching the repository or the quote service
//  2. Fetch the option from the repository
//  3. Fetch the last trade price of option.Symbol
//  4. Render
func (s *DiagramService) RenderStored(ctx context.Context, optionID uuid.UUID, rng domain.PriceRange) ([]byte, error) {
	if err := rng.Validate(); err != nil {
		return nil, err
	}

	option, err := s.OptionRepo.GetByID(ctx, optionID)
	if err != nil {
		return nil, err
	}

	price, err := s.Quotes.LastPrice(ctx, option.Symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to get current price of %s: %w", option.Symbol, err)
	}

	return s.RenderSVG(ctx, *option, price.InexactFloat64(), rng)
}

// SaveOption validates and stores an option, assigning an ID if it has none
func (s *DiagramService) SaveOption(ctx context.Context, option *domain.Option) error {
	if err := option.Validate(); err != nil {
		return err
	}
	if option.ID == uuid.Nil {
		option.ID = uuid.New()
	}

	if err := s.OptionRepo.Create(ctx, option); err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{"option_id": option.ID, "symbol": option.Symbol}).Info("Option saved")
	return nil
}

// ListOptions returns stored options, optionally filtered by symbol
func (s *DiagramService) ListOptions(ctx context.Context, symbol string) ([]*domain.Option, error) {
	return s.OptionRepo.List(ctx, symbol)
}
