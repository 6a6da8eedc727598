package quote

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/accounted4/optionspark/internal/domain"
)

// QueryInput represents the raw comma separated input of a quote query
type QueryInput struct {
	Service    string
	Symbols    string // e.g. "ORCL,MSFT"
	Attributes string // e.g. "SYMBOL,LAST_TRADE_PRICE"; empty means LAST_TRADE_PRICE
}

// QueryResult holds the quotes plus any attribute names that were skipped
type QueryResult struct {
	Attributes []domain.QuoteAttribute
	Quotes     []domain.Quote
	Ignored    []string
}

// QuoteService looks up named quote services and runs queries against them
type QuoteService struct {
	services []domain.QuoteService
	log      logrus.FieldLogger
}

// NewQuoteService creates a new QuoteService over the given services
func NewQuoteService(log logrus.FieldLogger, services ...domain.QuoteService) *QuoteService {
	return &QuoteService{services: services, log: log}
}

// Services lists the configured services
func (s *QuoteService) Services() []domain.QuoteService {
	return s.services
}

// Find returns the service whose name matches, ignoring case
func (s *QuoteService) Find(name string) (domain.QuoteService, error) {
	for _, svc := range s.services {
		if strings.EqualFold(svc.Name(), name) {
			return svc, nil
		}
	}
	return nil, fmt.Errorf("%w: service %s was not discovered", domain.ErrQuoteServiceAbsent, name)
}

// Execute runs a quote query
// Logic:
//  1. Resolve the service by name
//  2. Split and trim the symbol list
//  3. Parse attributes, skipping unrecognized names (default LAST_TRADE_PRICE)
//  4. Query the service
func (s *QuoteService) Execute(ctx context.Context, input QueryInput) (*QueryResult, error) {
	svc, err := s.Find(input.Service)
	if err != nil {
		return nil, err
	}

	symbols := splitList(input.Symbols)
	if len(symbols) == 0 {
		return nil, fmt.Errorf("invalid query: at least one symbol is required")
	}

	attrNames := input.Attributes
	if strings.TrimSpace(attrNames) == "" {
		attrNames = string(domain.QuoteAttrLastTradePrice)
	}

	result := &QueryResult{}
	for _, name := range splitList(attrNames) {
		attr, err := domain.ParseQuoteAttribute(name)
		if err != nil {
			s.log.WithField("attribute", name).Warn("Ignoring unrecognized attribute")
			result.Ignored = append(result.Ignored, name)
			continue
		}
		result.Attributes = append(result.Attributes, attr)
	}

	quotes, err := svc.Query(ctx, symbols, result.Attributes)
	if err != nil {
		return nil, fmt.Errorf("failure executing %s query: %w", svc.Name(), err)
	}
	result.Quotes = quotes

	return result, nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
