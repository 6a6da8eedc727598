package yahoo

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/accounted4/optionspark/internal/domain"
)

// attributeCodes maps each quote attribute to its Yahoo "f" parameter code
var attributeCodes = map[domain.QuoteAttribute]string{
	domain.QuoteAttrSymbol:         "s",
	domain.QuoteAttrCompanyName:    "n",
	domain.QuoteAttrLastTradePrice: "l1",
	domain.QuoteAttrBookValue:      "b4",
	domain.QuoteAttrEarningsPS:     "e",
	domain.QuoteAttrDividendPS:     "d",
	domain.QuoteAttrExDividendDate: "q",
	domain.QuoteAttrDividendDate:   "r1",
	domain.QuoteAttrDividendYield:  "y",
	domain.QuoteAttrPriceSales:     "p5",
	domain.QuoteAttrPriceBook:      "p6",
	domain.QuoteAttrPriceEarnings:  "r",
}

// Service queries a Yahoo style CSV quote endpoint
// It implements both domain.QuoteService and domain.QuoteProvider
type Service struct {
	cfg    Config
	client *http.Client
	log    logrus.FieldLogger
}

// NewService creates a new Service; a nil client uses http.DefaultClient
func NewService(cfg Config, client *http.Client, log logrus.FieldLogger) *Service {
	if client == nil {
		client = http.DefaultClient
	}
	return &Service{cfg: cfg, client: client, log: log}
}

// Name returns the configured service name
func (s *Service) Name() string {
	return s.cfg.Name
}

// Query fetches the requested attributes for each symbol
// Results come back one row per symbol, fields in the order requested
func (s *Service) Query(ctx context.Context, symbols []string, attrs []domain.QuoteAttribute) ([]domain.Quote, error) {
	if len(symbols) == 0 || len(attrs) == 0 {
		return []domain.Quote{}, nil
	}

	queryURL, err := s.queryURL(symbols, attrs)
	if err != nil {
		return nil, err
	}
	s.log.WithField("url", queryURL).Debug("Querying quote service")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, queryURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build quote request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query %s: %w", domain.ErrQuoteUnavailable, s.cfg.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s quote service returned status %d", domain.ErrQuoteUnavailable, s.cfg.Name, resp.StatusCode)
	}

	return s.parseResponse(resp.Body, attrs)
}

// LastPrice returns the last trade price of symbol
func (s *Service) LastPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	quotes, err := s.Query(ctx, []string{symbol}, []domain.QuoteAttribute{domain.QuoteAttrLastTradePrice})
	if err != nil {
		return decimal.Zero, err
	}
	if len(quotes) == 0 {
		return decimal.Zero, fmt.Errorf("%w: no data for %s", domain.ErrQuoteUnavailable, symbol)
	}

	raw := quotes[0][domain.QuoteAttrLastTradePrice]
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: last trade price of %s is %q", domain.ErrQuoteUnavailable, symbol, raw)
	}
	return price, nil
}

func (s *Service) queryURL(symbols []string, attrs []domain.QuoteAttribute) (string, error) {
	escaped := make([]string, 0, len(symbols))
	for _, sym := range symbols {
		escaped = append(escaped, url.QueryEscape(sym))
	}

	var codes strings.Builder
	for _, attr := range attrs {
		code, ok := attributeCodes[attr]
		if !ok {
			return "", fmt.Errorf("%w: %s", domain.ErrUnknownQuoteAttr, attr)
		}
		codes.WriteString(code)
	}

	return fmt.Sprintf("%s?s=%s&f=%s", s.cfg.BaseURL, strings.Join(escaped, s.cfg.SecuritySeparator), codes.String()), nil
}

func (s *Service) parseResponse(body io.Reader, attrs []domain.QuoteAttribute) ([]domain.Quote, error) {
	reader := csv.NewReader(body)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	if sep, size := utf8.DecodeRuneInString(s.cfg.ResponseSeparator); size > 0 && sep != utf8.RuneError {
		reader.Comma = sep
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s response: %w", s.cfg.Name, err)
	}

	quotes := make([]domain.Quote, 0, len(records))
	for _, record := range records {
		quote := make(domain.Quote, len(attrs))
		for i, item := range record {
			if i >= len(attrs) {
				break
			}
			quote[attrs[i]] = strings.TrimSpace(item)
		}
		quotes = append(quotes, quote)
	}
	return quotes, nil
}
