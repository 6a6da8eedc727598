package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/accounted4/optionspark/internal/adapter/quote/yahoo"
	"github.com/accounted4/optionspark/internal/adapter/svg"
	"github.com/accounted4/optionspark/internal/domain"
	"github.com/accounted4/optionspark/internal/logger"
	"github.com/accounted4/optionspark/internal/usecase/diagram"
	"github.com/accounted4/optionspark/internal/usecase/geometry"
)

const testToken = "test-token"

// MockOptionRepository is a mock implementation of OptionRepository for testing
type MockOptionRepository struct {
	mock.Mock
}

func (m *MockOptionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Option, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Option), args.Error(1)
}

func (m *MockOptionRepository) Create(ctx context.Context, option *domain.Option) error {
	return m.Called(option).Error(0)
}

func (m *MockOptionRepository) List(ctx context.Context, symbol string) ([]*domain.Option, error) {
	args := m.Called(symbol)
	return args.Get(0).([]*domain.Option), args.Error(1)
}

// MockQuoteProvider is a mock implementation of QuoteProvider for testing
type MockQuoteProvider struct {
	mock.Mock
}

func (m *MockQuoteProvider) LastPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	args := m.Called(symbol)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func newTestServer(token string) (*Server, *MockOptionRepository, *MockQuoteProvider) {
	repo := new(MockOptionRepository)
	quotes := new(MockQuoteProvider)
	service := diagram.NewDiagramService(repo, quotes, svg.Render, geometry.DefaultLayout(), logger.Discard())
	return NewServer(":0", token, service, logger.Discard()), repo, quotes
}

func doRequest(s *Server, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+testToken)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHandleRenderDiagram(t *testing.T) {
	s, _, _ := newTestServer(testToken)

	rec := doRequest(s, http.MethodGet, "/diagram.svg?type=call&purchase=80&strike=100&premium=2.5&current=120&start=50&end=150", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, "<svg"))
	assert.Contains(t, body, `<line x1="50" y1="12.5" x2="100" y2="12.5" stroke-width="1" stroke="black" style="stroke-dasharray: 3, 3"></line>`)
	assert.Contains(t, body, `<circle cx="30" cy="12.5" r="3"></circle>`)
}

func TestHandleRenderDiagram_BadRequests(t *testing.T) {
	s, _, _ := newTestServer(testToken)

	tests := []struct {
		name  string
		query string
	}{
		{name: "degenerate range", query: "type=PUT&purchase=80&strike=100&current=120&start=100&end=100"},
		{name: "reversed range", query: "type=PUT&purchase=80&strike=100&current=120&start=150&end=50"},
		{name: "unknown type", query: "type=STRADDLE&purchase=80&strike=100&current=120&start=50&end=150"},
		{name: "bad strike", query: "type=CALL&purchase=80&strike=abc&current=120&start=50&end=150"},
		{name: "missing current", query: "type=CALL&purchase=80&strike=100&start=50&end=150"},
		{name: "non finite current", query: "type=CALL&purchase=80&strike=100&current=NaN&start=50&end=150"},
		{name: "infinite current", query: "type=CALL&purchase=80&strike=100&current=%2BInf&start=50&end=150"},
		{name: "infinite range start", query: "type=CALL&purchase=80&strike=100&current=120&start=-Inf&end=150"},
		{name: "NaN range end", query: "type=PUT&purchase=80&strike=100&current=120&start=50&end=NaN"},
		{name: "NaN strike", query: "type=PUT&purchase=80&strike=NaN&current=120&start=50&end=150"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(s, http.MethodGet, "/diagram.svg?"+tt.query, "")

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			resp := decodeResponse(t, rec)
			assert.False(t, resp.Success)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestHandleRenderStoredDiagram(t *testing.T) {
	s, repo, quotes := newTestServer(testToken)
	option := &domain.Option{
		ID:            uuid.New(),
		Symbol:        "ORCL",
		Type:          domain.OptionTypeCall,
		PurchasePrice: decimal.NewFromInt(80),
		StrikePrice:   decimal.NewFromInt(100),
		Premium:       decimal.NewFromInt(1),
	}
	repo.On("GetByID", option.ID).Return(option, nil)
	quotes.On("LastPrice", "ORCL").Return(decimal.NewFromInt(120), nil)

	rec := doRequest(s, http.MethodGet, "/options/"+option.ID.String()+"/diagram.svg?start=50&end=150", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `fill="green"`)
	repo.AssertExpectations(t)
	quotes.AssertExpectations(t)
}

func TestHandleRenderStoredDiagram_Errors(t *testing.T) {
	missing := uuid.New()
	stored := uuid.New()

	tests := []struct {
		name   string
		target string
		setup  func(*MockOptionRepository, *MockQuoteProvider)
		status int
	}{
		{
			name:   "bad id",
			target: "/options/not-a-uuid/diagram.svg?start=50&end=150",
			setup:  func(*MockOptionRepository, *MockQuoteProvider) {},
			status: http.StatusBadRequest,
		},
		{
			name:   "missing option",
			target: "/options/" + missing.String() + "/diagram.svg?start=50&end=150",
			setup: func(repo *MockOptionRepository, _ *MockQuoteProvider) {
				repo.On("GetByID", missing).Return(nil, fmt.Errorf("%w: %s", domain.ErrOptionNotFound, missing))
			},
			status: http.StatusNotFound,
		},
		{
			name:   "quote unavailable",
			target: "/options/" + stored.String() + "/diagram.svg?start=50&end=150",
			setup: func(repo *MockOptionRepository, quotes *MockQuoteProvider) {
				repo.On("GetByID", stored).Return(&domain.Option{ID: stored, Symbol: "ORCL", Type: domain.OptionTypePut}, nil)
				quotes.On("LastPrice", "ORCL").Return(decimal.Zero, domain.ErrQuoteUnavailable)
			},
			status: http.StatusServiceUnavailable,
		},
		{
			name:   "non finite range",
			target: "/options/" + stored.String() + "/diagram.svg?start=NaN&end=150",
			setup:  func(*MockOptionRepository, *MockQuoteProvider) {},
			status: http.StatusBadRequest,
		},
		{
			name:   "missing range",
			target: "/options/" + stored.String() + "/diagram.svg",
			setup:  func(*MockOptionRepository, *MockQuoteProvider) {},
			status: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, repo, quotes := newTestServer(testToken)
			tt.setup(repo, quotes)

			rec := doRequest(s, http.MethodGet, tt.target, "")

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestHandleRenderStoredDiagram_QuoteServiceDown(t *testing.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer failing.Close()
	unreachable := httptest.NewServer(http.NotFoundHandler())
	unreachable.Close()

	tests := []struct {
		name     string
		upstream *httptest.Server
	}{
		{name: "bad gateway", upstream: failing},
		{name: "connection refused", upstream: unreachable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := yahoo.DefaultConfig()
			cfg.BaseURL = tt.upstream.URL + "/d/quotes.csv"
			quotes := yahoo.NewService(cfg, tt.upstream.Client(), logger.Discard())

			repo := new(MockOptionRepository)
			option := &domain.Option{ID: uuid.New(), Symbol: "ORCL", Type: domain.OptionTypeCall}
			repo.On("GetByID", option.ID).Return(option, nil)

			service := diagram.NewDiagramService(repo, quotes, svg.Render, geometry.DefaultLayout(), logger.Discard())
			s := NewServer(":0", testToken, service, logger.Discard())

			rec := doRequest(s, http.MethodGet, "/options/"+option.ID.String()+"/diagram.svg?start=50&end=150", "")

			assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
			resp := decodeResponse(t, rec)
			assert.False(t, resp.Success)
			assert.Contains(t, resp.Error, "current price of ORCL")
		})
	}
}

func TestHandleCreateOption(t *testing.T) {
	s, repo, _ := newTestServer(testToken)
	repo.On("Create", mock.MatchedBy(func(o *domain.Option) bool {
		return o.Symbol == "ORCL" &&
			o.Type == domain.OptionTypePut &&
			o.StrikePrice.Equal(decimal.NewFromInt(100)) &&
			o.ID != uuid.Nil
	})).Return(nil)

	body := `{"symbol":" orcl ","option_type":"put","purchase_price":"80","strike_price":"100","premium":"1.25"}`
	rec := doRequest(s, http.MethodPost, "/options", body)

	require.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "ORCL", data["symbol"])
	assert.Equal(t, "PUT", data["option_type"])
	assert.Equal(t, "1.25", data["premium"])
	repo.AssertExpectations(t)
}

func TestHandleCreateOption_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"symbol":`},
		{name: "bad price", body: `{"option_type":"CALL","purchase_price":"x","strike_price":"1","premium":"1"}`},
		{name: "bad type", body: `{"option_type":"SWAP","purchase_price":"1","strike_price":"1","premium":"1"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, repo, _ := newTestServer(testToken)

			rec := doRequest(s, http.MethodPost, "/options", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			repo.AssertNotCalled(t, "Create", mock.Anything)
		})
	}
}

func TestHandleListOptions(t *testing.T) {
	s, repo, _ := newTestServer(testToken)
	repo.On("List", "ORCL").Return([]*domain.Option{
		{ID: uuid.New(), Symbol: "ORCL", Type: domain.OptionTypeCall, StrikePrice: decimal.NewFromInt(100)},
	}, nil)

	rec := doRequest(s, http.MethodGet, "/options?symbol=orcl", "")

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Len(t, resp.Data, 1)
	repo.AssertExpectations(t)
}

func TestAuthMiddleware(t *testing.T) {
	s, _, _ := newTestServer(testToken)
	target := "/diagram.svg?type=CALL&purchase=80&strike=100&current=120&start=50&end=150"

	tests := []struct {
		name   string
		header string
		status int
	}{
		{name: "missing token", header: "", status: http.StatusUnauthorized},
		{name: "wrong token", header: "Bearer nope", status: http.StatusUnauthorized},
		{name: "bare token", header: testToken, status: http.StatusOK},
		{name: "bearer token", header: "Bearer " + testToken, status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, target, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			s.Handler().ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestAuthMiddleware_Disabled(t *testing.T) {
	s, _, _ := newTestServer("")
	req := httptest.NewRequest(http.MethodGet, "/diagram.svg?type=CALL&purchase=80&strike=100&current=120&start=50&end=150", nil)
	rec := httptest.NewRecorder()

	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthCheck_NoAuth(t *testing.T) {
	s, _, _ := newTestServer(testToken)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeResponse(t, rec).Success)
}
