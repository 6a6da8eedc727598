package http

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/accounted4/optionspark/internal/domain"
	"github.com/accounted4/optionspark/internal/usecase/diagram"
)

const svgContentType = "image/svg+xml"

// Server serves diagrams and stored options over HTTP
type Server struct {
	router         *mux.Router
	server         *http.Server
	addr           string
	token          string
	DiagramService *diagram.DiagramService
	log            logrus.FieldLogger
}

// Response is the JSON envelope for non-SVG responses
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// OptionRequest is the body of POST /options
type OptionRequest struct {
	Symbol        string `json:"symbol"`
	OptionType    string `json:"option_type"`
	PurchasePrice string `json:"purchase_price"`
	StrikePrice   string `json:"strike_price"`
	Premium       string `json:"premium"`
}

// OptionResponse is the JSON form of a stored option
type OptionResponse struct {
	ID            string `json:"id"`
	Symbol        string `json:"symbol"`
	OptionType    string `json:"option_type"`
	PurchasePrice string `json:"purchase_price"`
	StrikePrice   string `json:"strike_price"`
	Premium       string `json:"premium"`
}

// NewServer creates the HTTP server; an empty token disables authentication
func NewServer(addr, token string, diagramService *diagram.DiagramService, log logrus.FieldLogger) *Server {
	s := &Server{
		router:         mux.NewRouter(),
		addr:           addr,
		token:          token,
		DiagramService: diagramService,
		log:            log,
	}
	s.setupRoutes()
	return s
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() {
	s.router.Use(s.LoggingMiddleware)

	s.router.HandleFunc("/health", s.handleHealthCheck).Methods("GET")

	authenticated := s.router.NewRoute().Subrouter()
	authenticated.Use(s.AuthMiddleware)

	authenticated.HandleFunc("/diagram.svg", s.handleRenderDiagram).Methods("GET")
	authenticated.HandleFunc("/options", s.handleListOptions).Methods("GET")
	authenticated.HandleFunc("/options", s.handleCreateOption).Methods("POST")
	authenticated.HandleFunc("/options/{id}/diagram.svg", s.handleRenderStoredDiagram).Methods("GET")
}

// Start listens in the background until Shutdown is called
func (s *Server) Start() {
	s.server = &http.Server{
		Addr:         s.addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		s.log.WithField("addr", s.addr).Info("Starting HTTP server")
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.WithError(err).Error("HTTP server error")
		}
	}()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("http server shutdown failed: %w", err)
	}
	return nil
}

// LoggingMiddleware logs method, path, status and duration of every request
func (s *Server) LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		entry := s.log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start).String(),
		})
		if rec.status >= http.StatusInternalServerError {
			entry.Error("HTTP request failed")
			return
		}
		entry.Info("HTTP request")
	})
}

// AuthMiddleware checks the Authorization header against the configured token
func (s *Server) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.token == "" {
			next.ServeHTTP(w, r)
			return
		}

		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if subtle.ConstantTimeCompare([]byte(token), []byte(s.token)) != 1 {
			SendErrorResponse(w, http.StatusUnauthorized, "Invalid or missing token", nil)
			return
		}

		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	SendJSONResponse(w, http.StatusOK, Response{
		Success: true,
		Message: "Diagram server is running",
		Data: map[string]interface{}{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		},
	})
}

// handleRenderDiagram renders an option described entirely by query parameters
func (s *Server) handleRenderDiagram(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	prices := make(map[string]decimal.Decimal, 3)
	for _, key := range []string{"purchase", "strike", "premium"} {
		raw := q.Get(key)
		if raw == "" && key == "premium" {
			prices[key] = decimal.Zero
			continue
		}
		d, err := decimal.NewFromString(raw)
		if err != nil {
			SendErrorResponse(w, http.StatusBadRequest, fmt.Sprintf("Invalid value for %s parameter", key), err)
			return
		}
		prices[key] = d
	}

	option, err := domain.NewOption(q.Get("type"), prices["purchase"], prices["strike"], prices["premium"])
	if err != nil {
		SendErrorResponse(w, http.StatusBadRequest, "Invalid option", err)
		return
	}

	current, err := floatParam(q.Get("current"), "current")
	if err != nil {
		SendErrorResponse(w, http.StatusBadRequest, "Invalid request parameters", err)
		return
	}
	rng, err := rangeParams(r)
	if err != nil {
		SendErrorResponse(w, http.StatusBadRequest, "Invalid request parameters", err)
		return
	}

	out, err := s.DiagramService.RenderSVG(r.Context(), option, current, rng)
	if err != nil {
		s.sendDomainError(w, err)
		return
	}
	sendSVG(w, out)
}

// handleRenderStoredDiagram renders a stored option against its live price
func (s *Server) handleRenderStoredDiagram(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		SendErrorResponse(w, http.StatusBadRequest, "Invalid option id", err)
		return
	}

	rng, err := rangeParams(r)
	if err != nil {
		SendErrorResponse(w, http.StatusBadRequest, "Invalid request parameters", err)
		return
	}

	out, err := s.DiagramService.RenderStored(r.Context(), id, rng)
	if err != nil {
		s.sendDomainError(w, err)
		return
	}
	sendSVG(w, out)
}

func (s *Server) handleCreateOption(w http.ResponseWriter, r *http.Request) {
	var req OptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		SendErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	var amounts [3]decimal.Decimal
	for i, raw := range []string{req.PurchasePrice, req.StrikePrice, req.Premium} {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			SendErrorResponse(w, http.StatusBadRequest, "Invalid price format", err)
			return
		}
		amounts[i] = d
	}

	option, err := domain.NewOption(req.OptionType, amounts[0], amounts[1], amounts[2])
	if err != nil {
		SendErrorResponse(w, http.StatusBadRequest, "Invalid option", err)
		return
	}
	option.Symbol = strings.ToUpper(strings.TrimSpace(req.Symbol))

	if err := s.DiagramService.SaveOption(r.Context(), &option); err != nil {
		s.sendDomainError(w, err)
		return
	}

	SendJSONResponse(w, http.StatusCreated, Response{
		Success: true,
		Message: "Option saved",
		Data:    toOptionResponse(&option),
	})
}

func (s *Server) handleListOptions(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("symbol")))

	options, err := s.DiagramService.ListOptions(r.Context(), symbol)
	if err != nil {
		s.sendDomainError(w, err)
		return
	}

	data := make([]OptionResponse, 0, len(options))
	for _, o := range options {
		data = append(data, toOptionResponse(o))
	}
	SendJSONResponse(w, http.StatusOK, Response{Success: true, Data: data})
}

// sendDomainError maps domain errors to status codes
func (s *Server) sendDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRange),
		errors.Is(err, domain.ErrNonFiniteValue),
		errors.Is(err, domain.ErrInvalidOptionKind):
		SendErrorResponse(w, http.StatusBadRequest, "Invalid diagram request", err)
	case errors.Is(err, domain.ErrOptionNotFound):
		SendErrorResponse(w, http.StatusNotFound, "Option not found", err)
	case errors.Is(err, domain.ErrQuoteUnavailable):
		SendErrorResponse(w, http.StatusServiceUnavailable, "Current price unavailable", err)
	default:
		s.log.WithError(err).Error("Request failed")
		SendErrorResponse(w, http.StatusInternalServerError, "Internal error", err)
	}
}

// SendJSONResponse writes resp as JSON with the given status
func SendJSONResponse(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

// SendErrorResponse writes a failed Response with the given status
func SendErrorResponse(w http.ResponseWriter, status int, message string, err error) {
	resp := Response{
		Success: false,
		Message: message,
	}

	if err != nil {
		resp.Error = err.Error()
	}

	SendJSONResponse(w, status, resp)
}

func sendSVG(w http.ResponseWriter, out []byte) {
	w.Header().Set("Content-Type", svgContentType)
	w.WriteHeader(http.StatusOK)
	w.Write(out)
}

func rangeParams(r *http.Request) (domain.PriceRange, error) {
	q := r.URL.Query()
	start, err := floatParam(q.Get("start"), "start")
	if err != nil {
		return domain.PriceRange{}, err
	}
	end, err := floatParam(q.Get("end"), "end")
	if err != nil {
		return domain.PriceRange{}, err
	}
	return domain.PriceRange{Start: start, End: end}, nil
}

func floatParam(raw, name string) (float64, error) {
	if raw == "" {
		return 0, fmt.Errorf("missing required parameter: %s", name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s parameter: %w", name, err)
	}
	return v, nil
}

func toOptionResponse(o *domain.Option) OptionResponse {
	return OptionResponse{
		ID:            o.ID.String(),
		Symbol:        o.Symbol,
		OptionType:    string(o.Type),
		PurchasePrice: o.PurchasePrice.String(),
		StrikePrice:   o.StrikePrice.String(),
		Premium:       o.Premium.String(),
	}
}
