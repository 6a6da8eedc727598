package grpc

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/accounted4/optionspark/internal/domain"
	"github.com/accounted4/optionspark/internal/usecase/diagram"
	"github.com/accounted4/optionspark/internal/usecase/geometry"
)

// Server implements the DiagramService gRPC server
type Server struct {
	DiagramService *diagram.DiagramService
}

// NewServer creates a new gRPC server instance
func NewServer(diagramService *diagram.DiagramService) *Server {
	return &Server{DiagramService: diagramService}
}

// PlanDiagram handles the PlanDiagram RPC
func (s *Server) PlanDiagram(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	option, currentPrice, rng, err := parseInlineRequest(req)
	if err != nil {
		return nil, err
	}

	plan, err := s.DiagramService.Plan(ctx, option, currentPrice, rng)
	if err != nil {
		return nil, mapError(err)
	}

	resp, err := structpb.NewStruct(planToMap(plan))
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode plan: %v", err)
	}
	return resp, nil
}

// RenderDiagram handles the RenderDiagram RPC
func (s *Server) RenderDiagram(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	option, currentPrice, rng, err := parseInlineRequest(req)
	if err != nil {
		return nil, err
	}

	out, err := s.DiagramService.RenderSVG(ctx, option, currentPrice, rng)
	if err != nil {
		return nil, mapError(err)
	}

	return svgResponse(out), nil
}

// RenderStoredDiagram handles the RenderStoredDiagram RPC
func (s *Server) RenderStoredDiagram(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fields := req.GetFields()

	optionID, err := uuid.Parse(fields["option_id"].GetStringValue())
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid option_id format: %v", err)
	}

	rng, err := parseRange(fields)
	if err != nil {
		return nil, err
	}

	out, err := s.DiagramService.RenderStored(ctx, optionID, rng)
	if err != nil {
		return nil, mapError(err)
	}

	return svgResponse(out), nil
}

// parseInlineRequest reads an option, current price and range from request fields
func parseInlineRequest(req *structpb.Struct) (domain.Option, float64, domain.PriceRange, error) {
	fields := req.GetFields()

	purchase, err := decimalField(fields, "purchase_price")
	if err != nil {
		return domain.Option{}, 0, domain.PriceRange{}, err
	}
	strike, err := decimalField(fields, "strike_price")
	if err != nil {
		return domain.Option{}, 0, domain.PriceRange{}, err
	}
	premium, err := decimalField(fields, "premium")
	if err != nil {
		return domain.Option{}, 0, domain.PriceRange{}, err
	}

	option, err := domain.NewOption(fields["option_type"].GetStringValue(), purchase, strike, premium)
	if err != nil {
		return domain.Option{}, 0, domain.PriceRange{}, mapError(err)
	}
	option.Symbol = fields["symbol"].GetStringValue()

	current, err := numberField(fields, "current_price")
	if err != nil {
		return domain.Option{}, 0, domain.PriceRange{}, err
	}

	rng, err := parseRange(fields)
	if err != nil {
		return domain.Option{}, 0, domain.PriceRange{}, err
	}

	return option, current, rng, nil
}

func parseRange(fields map[string]*structpb.Value) (domain.PriceRange, error) {
	start, err := numberField(fields, "range_start")
	if err != nil {
		return domain.PriceRange{}, err
	}
	end, err := numberField(fields, "range_end")
	if err != nil {
		return domain.PriceRange{}, err
	}
	return domain.PriceRange{Start: start, End: end}, nil
}

// decimalField accepts a decimal string (preferred, as amounts are elsewhere) or a number
func decimalField(fields map[string]*structpb.Value, key string) (decimal.Decimal, error) {
	v, ok := fields[key]
	if !ok {
		return decimal.Zero, status.Errorf(codes.InvalidArgument, "missing %s", key)
	}
	switch kind := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		d, err := decimal.NewFromString(kind.StringValue)
		if err != nil {
			return decimal.Zero, status.Errorf(codes.InvalidArgument, "invalid %s format: %v", key, err)
		}
		return d, nil
	case *structpb.Value_NumberValue:
		if !domain.IsFinite(kind.NumberValue) {
			return decimal.Zero, status.Errorf(codes.InvalidArgument, "%s: %s is %v", domain.ErrNonFiniteValue, key, kind.NumberValue)
		}
		return decimal.NewFromFloat(kind.NumberValue), nil
	default:
		return decimal.Zero, status.Errorf(codes.InvalidArgument, "invalid %s format: expected string or number", key)
	}
}

// numberField reads plain floats as-is; non-finite values are left for ValidateRequest
func numberField(fields map[string]*structpb.Value, key string) (float64, error) {
	v, ok := fields[key]
	if !ok {
		return 0, status.Errorf(codes.InvalidArgument, "missing %s", key)
	}
	switch kind := v.GetKind().(type) {
	case *structpb.Value_NumberValue:
		return kind.NumberValue, nil
	case *structpb.Value_StringValue:
		f, err := strconv.ParseFloat(kind.StringValue, 64)
		if err != nil {
			return 0, status.Errorf(codes.InvalidArgument, "invalid %s format: %v", key, err)
		}
		return f, nil
	default:
		return 0, status.Errorf(codes.InvalidArgument, "invalid %s format: expected string or number", key)
	}
}

func svgResponse(out []byte) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"svg": structpb.NewStringValue(string(out)),
	}}
}

// planToMap converts a render plan into plain values accepted by structpb
func planToMap(plan geometry.RenderPlan) map[string]interface{} {
	segment := func(s geometry.Segment) map[string]interface{} {
		return map[string]interface{}{
			"from_x": s.From.X,
			"to_x":   s.To.X,
			"y":      s.From.Y,
			"dashed": s.Dashed,
		}
	}

	points := make([]interface{}, 0, len(plan.Current.Points))
	for _, p := range plan.Current.Points {
		points = append(points, []interface{}{p.X, p.Y})
	}

	return map[string]interface{}{
		"width":      plan.Layout.Full.W,
		"height":     plan.Layout.Full.H,
		"mid_height": plan.MidHeight,
		"scale": map[string]interface{}{
			"domain": []interface{}{plan.Scale.DomainStart, plan.Scale.DomainEnd},
			"range":  []interface{}{plan.Scale.RangeStart, plan.Scale.RangeEnd},
		},
		"before": segment(plan.Before),
		"after":  segment(plan.After),
		"purchase": map[string]interface{}{
			"cx": plan.Purchase.Center.X,
			"cy": plan.Purchase.Center.Y,
			"r":  plan.Purchase.Radius,
		},
		"current": map[string]interface{}{
			"cx":     plan.Current.Center.X,
			"cy":     plan.Current.Center.Y,
			"area":   plan.Current.Area,
			"fill":   plan.Current.Fill,
			"points": points,
		},
	}
}

// mapError converts domain errors to gRPC status errors
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok && status.Code(err) != codes.Unknown {
		return err
	}

	switch {
	case errors.Is(err, domain.ErrInvalidRange),
		errors.Is(err, domain.ErrNonFiniteValue),
		errors.Is(err, domain.ErrInvalidOptionKind):
		return status.Errorf(codes.InvalidArgument, "%s", err.Error())
	case errors.Is(err, domain.ErrOptionNotFound):
		return status.Errorf(codes.NotFound, "%s", err.Error())
	case errors.Is(err, domain.ErrQuoteUnavailable):
		return status.Errorf(codes.Unavailable, "%s", err.Error())
	}

	return status.Error(codes.Internal, fmt.Sprintf("internal error: %s", err.Error()))
}
