package footprint

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/carbonwise/carbonwise/internal/footprint"

// Calculation is a computed result with its correlation metadata.
type Calculation struct {
	ID           string    `json:"id" yaml:"id"`
	CalculatedAt time.Time `json:"calculatedAt" yaml:"calculatedAt"`
	Result       *Result   `json:"result" yaml:"result"`
}

// ServiceConfig holds configuration for the footprint service.
type ServiceConfig struct {
	Engine *Engine
	Logger zerolog.Logger
}

// Service wraps the Engine with tracing, metrics and logging.
type Service struct {
	engine *Engine
	logger zerolog.Logger
	tracer trace.Tracer

	calculations       metric.Int64Counter
	validationFailures metric.Int64Counter
	totalEmissions     metric.Float64Histogram
}

// NewService creates a new footprint service.
func NewService(cfg ServiceConfig) (*Service, error) {
	engine := cfg.Engine
	if engine == nil {
		engine = NewDefaultEngine()
	}

	meter := otel.Meter(instrumentationName)

	calculations, err := meter.Int64Counter(
		"footprint.calculations.total",
		metric.WithDescription("Total number of footprint calculations"),
		metric.WithUnit("{calculation}"),
	)
	if err != nil {
		return nil, err
	}

	validationFailures, err := meter.Int64Counter(
		"footprint.validation_failures.total",
		metric.WithDescription("Number of rejected input fields"),
		metric.WithUnit("{field}"),
	)
	if err != nil {
		return nil, err
	}

	totalEmissions, err := meter.Float64Histogram(
		"footprint.total_emissions",
		metric.WithDescription("Computed annual footprint per calculation"),
		metric.WithUnit("kg"),
	)
	if err != nil {
		return nil, err
	}

	return &Service{
		engine:             engine,
		logger:             cfg.Logger,
		tracer:             otel.Tracer(instrumentationName),
		calculations:       calculations,
		validationFailures: validationFailures,
		totalEmissions:     totalEmissions,
	}, nil
}

// Engine returns the underlying engine.
func (s *Service) Engine() *Engine {
	return s.engine
}

// Calculate computes the footprint for one completed questionnaire.
func (s *Service) Calculate(ctx context.Context, in Input) (*Calculation, error) {
	calcID := "calc_" + uuid.New().String()[:22]

	ctx, span := s.tracer.Start(ctx, "footprint.Calculate",
		trace.WithAttributes(
			attribute.String("calculation.id", calcID),
			attribute.String("transportation.vehicle_type", string(in.Transportation.VehicleType)),
			attribute.String("food.diet_type", string(in.Food.DietType)),
		),
	)
	defer span.End()

	result, err := s.engine.Compute(in)
	if err != nil {
		s.recordFailure(ctx, span, calcID, err)
		return nil, err
	}

	span.SetAttributes(
		attribute.Float64("footprint.total_kg", result.TotalEmissions),
		attribute.Int("footprint.recommendations", len(result.Recommendations)),
	)
	s.calculations.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "ok")))
	s.totalEmissions.Record(ctx, result.TotalEmissions)

	s.logger.Debug().
		Str("calculation_id", calcID).
		Float64("total_kg", result.TotalEmissions).
		Int("recommendations", len(result.Recommendations)).
		Msg("footprint calculated")

	return &Calculation{
		ID:           calcID,
		CalculatedAt: time.Now().UTC(),
		Result:       result,
	}, nil
}

func (s *Service) recordFailure(ctx context.Context, span trace.Span, calcID string, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, "invalid input")
	s.calculations.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "invalid")))

	var verr *ValidationError
	if !errors.As(err, &verr) {
		s.logger.Error().Err(err).Str("calculation_id", calcID).Msg("footprint calculation failed")
		return
	}

	fields := make([]string, 0, len(verr.Errors))
	for _, fe := range verr.Errors {
		fields = append(fields, fe.Field)
		s.validationFailures.Add(ctx, 1, metric.WithAttributes(
			attribute.String("field", fe.Field),
			attribute.String("code", fe.Code()),
		))
	}
	s.logger.Info().
		Str("calculation_id", calcID).
		Strs("fields", fields).
		Msg("footprint input rejected")
}
