package footprint

import "fmt"

// EngineConfig holds configuration for the calculation engine.
type EngineConfig struct {
	// Factors is the emission factor set. Zero value uses DefaultFactors.
	Factors *Factors

	// Rules are the recommendation rules in evaluation order.
	// Nil uses DefaultRules.
	Rules []Rule

	// MaxRecommendations caps the ranked list. Zero means
	// DefaultMaxRecommendations, which is also the largest accepted value.
	MaxRecommendations int
}

// Engine computes emissions from questionnaire input. It holds only
// immutable configuration and is safe for concurrent use.
type Engine struct {
	factors            Factors
	rules              []Rule
	maxRecommendations int
}

// NewEngine creates an Engine, validating the factor set.
func NewEngine(cfg EngineConfig) (*Engine, error) {
	factors := DefaultFactors()
	if cfg.Factors != nil {
		factors = *cfg.Factors
	}
	if err := factors.Validate(); err != nil {
		return nil, err
	}

	rules := cfg.Rules
	if rules == nil {
		rules = DefaultRules()
	}

	maxRecs := cfg.MaxRecommendations
	switch {
	case maxRecs == 0:
		maxRecs = DefaultMaxRecommendations
	case maxRecs < 0 || maxRecs > DefaultMaxRecommendations:
		return nil, fmt.Errorf("%w: max recommendations %d outside [1, %d]",
			ErrInvalidEngine, maxRecs, DefaultMaxRecommendations)
	}

	return &Engine{
		factors:            factors,
		rules:              append([]Rule(nil), rules...),
		maxRecommendations: maxRecs,
	}, nil
}

// NewDefaultEngine returns an Engine using the published factors and rules.
func NewDefaultEngine() *Engine {
	return &Engine{
		factors:            DefaultFactors(),
		rules:              DefaultRules(),
		maxRecommendations: DefaultMaxRecommendations,
	}
}

// Factors returns a copy of the engine's factor set.
func (e *Engine) Factors() Factors {
	return e.factors
}

// Compute validates the input and returns the emissions breakdown with
// ranked recommendations. Totals are not rounded.
func (e *Engine) Compute(in Input) (*Result, error) {
	if err := Validate(in); err != nil {
		return nil, err
	}

	energy := e.EnergyEmissions(in.Energy)
	transportation := e.TransportationEmissions(in.Transportation)
	waste := e.WasteEmissions(in.Waste)
	food := e.FoodEmissions(in.Food)
	lifestyle := e.LifestyleEmissions(in.Lifestyle)

	return &Result{
		TotalEmissions:          energy + transportation + waste + food + lifestyle,
		EnergyEmissions:         energy,
		TransportationEmissions: transportation,
		WasteEmissions:          waste,
		FoodEmissions:           food,
		LifestyleEmissions:      lifestyle,
		NationalAverage:         e.factors.References.NationalAverage,
		GlobalAverage:           e.factors.References.GlobalAverage,
		ParisTargets:            e.factors.References.ParisTargets,
		Recommendations:         e.Recommendations(in),
	}, nil
}

// Recommendations evaluates every rule against the input and returns the
// ranked, capped list. The result is never nil.
func (e *Engine) Recommendations(in Input) []Recommendation {
	recs := make([]Recommendation, 0, len(e.rules))
	for _, rule := range e.rules {
		if rec, ok := rule.Recommend(in, e.factors); ok {
			recs = append(recs, rec)
		}
	}
	return rankRecommendations(recs, e.maxRecommendations)
}
