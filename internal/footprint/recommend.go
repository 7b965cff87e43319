package footprint

import (
	"math"
	"sort"
)

// DefaultMaxRecommendations caps the ranked recommendation list.
const DefaultMaxRecommendations = 5

// Rule thresholds and modelled reductions.
const (
	renewableThreshold       = 50  // percent
	transitDaysThreshold     = 3   // days per week
	recyclingThreshold       = 70  // percent
	shoppingThreshold        = 5   // scale points
	renewableSavingsShare    = 0.5 // electricity term halved
	transitMileageCut        = 0.2 // 20% fewer miles driven
	recyclingIncrease        = 0.2 // 20 more points recycled
	sustainableShoppingShare = 0.5
)

// Rule is a single recommendation: a predicate over the input and an
// estimator for the annual savings when the predicate holds.
type Rule struct {
	ID          string
	Category    Category
	Title       string
	Description string
	Difficulty  Difficulty
	Applies     func(in Input) bool
	Savings     func(in Input, f Factors) float64
}

// Recommend evaluates the rule against the input. ok is false if the rule
// does not apply.
func (r Rule) Recommend(in Input, f Factors) (rec Recommendation, ok bool) {
	if !r.Applies(in) {
		return Recommendation{}, false
	}
	return Recommendation{
		Category:         r.Category,
		Title:            r.Title,
		Description:      r.Description,
		PotentialSavings: r.Savings(in, f),
		Difficulty:       r.Difficulty,
	}, true
}

// DefaultRules returns the built-in rules in evaluation order. Order is the
// tie-break when two recommendations save the same amount.
func DefaultRules() []Rule {
	return []Rule{
		{
			ID:          "renewable-energy",
			Category:    CategoryEnergy,
			Title:       "Switch to Renewable Energy",
			Description: "Consider switching to a renewable energy provider or installing solar panels.",
			Difficulty:  DifficultyMedium,
			Applies: func(in Input) bool {
				return in.Energy.RenewablePercentage < renewableThreshold
			},
			Savings: func(in Input, f Factors) float64 {
				return in.Energy.ElectricityUsage * f.Electricity * monthsPerYear * renewableSavingsShare
			},
		},
		{
			ID:          "electric-vehicle",
			Category:    CategoryTransportation,
			Title:       "Consider an Electric Vehicle",
			Description: "Your next vehicle purchase could be electric to significantly reduce emissions.",
			Difficulty:  DifficultyHard,
			Applies: func(in Input) bool {
				return in.Transportation.VehicleType != VehicleNone && in.Transportation.FuelType != FuelElectric
			},
			Savings: func(in Input, f Factors) float64 {
				current := fuelFactor(f, in.Transportation.FuelType)
				return in.Transportation.MilesDriven * (current - f.Vehicle.Electric) * weeksPerYear
			},
		},
		{
			ID:          "public-transport",
			Category:    CategoryTransportation,
			Title:       "Use Public Transportation",
			Description: "Try using public transportation more frequently to reduce driving emissions.",
			Difficulty:  DifficultyEasy,
			Applies: func(in Input) bool {
				return in.Transportation.PublicTransportFrequency < transitDaysThreshold &&
					in.Transportation.VehicleType != VehicleNone
			},
			Savings: func(in Input, f Factors) float64 {
				current := fuelFactor(f, in.Transportation.FuelType)
				return in.Transportation.MilesDriven * transitMileageCut * current * weeksPerYear
			},
		},
		{
			ID:          "recycling",
			Category:    CategoryWaste,
			Title:       "Increase Recycling",
			Description: "Try to recycle more of your waste to reduce landfill emissions.",
			Difficulty:  DifficultyEasy,
			Applies: func(in Input) bool {
				return in.Waste.RecyclingPercentage < recyclingThreshold
			},
			Savings: func(in Input, f Factors) float64 {
				return in.Waste.WasteProduced * f.Waste * recyclingIncrease * weeksPerYear
			},
		},
		{
			ID:          "reduce-meat",
			Category:    CategoryFood,
			Title:       "Reduce Meat Consumption",
			Description: "Try having meat-free days to reduce your dietary carbon footprint.",
			Difficulty:  DifficultyMedium,
			Applies: func(in Input) bool {
				return in.Food.DietType == DietOmnivore
			},
			Savings: func(_ Input, f Factors) float64 {
				return (f.Diet.Omnivore - f.Diet.Flexitarian) * daysPerYear
			},
		},
		{
			ID:          "sustainable-shopping",
			Category:    CategoryLifestyle,
			Title:       "Shop More Sustainably",
			Description: "Try buying less and choosing sustainable, long-lasting products.",
			Difficulty:  DifficultyMedium,
			Applies: func(in Input) bool {
				return in.Lifestyle.ShoppingFrequency > shoppingThreshold
			},
			Savings: func(in Input, f Factors) float64 {
				return (in.Lifestyle.ShoppingFrequency - shoppingThreshold) * f.Shopping * daysPerYear * sustainableShoppingShare
			},
		},
	}
}

func fuelFactor(f Factors, fuel FuelType) float64 {
	v, ok := f.Vehicle.PerMile(fuel)
	if !ok {
		return math.NaN()
	}
	return v
}

// rankRecommendations sorts by savings, highest first, keeping rule order
// for ties, and keeps at most limit entries.
func rankRecommendations(recs []Recommendation, limit int) []Recommendation {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].PotentialSavings > recs[j].PotentialSavings
	})
	if len(recs) > limit {
		recs = recs[:limit]
	}
	return recs
}
