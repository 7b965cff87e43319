package footprint

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// VehicleFactors holds per-mile emissions by fuel type (kg CO2e per mile).
type VehicleFactors struct {
	Gasoline float64 `json:"gasoline" yaml:"gasoline"`
	Diesel   float64 `json:"diesel" yaml:"diesel"`
	Hybrid   float64 `json:"hybrid" yaml:"hybrid"`
	Electric float64 `json:"electric" yaml:"electric"`
}

// PerMile returns the factor for the given fuel. The second value is false
// for fuel types outside the closed set.
func (v VehicleFactors) PerMile(fuel FuelType) (float64, bool) {
	switch fuel {
	case FuelGasoline:
		return v.Gasoline, true
	case FuelDiesel:
		return v.Diesel, true
	case FuelHybrid:
		return v.Hybrid, true
	case FuelElectric:
		return v.Electric, true
	}
	return 0, false
}

// DietFactors holds daily emissions by diet type (kg CO2e per day).
type DietFactors struct {
	Omnivore    float64 `json:"omnivore" yaml:"omnivore"`
	Flexitarian float64 `json:"flexitarian" yaml:"flexitarian"`
	Vegetarian  float64 `json:"vegetarian" yaml:"vegetarian"`
	Vegan       float64 `json:"vegan" yaml:"vegan"`
}

// PerDay returns the factor for the given diet. The second value is false
// for diet types outside the closed set.
func (d DietFactors) PerDay(diet DietType) (float64, bool) {
	switch diet {
	case DietOmnivore:
		return d.Omnivore, true
	case DietFlexitarian:
		return d.Flexitarian, true
	case DietVegetarian:
		return d.Vegetarian, true
	case DietVegan:
		return d.Vegan, true
	}
	return 0, false
}

// ReferenceValues are fixed comparison points attached to every result
// (kg CO2e per year).
type ReferenceValues struct {
	NationalAverage float64 `json:"nationalAverage" yaml:"nationalAverage"`
	GlobalAverage   float64 `json:"globalAverage" yaml:"globalAverage"`
	ParisTargets    float64 `json:"parisTargets" yaml:"parisTargets"`
}

// Factors is the complete set of constants used by the engine.
type Factors struct {
	// Energy, kg CO2e per unit.
	Electricity float64 `json:"electricity" yaml:"electricity"` // per kWh
	NaturalGas  float64 `json:"naturalGas" yaml:"naturalGas"`   // per therm
	HeatingOil  float64 `json:"heatingOil" yaml:"heatingOil"`   // per gallon

	// Transportation.
	Vehicle                 VehicleFactors `json:"vehicle" yaml:"vehicle"`
	PublicTransport         float64        `json:"publicTransport" yaml:"publicTransport"`                 // per mile
	PublicTransportMilesDay float64        `json:"publicTransportMilesDay" yaml:"publicTransportMilesDay"` // miles displaced per transit day
	FlightHour              float64        `json:"flightHour" yaml:"flightHour"`                           // per flight hour
	FlightHours             float64        `json:"flightHours" yaml:"flightHours"`                         // hours per flight

	// Waste, per pound.
	Waste float64 `json:"waste" yaml:"waste"`

	// Food.
	Diet               DietFactors `json:"diet" yaml:"diet"`
	LocalFoodReduction float64     `json:"localFoodReduction" yaml:"localFoodReduction"` // per percentage point
	OrganicReduction   float64     `json:"organicReduction" yaml:"organicReduction"`     // per percentage point
	FoodWasteAddition  float64     `json:"foodWasteAddition" yaml:"foodWasteAddition"`   // per percentage point

	// Lifestyle.
	Shopping    float64 `json:"shopping" yaml:"shopping"`       // per scale point per day
	Electronics float64 `json:"electronics" yaml:"electronics"` // per scale point per day
	HomeSize    float64 `json:"homeSize" yaml:"homeSize"`       // per square foot per year

	References ReferenceValues `json:"references" yaml:"references"`
}

// DefaultFactors returns the published factor set.
func DefaultFactors() Factors {
	return Factors{
		Electricity: 0.5,
		NaturalGas:  5.3,
		HeatingOil:  10.15,
		Vehicle: VehicleFactors{
			Gasoline: 0.404,
			Diesel:   0.429,
			Hybrid:   0.202,
			Electric: 0.1,
		},
		PublicTransport:         0.16,
		PublicTransportMilesDay: 15,
		FlightHour:              200,
		FlightHours:             3,
		Waste:                   0.5,
		Diet: DietFactors{
			Omnivore:    7.4,
			Flexitarian: 5.3,
			Vegetarian:  3.8,
			Vegan:       2.9,
		},
		LocalFoodReduction: 0.005,
		OrganicReduction:   0.002,
		FoodWasteAddition:  0.01,
		Shopping:           0.5,
		Electronics:        0.3,
		HomeSize:           0.005,
		References: ReferenceValues{
			NationalAverage: 16000,
			GlobalAverage:   5000,
			ParisTargets:    3000,
		},
	}
}

// namedFactor pairs a scalar factor with its YAML path.
type namedFactor struct {
	name  string
	value float64
}

// named returns every scalar factor in declaration order.
func (f Factors) named() []namedFactor {
	return []namedFactor{
		{"electricity", f.Electricity},
		{"naturalGas", f.NaturalGas},
		{"heatingOil", f.HeatingOil},
		{"vehicle.gasoline", f.Vehicle.Gasoline},
		{"vehicle.diesel", f.Vehicle.Diesel},
		{"vehicle.hybrid", f.Vehicle.Hybrid},
		{"vehicle.electric", f.Vehicle.Electric},
		{"publicTransport", f.PublicTransport},
		{"publicTransportMilesDay", f.PublicTransportMilesDay},
		{"flightHour", f.FlightHour},
		{"flightHours", f.FlightHours},
		{"waste", f.Waste},
		{"diet.omnivore", f.Diet.Omnivore},
		{"diet.flexitarian", f.Diet.Flexitarian},
		{"diet.vegetarian", f.Diet.Vegetarian},
		{"diet.vegan", f.Diet.Vegan},
		{"localFoodReduction", f.LocalFoodReduction},
		{"organicReduction", f.OrganicReduction},
		{"foodWasteAddition", f.FoodWasteAddition},
		{"shopping", f.Shopping},
		{"electronics", f.Electronics},
		{"homeSize", f.HomeSize},
		{"references.nationalAverage", f.References.NationalAverage},
		{"references.globalAverage", f.References.GlobalAverage},
		{"references.parisTargets", f.References.ParisTargets},
	}
}

// Validate checks that every factor is a finite, non-negative number.
func (f Factors) Validate() error {
	for _, nf := range f.named() {
		if math.IsNaN(nf.value) || math.IsInf(nf.value, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidFactors, nf.name)
		}
		if nf.value < 0 {
			return fmt.Errorf("%w: %s must be >= 0, got %g", ErrInvalidFactors, nf.name, nf.value)
		}
	}
	return nil
}

// LoadFactors reads a YAML factor file. Keys missing from the file keep
// their default values.
func LoadFactors(path string) (Factors, error) {
	factors := DefaultFactors()

	data, err := os.ReadFile(path)
	if err != nil {
		return Factors{}, fmt.Errorf("read factors file: %w", err)
	}
	if err := yaml.Unmarshal(data, &factors); err != nil {
		return Factors{}, fmt.Errorf("parse factors file: %w", err)
	}
	if err := factors.Validate(); err != nil {
		return Factors{}, err
	}
	return factors, nil
}
