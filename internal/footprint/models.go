// Package footprint provides the carbon footprint calculation engine.
//
// The engine converts a completed questionnaire (Input) into an annual
// emissions breakdown in kg CO2e and a ranked list of recommendations.
// It is stateless: every call to Compute is independent.
package footprint

// Category identifies one of the five lifestyle categories.
type Category string

const (
	CategoryEnergy         Category = "energy"
	CategoryTransportation Category = "transportation"
	CategoryWaste          Category = "waste"
	CategoryFood           Category = "food"
	CategoryLifestyle      Category = "lifestyle"
)

// Categories returns all categories in display order.
func Categories() []Category {
	return []Category{
		CategoryEnergy,
		CategoryTransportation,
		CategoryWaste,
		CategoryFood,
		CategoryLifestyle,
	}
}

// VehicleType is the kind of vehicle the respondent drives.
type VehicleType string

const (
	VehicleCar        VehicleType = "car"
	VehicleSUV        VehicleType = "SUV"
	VehicleTruck      VehicleType = "truck"
	VehicleMotorcycle VehicleType = "motorcycle"
	VehicleNone       VehicleType = "none"
)

// VehicleTypes returns all valid vehicle types.
func VehicleTypes() []VehicleType {
	return []VehicleType{VehicleCar, VehicleSUV, VehicleTruck, VehicleMotorcycle, VehicleNone}
}

// Valid reports whether v is a known vehicle type.
func (v VehicleType) Valid() bool {
	switch v {
	case VehicleCar, VehicleSUV, VehicleTruck, VehicleMotorcycle, VehicleNone:
		return true
	}
	return false
}

// UnmarshalText rejects unknown vehicle types at decode time.
func (v *VehicleType) UnmarshalText(text []byte) error {
	parsed := VehicleType(text)
	if !parsed.Valid() {
		return enumError("transportation.vehicleType", "vehicle type", text)
	}
	*v = parsed
	return nil
}

// FuelType is the fuel used by the respondent's vehicle.
type FuelType string

const (
	FuelGasoline FuelType = "gasoline"
	FuelDiesel   FuelType = "diesel"
	FuelElectric FuelType = "electric"
	FuelHybrid   FuelType = "hybrid"
)

// FuelTypes returns all valid fuel types.
func FuelTypes() []FuelType {
	return []FuelType{FuelGasoline, FuelDiesel, FuelElectric, FuelHybrid}
}

// Valid reports whether f is a known fuel type.
func (f FuelType) Valid() bool {
	switch f {
	case FuelGasoline, FuelDiesel, FuelElectric, FuelHybrid:
		return true
	}
	return false
}

// UnmarshalText rejects unknown fuel types at decode time. An empty value is
// accepted so that respondents without a vehicle may omit it.
func (f *FuelType) UnmarshalText(text []byte) error {
	parsed := FuelType(text)
	if parsed != "" && !parsed.Valid() {
		return enumError("transportation.fuelType", "fuel type", text)
	}
	*f = parsed
	return nil
}

// DietType is the respondent's dominant diet.
type DietType string

const (
	DietOmnivore    DietType = "omnivore"
	DietFlexitarian DietType = "flexitarian"
	DietVegetarian  DietType = "vegetarian"
	DietVegan       DietType = "vegan"
)

// DietTypes returns all valid diet types.
func DietTypes() []DietType {
	return []DietType{DietOmnivore, DietFlexitarian, DietVegetarian, DietVegan}
}

// Valid reports whether d is a known diet type.
func (d DietType) Valid() bool {
	switch d {
	case DietOmnivore, DietFlexitarian, DietVegetarian, DietVegan:
		return true
	}
	return false
}

// UnmarshalText rejects unknown diet types at decode time.
func (d *DietType) UnmarshalText(text []byte) error {
	parsed := DietType(text)
	if !parsed.Valid() {
		return enumError("food.dietType", "diet type", text)
	}
	*d = parsed
	return nil
}

// Difficulty rates how hard a recommendation is to adopt.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// EnergyInput describes household energy use.
type EnergyInput struct {
	ElectricityUsage    float64 `json:"electricityUsage" yaml:"electricityUsage"`       // kWh per month
	NaturalGasUsage     float64 `json:"naturalGasUsage" yaml:"naturalGasUsage"`         // therms per month
	HeatingOilUsage     float64 `json:"heatingOilUsage" yaml:"heatingOilUsage"`         // gallons per month
	RenewablePercentage float64 `json:"renewablePercentage" yaml:"renewablePercentage"` // 0-100
}

// TransportationInput describes travel habits.
type TransportationInput struct {
	VehicleType              VehicleType `json:"vehicleType" yaml:"vehicleType"`
	FuelType                 FuelType    `json:"fuelType" yaml:"fuelType"`
	MilesDriven              float64     `json:"milesDriven" yaml:"milesDriven"`                           // miles per week
	PublicTransportFrequency float64     `json:"publicTransportFrequency" yaml:"publicTransportFrequency"` // days per week
	FlightsPerYear           float64     `json:"flightsPerYear" yaml:"flightsPerYear"`
}

// WasteInput describes household waste.
type WasteInput struct {
	WasteProduced       float64 `json:"wasteProduced" yaml:"wasteProduced"`             // lbs per week
	RecyclingPercentage float64 `json:"recyclingPercentage" yaml:"recyclingPercentage"` // 0-100
	CompostPercentage   float64 `json:"compostPercentage" yaml:"compostPercentage"`     // 0-100
}

// FoodInput describes diet and food sourcing.
type FoodInput struct {
	DietType              DietType `json:"dietType" yaml:"dietType"`
	LocalFoodPercentage   float64  `json:"localFoodPercentage" yaml:"localFoodPercentage"`
	OrganicFoodPercentage float64  `json:"organicFoodPercentage" yaml:"organicFoodPercentage"`
	FoodWastePercentage   float64  `json:"foodWastePercentage" yaml:"foodWastePercentage"`
}

// LifestyleInput describes consumption and housing.
type LifestyleInput struct {
	ShoppingFrequency float64 `json:"shoppingFrequency" yaml:"shoppingFrequency"` // 1-10 scale
	ElectronicsUsage  float64 `json:"electronicsUsage" yaml:"electronicsUsage"`   // 1-10 scale
	HomeSize          float64 `json:"homeSize" yaml:"homeSize"`                   // square feet
	HouseholdMembers  float64 `json:"householdMembers" yaml:"householdMembers"`
}

// Input is one completed questionnaire.
type Input struct {
	Energy         EnergyInput         `json:"energy" yaml:"energy"`
	Transportation TransportationInput `json:"transportation" yaml:"transportation"`
	Waste          WasteInput          `json:"waste" yaml:"waste"`
	Food           FoodInput           `json:"food" yaml:"food"`
	Lifestyle      LifestyleInput      `json:"lifestyle" yaml:"lifestyle"`
}

// Recommendation is a suggested change with its estimated annual savings.
type Recommendation struct {
	Category         Category   `json:"category" yaml:"category"`
	Title            string     `json:"title" yaml:"title"`
	Description      string     `json:"description" yaml:"description"`
	PotentialSavings float64    `json:"potentialSavings" yaml:"potentialSavings"` // kg CO2e per year
	Difficulty       Difficulty `json:"difficulty" yaml:"difficulty"`
}

// Result is the outcome of one calculation. All values are kg CO2e per year
// and are not rounded.
type Result struct {
	TotalEmissions          float64          `json:"totalEmissions" yaml:"totalEmissions"`
	EnergyEmissions         float64          `json:"energyEmissions" yaml:"energyEmissions"`
	TransportationEmissions float64          `json:"transportationEmissions" yaml:"transportationEmissions"`
	WasteEmissions          float64          `json:"wasteEmissions" yaml:"wasteEmissions"`
	FoodEmissions           float64          `json:"foodEmissions" yaml:"foodEmissions"`
	LifestyleEmissions      float64          `json:"lifestyleEmissions" yaml:"lifestyleEmissions"`
	NationalAverage         float64          `json:"nationalAverage" yaml:"nationalAverage"`
	GlobalAverage           float64          `json:"globalAverage" yaml:"globalAverage"`
	ParisTargets            float64          `json:"parisTargets" yaml:"parisTargets"`
	Recommendations         []Recommendation `json:"recommendations" yaml:"recommendations"`
}

// CategoryEmissions returns the subtotal for a single category.
func (r *Result) CategoryEmissions(c Category) float64 {
	switch c {
	case CategoryEnergy:
		return r.EnergyEmissions
	case CategoryTransportation:
		return r.TransportationEmissions
	case CategoryWaste:
		return r.WasteEmissions
	case CategoryFood:
		return r.FoodEmissions
	case CategoryLifestyle:
		return r.LifestyleEmissions
	}
	return 0
}
