package footprint

import "math"

// Annualisation multipliers.
const (
	monthsPerYear = 12
	weeksPerYear  = 52
	daysPerYear   = 365
)

// EnergyEmissions returns annual household energy emissions. The renewable
// share discounts the electricity term only.
func (e *Engine) EnergyEmissions(in EnergyInput) float64 {
	f := e.factors
	electricity := in.ElectricityUsage * f.Electricity * monthsPerYear * (1 - in.RenewablePercentage/100)
	naturalGas := in.NaturalGasUsage * f.NaturalGas * monthsPerYear
	heatingOil := in.HeatingOilUsage * f.HeatingOil * monthsPerYear

	return electricity + naturalGas + heatingOil
}

// TransportationEmissions returns annual travel emissions as the sum of
// independent vehicle, public transport and flight terms.
func (e *Engine) TransportationEmissions(in TransportationInput) float64 {
	f := e.factors

	vehicle := 0.0
	if in.VehicleType != VehicleNone {
		vehicle = in.MilesDriven * e.perMile(in.FuelType) * weeksPerYear
	}

	publicTransport := in.PublicTransportFrequency * f.PublicTransportMilesDay * f.PublicTransport * weeksPerYear
	flights := in.FlightsPerYear * f.FlightHours * f.FlightHour

	return vehicle + publicTransport + flights
}

// WasteEmissions returns annual landfill emissions. The net fraction is not
// clamped: recycling and compost shares summing above 100 yield a negative value.
func (e *Engine) WasteEmissions(in WasteInput) float64 {
	netFraction := 1 - in.RecyclingPercentage/100 - in.CompostPercentage/100
	return in.WasteProduced * e.factors.Waste * netFraction * weeksPerYear
}

// FoodEmissions returns annual dietary emissions. The sourcing multiplier is
// not clamped.
func (e *Engine) FoodEmissions(in FoodInput) float64 {
	f := e.factors
	base := e.perDay(in.DietType)
	multiplier := 1 -
		in.LocalFoodPercentage*f.LocalFoodReduction -
		in.OrganicFoodPercentage*f.OrganicReduction +
		in.FoodWastePercentage*f.FoodWasteAddition

	return base * multiplier * daysPerYear
}

// LifestyleEmissions returns annual consumption and housing emissions. Home
// emissions are shared across the household, with at least one member.
func (e *Engine) LifestyleEmissions(in LifestyleInput) float64 {
	f := e.factors
	shopping := in.ShoppingFrequency * f.Shopping * daysPerYear
	electronics := in.ElectronicsUsage * f.Electronics * daysPerYear
	home := in.HomeSize * f.HomeSize / math.Max(1, in.HouseholdMembers)

	return shopping + electronics + home
}

// perMile yields NaN for an unknown fuel so the gap is visible in totals.
func (e *Engine) perMile(fuel FuelType) float64 {
	v, ok := e.factors.Vehicle.PerMile(fuel)
	if !ok {
		return math.NaN()
	}
	return v
}

func (e *Engine) perDay(diet DietType) float64 {
	v, ok := e.factors.Diet.PerDay(diet)
	if !ok {
		return math.NaN()
	}
	return v
}
