package footprint

import (
	"fmt"
	"math"
)

// Input bounds.
const (
	maxPercentage  = 100
	maxDaysPerWeek = 7
	minScale       = 1
	maxScale       = 10
)

// fieldChecker collects field errors for one Input.
type fieldChecker struct {
	errs []*InvalidInputError
}

func (c *fieldChecker) add(field string, err error, format string, args ...any) {
	c.errs = append(c.errs, &InvalidInputError{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	})
}

func (c *fieldChecker) finite(field string, v float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		c.add(field, ErrNotFinite, "must be a finite number")
		return false
	}
	return true
}

func (c *fieldChecker) nonNegative(field string, v float64) {
	if c.finite(field, v) && v < 0 {
		c.add(field, ErrInvalidRange, "must be >= 0, got %g", v)
	}
}

func (c *fieldChecker) between(field string, v, lo, hi float64) {
	if c.finite(field, v) && (v < lo || v > hi) {
		c.add(field, ErrInvalidRange, "must be between %g and %g, got %g", lo, hi, v)
	}
}

func (c *fieldChecker) percentage(field string, v float64) {
	c.between(field, v, 0, maxPercentage)
}

// Validate checks every field of the input against its declared range and
// value set. It returns a *ValidationError listing all offending fields, or
// nil. The combined recycling and compost share is not constrained.
func Validate(in Input) error {
	c := &fieldChecker{}

	c.nonNegative("energy.electricityUsage", in.Energy.ElectricityUsage)
	c.nonNegative("energy.naturalGasUsage", in.Energy.NaturalGasUsage)
	c.nonNegative("energy.heatingOilUsage", in.Energy.HeatingOilUsage)
	c.percentage("energy.renewablePercentage", in.Energy.RenewablePercentage)

	t := in.Transportation
	if !t.VehicleType.Valid() {
		c.add("transportation.vehicleType", ErrInvalidEnumValue, "unknown vehicle type %q", t.VehicleType)
	}
	switch {
	case t.FuelType == "" && t.VehicleType != VehicleNone && !t.VehicleType.Valid():
		// Already reported against the vehicle type.
	case t.VehicleType == VehicleNone && t.FuelType == "":
	case !t.FuelType.Valid():
		c.add("transportation.fuelType", ErrInvalidEnumValue, "unknown fuel type %q", t.FuelType)
	}
	c.nonNegative("transportation.milesDriven", t.MilesDriven)
	c.between("transportation.publicTransportFrequency", t.PublicTransportFrequency, 0, maxDaysPerWeek)
	c.nonNegative("transportation.flightsPerYear", t.FlightsPerYear)

	c.nonNegative("waste.wasteProduced", in.Waste.WasteProduced)
	c.percentage("waste.recyclingPercentage", in.Waste.RecyclingPercentage)
	c.percentage("waste.compostPercentage", in.Waste.CompostPercentage)

	if !in.Food.DietType.Valid() {
		c.add("food.dietType", ErrInvalidEnumValue, "unknown diet type %q", in.Food.DietType)
	}
	c.percentage("food.localFoodPercentage", in.Food.LocalFoodPercentage)
	c.percentage("food.organicFoodPercentage", in.Food.OrganicFoodPercentage)
	c.percentage("food.foodWastePercentage", in.Food.FoodWastePercentage)

	c.between("lifestyle.shoppingFrequency", in.Lifestyle.ShoppingFrequency, minScale, maxScale)
	c.between("lifestyle.electronicsUsage", in.Lifestyle.ElectronicsUsage, minScale, maxScale)
	c.nonNegative("lifestyle.homeSize", in.Lifestyle.HomeSize)
	// Zero members is accepted; the lifestyle calculator floors it to one.
	c.nonNegative("lifestyle.householdMembers", in.Lifestyle.HouseholdMembers)

	if len(c.errs) == 0 {
		return nil
	}
	return &ValidationError{Errors: c.errs}
}
