package footprint

// DefaultInput returns the questionnaire's starting values.
func DefaultInput() Input {
	return Input{
		Energy: EnergyInput{
			ElectricityUsage:    500,
			NaturalGasUsage:     50,
			HeatingOilUsage:     0,
			RenewablePercentage: 0,
		},
		Transportation: TransportationInput{
			VehicleType:              VehicleCar,
			FuelType:                 FuelGasoline,
			MilesDriven:              200,
			PublicTransportFrequency: 0,
			FlightsPerYear:           2,
		},
		Waste: WasteInput{
			WasteProduced:       20,
			RecyclingPercentage: 30,
			CompostPercentage:   0,
		},
		Food: FoodInput{
			DietType:              DietOmnivore,
			LocalFoodPercentage:   10,
			OrganicFoodPercentage: 10,
			FoodWastePercentage:   20,
		},
		Lifestyle: LifestyleInput{
			ShoppingFrequency: 5,
			ElectronicsUsage:  5,
			HomeSize:          1500,
			HouseholdMembers:  2,
		},
	}
}

// CategoryInfo describes a category for display.
type CategoryInfo struct {
	Key         Category `json:"key" yaml:"key"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Icon        string   `json:"icon" yaml:"icon"`
}

// CategoryInfos returns display metadata for every category in display order.
func CategoryInfos() []CategoryInfo {
	return []CategoryInfo{
		{
			Key:         CategoryEnergy,
			Title:       "Energy Use",
			Description: "Your home energy consumption including electricity, gas, and heating oil.",
			Icon:        "home",
		},
		{
			Key:         CategoryTransportation,
			Title:       "Transportation",
			Description: "Your travel patterns by car, public transit, and air.",
			Icon:        "car",
		},
		{
			Key:         CategoryWaste,
			Title:       "Waste",
			Description: "Your household waste generation and recycling habits.",
			Icon:        "recycle",
		},
		{
			Key:         CategoryFood,
			Title:       "Food Choices",
			Description: "Your diet type and food consumption patterns.",
			Icon:        "apple",
		},
		{
			Key:         CategoryLifestyle,
			Title:       "Lifestyle",
			Description: "Your shopping habits, electronics usage, and housing situation.",
			Icon:        "shopping-bag",
		},
	}
}

// DisplayUnits maps input field names to their display unit.
func DisplayUnits() map[string]string {
	return map[string]string{
		"electricityUsage":         "kWh/month",
		"naturalGasUsage":          "therms/month",
		"heatingOilUsage":          "gallons/month",
		"renewablePercentage":      "%",
		"milesDriven":              "miles/week",
		"publicTransportFrequency": "days/week",
		"flightsPerYear":           "flights/year",
		"wasteProduced":            "lbs/week",
		"recyclingPercentage":      "%",
		"compostPercentage":        "%",
		"localFoodPercentage":      "%",
		"organicFoodPercentage":    "%",
		"foodWastePercentage":      "%",
		"homeSize":                 "sq ft",
		"householdMembers":         "people",
	}
}
