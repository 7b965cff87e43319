package models

import (
	"github.com/carbonwise/carbonwise/internal/footprint"
	"github.com/carbonwise/carbonwise/internal/report"
)

// CalculateResponse is returned by POST /v1/footprint:calculate.
type CalculateResponse struct {
	ID           string            `json:"id"`
	CalculatedAt Timestamp         `json:"calculatedAt"`
	Result       *footprint.Result `json:"result"`
	Summary      report.Summary    `json:"summary"`
}

// Enums lists the closed value sets accepted by the calculator.
type Enums struct {
	Categories   []footprint.Category    `json:"categories"`
	VehicleTypes []footprint.VehicleType `json:"vehicleTypes"`
	FuelTypes    []footprint.FuelType    `json:"fuelTypes"`
	DietTypes    []footprint.DietType    `json:"dietTypes"`
	Difficulties []footprint.Difficulty  `json:"difficulties"`
}

// Category describes one questionnaire section.
type Category struct {
	Key         footprint.Category `json:"key"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Icon        string             `json:"icon"`
}

// CategoryList is returned by GET /v1/metadata/categories.
type CategoryList struct {
	Items []Category `json:"items"`
	// Units maps each numeric input field to its display unit.
	Units map[string]string `json:"units"`
}
