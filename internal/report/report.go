// Package report derives presentation data from a footprint result:
// emission level banding, everyday equivalencies, chart series and
// human-readable quantities.
package report

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/carbonwise/carbonwise/internal/footprint"
)

// printer formats numbers with English thousands separators.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// Level bands, kg CO2e per year (upper bounds, inclusive).
const (
	lowMax      = 3000
	moderateMax = 5000
	highMax     = 10000
)

// LevelName identifies an emission band.
type LevelName string

const (
	LevelLow      LevelName = "low"
	LevelModerate LevelName = "moderate"
	LevelHigh     LevelName = "high"
	LevelVeryHigh LevelName = "very-high"
)

// EmissionLevel describes where a total falls relative to the reference bands.
type EmissionLevel struct {
	Level       LevelName `json:"level" yaml:"level"`
	Color       string    `json:"color" yaml:"color"`
	Description string    `json:"description" yaml:"description"`
}

// Level bands a total annual footprint.
func Level(total float64) EmissionLevel {
	switch {
	case total <= lowMax:
		return EmissionLevel{
			Level:       LevelLow,
			Color:       "#00E676",
			Description: "Your carbon footprint is relatively low and meets Paris Agreement targets.",
		}
	case total <= moderateMax:
		return EmissionLevel{
			Level:       LevelModerate,
			Color:       "#FFD43B",
			Description: "Your carbon footprint is below the global average but still above Paris targets.",
		}
	case total <= highMax:
		return EmissionLevel{
			Level:       LevelHigh,
			Color:       "#FF9800",
			Description: "Your carbon footprint is above global average but below national average.",
		}
	default:
		return EmissionLevel{
			Level:       LevelVeryHigh,
			Color:       "#FF5252",
			Description: "Your carbon footprint is high, exceeding both national and global averages.",
		}
	}
}

// Conversion rates from kg CO2e to everyday quantities.
const (
	kgPerTree         = 22
	milesPerKg        = 2.5
	phoneChargesPerKg = 3000
	tvHoursPerKg      = 330
)

// Equivalency expresses a footprint as an everyday quantity.
type Equivalency struct {
	Description string `json:"description" yaml:"description"`
	Amount      int64  `json:"amount" yaml:"amount"`
	Unit        string `json:"unit" yaml:"unit"`
}

// Value renders the amount with its unit, e.g. "748 trees".
func (e Equivalency) Value() string {
	return printer.Sprintf("%d %s", e.Amount, e.Unit)
}

// Equivalencies converts a total into trees, miles, phone charges and TV hours.
func Equivalencies(total float64) []Equivalency {
	return []Equivalency{
		{Description: "Trees needed to offset", Amount: roundHalfUp(total / kgPerTree), Unit: "trees"},
		{Description: "Miles driven by an average car", Amount: roundHalfUp(total * milesPerKg), Unit: "miles"},
		{Description: "Smartphone charges", Amount: roundHalfUp(total * phoneChargesPerKg), Unit: "charges"},
		{Description: "Hours of LED TV watching", Amount: roundHalfUp(total * tvHoursPerKg), Unit: "hours"},
	}
}

// Slice is one category's share of the total.
type Slice struct {
	Category footprint.Category `json:"category" yaml:"category"`
	Name     string             `json:"name" yaml:"name"`
	Value    float64            `json:"value" yaml:"value"`
	Color    string             `json:"color" yaml:"color"`
	Percent  float64            `json:"percent" yaml:"percent"`
}

var sliceStyle = map[footprint.Category]struct{ name, color string }{
	footprint.CategoryEnergy:         {"Energy", "#FFD43B"},
	footprint.CategoryTransportation: {"Transportation", "#4C9AFF"},
	footprint.CategoryWaste:          {"Waste", "#00E676"},
	footprint.CategoryFood:           {"Food", "#FF5252"},
	footprint.CategoryLifestyle:      {"Lifestyle", "#9C27B0"},
}

// Breakdown splits a result into one slice per category, in category order.
// Percent is zero when the total is not positive.
func Breakdown(r *footprint.Result) []Slice {
	slices := make([]Slice, 0, len(sliceStyle))
	for _, c := range footprint.Categories() {
		v := r.CategoryEmissions(c)
		var pct float64
		if r.TotalEmissions > 0 {
			pct = v / r.TotalEmissions * 100
		}
		style := sliceStyle[c]
		slices = append(slices, Slice{
			Category: c,
			Name:     style.name,
			Value:    v,
			Color:    style.color,
			Percent:  pct,
		})
	}
	return slices
}

// Bar is one entry of the reference comparison.
type Bar struct {
	Name  string  `json:"name" yaml:"name"`
	Value float64 `json:"value" yaml:"value"`
	Color string  `json:"color" yaml:"color"`
}

// Comparison puts the total next to the reference values.
func Comparison(r *footprint.Result) []Bar {
	return []Bar{
		{Name: "Your Footprint", Value: r.TotalEmissions, Color: "#00E676"},
		{Name: "National Average", Value: r.NationalAverage, Color: "#4C9AFF"},
		{Name: "Global Average", Value: r.GlobalAverage, Color: "#FFD43B"},
		{Name: "Paris Target", Value: r.ParisTargets, Color: "#FF5252"},
	}
}

const kgPerTonne = 1000

const (
	maxInt64Float = float64(math.MaxInt64) // 2^63, first value that overflows
	minInt64Float = float64(math.MinInt64)
)

// FormatEmissions renders an amount as whole kilograms below one tonne and
// as tonnes with one decimal otherwise.
func FormatEmissions(kg float64) string {
	if kg < kgPerTonne {
		return printer.Sprintf("%d kg CO2e", roundHalfUp(kg))
	}
	tenths := roundHalfUp(kg / kgPerTonne * 10)
	return printer.Sprintf("%d.%d tonnes CO2e", tenths/10, tenths%10)
}

// FormatSavings renders an annual saving as whole kilograms.
func FormatSavings(kg float64) string {
	return printer.Sprintf("%d kg CO2e/year", roundHalfUp(kg))
}

// Summary aggregates everything a consumer displays for one result.
type Summary struct {
	Total         string        `json:"total" yaml:"total"`
	Level         EmissionLevel `json:"level" yaml:"level"`
	Breakdown     []Slice       `json:"breakdown" yaml:"breakdown"`
	Comparison    []Bar         `json:"comparison" yaml:"comparison"`
	Equivalencies []Equivalency `json:"equivalencies" yaml:"equivalencies"`
}

// Build assembles the Summary for a result.
func Build(r *footprint.Result) Summary {
	return Summary{
		Total:         FormatEmissions(r.TotalEmissions),
		Level:         Level(r.TotalEmissions),
		Breakdown:     Breakdown(r),
		Comparison:    Comparison(r),
		Equivalencies: Equivalencies(r.TotalEmissions),
	}
}

// roundHalfUp rounds to the nearest integer, halves toward positive infinity.
// Values beyond the int64 range saturate and NaN rounds to zero.
func roundHalfUp(v float64) int64 {
	r := math.Floor(v + 0.5)
	switch {
	case math.IsNaN(r):
		return 0
	case r >= maxInt64Float:
		return math.MaxInt64
	case r <= minInt64Float:
		return math.MinInt64
	}
	return int64(r)
}
