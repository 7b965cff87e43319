package handler

import (
	"net/http"

	"github.com/carbonwise/carbonwise/internal/api/models"
	"github.com/carbonwise/carbonwise/internal/api/response"
	"github.com/carbonwise/carbonwise/internal/footprint"
)

// MetadataHandler serves the static reference data a questionnaire client needs.
type MetadataHandler struct {
	engine *footprint.Engine
}

// NewMetadataHandler creates a new MetadataHandler.
func NewMetadataHandler(engine *footprint.Engine) *MetadataHandler {
	return &MetadataHandler{engine: engine}
}

// GetEnums handles GET /v1/metadata/enums.
func (h *MetadataHandler) GetEnums(w http.ResponseWriter, r *http.Request) {
	enums := models.Enums{
		Categories:   footprint.Categories(),
		VehicleTypes: footprint.VehicleTypes(),
		FuelTypes:    footprint.FuelTypes(),
		DietTypes:    footprint.DietTypes(),
		Difficulties: []footprint.Difficulty{
			footprint.DifficultyEasy,
			footprint.DifficultyMedium,
			footprint.DifficultyHard,
		},
	}
	w.Header().Set("Cache-Control", "public, max-age=3600")
	response.JSON(w, r, http.StatusOK, enums)
}

// ListCategories handles GET /v1/metadata/categories.
func (h *MetadataHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	infos := footprint.CategoryInfos()
	items := make([]models.Category, 0, len(infos))
	for _, info := range infos {
		items = append(items, models.Category{
			Key:         info.Key,
			Title:       info.Title,
			Description: info.Description,
			Icon:        info.Icon,
		})
	}
	w.Header().Set("Cache-Control", "public, max-age=3600")
	response.JSON(w, r, http.StatusOK, models.CategoryList{
		Items: items,
		Units: footprint.DisplayUnits(),
	})
}

// GetFactors handles GET /v1/metadata/factors and returns the active factor set.
func (h *MetadataHandler) GetFactors(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, h.engine.Factors())
}
