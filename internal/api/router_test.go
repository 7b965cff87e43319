package api_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carbonwise/carbonwise/internal/api"
	"github.com/carbonwise/carbonwise/internal/api/middleware"
	"github.com/carbonwise/carbonwise/internal/api/models"
	"github.com/carbonwise/carbonwise/internal/footprint"
	"github.com/carbonwise/carbonwise/internal/report"
)

const delta = 1e-9

const minimalBody = `{
	"energy": {},
	"transportation": {"vehicleType": "none"},
	"waste": {},
	"food": {"dietType": "vegan"},
	"lifestyle": {"shoppingFrequency": 1, "electronicsUsage": 1, "householdMembers": 1}
}`

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()
	router, err := api.NewRouter(api.RouterConfig{
		Version:   "test",
		BuildTime: "2026-01-01T00:00:00Z",
		Logger:    zerolog.New(io.Discard),
	})
	require.NoError(t, err)
	return router
}

func serve(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader = http.NoBody
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeProblem(t *testing.T, w *httptest.ResponseRecorder) models.Problem {
	t.Helper()
	assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))
	var problem models.Problem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &problem))
	return problem
}

func TestRouter_HealthCheck(t *testing.T) {
	w := serve(newTestRouter(t), http.MethodGet, "/v1/ops/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))

	var health models.Health
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, models.HealthStatusOK, health.Status)
	assert.Equal(t, "test", health.Details["version"])
}

func TestRouter_ReadinessCheck(t *testing.T) {
	w := serve(newTestRouter(t), http.MethodGet, "/v1/ops/ready", "")

	assert.Equal(t, http.StatusOK, w.Code)

	var ready models.Readiness
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ready))
	assert.Equal(t, models.HealthStatusOK, ready.Status)
	require.Len(t, ready.Checks, 1)
	assert.Equal(t, "engine", ready.Checks[0].Name)
}

func TestRouter_Calculate(t *testing.T) {
	w := serve(newTestRouter(t), http.MethodPost, "/v1/footprint:calculate", minimalBody)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.CalculateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.True(t, strings.HasPrefix(resp.ID, "calc_"))
	require.NotNil(t, resp.Result)
	assert.InDelta(t, 1350.5, resp.Result.TotalEmissions, delta)
	assert.InDelta(t, 1058.5, resp.Result.FoodEmissions, delta)
	assert.InDelta(t, 292.0, resp.Result.LifestyleEmissions, delta)
	assert.Equal(t, 16000.0, resp.Result.NationalAverage)
	assert.NotNil(t, resp.Result.Recommendations)

	assert.Equal(t, report.FormatEmissions(1350.5), resp.Summary.Total)
	assert.Equal(t, report.LevelLow, resp.Summary.Level.Level)
	assert.Len(t, resp.Summary.Breakdown, 5)
	assert.Len(t, resp.Summary.Comparison, 4)
	assert.Len(t, resp.Summary.Equivalencies, 4)
}

func TestRouter_Calculate_WithDefaults(t *testing.T) {
	router := newTestRouter(t)

	w := serve(router, http.MethodPost, "/v1/footprint:calculate?defaults=true", `{}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.CalculateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.InDelta(t, 16461.48, resp.Result.TotalEmissions, delta)
	require.Len(t, resp.Result.Recommendations, 5)
	assert.Equal(t, "Consider an Electric Vehicle", resp.Result.Recommendations[0].Title)

	// A partial section overrides only the named fields.
	w = serve(router, http.MethodPost, "/v1/footprint:calculate?defaults=true",
		`{"food": {"dietType": "vegan"}}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.InDelta(t, 2.9*(1-10*0.005-10*0.002+20*0.01)*365, resp.Result.FoodEmissions, 1e-6)

	want, err := footprint.NewDefaultEngine().Compute(footprint.DefaultInput())
	require.NoError(t, err)
	assert.InDelta(t, want.EnergyEmissions, resp.Result.EnergyEmissions, delta)
}

func TestRouter_Calculate_ValidationErrors(t *testing.T) {
	body := `{
		"energy": {"renewablePercentage": 140},
		"transportation": {"vehicleType": "car", "fuelType": "gasoline", "publicTransportFrequency": 9},
		"food": {"dietType": "vegan"},
		"lifestyle": {"shoppingFrequency": 5, "electronicsUsage": 5, "householdMembers": 1}
	}`

	w := serve(newTestRouter(t), http.MethodPost, "/v1/footprint:calculate", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	problem := decodeProblem(t, w)
	assert.Equal(t, models.ProblemTypeValidation, problem.Type)
	assert.Equal(t, "/v1/footprint:calculate", problem.Instance)
	assert.Equal(t, w.Header().Get("X-Request-Id"), problem.TraceID)

	fields := map[string]string{}
	for _, fe := range problem.Errors {
		fields[fe.Field] = fe.Code
	}
	assert.Equal(t, map[string]string{
		"energy.renewablePercentage":              "invalid_range",
		"transportation.publicTransportFrequency": "invalid_range",
	}, fields)
}

func TestRouter_Calculate_UnknownEnum(t *testing.T) {
	w := serve(newTestRouter(t), http.MethodPost, "/v1/footprint:calculate?defaults=true",
		`{"transportation": {"vehicleType": "boat"}}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	problem := decodeProblem(t, w)
	assert.Equal(t, models.ProblemTypeValidation, problem.Type)
	require.Len(t, problem.Errors, 1)
	assert.Equal(t, "transportation.vehicleType", problem.Errors[0].Field)
	assert.Equal(t, "invalid_enum_value", problem.Errors[0].Code)
}

func TestRouter_Calculate_MissingFuel(t *testing.T) {
	w := serve(newTestRouter(t), http.MethodPost, "/v1/footprint:calculate",
		`{"transportation": {"vehicleType": "car"}, "food": {"dietType": "vegan"},
		  "lifestyle": {"shoppingFrequency": 1, "electronicsUsage": 1}}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	problem := decodeProblem(t, w)
	require.Len(t, problem.Errors, 1)
	assert.Equal(t, "transportation.fuelType", problem.Errors[0].Field)
	assert.Equal(t, "invalid_enum_value", problem.Errors[0].Code)
}

func TestRouter_Calculate_MalformedBodies(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty", ""},
		{"not json", "energy: 12"},
		{"unknown field", `{"energy": {"solarPanels": 3}}`},
		{"wrong type", `{"energy": {"electricityUsage": "lots"}}`},
		{"trailing object", `{} {}`},
	}

	router := newTestRouter(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/footprint:calculate?defaults=true", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			problem := decodeProblem(t, w)
			assert.Equal(t, models.ProblemTypeMalformedBody, problem.Type)
		})
	}
}

func TestRouter_Calculate_BadDefaultsQuery(t *testing.T) {
	w := serve(newTestRouter(t), http.MethodPost, "/v1/footprint:calculate?defaults=perhaps", `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	problem := decodeProblem(t, w)
	require.Len(t, problem.Errors, 1)
	assert.Equal(t, "defaults", problem.Errors[0].Field)
}

func TestRouter_Calculate_RejectsNonJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v1/footprint:calculate", strings.NewReader(minimalBody))
	req.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()

	newTestRouter(t).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestRouter_Calculate_RateLimited(t *testing.T) {
	router, err := api.NewRouter(api.RouterConfig{
		Logger: zerolog.Nop(),
		RateLimits: &api.RateLimits{
			Enabled:   true,
			Calculate: middleware.PerMinute(2),
			Standard:  middleware.PerMinute(100),
		},
	})
	require.NoError(t, err)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		codes = append(codes, serve(router, http.MethodPost, "/v1/footprint:calculate", minimalBody).Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// Other groups keep their own budget.
	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/v1/metadata/enums", "").Code)
}

func TestRouter_RateLimitsDisabled(t *testing.T) {
	router, err := api.NewRouter(api.RouterConfig{
		Logger:     zerolog.Nop(),
		RateLimits: &api.RateLimits{Enabled: false},
	})
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/v1/metadata/enums", "").Code)
	}
}

func TestRouter_UsesInjectedService(t *testing.T) {
	factors := footprint.DefaultFactors()
	factors.References.ParisTargets = 2000
	engine, err := footprint.NewEngine(footprint.EngineConfig{Factors: &factors})
	require.NoError(t, err)
	service, err := footprint.NewService(footprint.ServiceConfig{Engine: engine, Logger: zerolog.Nop()})
	require.NoError(t, err)

	router, err := api.NewRouter(api.RouterConfig{Logger: zerolog.Nop(), Service: service})
	require.NoError(t, err)

	w := serve(router, http.MethodGet, "/v1/metadata/factors", "")
	require.Equal(t, http.StatusOK, w.Code)

	var got footprint.Factors
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 2000.0, got.References.ParisTargets)
	assert.Equal(t, 0.404, got.Vehicle.Gasoline)
}

func TestRouter_GetDefaults(t *testing.T) {
	w := serve(newTestRouter(t), http.MethodGet, "/v1/footprint/defaults", "")

	require.Equal(t, http.StatusOK, w.Code)

	var in footprint.Input
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &in))
	assert.Equal(t, footprint.DefaultInput(), in)
}

func TestRouter_GetEnums(t *testing.T) {
	w := serve(newTestRouter(t), http.MethodGet, "/v1/metadata/enums", "")

	require.Equal(t, http.StatusOK, w.Code)

	var enums map[string][]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &enums))
	assert.Equal(t, []string{"car", "SUV", "truck", "motorcycle", "none"}, enums["vehicleTypes"])
	assert.Equal(t, []string{"gasoline", "diesel", "electric", "hybrid"}, enums["fuelTypes"])
	assert.Equal(t, []string{"omnivore", "flexitarian", "vegetarian", "vegan"}, enums["dietTypes"])
	assert.Equal(t, []string{"energy", "transportation", "waste", "food", "lifestyle"}, enums["categories"])
	assert.Equal(t, []string{"easy", "medium", "hard"}, enums["difficulties"])
}

func TestRouter_ListCategories(t *testing.T) {
	w := serve(newTestRouter(t), http.MethodGet, "/v1/metadata/categories", "")

	require.Equal(t, http.StatusOK, w.Code)

	var list models.CategoryList
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Items, 5)
	assert.Equal(t, footprint.CategoryEnergy, list.Items[0].Key)
	assert.Equal(t, "kWh/month", list.Units["electricityUsage"])
}

func TestRouter_SecurityHeaders(t *testing.T) {
	w := serve(newTestRouter(t), http.MethodGet, "/v1/ops/health", "")

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}

func TestRouter_RequireTLS(t *testing.T) {
	router, err := api.NewRouter(api.RouterConfig{Logger: zerolog.Nop(), RequireTLS: true})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/health", http.NoBody)
	req.Header.Set("X-Forwarded-Proto", "http")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRouter_RequestID_Preserved(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/ops/health", http.NoBody)
	req.Header.Set("X-Request-Id", "req_custom123")
	w := httptest.NewRecorder()

	newTestRouter(t).ServeHTTP(w, req)

	assert.Equal(t, "req_custom123", w.Header().Get("X-Request-Id"))
}

func TestRouter_NotFound(t *testing.T) {
	w := serve(newTestRouter(t), http.MethodGet, "/v1/nonexistent", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	problem := decodeProblem(t, w)
	assert.Equal(t, models.ProblemTypeNotFound, problem.Type)
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	w := serve(newTestRouter(t), http.MethodGet, "/v1/footprint:calculate", "")

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	problem := decodeProblem(t, w)
	assert.Equal(t, models.ProblemTypeMethodNotAllowed, problem.Type)
}
