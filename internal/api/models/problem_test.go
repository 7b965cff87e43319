package models_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carbonwise/carbonwise/internal/api/models"
)

func TestProblem_Builders(t *testing.T) {
	p := models.NewProblem(
		models.ProblemTypeValidation,
		"Validation error",
		http.StatusBadRequest,
		"req_test123",
	).WithDetail("energy.renewablePercentage must be between 0 and 100").
		WithInstance("/v1/footprint:calculate").
		WithErrors([]models.FieldError{
			{Field: "energy.renewablePercentage", Message: "must be between 0 and 100", Code: "invalid_range"},
		})

	assert.Equal(t, models.ProblemTypeValidation, p.Type)
	assert.Equal(t, http.StatusBadRequest, p.Status)
	assert.Equal(t, "req_test123", p.TraceID)
	assert.Equal(t, "/v1/footprint:calculate", p.Instance)
	require.Len(t, p.Errors, 1)
	assert.Equal(t, "invalid_range", p.Errors[0].Code)
}

func TestProblem_Write(t *testing.T) {
	p := models.NewValidationProblem("req_test123", []models.FieldError{
		{Field: "food.dietType", Message: "unknown diet type", Code: "invalid_enum_value"},
	})
	p.Instance = "/v1/footprint:calculate"

	w := httptest.NewRecorder()
	p.Write(w)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))
	assert.Equal(t, "req_test123", w.Header().Get("X-Request-Id"))

	var decoded models.Problem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	assert.Equal(t, models.ProblemTypeValidation, decoded.Type)
	assert.Equal(t, "/v1/footprint:calculate", decoded.Instance)
	require.Len(t, decoded.Errors, 1)
	assert.Equal(t, "food.dietType", decoded.Errors[0].Field)
}

func TestProblem_Write_OmitsEmptyFields(t *testing.T) {
	w := httptest.NewRecorder()
	models.NewNotFound("", "").Write(w)

	assert.Empty(t, w.Header().Get("X-Request-Id"))

	var raw map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	assert.NotContains(t, raw, "detail")
	assert.NotContains(t, raw, "errors")
	assert.Contains(t, raw, "traceId")
}

func TestProblem_Constructors(t *testing.T) {
	tests := []struct {
		name    string
		problem *models.Problem
		status  int
		typ     string
	}{
		{"malformed body", models.NewMalformedBody("r", "bad json"), http.StatusBadRequest, models.ProblemTypeMalformedBody},
		{"not found", models.NewNotFound("r", "x"), http.StatusNotFound, models.ProblemTypeNotFound},
		{"method", models.NewMethodNotAllowed("r", "x"), http.StatusMethodNotAllowed, models.ProblemTypeMethodNotAllowed},
		{"media", models.NewUnsupportedMediaType("r", "x"), http.StatusUnsupportedMediaType, models.ProblemTypeUnsupportedMedia},
		{"rate", models.NewTooManyRequests("r", "x"), http.StatusTooManyRequests, models.ProblemTypeTooManyRequests},
		{"tls", models.NewTLSRequired("r"), http.StatusForbidden, models.ProblemTypeTLSRequired},
		{"internal", models.NewInternalError("r", "x"), http.StatusInternalServerError, models.ProblemTypeInternal},
		{"unavailable", models.NewServiceUnavailable("r", "x"), http.StatusServiceUnavailable, models.ProblemTypeUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.problem.Status)
			assert.Equal(t, tt.typ, tt.problem.Type)
			assert.NotEmpty(t, tt.problem.Title)
			assert.NotEmpty(t, tt.problem.Detail)
		})
	}
}

func TestTimestamp_JSON(t *testing.T) {
	ts := models.Timestamp(time.Date(2026, 3, 1, 12, 30, 0, 0, time.FixedZone("CET", 3600)))

	data, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.Equal(t, `"2026-03-01T11:30:00Z"`, string(data))

	var decoded models.Timestamp
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, ts.Time().Equal(decoded.Time()))

	assert.Error(t, json.Unmarshal([]byte(`12`), &decoded))
	assert.NoError(t, json.Unmarshal([]byte(`null`), &decoded))
}
