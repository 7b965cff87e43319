package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/carbonwise/carbonwise/internal/api/middleware"
	"github.com/carbonwise/carbonwise/internal/api/models"
	"github.com/carbonwise/carbonwise/internal/api/response"
	"github.com/carbonwise/carbonwise/internal/footprint"
	"github.com/carbonwise/carbonwise/internal/report"
)

// maxBodyBytes bounds a questionnaire body.
const maxBodyBytes = 64 << 10

// FootprintHandler handles footprint calculation endpoints.
type FootprintHandler struct {
	service *footprint.Service
	logger  zerolog.Logger
}

// NewFootprintHandler creates a new FootprintHandler.
func NewFootprintHandler(service *footprint.Service, logger zerolog.Logger) *FootprintHandler {
	return &FootprintHandler{service: service, logger: logger}
}

// Calculate handles POST /v1/footprint:calculate.
//
// With ?defaults=true the body is merged onto the default questionnaire, so
// omitted sections and fields take their default values. Otherwise omitted
// fields are zero.
func (h *FootprintHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	useDefaults, err := parseBoolQuery(r, "defaults")
	if err != nil {
		response.ValidationFailed(w, r, []models.FieldError{
			{Field: "defaults", Message: "must be true or false", Code: "invalid_query"},
		})
		return
	}

	var in footprint.Input
	if useDefaults {
		in = footprint.DefaultInput()
	}

	if err := decodeInput(w, r, &in); err != nil {
		var fe *footprint.InvalidInputError
		if errors.As(err, &fe) {
			response.ValidationFailed(w, r, []models.FieldError{toFieldError(fe)})
			return
		}
		response.MalformedBody(w, r, err.Error())
		return
	}

	calc, err := h.service.Calculate(r.Context(), in)
	if err != nil {
		var verr *footprint.ValidationError
		if errors.As(err, &verr) {
			fieldErrors := make([]models.FieldError, 0, len(verr.Errors))
			for _, fe := range verr.Errors {
				fieldErrors = append(fieldErrors, toFieldError(fe))
			}
			response.ValidationFailed(w, r, fieldErrors)
			return
		}
		h.logger.Error().
			Err(err).
			Str("request_id", middleware.GetRequestID(r.Context())).
			Msg("footprint calculation failed")
		response.InternalError(w, r, "footprint calculation failed")
		return
	}

	response.JSON(w, r, http.StatusOK, models.CalculateResponse{
		ID:           calc.ID,
		CalculatedAt: models.Timestamp(calc.CalculatedAt),
		Result:       calc.Result,
		Summary:      report.Build(calc.Result),
	})
}

// GetDefaults handles GET /v1/footprint/defaults.
func (h *FootprintHandler) GetDefaults(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, footprint.DefaultInput())
}

func decodeInput(w http.ResponseWriter, r *http.Request, in *footprint.Input) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(in); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return errors.New("request body is empty")
		case errors.As(err, &maxErr):
			return fmt.Errorf("request body exceeds %d bytes", maxErr.Limit)
		}
		return err
	}
	if dec.More() {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}

func toFieldError(fe *footprint.InvalidInputError) models.FieldError {
	return models.FieldError{
		Field:   fe.Field,
		Message: fe.Message,
		Code:    fe.Code(),
	}
}

func parseBoolQuery(r *http.Request, key string) (bool, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return false, nil
	}
	return strconv.ParseBool(v)
}
