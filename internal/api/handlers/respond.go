package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/eventroop/server/internal/domain"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

var validate = validator.New()

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Error bodies carry a single human-readable message field.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

func respondInternalError(w http.ResponseWriter, err error) {
	log.Error().Err(err).Msg("unexpected error")
	respondError(w, http.StatusInternalServerError, "Internal server error")
}

// validateRequest runs struct tag validation and writes a 400 naming the
// offending fields when it fails.
func validateRequest(w http.ResponseWriter, req interface{}) bool {
	err := validate.Struct(req)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, strings.ToLower(fe.Field()))
		}
		respondError(w, http.StatusBadRequest, "Invalid or missing fields: "+strings.Join(fields, ", "))
		return false
	}

	respondError(w, http.StatusBadRequest, "Invalid request")
	return false
}

func respondValidationError(w http.ResponseWriter, verr *domain.ValidationError) {
	respondError(w, http.StatusBadRequest, verr.Error())
}
