package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/setu/internal/entity"
)

// Error kinds exposed in the error envelope. Clients pattern-match on these
// rather than on message text.
const (
	KindValidation      = "validation"
	KindNotFound        = "not_found"
	KindFeatureDisabled = "feature_disabled"
	KindTransport       = "transport"
)

// ErrorBody is the tagged error payload: `{"error": {"kind": ..., "message": ...}}`.
// Success responses are bare payloads without an error field.
type ErrorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type errorEnvelope struct {
	Error ErrorBody `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// respondError maps a domain error onto its HTTP status and error kind.
func respondError(w http.ResponseWriter, logger *logrus.Logger, err error) {
	status, kind := classify(err)
	message := err.Error()
	if kind == KindTransport {
		// Internal detail stays in the log; the client gets a generic line.
		if logger != nil {
			logger.WithError(err).Error("request failed")
		}
		message = "something went wrong, please try again"
	}
	respondJSON(w, status, errorEnvelope{Error: ErrorBody{Kind: kind, Message: message}})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, entity.ErrInvalidAccountName),
		errors.Is(err, entity.ErrSameLanguagePair),
		errors.Is(err, entity.ErrInvalidScore),
		errors.Is(err, entity.ErrEmptyQuiz):
		return http.StatusBadRequest, KindValidation
	case errors.Is(err, entity.ErrAccountNotFound),
		errors.Is(err, entity.ErrLessonNotFound):
		return http.StatusNotFound, KindNotFound
	case errors.Is(err, entity.ErrLoginDisabled):
		return http.StatusForbidden, KindFeatureDisabled
	default:
		return http.StatusInternalServerError, KindTransport
	}
}
