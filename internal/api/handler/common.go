package handler

import (
	"debt-ledger/internal/api/handler/dto"
	"debt-ledger/internal/domain/calculator"
	"debt-ledger/internal/pkg/apperrors"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("no request body")
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	if payload == nil {
		w.WriteHeader(status)
		return
	}
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Default().Error("Failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":{"message":"Internal server error"}}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

func respondError(w http.ResponseWriter, err error) {
	status, code, message, field := http.StatusInternalServerError, "", "An unexpected error occurred.", ""
	var validationError *apperrors.ValidationError
	var appErr *apperrors.AppError

	switch {
	case errors.As(err, &validationError):
		status, code, message, field = http.StatusBadRequest, "VALIDATION_ERROR", validationError.Message, validationError.Field
	case errors.Is(err, apperrors.ErrInvalidArgument), errors.Is(err, apperrors.ErrValidation), errors.Is(err, calculator.ErrUnknownKey):
		status, code, message = http.StatusBadRequest, "INVALID_ARGUMENT", err.Error()
	case errors.Is(err, apperrors.ErrConfirmationRequired):
		status, code, message = http.StatusBadRequest, "CONFIRMATION_REQUIRED", "Confirme a exclusão com confirm=true."
	case errors.Is(err, apperrors.ErrUnauthorized):
		status, code, message = http.StatusUnauthorized, "UNAUTHORIZED", err.Error()
	case errors.Is(err, apperrors.ErrForbidden):
		status, code, message = http.StatusForbidden, "FORBIDDEN", err.Error()
	case errors.Is(err, apperrors.ErrNotFound):
		status, code, message = http.StatusNotFound, "NOT_FOUND", "Resource not found."
	case errors.Is(err, apperrors.ErrPendingDebtExists):
		status, code, message = http.StatusConflict, "PENDING_DEBT_EXISTS", "Este cliente já possui uma dívida pendente."
	case errors.Is(err, apperrors.ErrMutationInFlight):
		status, code, message = http.StatusConflict, "MUTATION_IN_FLIGHT", err.Error()
	case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrAlreadyExists):
		status, code, message = http.StatusConflict, "CONFLICT", err.Error()
	case errors.As(err, &appErr) && errors.Is(err, apperrors.ErrRemote):
		status, code, message = http.StatusBadGateway, appErr.Code, appErr.Message
	case errors.As(err, &appErr):
		code, message = appErr.Code, appErr.Error()
	default:
		slog.Default().Error("Unhandled internal error", "error", err)
	}

	resp := dto.ErrorResponse{
		Error: dto.ErrorDetail{
			Code:    code,
			Message: message,
			Field:   field,
		},
	}
	respondJSON(w, status, resp)
}

// logLevelFor keeps client-caused failures at warn.
func logLevelFor(err error) slog.Level {
	if apperrors.IsClientError(err) || errors.Is(err, calculator.ErrUnknownKey) {
		return slog.LevelWarn
	}
	return slog.LevelError
}

func getIDFromURL(r *http.Request, param string) (string, error) {
	idStr := chi.URLParam(r, param)
	if idStr == "" {
		return "", fmt.Errorf("%w: %s not found in URL path", apperrors.ErrInvalidArgument, param)
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return "", fmt.Errorf("%w: invalid %s format in URL path: %s", apperrors.ErrInvalidArgument, param, idStr)
	}
	return id.String(), nil
}

func confirmedFromQuery(r *http.Request) (bool, error) {
	raw := r.URL.Query().Get("confirm")
	if raw == "" {
		return false, nil
	}
	confirmed, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: invalid confirm value: %s", apperrors.ErrInvalidArgument, raw)
	}
	return confirmed, nil
}
