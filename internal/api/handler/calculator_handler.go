package handler

import (
	"debt-ledger/internal/api/handler/dto"
	"debt-ledger/internal/domain/calculator"
	"debt-ledger/internal/pkg/apperrors"
	"fmt"
	"log/slog"
	"net/http"
)

type CalculatorHandler struct {
	logger *slog.Logger
}

func NewCalculatorHandler(l *slog.Logger) *CalculatorHandler {
	if l == nil {
		panic("logger cannot be nil")
	}
	return &CalculatorHandler{logger: l.With("component", "CalculatorHandler")}
}

// Evaluate handles POST /calculator
// @Summary Run the calculator
// @Description Presses the keys in order on a fresh calculator. Accepted keys: digits, ".", ",", "+", "-", "x", "÷", "%", "=", "C", "back".
// @Tags Calculator
// @Accept json
// @Produce json
// @Param request body dto.CalculatorRequest true "Key sequence"
// @Success 200 {object} dto.CalculatorResponse "Display and pending expression"
// @Failure 400 {object} dto.ErrorResponse "Unknown key"
// @Router /calculator [post]
// @Security BearerAuth
func (h *CalculatorHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req dto.CalculatorRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	calc, err := calculator.Run(req.Keys)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Calculator rejected a key", slog.Any("error", err))
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.CalculatorResponse{Display: calc.Display(), Expression: calc.Expression()})
}
