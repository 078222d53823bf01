package handler

import (
	"log/slog"
	"net/http"
)

type SchemaHandler struct {
	schema func() (string, error)
	logger *slog.Logger
}

// NewSchemaHandler serves the SQL returned by schema, typically the embedded migrations.
func NewSchemaHandler(schema func() (string, error), l *slog.Logger) *SchemaHandler {
	if schema == nil {
		panic("schema source cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &SchemaHandler{schema: schema, logger: l.With("component", "SchemaHandler")}
}

// GetSchema handles GET /schema
// @Summary Database bootstrap SQL
// @Description Returns the SQL that creates the users, customers and debts tables.
// @Tags System
// @Produce plain
// @Success 200 {string} string "SQL script"
// @Failure 500 {object} dto.ErrorResponse "Schema unavailable"
// @Router /schema [get]
func (h *SchemaHandler) GetSchema(w http.ResponseWriter, r *http.Request) {
	sql, err := h.schema()
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to load schema", slog.Any("error", err))
		respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(sql))
}
