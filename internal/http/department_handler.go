package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/example/concierge-availability/internal/application"
)

type departmentService interface {
	DepartmentStatus(ctx context.Context, departmentID string) (application.DepartmentStatus, error)
}

type DepartmentHandler struct {
	service   departmentService
	responder responder
	logger    *slog.Logger
}

func NewDepartmentHandler(service departmentService, logger *slog.Logger) *DepartmentHandler {
	base := defaultLogger(logger)
	return &DepartmentHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *DepartmentHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "DepartmentHandler", operation, attrs...)
}

func (h *DepartmentHandler) Status(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	departmentID, ok := DepartmentIDFromContext(r.Context())
	if !ok || strings.TrimSpace(departmentID) == "" {
		h.log(r.Context(), "Status", "error_kind", "bad_request").ErrorContext(r.Context(), "missing department id for status")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidDepartment)
		return
	}

	logger := h.log(r.Context(), "Status", "department_id", departmentID)

	status, err := h.service.DepartmentStatus(r.Context(), departmentID)
	if err != nil {
		logger.ErrorContext(r.Context(), "department status failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("is_open", status.IsOpen).InfoContext(r.Context(), "department status resolved")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toDepartmentStatusDTO(status))
}

type departmentStatusDTO struct {
	DepartmentID string `json:"department_id"`
	Name         string `json:"name"`
	Timezone     string `json:"timezone"`
	IsOpen       bool   `json:"is_open"`
	Label        string `json:"label"`
	CheckedAt    string `json:"checked_at"`
}

func toDepartmentStatusDTO(status application.DepartmentStatus) departmentStatusDTO {
	return departmentStatusDTO{
		DepartmentID: status.DepartmentID,
		Name:         status.Name,
		Timezone:     status.Timezone,
		IsOpen:       status.IsOpen,
		Label:        status.Label,
		CheckedAt:    status.CheckedAt.Format(time.RFC3339),
	}
}
