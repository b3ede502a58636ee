package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/timekeeping-engine-go/internal/domain/timekeeping"
	"github.com/cmlabs-hris/timekeeping-engine-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type TimekeepingHandler interface {
	Recompute(w http.ResponseWriter, r *http.Request)
	GetDaySummaries(w http.ResponseWriter, r *http.Request)
	GetCutoffSummary(w http.ResponseWriter, r *http.Request)
}

type timekeepingHandlerImpl struct {
	timekeepingService timekeeping.TimekeepingService
}

func NewTimekeepingHandler(timekeepingService timekeeping.TimekeepingService) TimekeepingHandler {
	return &timekeepingHandlerImpl{
		timekeepingService: timekeepingService,
	}
}

// Recompute implements TimekeepingHandler.
func (h *timekeepingHandlerImpl) Recompute(w http.ResponseWriter, r *http.Request) {
	var req timekeeping.RecomputeRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode recompute request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.timekeepingService.ComputeRange(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Recompute completed", result)
}

// GetDaySummaries implements TimekeepingHandler.
func (h *timekeepingHandlerImpl) GetDaySummaries(w http.ResponseWriter, r *http.Request) {
	req := timekeeping.SummaryFilter{
		EmployeeID: chi.URLParam(r, "employeeID"),
		From:       r.URL.Query().Get("from"),
		To:         r.URL.Query().Get("to"),
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.timekeepingService.GetDaySummaries(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetCutoffSummary implements TimekeepingHandler.
func (h *timekeepingHandlerImpl) GetCutoffSummary(w http.ResponseWriter, r *http.Request) {
	cutoffID := chi.URLParam(r, "cutoffID")
	employeeID := r.URL.Query().Get("employee_id")

	result, err := h.timekeepingService.GetCutoffSummary(r.Context(), employeeID, cutoffID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
