package handlers

import (
	"net/http"

	"github.com/ems-dash/apiserver/internal/services"
	"github.com/ems-dash/apiserver/types"
)

// ReportHandler serves the energy-report data endpoints.
type ReportHandler struct {
	reportService *services.ReportService
}

// NewReportHandler constructs a ReportHandler with the provided service.
func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

type DashboardResponse struct {
	Success bool           `json:"success"`
	Count   int            `json:"count"`
	Data    []types.Report `json:"data"`
}

type dashboardError struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// MachineData is the per-group (and filtered) meter-wise response shape.
// Field casing follows the dashboard client's contract.
type MachineData struct {
	Success     bool           `json:"Success"`
	MeterNo     any            `json:"meter_no"`
	MachineName any            `json:"machineName"`
	Length      int            `json:"length"`
	Data        []types.Report `json:"data"`
}

type GroupedResponse struct {
	Success  bool          `json:"Success"`
	Machines []MachineData `json:"machines"`
}

type meterWiseError struct {
	Success bool   `json:"Success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Ping reports database liveness by running a trivial query.
func (h *ReportHandler) Ping(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reportService.Ping(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": rows})
}

// Dashboard returns every report row, oldest first. Requires a valid
// session; RequireSession must run before this handler.
func (h *ReportHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reportService.Dashboard(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, dashboardError{
			Message: "Database query error",
			Error:   err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, DashboardResponse{
		Success: true,
		Count:   len(rows),
		Data:    rows,
	})
}

// MeterWise returns rows filtered by meter_no/machine_name, or the full
// grouped view when neither parameter is supplied.
func (h *ReportHandler) MeterWise(w http.ResponseWriter, r *http.Request) {
	query := services.MeterWiseQuery{
		MeterNo:     r.URL.Query().Get("meter_no"),
		MachineName: r.URL.Query().Get("machine_name"),
	}

	filtered, grouped, err := h.reportService.MeterWise(r.Context(), query)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, meterWiseError{
			Message: "Database query error",
			Error:   err.Error(),
		})
		return
	}

	if filtered != nil {
		writeJSON(w, http.StatusOK, MachineData{
			Success:     true,
			MeterNo:     filtered.MeterNo,
			MachineName: filtered.MachineName,
			Length:      len(filtered.Data),
			Data:        filtered.Data,
		})
		return
	}

	machines := make([]MachineData, 0, len(grouped.Machines))
	for _, group := range grouped.Machines {
		machines = append(machines, MachineData{
			Success:     true,
			MeterNo:     group.MeterNo,
			MachineName: group.MachineName,
			Length:      len(group.Data),
			Data:        group.Data,
		})
	}
	writeJSON(w, http.StatusOK, GroupedResponse{Success: true, Machines: machines})
}
