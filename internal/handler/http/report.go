package http

import (
	"net/http"

	"github.com/sabigold/presence-backend-go/internal/domain/report"
	"github.com/sabigold/presence-backend-go/internal/handler/http/response"
	reportsvc "github.com/sabigold/presence-backend-go/internal/service/report"
)

// ReportHandler defines the report handler interface
type ReportHandler interface {
	Payroll(w http.ResponseWriter, r *http.Request)
	LateArrivals(w http.ResponseWriter, r *http.Request)
	OnLeave(w http.ResponseWriter, r *http.Request)
	Absences(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService *reportsvc.Service
}

func NewReportHandler(reportService *reportsvc.Service) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

func parseRange(w http.ResponseWriter, r *http.Request) (report.Range, bool) {
	rng, err := report.ParseRange(r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		response.HandleError(w, err)
		return report.Range{}, false
	}
	return rng, true
}

func (h *reportHandlerImpl) Payroll(w http.ResponseWriter, r *http.Request) {
	rng, ok := parseRange(w, r)
	if !ok {
		return
	}
	rows, err := h.reportService.Payroll(r.Context(), rng)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, rows)
}

func (h *reportHandlerImpl) LateArrivals(w http.ResponseWriter, r *http.Request) {
	rng, ok := parseRange(w, r)
	if !ok {
		return
	}
	rows, err := h.reportService.LateArrivals(r.Context(), rng)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, rows)
}

func (h *reportHandlerImpl) OnLeave(w http.ResponseWriter, r *http.Request) {
	rng, ok := parseRange(w, r)
	if !ok {
		return
	}
	rows, err := h.reportService.OnLeave(r.Context(), rng)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, rows)
}

func (h *reportHandlerImpl) Absences(w http.ResponseWriter, r *http.Request) {
	rng, ok := parseRange(w, r)
	if !ok {
		return
	}
	rows, err := h.reportService.Absences(r.Context(), rng)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, rows)
}
