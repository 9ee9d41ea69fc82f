package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sabigold/presence-backend-go/internal/handler/http/response"
	attendancesvc "github.com/sabigold/presence-backend-go/internal/service/attendance"
)

// AttendanceHandler defines the attendance handler interface
type AttendanceHandler interface {
	Recent(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	ShiftStatus(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService *attendancesvc.Service
}

func NewAttendanceHandler(attendanceService *attendancesvc.Service) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

// Recent returns the latest attendance logs for the live dashboard feed.
func (h *attendanceHandlerImpl) Recent(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	logs, err := h.attendanceService.Recent(r.Context(), limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, logs)
}

// History returns an employee's paired shifts, most recent first.
func (h *attendanceHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	history, err := h.attendanceService.History(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, history)
}

// ShiftStatus returns live shift progress for a logged-in employee.
func (h *attendanceHandlerImpl) ShiftStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.attendanceService.ShiftStatus(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, status)
}
