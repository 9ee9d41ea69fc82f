package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sabigold/presence-backend-go/internal/domain/leave"
	"github.com/sabigold/presence-backend-go/internal/handler/http/response"
	"github.com/sabigold/presence-backend-go/internal/pkg/validator"
	leavesvc "github.com/sabigold/presence-backend-go/internal/service/leave"
)

// LeaveHandler defines the leave and leave-request handler interface
type LeaveHandler interface {
	// Leave records
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	ListByEmployee(w http.ResponseWriter, r *http.Request)
	Allowance(w http.ResponseWriter, r *http.Request)

	// Recycle bin
	RecycleBin(w http.ResponseWriter, r *http.Request)
	SoftDelete(w http.ResponseWriter, r *http.Request)
	Restore(w http.ResponseWriter, r *http.Request)
	Purge(w http.ResponseWriter, r *http.Request)
	PurgeAll(w http.ResponseWriter, r *http.Request)

	// Requests
	SubmitRequest(w http.ResponseWriter, r *http.Request)
	ListPendingRequests(w http.ResponseWriter, r *http.Request)
	ApproveRequest(w http.ResponseWriter, r *http.Request)
	DenyRequest(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	leaveService     *leavesvc.Service
	requestService   *leavesvc.RequestService
	allowanceService *leavesvc.AllowanceService
}

func NewLeaveHandler(
	leaveService *leavesvc.Service,
	requestService *leavesvc.RequestService,
	allowanceService *leavesvc.AllowanceService,
) LeaveHandler {
	return &leaveHandlerImpl{
		leaveService:     leaveService,
		requestService:   requestService,
		allowanceService: allowanceService,
	}
}

func (h *leaveHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	created, err := h.leaveService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Leave created", created)
}

// List returns non-deleted leaves, optionally filtered by employee,
// type and an overlap window.
func (h *leaveHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var filter leave.Filter

	if v := r.URL.Query().Get("employee_id"); v != "" {
		filter.EmployeeID = &v
	}
	if v := r.URL.Query().Get("type"); v != "" {
		if !leave.ValidType(v) {
			response.BadRequest(w, "Unknown leave type", nil)
			return
		}
		t := leave.Type(v)
		filter.Type = &t
	}
	if v := r.URL.Query().Get("from"); v != "" {
		parsed, ok := validator.IsValidDate(v)
		if !ok {
			response.BadRequest(w, "from must be YYYY-MM-DD", nil)
			return
		}
		filter.From = &parsed
	}
	if v := r.URL.Query().Get("to"); v != "" {
		parsed, ok := validator.IsValidDate(v)
		if !ok {
			response.BadRequest(w, "to must be YYYY-MM-DD", nil)
			return
		}
		filter.To = &parsed
	}

	leaves, err := h.leaveService.ListActive(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, leaves)
}

func (h *leaveHandlerImpl) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	leaves, err := h.leaveService.ListByEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, leaves)
}

func (h *leaveHandlerImpl) Allowance(w http.ResponseWriter, r *http.Request) {
	year := time.Now().Year()
	if v := r.URL.Query().Get("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			response.BadRequest(w, "year must be numeric", nil)
			return
		}
		year = parsed
	}

	allowance, err := h.allowanceService.Allowance(r.Context(), chi.URLParam(r, "id"), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, allowance)
}

func (h *leaveHandlerImpl) RecycleBin(w http.ResponseWriter, r *http.Request) {
	leaves, err := h.leaveService.ListDeleted(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, leaves)
}

type idsRequest struct {
	IDs []string `json:"ids"`
}

func decodeIDs(w http.ResponseWriter, r *http.Request) ([]string, bool) {
	var req idsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return nil, false
	}
	if len(req.IDs) == 0 {
		response.BadRequest(w, "ids is required", nil)
		return nil, false
	}
	return req.IDs, true
}

func (h *leaveHandlerImpl) SoftDelete(w http.ResponseWriter, r *http.Request) {
	ids, ok := decodeIDs(w, r)
	if !ok {
		return
	}
	if err := h.leaveService.SoftDelete(r.Context(), ids); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leaves moved to recycle bin", nil)
}

func (h *leaveHandlerImpl) Restore(w http.ResponseWriter, r *http.Request) {
	ids, ok := decodeIDs(w, r)
	if !ok {
		return
	}
	if err := h.leaveService.Restore(r.Context(), ids); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leaves restored", nil)
}

func (h *leaveHandlerImpl) Purge(w http.ResponseWriter, r *http.Request) {
	ids, ok := decodeIDs(w, r)
	if !ok {
		return
	}
	if err := h.leaveService.Purge(r.Context(), ids); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leaves permanently deleted", nil)
}

func (h *leaveHandlerImpl) PurgeAll(w http.ResponseWriter, r *http.Request) {
	count, err := h.leaveService.PurgeAll(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Recycle bin emptied", map[string]int{"purged": count})
}

func (h *leaveHandlerImpl) SubmitRequest(w http.ResponseWriter, r *http.Request) {
	var req leave.SubmitRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	created, err := h.requestService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Leave request submitted", created)
}

func (h *leaveHandlerImpl) ListPendingRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.requestService.ListPending(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, requests)
}

func (h *leaveHandlerImpl) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	var req leave.ApproveRequestRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request body", nil)
			return
		}
	}

	result, err := h.requestService.Approve(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave request approved", result)
}

func (h *leaveHandlerImpl) DenyRequest(w http.ResponseWriter, r *http.Request) {
	if err := h.requestService.Deny(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave request denied", nil)
}
