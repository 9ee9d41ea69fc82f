package http

import (
	"encoding/hex"
	"encoding/json"
	"net/http"
	"time"

	"github.com/sabigold/presence-backend-go/internal/domain/attendance"
	"github.com/sabigold/presence-backend-go/internal/domain/employee"
	"github.com/sabigold/presence-backend-go/internal/domain/leave"
	"github.com/sabigold/presence-backend-go/internal/domain/verification"
	"github.com/sabigold/presence-backend-go/internal/handler/http/response"
	attendancesvc "github.com/sabigold/presence-backend-go/internal/service/attendance"
	leavesvc "github.com/sabigold/presence-backend-go/internal/service/leave"
	verificationsvc "github.com/sabigold/presence-backend-go/internal/service/verification"
)

// KioskHandler serves the unauthenticated terminal endpoints. The
// kiosk identifies employees by verification evidence, never by a
// session.
type KioskHandler interface {
	Methods(w http.ResponseWriter, r *http.Request)
	Verify(w http.ResponseWriter, r *http.Request)
	BeginAssertion(w http.ResponseWriter, r *http.Request)
}

type kioskHandlerImpl struct {
	resolver          *verificationsvc.Resolver
	credential        *verificationsvc.CredentialVerifier
	attendanceService *attendancesvc.Service
	leaveService      *leavesvc.Service
	requestService    *leavesvc.RequestService
}

func NewKioskHandler(
	resolver *verificationsvc.Resolver,
	credential *verificationsvc.CredentialVerifier,
	attendanceService *attendancesvc.Service,
	leaveService *leavesvc.Service,
	requestService *leavesvc.RequestService,
) KioskHandler {
	return &kioskHandlerImpl{
		resolver:          resolver,
		credential:        credential,
		attendanceService: attendanceService,
		leaveService:      leaveService,
		requestService:    requestService,
	}
}

type verifyRequest struct {
	Method       string    `json:"method"`
	Purpose      string    `json:"purpose"`
	Descriptor   []float64 `json:"descriptor,omitempty"`
	Pin          string    `json:"pin,omitempty"`
	CredentialID string    `json:"credential_id,omitempty"`
}

type verifyResponse struct {
	Employee   employee.EmployeeResponse `json:"employee"`
	Method     string                    `json:"method"`
	Confidence float64                   `json:"confidence,omitempty"`

	// Attendance purpose only.
	Toggle *attendance.ToggleResult `json:"toggle,omitempty"`

	// Leave self-service purpose only.
	CurrentLeave    *leave.Leave    `json:"current_leave,omitempty"`
	PendingRequests []leave.Request `json:"pending_requests,omitempty"`
}

// Methods returns the verification methods the terminal should offer,
// in preference order.
func (h *kioskHandlerImpl) Methods(w http.ResponseWriter, r *http.Request) {
	methods, err := h.resolver.Methods(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, map[string]any{"methods": methods})
}

// BeginAssertion hands the terminal what its authenticator needs to
// run an assertion ceremony: a fresh challenge and the allow-list of
// enrolled credential ids.
func (h *kioskHandlerImpl) BeginAssertion(w http.ResponseWriter, r *http.Request) {
	allowed, err := h.credential.AllowedCredentialIDs(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	challenge, err := verificationsvc.NewChallenge()
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, map[string]any{
		"challenge":              hex.EncodeToString(challenge),
		"allowed_credential_ids": allowed,
	})
}

// Verify resolves the presented evidence to an employee and acts on the
// purpose: the attendance purpose toggles duty status, the leave
// purpose loads the employee's self-service context. A failed
// verification changes nothing.
func (h *kioskHandlerImpl) Verify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if !verification.ValidPurpose(req.Purpose) {
		response.BadRequest(w, "Unknown verification purpose", nil)
		return
	}

	match, err := h.resolver.Resolve(r.Context(), verificationsvc.Input{
		Method:       verification.Method(req.Method),
		Purpose:      verification.Purpose(req.Purpose),
		Descriptor:   req.Descriptor,
		Pin:          req.Pin,
		CredentialID: req.CredentialID,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp := verifyResponse{
		Employee:   employee.ToResponse(match.Employee),
		Method:     string(match.Method),
		Confidence: match.Confidence,
	}

	switch verification.Purpose(req.Purpose) {
	case verification.PurposeAttendance:
		toggle, err := h.attendanceService.Toggle(r.Context(), match.Employee.ID)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		resp.Toggle = &toggle

	case verification.PurposeLeaveSelfService:
		current, ok, err := h.leaveService.CurrentLeave(r.Context(), match.Employee.ID, time.Now())
		if err != nil {
			response.HandleError(w, err)
			return
		}
		if ok {
			resp.CurrentLeave = &current
		}
		requests, err := h.requestService.ListPendingByEmployee(r.Context(), match.Employee.ID)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		resp.PendingRequests = requests
	}

	response.Success(w, resp)
}
