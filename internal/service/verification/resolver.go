package verification

import (
	"context"
	"fmt"

	"github.com/sabigold/presence-backend-go/internal/domain/employee"
	"github.com/sabigold/presence-backend-go/internal/domain/verification"
)

// Input is the evidence presented at the terminal for one verification
// attempt. Exactly the field matching Method is consulted.
type Input struct {
	Method     verification.Method
	Purpose    verification.Purpose
	Descriptor []float64
	Pin        string

	// CredentialID carries the assertion result when the terminal's own
	// authenticator ran the ceremony. Empty means the server-attached
	// device should assert instead.
	CredentialID string
}

// Resolver is the terminal-facing front door for identity resolution.
// It advertises which methods are currently usable and dispatches a
// verification attempt to the matching verifier.
type Resolver struct {
	face         *FaceVerifier
	credential   *CredentialVerifier
	pin          *PinVerifier
	employeeRepo employee.EmployeeRepository
}

func NewResolver(
	face *FaceVerifier,
	credential *CredentialVerifier,
	pin *PinVerifier,
	employeeRepo employee.EmployeeRepository,
) *Resolver {
	return &Resolver{
		face:         face,
		credential:   credential,
		pin:          pin,
		employeeRepo: employeeRepo,
	}
}

// Methods returns the verification methods usable right now, in
// preference order. Face leads when anyone is enrolled, the platform
// credential follows, and the pin is the always-available fallback
// whenever any pin is set. The terminal drops the credential method
// itself when its own authenticator is unsupported.
func (r *Resolver) Methods(ctx context.Context) ([]verification.Method, error) {
	employees, err := r.employeeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	var anyFace, anyCredential, anyPin bool
	for _, emp := range employees {
		anyFace = anyFace || emp.HasFaceEnrolled()
		anyCredential = anyCredential || emp.HasCredentialEnrolled()
		anyPin = anyPin || emp.HasPin()
	}

	methods := make([]verification.Method, 0, 3)
	if anyFace {
		methods = append(methods, verification.MethodFace)
	}
	if anyCredential {
		methods = append(methods, verification.MethodCredential)
	}
	if anyPin {
		methods = append(methods, verification.MethodPin)
	}
	return methods, nil
}

// Resolve runs one verification attempt. ErrNoMatch is an expected
// outcome: the terminal reacts by offering the next method, and no
// state changes on failure.
func (r *Resolver) Resolve(ctx context.Context, input Input) (verification.Match, error) {
	if !verification.ValidPurpose(string(input.Purpose)) {
		return verification.Match{}, fmt.Errorf("unknown verification purpose %q", input.Purpose)
	}

	switch input.Method {
	case verification.MethodFace:
		return r.face.Verify(ctx, input.Descriptor)
	case verification.MethodCredential:
		if input.CredentialID != "" {
			return r.credential.VerifyCredentialID(ctx, input.CredentialID)
		}
		return r.credential.Verify(ctx)
	case verification.MethodPin:
		return r.pin.Verify(ctx, input.Pin)
	default:
		return verification.Match{}, fmt.Errorf("unknown verification method %q", input.Method)
	}
}
