package verification

import (
	"context"
	"fmt"

	"github.com/sabigold/presence-backend-go/internal/domain/employee"
	"github.com/sabigold/presence-backend-go/internal/domain/verification"
	"github.com/sabigold/presence-backend-go/internal/pkg/validator"
)

// PinVerifier resolves an employee by their 4-digit terminal pin.
type PinVerifier struct {
	employeeRepo employee.EmployeeRepository
}

func NewPinVerifier(employeeRepo employee.EmployeeRepository) *PinVerifier {
	return &PinVerifier{employeeRepo: employeeRepo}
}

// Verify rejects malformed pins before touching the store. A pin held
// by more than one employee is a data fault and is refused outright
// rather than resolved to an arbitrary one of them.
func (v *PinVerifier) Verify(ctx context.Context, pin string) (verification.Match, error) {
	if !validator.IsValidPin(pin) {
		return verification.Match{}, verification.ErrNoMatch
	}

	matches, err := v.employeeRepo.GetByPin(ctx, pin)
	if err != nil {
		return verification.Match{}, fmt.Errorf("failed to look up pin: %w", err)
	}

	switch len(matches) {
	case 0:
		return verification.Match{}, verification.ErrNoMatch
	case 1:
		return verification.Match{
			Employee: matches[0],
			Method:   verification.MethodPin,
		}, nil
	default:
		return verification.Match{}, verification.ErrAmbiguousMatch
	}
}
