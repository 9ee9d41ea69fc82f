package verification

import (
	"context"
	"crypto/rand"
	"fmt"

	"github.com/sabigold/presence-backend-go/internal/domain/employee"
	"github.com/sabigold/presence-backend-go/internal/domain/verification"
)

// challengeSize is the number of random bytes in an assertion or
// enrollment challenge.
const challengeSize = 32

// NewChallenge returns a fresh random challenge for the platform
// authenticator.
func NewChallenge() ([]byte, error) {
	challenge := make([]byte, challengeSize)
	if _, err := rand.Read(challenge); err != nil {
		return nil, fmt.Errorf("failed to generate challenge: %w", err)
	}
	return challenge, nil
}

// CredentialVerifier resolves an employee through the device's platform
// authenticator. The assertion is restricted to the credential ids of
// enrolled employees so an unknown credential can never produce a match.
type CredentialVerifier struct {
	employeeRepo  employee.EmployeeRepository
	authenticator verification.Authenticator
}

func NewCredentialVerifier(employeeRepo employee.EmployeeRepository, authenticator verification.Authenticator) *CredentialVerifier {
	return &CredentialVerifier{employeeRepo: employeeRepo, authenticator: authenticator}
}

// Verify asks the server-attached authenticator for an assertion and
// maps the signing credential back to its owner. Blocks on user
// interaction until ctx is cancelled.
func (v *CredentialVerifier) Verify(ctx context.Context) (verification.Match, error) {
	if !v.authenticator.Supported(ctx) {
		return verification.Match{}, verification.ErrDeviceUnavailable
	}

	enrolled, err := v.employeeRepo.ListCredentialEnrolled(ctx)
	if err != nil {
		return verification.Match{}, fmt.Errorf("failed to load enrolled credentials: %w", err)
	}
	if len(enrolled) == 0 {
		return verification.Match{}, verification.ErrNoEnrollment
	}

	allowed := make([]string, 0, len(enrolled))
	byCredentialID := make(map[string]employee.Employee, len(enrolled))
	for _, emp := range enrolled {
		allowed = append(allowed, *emp.CredentialID)
		byCredentialID[*emp.CredentialID] = emp
	}

	challenge, err := NewChallenge()
	if err != nil {
		return verification.Match{}, err
	}

	credentialID, err := v.authenticator.Assert(ctx, challenge, allowed)
	if err != nil {
		return verification.Match{}, err
	}

	emp, ok := byCredentialID[credentialID]
	if !ok {
		return verification.Match{}, verification.ErrNoMatch
	}

	return verification.Match{
		Employee: emp,
		Method:   verification.MethodCredential,
	}, nil
}

// VerifyCredentialID resolves a credential id the terminal's own
// authenticator already asserted. The browser runs the ceremony; the
// server's check is membership in the enrolled set.
func (v *CredentialVerifier) VerifyCredentialID(ctx context.Context, credentialID string) (verification.Match, error) {
	if credentialID == "" {
		return verification.Match{}, verification.ErrNoMatch
	}

	enrolled, err := v.employeeRepo.ListCredentialEnrolled(ctx)
	if err != nil {
		return verification.Match{}, fmt.Errorf("failed to load enrolled credentials: %w", err)
	}
	if len(enrolled) == 0 {
		return verification.Match{}, verification.ErrNoEnrollment
	}

	for _, emp := range enrolled {
		if *emp.CredentialID == credentialID {
			return verification.Match{
				Employee: emp,
				Method:   verification.MethodCredential,
			}, nil
		}
	}
	return verification.Match{}, verification.ErrNoMatch
}

// AllowedCredentialIDs returns the hex-encoded ids the terminal should
// pass to its authenticator as the assertion allow-list.
func (v *CredentialVerifier) AllowedCredentialIDs(ctx context.Context) ([]string, error) {
	enrolled, err := v.employeeRepo.ListCredentialEnrolled(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load enrolled credentials: %w", err)
	}
	if len(enrolled) == 0 {
		return nil, verification.ErrNoEnrollment
	}
	ids := make([]string, 0, len(enrolled))
	for _, emp := range enrolled {
		ids = append(ids, *emp.CredentialID)
	}
	return ids, nil
}
