package authenticator

import (
	"context"

	"github.com/sabigold/presence-backend-go/internal/domain/verification"
)

// Headless is the authenticator for deployments where the terminal's
// browser runs the WebAuthn ceremony itself and posts the resulting
// credential id back. The server has no attached device, so direct
// enroll/assert calls report the device as unavailable and Supported
// answers false; the credential method is still offered through the
// browser path whenever credentials are enrolled.
type Headless struct{}

func NewHeadless() *Headless {
	return &Headless{}
}

func (Headless) Enroll(ctx context.Context, challenge []byte, subjectID, subjectName string) (string, string, error) {
	return "", "", verification.ErrDeviceUnavailable
}

func (Headless) Assert(ctx context.Context, challenge []byte, allowedCredentialIDs []string) (string, error) {
	return "", verification.ErrDeviceUnavailable
}

func (Headless) Supported(ctx context.Context) bool {
	return false
}
