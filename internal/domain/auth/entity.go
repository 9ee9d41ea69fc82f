package auth

import "time"

// User is an administrator account for the dashboard. Kiosk employees
// are not users; they verify through the credential verifiers.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	DisplayName  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
