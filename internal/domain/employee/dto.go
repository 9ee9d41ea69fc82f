package employee

import (
	"github.com/sabigold/presence-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	EmployeeID string  `json:"employee_id"`
	FirstName  string  `json:"first_name"`
	Surname    string  `json:"surname"`
	Position   string  `json:"position"`
	Department *string `json:"department,omitempty"`
	AvatarURL  *string `json:"avatar_url,omitempty"`
	Pin        *string `json:"pin,omitempty"`
}

func (r CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee id is required"})
	}
	if validator.IsEmpty(r.FirstName) {
		errs = append(errs, validator.ValidationError{Field: "first_name", Message: "first name is required"})
	}
	if validator.IsEmpty(r.Surname) {
		errs = append(errs, validator.ValidationError{Field: "surname", Message: "surname is required"})
	}
	if validator.IsEmpty(r.Position) {
		errs = append(errs, validator.ValidationError{Field: "position", Message: "position is required"})
	}
	if r.Pin != nil && !validator.IsValidPin(*r.Pin) {
		errs = append(errs, validator.ValidationError{Field: "pin", Message: "pin must be exactly 4 digits"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	FirstName  *string `json:"first_name,omitempty"`
	Surname    *string `json:"surname,omitempty"`
	Position   *string `json:"position,omitempty"`
	Department *string `json:"department,omitempty"`
	AvatarURL  *string `json:"avatar_url,omitempty"`
}

type ChangePinRequest struct {
	CurrentPin string `json:"current_pin"`
	NewPin     string `json:"new_pin"`
}

func (r ChangePinRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidPin(r.CurrentPin) {
		errs = append(errs, validator.ValidationError{Field: "current_pin", Message: "pin must be exactly 4 digits"})
	}
	if !validator.IsValidPin(r.NewPin) {
		errs = append(errs, validator.ValidationError{Field: "new_pin", Message: "pin must be exactly 4 digits"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EnrollFaceRequest struct {
	Descriptor []float64 `json:"descriptor"`
}

func (r EnrollFaceRequest) Validate() error {
	if len(r.Descriptor) == 0 {
		return validator.ValidationErrors{{Field: "descriptor", Message: "face descriptor is required"}}
	}
	return nil
}

type CompleteCredentialEnrollmentRequest struct {
	CredentialID string `json:"credential_id"`
	PublicKey    string `json:"public_key"`
}

func (r CompleteCredentialEnrollmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CredentialID) || !validator.IsValidHex(r.CredentialID) {
		errs = append(errs, validator.ValidationError{Field: "credential_id", Message: "hex-encoded credential id is required"})
	}
	if validator.IsEmpty(r.PublicKey) || !validator.IsValidHex(r.PublicKey) {
		errs = append(errs, validator.ValidationError{Field: "public_key", Message: "hex-encoded public key is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// EmployeeResponse is the wire shape; credential material is never
// returned to callers.
type EmployeeResponse struct {
	ID                 string  `json:"id"`
	EmployeeID         string  `json:"employee_id"`
	FirstName          string  `json:"first_name"`
	Surname            string  `json:"surname"`
	Position           string  `json:"position"`
	Department         *string `json:"department,omitempty"`
	AvatarURL          *string `json:"avatar_url,omitempty"`
	Status             string  `json:"status"`
	LastLoginTime      *string `json:"last_login_time,omitempty"`
	FaceEnrolled       bool    `json:"face_enrolled"`
	CredentialEnrolled bool    `json:"credential_enrolled"`
	HasPin             bool    `json:"has_pin"`
}

func ToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:                 e.ID,
		EmployeeID:         e.EmployeeID,
		FirstName:          e.FirstName,
		Surname:            e.Surname,
		Position:           e.Position,
		Department:         e.Department,
		AvatarURL:          e.AvatarURL,
		Status:             string(e.Status),
		FaceEnrolled:       e.HasFaceEnrolled(),
		CredentialEnrolled: e.HasCredentialEnrolled(),
		HasPin:             e.HasPin(),
	}
	if e.LastLoginTime != nil {
		s := e.LastLoginTime.Format("2006-01-02T15:04:05Z07:00")
		resp.LastLoginTime = &s
	}
	return resp
}
