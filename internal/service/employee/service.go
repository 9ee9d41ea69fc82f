package employee

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/sabigold/presence-backend-go/internal/domain/employee"
	"github.com/sabigold/presence-backend-go/internal/pkg/validator"
	verificationsvc "github.com/sabigold/presence-backend-go/internal/service/verification"
)

type Service struct {
	repo       employee.EmployeeRepository
	challenges *challengeStore
}

func NewService(repo employee.EmployeeRepository) *Service {
	return &Service{
		repo:       repo,
		challenges: newChallengeStore(2 * time.Minute),
	}
}

func (s *Service) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.Employee, error) {
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}

	if req.Pin != nil {
		if err := s.checkPinAvailable(ctx, *req.Pin, ""); err != nil {
			return employee.Employee{}, err
		}
	}

	created, err := s.repo.Create(ctx, employee.Employee{
		EmployeeID: req.EmployeeID,
		FirstName:  req.FirstName,
		Surname:    req.Surname,
		Position:   req.Position,
		Department: req.Department,
		AvatarURL:  req.AvatarURL,
		Status:     employee.StatusLoggedOut,
		Pin:        req.Pin,
	})
	if err != nil {
		return employee.Employee{}, err
	}

	slog.Info("Employee created", "id", created.ID, "employee_id", created.EmployeeID)
	return created, nil
}

func (s *Service) Get(ctx context.Context, id string) (employee.Employee, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]employee.Employee, error) {
	return s.repo.List(ctx)
}

// Update patches profile fields only. Credential material has its own
// enrollment paths and never changes through here.
func (s *Service) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.Employee, error) {
	emp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return employee.Employee{}, err
	}

	if req.FirstName != nil {
		emp.FirstName = *req.FirstName
	}
	if req.Surname != nil {
		emp.Surname = *req.Surname
	}
	if req.Position != nil {
		emp.Position = *req.Position
	}
	if req.Department != nil {
		emp.Department = req.Department
	}
	if req.AvatarURL != nil {
		emp.AvatarURL = req.AvatarURL
	}

	if err := s.repo.Update(ctx, emp); err != nil {
		return employee.Employee{}, err
	}
	return emp, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.challenges.drop(id)
	slog.Info("Employee deleted", "id", id)
	return nil
}

// EnrollFace stores the face descriptor exactly as captured. No
// normalization: the matcher computes distances against the verbatim
// enrollment vector.
func (s *Service) EnrollFace(ctx context.Context, id string, req employee.EnrollFaceRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	emp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	emp.FaceDescriptor = req.Descriptor

	if err := s.repo.Update(ctx, emp); err != nil {
		return err
	}
	slog.Info("Face enrolled", "employee_id", id, "descriptor_len", len(req.Descriptor))
	return nil
}

// SetPin assigns a pin to an employee without one, or overwrites an
// existing pin from the admin side.
func (s *Service) SetPin(ctx context.Context, id string, pin string) error {
	if !validator.IsValidPin(pin) {
		return validator.ValidationErrors{{Field: "pin", Message: "pin must be exactly 4 digits"}}
	}

	emp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.checkPinAvailable(ctx, pin, id); err != nil {
		return err
	}

	emp.Pin = &pin
	return s.repo.Update(ctx, emp)
}

// ChangePin is the self-service path: the current pin must match before
// the new one is accepted.
func (s *Service) ChangePin(ctx context.Context, id string, req employee.ChangePinRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	emp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if emp.Pin == nil || *emp.Pin != req.CurrentPin {
		return employee.ErrPinIncorrect
	}
	if err := s.checkPinAvailable(ctx, req.NewPin, id); err != nil {
		return err
	}

	emp.Pin = &req.NewPin
	return s.repo.Update(ctx, emp)
}

// BeginCredentialEnrollment issues the challenge the terminal passes to
// its platform authenticator. The challenge is held server-side and
// must be outstanding when the enrollment completes.
func (s *Service) BeginCredentialEnrollment(ctx context.Context, id string) (string, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return "", err
	}

	challenge, err := verificationsvc.NewChallenge()
	if err != nil {
		return "", err
	}
	s.challenges.put(id, challenge)

	return hex.EncodeToString(challenge), nil
}

// CompleteCredentialEnrollment binds the credential the terminal
// created to the employee. Requires a live challenge from
// BeginCredentialEnrollment; the challenge is consumed either way.
func (s *Service) CompleteCredentialEnrollment(ctx context.Context, id string, req employee.CompleteCredentialEnrollmentRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if _, ok := s.challenges.take(id); !ok {
		return employee.ErrNoPendingChallenge
	}

	emp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.checkCredentialAvailable(ctx, req.CredentialID, id); err != nil {
		return err
	}

	emp.CredentialID = &req.CredentialID
	emp.PublicKey = &req.PublicKey

	if err := s.repo.Update(ctx, emp); err != nil {
		return err
	}
	slog.Info("Credential enrolled", "employee_id", id)
	return nil
}

// checkPinAvailable is a best-effort read before the write; the unique
// index on pin is what actually guarantees it under concurrency.
func (s *Service) checkPinAvailable(ctx context.Context, pin, selfID string) error {
	holders, err := s.repo.GetByPin(ctx, pin)
	if err != nil {
		return fmt.Errorf("failed to check pin availability: %w", err)
	}
	for _, h := range holders {
		if h.ID != selfID {
			return employee.ErrPinTaken
		}
	}
	return nil
}

func (s *Service) checkCredentialAvailable(ctx context.Context, credentialID, selfID string) error {
	enrolled, err := s.repo.ListCredentialEnrolled(ctx)
	if err != nil {
		return fmt.Errorf("failed to check credential availability: %w", err)
	}
	for _, e := range enrolled {
		if *e.CredentialID == credentialID && e.ID != selfID {
			return employee.ErrCredentialTaken
		}
	}
	return nil
}
