package auth

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/sabigold/presence-backend-go/internal/domain/auth"
	"github.com/sabigold/presence-backend-go/internal/pkg/jwt"
)

type Service struct {
	userRepo   auth.UserRepository
	jwtService jwt.Service
}

func NewService(userRepo auth.UserRepository, jwtService jwt.Service) *Service {
	return &Service{userRepo: userRepo, jwtService: jwtService}
}

// Login checks the password against the stored bcrypt hash and issues
// an access token. Unknown email and wrong password return the same
// error so the response does not leak which accounts exist.
func (s *Service) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwtService.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	slog.Info("Admin logged in", "user_id", user.ID)
	return auth.LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		DisplayName: user.DisplayName,
	}, nil
}
