package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"farmgate/internal/domain"
	"farmgate/internal/repos"
	"farmgate/internal/validate"
)

type AuthService struct {
	Users *repos.UserRepo
}

type RegisterInput struct {
	Username        string `json:"username" validate:"required,min=3,max=50"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8,max=72"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	Phone           string `json:"phone" validate:"omitempty,min=10,max=20"`
}

// Register creates a customer account. Role is always customer; admin
// accounts are only seeded or promoted out of band.
func (s *AuthService) Register(in RegisterInput) (*domain.User, error) {
	if fields := validate.Payload(in); fields != nil {
		return nil, &ValidationError{Fields: fields}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), 12)
	if err != nil {
		return nil, err
	}
	return s.Users.Create(in.Username, string(hash), in.Email, in.Phone)
}

// Login verifies credentials and binds the session. Failures are collapsed
// into ErrBadCreds so the response never reveals which part was wrong.
func (s *AuthService) Login(sid, username, password string) (*domain.User, error) {
	u, err := s.Users.ByUsername(username)
	if err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			return nil, ErrBadCreds
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	if err := s.Users.BindSession(sid, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) Logout(sid string) error {
	return s.Users.UnbindSession(sid)
}

func (s *AuthService) CurrentUser(sid string) (*domain.User, error) {
	return s.Users.SessionUser(sid)
}
