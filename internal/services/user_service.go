package services

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/justsurfingit/job-tracker-api/internal/auth"
	"github.com/justsurfingit/job-tracker-api/internal/database"
	"github.com/justsurfingit/job-tracker-api/internal/dtos"
	"github.com/justsurfingit/job-tracker-api/internal/models"
)

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// TokenIssuer mints the bearer credential handed out at login.
type TokenIssuer interface {
	Issue(userID uint) (string, time.Time, error)
}

const (
	minPasswordLength = 8
	// bcrypt ignores everything past 72 bytes
	maxPasswordLength = 72
)

type UserService struct {
	Store  UserStore
	Tokens TokenIssuer
}

func NewUserService(store UserStore, tokens TokenIssuer) *UserService {
	return &UserService{Store: store, Tokens: tokens}
}

func (s *UserService) Register(ctx context.Context, req *dtos.RegisterRequest) (*models.User, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if len(req.Password) < minPasswordLength {
		return nil, InvalidArgument("password must be at least 8 characters")
	}
	if len(req.Password) > maxPasswordLength {
		return nil, InvalidArgument("password must be at most 72 bytes")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, Internal(err)
	}
	user := &models.User{Email: email, PasswordHash: hash}
	if err := s.Store.Create(ctx, user); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, Conflict("Email already registered")
		}
		return nil, Internal(err)
	}
	return user, nil
}

// Login checks credentials and issues a token. Unknown email and wrong password
// produce the same error.
func (s *UserService) Login(ctx context.Context, req *dtos.LoginRequest) (*dtos.LoginResponse, error) {
	invalid := Unauthenticated("Invalid email or password")

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.Store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			auth.BurnCompare(req.Password)
			return nil, invalid
		}
		return nil, Internal(err)
	}

	ok, err := auth.CheckPassword(user.PasswordHash, req.Password)
	if err != nil {
		return nil, Internal(err)
	}
	if !ok {
		return nil, invalid
	}

	token, expiresAt, err := s.Tokens.Issue(user.ID)
	if err != nil {
		return nil, Internal(err)
	}
	return &dtos.LoginResponse{Token: token, TokenType: "Bearer", ExpiresAt: expiresAt}, nil
}

func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", InvalidArgument("email must be a valid email address")
	}
	return email, nil
}
