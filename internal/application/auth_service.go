package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-employee-directory/internal/domain/entity"
	repo "github.com/oksasatya/go-employee-directory/internal/domain/repository"
	"github.com/oksasatya/go-employee-directory/pkg/helpers"
	"github.com/oksasatya/go-employee-directory/pkg/mailer"
)

// TokenIssuer signs session tokens for a user id.
type TokenIssuer interface {
	Issue(userID string) (string, time.Time, error)
}

// JobPublisher enqueues a JSON job; satisfied by helpers.RabbitPublisher.
type JobPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

type AuthService struct {
	Users  repo.UserRepository
	Tokens TokenIssuer
	Logger *logrus.Logger
	// Jobs is optional; when nil no welcome email is queued.
	Jobs JobPublisher
}

func NewAuthService(users repo.UserRepository, tokens TokenIssuer, logger *logrus.Logger, jobs JobPublisher) *AuthService {
	if logger == nil {
		logger = helpers.NewDiscardLogger()
	}
	return &AuthService{Users: users, Tokens: tokens, Logger: logger, Jobs: jobs}
}

// UserView is the user as callers see it; the password hash never appears.
type UserView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      UserView
}

type SignupInput struct {
	Username string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Username string
	Password string
}

func sanitize(u *entity.User) UserView {
	return UserView{ID: u.ID, Username: u.Username, Email: u.Email}
}

// Signup registers a new user and returns a token for it.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*AuthResult, error) {
	exists, err := s.Users.ExistsByEmailOrUsername(ctx, in.Email, in.Username)
	if err != nil {
		return nil, fmt.Errorf("check existing user: %w", err)
	}
	if exists {
		return nil, ErrConflict
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &entity.User{Username: in.Username, Email: in.Email, Password: hash}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	res, err := s.issue(u)
	if err != nil {
		return nil, err
	}
	s.queueWelcome(ctx, u)
	return res, nil
}

// Login authenticates by email or username. Unknown identifiers and wrong
// passwords both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	if in.Email == "" && in.Username == "" {
		return nil, ErrInvalidCredentials
	}
	u, err := s.Users.FindByEmailOrUsername(ctx, in.Email, in.Username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			helpers.BurnPasswordCheck(in.Password)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if !helpers.CompareHashAndPassword(u.Password, in.Password) {
		return nil, ErrInvalidCredentials
	}
	return s.issue(u)
}

func (s *AuthService) issue(u *entity.User) (*AuthResult, error) {
	token, exp, err := s.Tokens.Issue(u.ID)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("issue token failed")
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResult{Token: token, ExpiresAt: exp, User: sanitize(u)}, nil
}

func (s *AuthService) queueWelcome(ctx context.Context, u *entity.User) {
	if s.Jobs == nil {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: mailer.TemplateWelcome,
		Data:     map[string]any{"Username": u.Username, "Email": u.Email},
	}
	if err := s.Jobs.PublishJSON(ctx, job); err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("failed to enqueue welcome email")
	}
}
