package application

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/dream-journal-api/internal/domain/entity"
	repo "github.com/oksasatya/dream-journal-api/internal/domain/repository"
	"github.com/oksasatya/dream-journal-api/pkg/helpers"
	"github.com/oksasatya/dream-journal-api/pkg/mailer"
)

const (
	msgRegisterRequired   = "Full name, email, and password are required"
	msgLoginRequired      = "Email and password are required"
	msgEmailTaken         = "User with this email already exists"
	msgEmailUnknown       = "User with this email does not exist"
	msgInvalidCredentials = "Invalid user credentials"
	msgTokenGeneration    = "Something went wrong while generating refresh and access tokens"
	msgUserNotFound       = "User not found"
)

// Service is the credential store and token issuer for users.
type Service struct {
	Repo   repo.UserRepository
	Hasher helpers.PasswordHasher
	JWT    helpers.TokenIssuer
	Logger *logrus.Logger
	// Mail receives welcome email jobs; nil disables them.
	Mail helpers.Publisher
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

func NewService(repo repo.UserRepository, hasher helpers.PasswordHasher, jwt helpers.TokenIssuer, logger *logrus.Logger, mail helpers.Publisher) *Service {
	return &Service{
		Repo:   repo,
		Hasher: hasher,
		JWT:    jwt,
		Logger: logger,
		Mail:   mail,
	}
}

type RegisterInput struct {
	FullName string
	Email    string
	Password string
	Age      *int
}

// NormalizeEmail trims and lowercases an email; uniqueness is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register stores a new user with a hashed password.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	fullName := strings.TrimSpace(in.FullName)
	email := NormalizeEmail(in.Email)
	if fullName == "" || email == "" || strings.TrimSpace(in.Password) == "" {
		return nil, BadRequest(msgRegisterRequired)
	}

	existing, err := s.Repo.GetByEmail(ctx, email)
	switch {
	case err == nil && existing != nil:
		return nil, Conflict(msgEmailTaken)
	case err != nil && !errors.Is(err, repo.ErrNotFound):
		return nil, Internal("Something went wrong while registering the user", err)
	}

	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return nil, Internal("Something went wrong while registering the user", err)
	}

	u := &entity.User{
		Email:       email,
		FullName:    fullName,
		Password:    hash,
		Age:         in.Age,
		Preferences: entity.DefaultPreferences(),
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrAlreadyExists) {
			return nil, Conflict(msgEmailTaken)
		}
		return nil, Internal("Something went wrong while registering the user", err)
	}

	s.log().WithField("user_id", u.ID).Info("user registered")
	s.enqueueWelcome(ctx, u)
	return u, nil
}

// VerifyCredentials checks email/password without side effects.
func (s *Service) VerifyCredentials(ctx context.Context, email, password string) (*entity.User, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, BadRequest(msgLoginRequired)
	}
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, NotFound(msgEmailUnknown)
		}
		return nil, Internal("Something went wrong while logging in", err)
	}
	if !s.Hasher.Compare(u.Password, password) {
		return nil, Unauthorized(msgInvalidCredentials)
	}
	return u, nil
}

// IssueTokens re-fetches the user and signs a fresh access/refresh pair.
func (s *Service) IssueTokens(ctx context.Context, userID string) (*entity.User, TokenPair, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		s.log().WithError(err).WithField("user_id", userID).Error("user lookup failed while issuing tokens")
		return nil, TokenPair{}, Internal(msgTokenGeneration, err)
	}
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID, u.Email, u.FullName)
	if err != nil {
		s.log().WithError(err).WithField("user_id", u.ID).Error("generate access token failed")
		return nil, TokenPair{}, Internal(msgTokenGeneration, err)
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID)
	if err != nil {
		s.log().WithError(err).WithField("user_id", u.ID).Error("generate refresh token failed")
		return nil, TokenPair{}, Internal(msgTokenGeneration, err)
	}
	return u, TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

// PersistRefreshToken overwrites the stored refresh token, invalidating any earlier one.
func (s *Service) PersistRefreshToken(ctx context.Context, userID, token string) error {
	if err := s.Repo.SetRefreshToken(ctx, userID, token); err != nil {
		s.log().WithError(err).WithField("user_id", userID).Error("persist refresh token failed")
		return Internal(msgTokenGeneration, err)
	}
	return nil
}

// Login verifies credentials, issues a token pair and records the refresh token.
func (s *Service) Login(ctx context.Context, email, password string) (*entity.User, TokenPair, error) {
	u, err := s.VerifyCredentials(ctx, email, password)
	if err != nil {
		return nil, TokenPair{}, err
	}
	u, pair, err := s.IssueTokens(ctx, u.ID)
	if err != nil {
		return nil, TokenPair{}, err
	}
	if err := s.PersistRefreshToken(ctx, u.ID, pair.RefreshToken); err != nil {
		return nil, TokenPair{}, err
	}
	u.RefreshToken = pair.RefreshToken
	s.log().WithField("user_id", u.ID).Info("user logged in")
	return u, pair, nil
}

// Logout clears the stored refresh token. A user deleted in the meantime is not an error.
func (s *Service) Logout(ctx context.Context, userID string) error {
	if userID == "" {
		return Unauthorized("Unauthorized request")
	}
	if err := s.Repo.SetRefreshToken(ctx, userID, ""); err != nil && !errors.Is(err, repo.ErrNotFound) {
		return Internal("Something went wrong while logging out", err)
	}
	return nil
}

func (s *Service) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, NotFound(msgUserNotFound)
		}
		return nil, Internal("Something went wrong while loading the profile", err)
	}
	return u, nil
}

func (s *Service) enqueueWelcome(ctx context.Context, u *entity.User) {
	if s.Mail == nil {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: mailer.TemplateWelcome,
		Data:     map[string]any{"Name": u.FullName, "Email": u.Email},
	}
	if err := s.Mail.PublishJSON(ctx, job); err != nil {
		s.log().WithError(err).WithField("user_id", u.ID).Warn("failed to enqueue welcome email")
	}
}

func (s *Service) log() *logrus.Logger {
	return loggerOrDiscard(s.Logger)
}

var discardLogger = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()

func loggerOrDiscard(l *logrus.Logger) *logrus.Logger {
	if l != nil {
		return l
	}
	return discardLogger
}
