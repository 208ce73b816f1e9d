package services

import (
	"errors"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/gotravel/gotravel-backend/internal/errs"
	"github.com/gotravel/gotravel-backend/internal/models"
	"github.com/gotravel/gotravel-backend/pkg/jwt"
)

// ErrInvalidCredentials is returned for both unknown emails and wrong
// passwords so login failures do not reveal which one it was.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrAccountBlocked is returned when a blocked user attempts to log in.
var ErrAccountBlocked = errors.New("account is blocked")

// AccountStore is the persistence surface the auth flow needs.
type AccountStore interface {
	Create(user *models.User) error
	GetByID(userID string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	UpdateProfile(userID string, req *models.UpdateProfileRequest) error
	RecordLogin(userID, device string) error
}

// TokenPair is the result of a successful authentication
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthService handles registration, login and profile management
type AuthService struct {
	users  AccountStore
	tokens *jwt.Manager
	logger *logrus.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(users AccountStore, tokens *jwt.Manager, logger *logrus.Logger) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

// Register creates a new customer account
func (s *AuthService) Register(req *models.RegisterRequest) (*models.User, *TokenPair, error) {
	if err := req.Validate(); err != nil {
		return nil, nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
	}

	if err := s.users.Create(user); err != nil {
		return nil, nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"user_id": user.ID,
		"email":   user.Email,
	}).Info("User registered")

	pair, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}

	return user, pair, nil
}

// Login authenticates a user and records the login device
func (s *AuthService) Login(req *models.LoginRequest, device string) (*models.User, *TokenPair, error) {
	user, err := s.users.GetByEmail(req.Email)
	if err != nil {
		if errs.IsNotFound(err) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	if user.IsBlocked {
		return nil, nil, ErrAccountBlocked
	}

	if err := s.users.RecordLogin(user.ID, device); err != nil {
		s.logger.WithError(err).WithField("user_id", user.ID).Warn("Failed to record login")
	}

	s.logger.WithFields(logrus.Fields{
		"user_id": user.ID,
		"device":  device,
	}).Info("User logged in")

	pair, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}

	return user, pair, nil
}

// Refresh exchanges a valid refresh token for a new token pair
func (s *AuthService) Refresh(refreshToken string) (*TokenPair, error) {
	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(claims.UserID)
	if err != nil {
		return nil, err
	}
	if user.IsBlocked {
		return nil, ErrAccountBlocked
	}

	return s.issueTokens(user)
}

// GetProfile retrieves the caller's own account
func (s *AuthService) GetProfile(userID string) (*models.User, error) {
	return s.users.GetByID(userID)
}

// UpdateProfile applies a profile edit and returns the updated account
func (s *AuthService) UpdateProfile(userID string, req *models.UpdateProfileRequest) (*models.User, error) {
	if err := s.users.UpdateProfile(userID, req); err != nil {
		return nil, err
	}
	return s.users.GetByID(userID)
}

func (s *AuthService) issueTokens(user *models.User) (*TokenPair, error) {
	access, err := s.tokens.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
