package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/printdesk/daybook-api/internal/domain/entity"
	"github.com/printdesk/daybook-api/internal/domain/repository"
	"github.com/printdesk/daybook-api/pkg/apperror"
	"github.com/printdesk/daybook-api/pkg/utils"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles operator registration, login and profile management
type AuthService struct {
	userRepo   repository.UserRepository
	jwtManager *utils.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, jwtManager *utils.JWTManager) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
	}
}

// TokenPair holds an access token and its refresh token
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthResult is returned from register, login and refresh
type AuthResult struct {
	User   *entity.User `json:"user"`
	Tokens TokenPair    `json:"tokens"`
}

// RegisterInput carries the fields for creating an operator account
type RegisterInput struct {
	FirstName    string
	LastName     string
	Email        string
	Password     string
	BusinessName string
	Phone        string
}

// Register creates a new operator account and signs them in
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*AuthResult, error) {
	var fieldErrs []apperror.FieldError
	if input.FirstName == "" {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "first_name", Message: "first name is required"})
	}
	if input.Email == "" {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "email", Message: "email is required"})
	}
	if len(input.Password) < 8 {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "password", Message: "must be at least 8 characters"})
	}
	if len(fieldErrs) > 0 {
		return nil, apperror.NewValidationError(fieldErrs)
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperror.NewPersistenceError("look up account", err)
	}
	if existing != nil {
		return nil, apperror.ErrConflict
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.ErrInternalServer
	}

	user := &entity.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        email,
		Password:     string(hash),
		BusinessName: optional(input.BusinessName),
		Phone:        optional(input.Phone),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, apperror.NewPersistenceError("create account", err)
	}

	return s.issueTokens(user)
}

// Login authenticates an operator by email and password
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, apperror.NewPersistenceError("look up account", err)
	}
	if user == nil {
		return nil, apperror.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperror.ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

// Refresh exchanges a valid refresh token for a fresh token pair
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperror.NewPersistenceError("look up account", err)
	}
	if user == nil {
		return nil, apperror.ErrInvalidToken
	}

	return s.issueTokens(user)
}

// GetProfile returns the operator's account details
func (s *AuthService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperror.NewPersistenceError("look up account", err)
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// UpdateProfileInput carries the editable profile fields
type UpdateProfileInput struct {
	FirstName    string
	LastName     string
	BusinessName string
	Phone        string
	Address      string
}

// UpdateProfile changes the operator's display and business details. Email
// and password changes are deliberately not supported here.
func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, input *UpdateProfileInput) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperror.NewPersistenceError("look up account", err)
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}

	if input.FirstName != "" {
		user.FirstName = input.FirstName
	}
	if input.LastName != "" {
		user.LastName = input.LastName
	}
	if input.BusinessName != "" {
		user.BusinessName = optional(input.BusinessName)
	}
	if input.Phone != "" {
		user.Phone = optional(input.Phone)
	}
	if input.Address != "" {
		user.Address = optional(input.Address)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, apperror.NewPersistenceError("update account", err)
	}
	return user, nil
}

func (s *AuthService) issueTokens(user *entity.User) (*AuthResult, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, apperror.ErrInternalServer
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, apperror.ErrInternalServer
	}

	return &AuthResult{
		User: user,
		Tokens: TokenPair{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
		},
	}, nil
}
