package service

import (
	"errors"
	"time"

	"github.com/neuronest/neuronest/internal/models"
	"github.com/neuronest/neuronest/internal/repository"
	"github.com/neuronest/neuronest/internal/utils"
	"github.com/neuronest/neuronest/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrUsernameTaken      = errors.New("a user with this username already exists")
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrUnauthorized       = errors.New("could not validate credentials")
)

// ValidationError marks a deliberate input rejection. The request boundary
// maps it to 400 with its message intact; all other errors stay generic.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

type AuthService struct {
	userRepo     *repository.UserRepository
	jwtSecret    string
	jwtAlgorithm string
	jwtExpiry    time.Duration
}

func NewAuthService(userRepo *repository.UserRepository, jwtSecret, jwtAlgorithm string, jwtExpiry time.Duration) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		jwtSecret:    jwtSecret,
		jwtAlgorithm: jwtAlgorithm,
		jwtExpiry:    jwtExpiry,
	}
}

// Signup creates a new user with a hashed password. Fails with
// ErrUsernameTaken when the username is already registered.
func (s *AuthService) Signup(username, password string) (*models.User, error) {
	if err := validateSignupInput(username, password); err != nil {
		logger.Log.Warn("Signup validation failed",
			zap.String("username", username),
			zap.Error(err),
		)
		return nil, err
	}

	existing, err := s.userRepo.GetUserByUsername(username)
	if err != nil {
		logger.Log.Error("Failed to check username existence",
			zap.String("username", username),
			zap.Error(err),
		)
		return nil, err
	}
	if existing != nil {
		logger.Log.Warn("Signup rejected: username already exists",
			zap.String("username", username),
		)
		return nil, ErrUsernameTaken
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		logger.Log.Error("Failed to hash password", zap.Error(err))
		return nil, err
	}

	user := &models.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: hash,
	}

	if err := s.userRepo.CreateUser(user); err != nil {
		logger.Log.Error("Failed to create user",
			zap.String("username", username),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Info("User signed up",
		zap.String("user_id", user.ID.String()),
		zap.String("username", username),
	)

	return user, nil
}

// Login verifies credentials and issues a signed access token with the
// username as subject. Unknown users and wrong passwords both yield
// ErrInvalidCredentials.
func (s *AuthService) Login(username, password string) (string, error) {
	user, err := s.userRepo.GetUserByUsername(username)
	if err != nil {
		logger.Log.Error("Failed to get user by username",
			zap.String("username", username),
			zap.Error(err),
		)
		return "", err
	}
	if user == nil {
		logger.Log.Warn("Login failed: user not found",
			zap.String("username", username),
		)
		return "", ErrInvalidCredentials
	}

	if !utils.VerifyPassword(password, user.PasswordHash) {
		logger.Log.Warn("Login failed: invalid password",
			zap.String("username", username),
			zap.String("user_id", user.ID.String()),
		)
		return "", ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user, s.jwtSecret, s.jwtAlgorithm, s.jwtExpiry)
	if err != nil {
		logger.Log.Error("Failed to generate token",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		return "", err
	}

	logger.Log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
	)

	return token, nil
}

// Authenticate resolves a bearer token to its live user. Fails with
// ErrUnauthorized when the signature is invalid, the token is expired, or the
// subject's user no longer exists — tokens do not outlive their account.
func (s *AuthService) Authenticate(tokenString string) (*models.User, error) {
	claims, err := utils.ValidateToken(tokenString, s.jwtSecret)
	if err != nil {
		return nil, ErrUnauthorized
	}

	user, err := s.userRepo.GetUserByUsername(claims.Subject)
	if err != nil {
		logger.Log.Error("Failed to resolve token subject",
			zap.String("subject", claims.Subject),
			zap.Error(err),
		)
		return nil, err
	}
	if user == nil {
		logger.Log.Warn("Token subject no longer exists",
			zap.String("subject", claims.Subject),
		)
		return nil, ErrUnauthorized
	}

	return user, nil
}

func validateSignupInput(username, password string) error {
	if len(username) < 3 {
		return ValidationError("username must be at least 3 characters")
	}
	if len(username) > 50 {
		return ValidationError("username must be at most 50 characters")
	}
	if len(password) < 8 {
		return ValidationError("password must be at least 8 characters")
	}
	if len(password) > 128 {
		return ValidationError("password too long")
	}
	return nil
}
