package auth

import (
	"errors"
	"fmt"
	"regexp"

	"gorm.io/gorm"

	"github.com/mrlokans/bookfinder/internal/config"
	"github.com/mrlokans/bookfinder/internal/entities"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrNameRequired       = errors.New("name is required")
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordRequired   = errors.New("password is required")
	ErrEmailInvalid       = errors.New("invalid email format")
)

// UserRepository defines the interface for user and token data access.
type UserRepository interface {
	CreateUser(user *entities.User) error
	GetUserByID(id uint) (*entities.User, error)
	GetUserByEmail(email string) (*entities.User, error)
	CreateToken(token *entities.APIToken) error
	GetUserByTokenHash(tokenHash string) (*entities.User, error)
	DeleteTokenByHash(tokenHash string) error
}

// Service handles registration, login and token validation.
type Service struct {
	users  UserRepository
	config config.Auth
}

// NewService creates a new authentication service.
func NewService(users UserRepository, cfg config.Auth) *Service {
	return &Service{
		users:  users,
		config: cfg,
	}
}

// Register creates a user and issues their first API token.
// Returns the user and the plaintext token.
func (s *Service) Register(name, email, password string, role entities.UserRole) (*entities.User, string, error) {
	if name == "" {
		return nil, "", ErrNameRequired
	}
	if email == "" {
		return nil, "", ErrEmailRequired
	}
	if password == "" {
		return nil, "", ErrPasswordRequired
	}

	// Validate email format and length (RFC 5321 limit is 254)
	if len(email) > 254 || !emailPattern.MatchString(email) {
		return nil, "", ErrEmailInvalid
	}

	_, err := s.users.GetUserByEmail(email)
	if err == nil {
		return nil, "", ErrUserExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("failed to check existing user: %w", err)
	}

	passwordHash, err := HashPassword(password, s.config.BcryptCost)
	if err != nil {
		return nil, "", err
	}

	user := &entities.User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
	}
	if err := s.users.CreateUser(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", ErrUserExists
		}
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	plaintext, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, plaintext, nil
}

// Login validates credentials and issues a fresh API token.
// A missing user and a wrong password are deliberately indistinguishable.
func (s *Service) Login(email, password string) (*entities.User, string, error) {
	user, err := s.users.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to find user: %w", err)
	}

	if err := CheckPassword(password, user.PasswordHash); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	plaintext, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, plaintext, nil
}

// Logout revokes the presenting token. Revoking an unknown token is a no-op.
func (s *Service) Logout(plaintextToken string) error {
	return s.users.DeleteTokenByHash(HashToken(plaintextToken))
}

// ValidateToken resolves a plaintext bearer token to its user.
func (s *Service) ValidateToken(plaintextToken string) (*entities.User, error) {
	if plaintextToken == "" {
		return nil, ErrInvalidToken
	}

	user, err := s.users.GetUserByTokenHash(HashToken(plaintextToken))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to validate token: %w", err)
	}

	return user, nil
}

func (s *Service) issueToken(user *entities.User) (string, error) {
	plaintext, hash, err := GenerateAPIToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	token := &entities.APIToken{
		UserID:    user.ID,
		TokenHash: hash,
		Name:      "auth-token",
	}
	if err := s.users.CreateToken(token); err != nil {
		return "", fmt.Errorf("failed to store token: %w", err)
	}

	return plaintext, nil
}
