package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookfinder/internal/auth"
	"github.com/mrlokans/bookfinder/internal/entities"
)

// AuthService defines the authentication operations the controller needs.
type AuthService interface {
	Register(name, email, password string, role entities.UserRole) (*entities.User, string, error)
	Login(email, password string) (*entities.User, string, error)
	Logout(plaintextToken string) error
}

type AuthController struct {
	service AuthService
}

func NewAuthController(service AuthService) *AuthController {
	return &AuthController{service: service}
}

type registerRequest struct {
	Name                 string `json:"name" binding:"required"`
	Email                string `json:"email" binding:"required,email"`
	Password             string `json:"password" binding:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" binding:"required,eqfield=Password"`
}

// Register creates a new user and returns their first token.
// POST /api/v1/register
func (ac *AuthController) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, gin.H{"error": err.Error()})
		return
	}

	user, token, err := ac.service.Register(req.Name, req.Email, req.Password, entities.UserRoleUser)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserExists):
			respondValidationError(c, gin.H{"email": "The email has already been taken."})
		case errors.Is(err, auth.ErrEmailInvalid), errors.Is(err, auth.ErrPasswordTooShort), errors.Is(err, auth.ErrPasswordTooLong):
			respondValidationError(c, gin.H{"error": err.Error()})
		default:
			respondInternalError(c, err, "register user")
		}
		return
	}

	respondCreated(c, gin.H{"token": token, "user": user}, "User registered successfully")
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates a user and returns a fresh token.
// POST /api/v1/login
func (ac *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, gin.H{"error": err.Error()})
		return
	}

	user, token, err := ac.service.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			respondUnauthorized(c, "Invalid credentials")
			return
		}
		respondInternalError(c, err, "login user")
		return
	}

	respondSuccess(c, gin.H{"token": token, "user": user}, "Login successful")
}

// Logout revokes the token that authenticated this request.
// POST /api/v1/logout
func (ac *AuthController) Logout(c *gin.Context) {
	token := auth.GetToken(c)
	if err := ac.service.Logout(token); err != nil {
		respondInternalError(c, err, "logout user")
		return
	}

	respondSuccess(c, nil, "Logged out successfully")
}
