// Package users provides database operations for user and token management.
//
// # Usage
//
//	repo := users.NewRepository(db)
//	user, err := repo.GetUserByEmail(email)
package users

import (
	"gorm.io/gorm"

	"github.com/mrlokans/bookfinder/internal/entities"
)

// Repository handles all user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser persists a new user. The password must already be hashed.
func (r *Repository) CreateUser(user *entities.User) error {
	return r.db.Create(user).Error
}

// GetUserByID retrieves a user by ID.
func (r *Repository) GetUserByID(id uint) (*entities.User, error) {
	var user entities.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email.
func (r *Repository) GetUserByEmail(email string) (*entities.User, error) {
	var user entities.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateToken stores a hashed API token for a user.
func (r *Repository) CreateToken(token *entities.APIToken) error {
	return r.db.Create(token).Error
}

// GetUserByTokenHash resolves a token hash to its owning user.
func (r *Repository) GetUserByTokenHash(tokenHash string) (*entities.User, error) {
	var token entities.APIToken
	err := r.db.Where("token_hash = ?", tokenHash).First(&token).Error
	if err != nil {
		return nil, err
	}
	return r.GetUserByID(token.UserID)
}

// DeleteTokenByHash revokes a single token. Used by logout.
func (r *Repository) DeleteTokenByHash(tokenHash string) error {
	return r.db.Where("token_hash = ?", tokenHash).Delete(&entities.APIToken{}).Error
}
