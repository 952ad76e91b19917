package entities

import (
	"time"
)

type UserRole string

const (
	UserRoleAdmin UserRole = "admin"
	UserRoleUser  UserRole = "user"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:100" json:"name"`
	Email        string    `gorm:"uniqueIndex;size:255" json:"email"`
	PasswordHash string    `gorm:"size:100" json:"-"`
	Role         UserRole  `gorm:"size:20;default:'user'" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

// APIToken is a bearer token issued at register/login. Only the SHA-256
// hash is stored; the plaintext is shown to the client once.
type APIToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index" json:"user_id"`
	TokenHash string    `gorm:"uniqueIndex;size:64" json:"-"`
	Name      string    `gorm:"size:64" json:"name"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

type Book struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	GoogleBooksID *string   `gorm:"uniqueIndex;size:64" json:"google_books_id"`
	Title         string    `gorm:"index;size:512" json:"title"`
	Author        string    `gorm:"index;size:256" json:"author"`
	ISBN          *string   `gorm:"index;size:20" json:"isbn"`
	CoverURL      *string   `gorm:"size:2048" json:"cover_url"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Favorite links a user to a book. The composite unique index makes
// duplicate adds a constraint violation rather than a second row.
type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_user_book;index" json:"user_id"`
	BookID    uint      `gorm:"uniqueIndex:idx_user_book;index" json:"book_id"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
	Book Book `gorm:"foreignKey:BookID" json:"-"`
}

func (Favorite) TableName() string {
	return "user_book"
}
