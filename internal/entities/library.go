package entities

import (
	"time"
)

// TrackingStatus is the reading state of a tracked book.
type TrackingStatus string

const (
	TrackingStatusReading    TrackingStatus = "reading"
	TrackingStatusCompleted  TrackingStatus = "completed"
	TrackingStatusWantToRead TrackingStatus = "want_to_read"
)

// UserRole controls what a user may do beyond their own records.
type UserRole string

const (
	UserRoleAdmin  UserRole = "admin"
	UserRoleMember UserRole = "member"
)

type User struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Username       string     `gorm:"uniqueIndex;size:100" json:"username"`
	Email          string     `gorm:"uniqueIndex;size:255" json:"email"`
	PasswordHash   string     `gorm:"size:100" json:"-"`
	Role           UserRole   `gorm:"size:20;default:'member'" json:"role"`
	TokenHash      string     `gorm:"index;size:64" json:"-"` // SHA-256 of the API token
	TokenCreatedAt *time.Time `json:"-"`
	LastLoginAt    *time.Time `json:"-"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"-"`
}

// Book is a shared catalog entry. It is not owned by any user; tracking and
// comments hang off it per-user.
type Book struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	Title         string `gorm:"index;size:255" json:"title"`
	Author        string `gorm:"index;size:255" json:"author"`
	Description   string `gorm:"type:text" json:"description"`
	CoverImageURL string `gorm:"size:2048" json:"cover_image_url"`
	// ISO date (YYYY-MM-DD), validated at the API boundary.
	PublishedDate string `gorm:"size:10" json:"published_date"`
	// Google Books volume ID, the natural key for dedup on create.
	GoogleBooksID string    `gorm:"uniqueIndex;size:255" json:"google_books_id"`
	CreatedAt     time.Time `json:"-"`
	UpdatedAt     time.Time `json:"-"`
}

// BookTracking records one user's relationship to one book. At most one row
// exists per (user, book) pair.
type BookTracking struct {
	ID       uint           `gorm:"primaryKey" json:"id"`
	UserID   uint           `gorm:"uniqueIndex:idx_tracking_user_book;not null" json:"-"`
	BookID   uint           `gorm:"uniqueIndex:idx_tracking_user_book;not null" json:"-"`
	Status   TrackingStatus `gorm:"size:20;default:'want_to_read'" json:"status"`
	Rating   *int           `json:"rating"` // 1-5, nil until the user rates
	Progress int            `gorm:"default:0" json:"progress"` // percentage

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Book Book `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"book"`

	CreatedAt time.Time `json:"-"`
}

// BookComment is one user's comment on a book. Unlike tracking there is no
// uniqueness rule; a user may comment on the same book many times.
type BookComment struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	UserID  uint   `gorm:"index;not null" json:"user"`
	BookID  uint   `gorm:"index;not null" json:"book"`
	Comment string `gorm:"type:text" json:"comment"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Book Book `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

func (Book) TableName() string {
	return "books"
}

func (BookTracking) TableName() string {
	return "book_trackings"
}

func (BookComment) TableName() string {
	return "book_comments"
}
