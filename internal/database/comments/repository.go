// Package comments provides database operations for per-user book comments.
//
// Same ownership shape as the tracking repository, minus the uniqueness
// rule: a user may comment on the same book any number of times.
package comments

import (
	"errors"

	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/entities"
)

var (
	ErrNotFound = errors.New("book comment not found")
	ErrNotOwner = errors.New("book comment belongs to another user")
)

// Repository handles all book comment database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new comments repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListByUser returns the comments owned by userID.
func (r *Repository) ListByUser(userID uint) ([]entities.BookComment, error) {
	var comments []entities.BookComment
	err := r.db.Where("user_id = ?", userID).
		Order("id ASC").
		Find(&comments).Error
	return comments, err
}

// GetByID retrieves a comment regardless of owner. Ownership is checked in
// Update/Delete so a mismatch reports as forbidden, not not-found.
func (r *Repository) GetByID(id uint) (*entities.BookComment, error) {
	var comment entities.BookComment
	err := r.db.First(&comment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &comment, nil
}

// Create inserts a comment. comment.UserID must already be set to the
// authenticated caller by the service layer.
func (r *Repository) Create(comment *entities.BookComment) (*entities.BookComment, error) {
	if err := r.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return r.GetByID(comment.ID)
}

// Update changes the comment text of a record owned by userID.
func (r *Repository) Update(userID, id uint, text string) (*entities.BookComment, error) {
	comment, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	if comment.UserID != userID {
		return nil, ErrNotOwner
	}

	err = r.db.Model(&entities.BookComment{}).Where("id = ?", id).Update("comment", text).Error
	if err != nil {
		return nil, err
	}

	return r.GetByID(id)
}

// Delete removes a comment owned by userID.
func (r *Repository) Delete(userID, id uint) error {
	comment, err := r.GetByID(id)
	if err != nil {
		return err
	}
	if comment.UserID != userID {
		return ErrNotOwner
	}
	return r.db.Delete(&entities.BookComment{}, id).Error
}
