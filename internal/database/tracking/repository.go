// Package tracking provides database operations for per-user book tracking.
//
// Every operation except Create is scoped or gated by the owning user: lists
// only ever return the caller's rows, and mutations on another user's row
// fail with ErrNotOwner. Create forces the owner server-side; callers cannot
// track a book on someone else's behalf.
package tracking

import (
	"errors"

	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/entities"
)

var (
	ErrNotFound = errors.New("book tracking not found")
	ErrNotOwner = errors.New("book tracking belongs to another user")
	// ErrAlreadyTracked enforces the one-tracking-per-(user, book) rule.
	ErrAlreadyTracked = errors.New("book is already tracked by this user")
)

// Repository handles all book tracking database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new tracking repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListByUser returns the tracking records owned by userID, with the tracked
// book preloaded for serialization.
func (r *Repository) ListByUser(userID uint) ([]entities.BookTracking, error) {
	var trackings []entities.BookTracking
	err := r.db.Preload("Book").
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&trackings).Error
	return trackings, err
}

// GetByID retrieves a tracking record regardless of owner. Ownership checks
// happen in Update/Delete so that a mismatch can be reported as forbidden
// rather than not-found.
func (r *Repository) GetByID(id uint) (*entities.BookTracking, error) {
	var t entities.BookTracking
	err := r.db.Preload("Book").First(&t, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Create inserts a tracking record. t.UserID must already be set to the
// authenticated caller by the service layer. A second record for the same
// (user, book) pair fails with ErrAlreadyTracked, either via the existence
// check or, on a race, via the composite unique index.
func (r *Repository) Create(t *entities.BookTracking) (*entities.BookTracking, error) {
	var count int64
	err := r.db.Model(&entities.BookTracking{}).
		Where("user_id = ? AND book_id = ?", t.UserID, t.BookID).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrAlreadyTracked
	}

	if err := r.db.Create(t).Error; err != nil {
		if database.IsUniqueConstraintErr(err) {
			return nil, ErrAlreadyTracked
		}
		return nil, err
	}
	return r.GetByID(t.ID)
}

// Update applies column updates to a tracking record owned by userID.
// Returns ErrNotOwner when the record exists but belongs to someone else.
func (r *Repository) Update(userID, id uint, updates map[string]any) (*entities.BookTracking, error) {
	t, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	if t.UserID != userID {
		return nil, ErrNotOwner
	}

	if len(updates) > 0 {
		err = r.db.Model(&entities.BookTracking{}).Where("id = ?", id).Updates(updates).Error
		if err != nil {
			return nil, err
		}
	}

	return r.GetByID(id)
}

// Delete removes a tracking record owned by userID.
func (r *Repository) Delete(userID, id uint) error {
	t, err := r.GetByID(id)
	if err != nil {
		return err
	}
	if t.UserID != userID {
		return ErrNotOwner
	}
	return r.db.Delete(&entities.BookTracking{}, id).Error
}
