// Package books provides database operations for the shared book catalog.
//
// Books are global records: they are readable and writable by any
// authenticated user and act as the parent for per-user tracking and
// comments. The Google Books volume ID is the natural key; GetOrCreate dedups
// on it and the storage-level unique index backstops concurrent races.
package books

import (
	"errors"

	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/entities"
)

var (
	ErrNotFound = errors.New("book not found")
	// ErrDuplicateGoogleBooksID surfaces when two creates race on the same
	// fresh google_books_id and the unique index rejects the loser.
	ErrDuplicateGoogleBooksID = errors.New("book with this google_books_id already exists")
)

// Repository handles all book catalog database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns every book in the catalog.
func (r *Repository) List() ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Order("id ASC").Find(&books).Error
	return books, err
}

// GetByID retrieves a single book.
func (r *Repository) GetByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.First(&book, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &book, nil
}

// GetByGoogleBooksID retrieves a book by its Google Books volume ID.
func (r *Repository) GetByGoogleBooksID(googleBooksID string) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Where("google_books_id = ?", googleBooksID).First(&book).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &book, nil
}

// GetOrCreate implements the dedup-on-create rule: if a book with the same
// google_books_id already exists the existing record is returned and created
// is false; otherwise the book is inserted and created is true. A concurrent
// insert of the same ID loses to the unique index and comes back as
// ErrDuplicateGoogleBooksID.
func (r *Repository) GetOrCreate(book *entities.Book) (*entities.Book, bool, error) {
	if book.GoogleBooksID != "" {
		existing, err := r.GetByGoogleBooksID(book.GoogleBooksID)
		if err == nil {
			return existing, false, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, false, err
		}
	}

	if err := r.db.Create(book).Error; err != nil {
		if database.IsUniqueConstraintErr(err) {
			return nil, false, ErrDuplicateGoogleBooksID
		}
		return nil, false, err
	}
	return book, true, nil
}

// Update applies the given column updates to a book. Any authenticated user
// may update any book.
func (r *Repository) Update(id uint, updates map[string]any) (*entities.Book, error) {
	if _, err := r.GetByID(id); err != nil {
		return nil, err
	}

	if len(updates) > 0 {
		err := r.db.Model(&entities.Book{}).Where("id = ?", id).Updates(updates).Error
		if err != nil {
			if database.IsUniqueConstraintErr(err) {
				return nil, ErrDuplicateGoogleBooksID
			}
			return nil, err
		}
	}

	return r.GetByID(id)
}

// Delete removes a book together with all tracking records and comments that
// reference it, in a single transaction.
func (r *Repository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var book entities.Book
		if err := tx.First(&book, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if err := tx.Where("book_id = ?", id).Delete(&entities.BookTracking{}).Error; err != nil {
			return err
		}
		if err := tx.Where("book_id = ?", id).Delete(&entities.BookComment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entities.Book{}, id).Error
	})
}
