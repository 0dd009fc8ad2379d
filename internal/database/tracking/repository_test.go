package tracking

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/entities"
)

func setupTestDB(t *testing.T) (*gorm.DB, *Repository, func()) {
	t.Helper()
	dbPath := "./test_tracking_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"

	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	repo := NewRepository(db.DB)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}

	return db.DB, repo, cleanup
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *entities.User {
	t.Helper()
	user := &entities.User{Username: username, Email: username + "@example.com"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestBook(t *testing.T, db *gorm.DB, googleBooksID string) *entities.Book {
	t.Helper()
	book := &entities.Book{
		Title:         "Test Book " + googleBooksID,
		Author:        "Test Author",
		Description:   "A test book.",
		PublishedDate: "2020-01-01",
		GoogleBooksID: googleBooksID,
	}
	require.NoError(t, db.Create(book).Error)
	return book
}

func TestRepository_Create(t *testing.T) {
	t.Run("creates a tracking record with the book preloaded", func(t *testing.T) {
		db, repo, cleanup := setupTestDB(t)
		defer cleanup()

		user := createTestUser(t, db, "alice")
		book := createTestBook(t, db, "vol-1")

		created, err := repo.Create(&entities.BookTracking{
			UserID: user.ID,
			BookID: book.ID,
			Status: entities.TrackingStatusReading,
		})
		require.NoError(t, err)
		assert.Equal(t, entities.TrackingStatusReading, created.Status)
		assert.Equal(t, book.Title, created.Book.Title)
	})

	t.Run("second tracking for the same user and book fails", func(t *testing.T) {
		db, repo, cleanup := setupTestDB(t)
		defer cleanup()

		user := createTestUser(t, db, "alice")
		book := createTestBook(t, db, "vol-1")

		_, err := repo.Create(&entities.BookTracking{UserID: user.ID, BookID: book.ID})
		require.NoError(t, err)

		_, err = repo.Create(&entities.BookTracking{UserID: user.ID, BookID: book.ID})
		assert.ErrorIs(t, err, ErrAlreadyTracked)
	})

	t.Run("same book for a different user succeeds", func(t *testing.T) {
		db, repo, cleanup := setupTestDB(t)
		defer cleanup()

		alice := createTestUser(t, db, "alice")
		bob := createTestUser(t, db, "bob")
		book := createTestBook(t, db, "vol-1")

		_, err := repo.Create(&entities.BookTracking{UserID: alice.ID, BookID: book.ID})
		require.NoError(t, err)
		_, err = repo.Create(&entities.BookTracking{UserID: bob.ID, BookID: book.ID})
		require.NoError(t, err)
	})

	t.Run("different book for the same user succeeds", func(t *testing.T) {
		db, repo, cleanup := setupTestDB(t)
		defer cleanup()

		user := createTestUser(t, db, "alice")
		first := createTestBook(t, db, "vol-1")
		second := createTestBook(t, db, "vol-2")

		_, err := repo.Create(&entities.BookTracking{UserID: user.ID, BookID: first.ID})
		require.NoError(t, err)
		_, err = repo.Create(&entities.BookTracking{UserID: user.ID, BookID: second.ID})
		require.NoError(t, err)
	})
}

func TestRepository_ListByUser(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	book := createTestBook(t, db, "vol-1")

	_, err := repo.Create(&entities.BookTracking{UserID: alice.ID, BookID: book.ID})
	require.NoError(t, err)

	aliceList, err := repo.ListByUser(alice.ID)
	require.NoError(t, err)
	require.Len(t, aliceList, 1)
	assert.Equal(t, book.ID, aliceList[0].BookID)
	assert.Equal(t, book.Title, aliceList[0].Book.Title)

	// Alice's tracking is invisible to Bob
	bobList, err := repo.ListByUser(bob.ID)
	require.NoError(t, err)
	assert.Empty(t, bobList)
}

func TestRepository_Update(t *testing.T) {
	t.Run("owner can update status, rating and progress", func(t *testing.T) {
		db, repo, cleanup := setupTestDB(t)
		defer cleanup()

		user := createTestUser(t, db, "alice")
		book := createTestBook(t, db, "vol-1")
		created, err := repo.Create(&entities.BookTracking{UserID: user.ID, BookID: book.ID})
		require.NoError(t, err)

		updated, err := repo.Update(user.ID, created.ID, map[string]any{
			"status":   entities.TrackingStatusCompleted,
			"rating":   5,
			"progress": 100,
		})
		require.NoError(t, err)
		assert.Equal(t, entities.TrackingStatusCompleted, updated.Status)
		require.NotNil(t, updated.Rating)
		assert.Equal(t, 5, *updated.Rating)
		assert.Equal(t, 100, updated.Progress)
	})

	t.Run("non-owner gets ErrNotOwner", func(t *testing.T) {
		db, repo, cleanup := setupTestDB(t)
		defer cleanup()

		alice := createTestUser(t, db, "alice")
		bob := createTestUser(t, db, "bob")
		book := createTestBook(t, db, "vol-1")
		created, err := repo.Create(&entities.BookTracking{UserID: alice.ID, BookID: book.ID})
		require.NoError(t, err)

		_, err = repo.Update(bob.ID, created.ID, map[string]any{"progress": 50})
		assert.ErrorIs(t, err, ErrNotOwner)
	})

	t.Run("missing record gets ErrNotFound", func(t *testing.T) {
		db, repo, cleanup := setupTestDB(t)
		defer cleanup()

		user := createTestUser(t, db, "alice")
		_, err := repo.Update(user.ID, 9999, map[string]any{"progress": 50})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestRepository_Delete(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	book := createTestBook(t, db, "vol-1")
	created, err := repo.Create(&entities.BookTracking{UserID: alice.ID, BookID: book.ID})
	require.NoError(t, err)

	assert.ErrorIs(t, repo.Delete(bob.ID, created.ID), ErrNotOwner)
	require.NoError(t, repo.Delete(alice.ID, created.ID))
	assert.ErrorIs(t, repo.Delete(alice.ID, created.ID), ErrNotFound)
}
