package comments

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
	dbPath := "./test_comments_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"

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

func createTestBook(t *testing.T, db *gorm.DB) *entities.Book {
	t.Helper()
	book := &entities.Book{
		Title:         "Test Book",
		Author:        "Test Author",
		Description:   "A test book.",
		PublishedDate: "2020-01-01",
		GoogleBooksID: "vol-1",
	}
	require.NoError(t, db.Create(book).Error)
	return book
}

func TestRepository_Create(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	user := createTestUser(t, db, "alice")
	book := createTestBook(t, db)

	created, err := repo.Create(&entities.BookComment{
		UserID:  user.ID,
		BookID:  book.ID,
		Comment: "loved the ending",
	})
	require.NoError(t, err)
	assert.Equal(t, "loved the ending", created.Comment)
	assert.False(t, created.CreatedAt.IsZero())

	// No uniqueness rule: a second comment on the same book is fine
	_, err = repo.Create(&entities.BookComment{
		UserID:  user.ID,
		BookID:  book.ID,
		Comment: "rereading it now",
	})
	require.NoError(t, err)

	list, err := repo.ListByUser(user.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestRepository_ListByUser(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	book := createTestBook(t, db)

	_, err := repo.Create(&entities.BookComment{UserID: alice.ID, BookID: book.ID, Comment: "mine"})
	require.NoError(t, err)

	bobList, err := repo.ListByUser(bob.ID)
	require.NoError(t, err)
	assert.Empty(t, bobList)
}

func TestRepository_Update(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	book := createTestBook(t, db)

	created, err := repo.Create(&entities.BookComment{UserID: alice.ID, BookID: book.ID, Comment: "first draft"})
	require.NoError(t, err)

	updated, err := repo.Update(alice.ID, created.ID, "second draft")
	require.NoError(t, err)
	assert.Equal(t, "second draft", updated.Comment)

	_, err = repo.Update(bob.ID, created.ID, "vandalism")
	assert.ErrorIs(t, err, ErrNotOwner)

	_, err = repo.Update(alice.ID, 9999, "nothing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_Delete(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	book := createTestBook(t, db)

	created, err := repo.Create(&entities.BookComment{UserID: alice.ID, BookID: book.ID, Comment: "temp"})
	require.NoError(t, err)

	assert.ErrorIs(t, repo.Delete(bob.ID, created.ID), ErrNotOwner)
	require.NoError(t, repo.Delete(alice.ID, created.ID))
	assert.ErrorIs(t, repo.Delete(alice.ID, created.ID), ErrNotFound)
}
