package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/auth"
	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/database/comments"
	"github.com/mrlokans/bookshelf/internal/database/tracking"
	"github.com/mrlokans/bookshelf/internal/entities"
)

// setupTestServer builds a full router over a throwaway database, with token
// auth enabled the same way the entrypoint wires it.
func setupTestServer(t *testing.T) (*database.Database, *gin.Engine, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_http_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	authService := auth.NewService(db.DB, config.Auth{BcryptCost: 4})
	router := NewRouter(RouterConfig{
		Database:       db,
		BooksStore:     books.NewRepository(db.DB),
		TrackingStore:  tracking.NewRepository(db.DB),
		CommentsStore:  comments.NewRepository(db.DB),
		AuthService:    authService,
		AuthMiddleware: auth.NewMiddleware(authService),
		Version:        "test",
	})

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return db, router, cleanup
}

// createTestUser registers a user and returns it with a valid API token.
func createTestUser(t *testing.T, db *database.Database, username string) (*entities.User, string) {
	t.Helper()
	service := auth.NewService(db.DB, config.Auth{BcryptCost: 4})
	user, err := service.CreateUser(username, username+"@example.com", "correct-horse")
	require.NoError(t, err)
	token, err := service.GenerateToken(user.ID)
	require.NoError(t, err)
	return user, token
}

func createTestBook(t *testing.T, db *database.Database, googleBooksID string) *entities.Book {
	t.Helper()
	book := &entities.Book{
		Title:         "Test Book " + googleBooksID,
		Author:        "Test Author",
		Description:   "A test book.",
		PublishedDate: "2020-01-01",
		GoogleBooksID: googleBooksID,
	}
	require.NoError(t, db.DB.Create(book).Error)
	return book
}

// doRequest performs a request against the router, attaching the Bearer
// token when one is given.
func doRequest(t *testing.T, router *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
