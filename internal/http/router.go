package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/auth"
	"github.com/mrlokans/bookshelf/internal/database"
)

// RouterConfig carries all dependencies for NewRouter.
type RouterConfig struct {
	Database       *database.Database
	BooksStore     BooksStore
	TrackingStore  TrackingStore
	CommentsStore  CommentsStore
	AuthService    *auth.Service
	AuthMiddleware *auth.Middleware
	Version        string
}

// NewRouter creates and configures the HTTP router with all endpoints.
// Everything under /api except the login endpoint requires a valid token.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.String(200, "pong")
	})

	users := NewUsersController(cfg.AuthService)
	router.POST("/api/auth/login", users.Login)

	api := router.Group("/api")
	api.Use(cfg.AuthMiddleware.Handler())

	api.GET("/me", users.Me)

	booksController := NewBooksController(cfg.BooksStore)
	api.GET("/books", booksController.ListBooks)
	api.POST("/books", booksController.CreateBook)
	api.GET("/books/:id", booksController.GetBook)
	api.PUT("/books/:id", booksController.UpdateBook)
	api.PATCH("/books/:id", booksController.UpdateBook)
	api.DELETE("/books/:id", booksController.DeleteBook)

	trackingController := NewTrackingController(cfg.TrackingStore, cfg.BooksStore)
	api.GET("/booktracking", trackingController.ListTracking)
	api.POST("/booktracking", trackingController.CreateTracking)
	api.GET("/booktracking/:id", trackingController.GetTracking)
	api.PUT("/booktracking/:id", trackingController.UpdateTracking)
	api.PATCH("/booktracking/:id", trackingController.UpdateTracking)
	api.DELETE("/booktracking/:id", trackingController.DeleteTracking)

	commentsController := NewCommentsController(cfg.CommentsStore, cfg.BooksStore)
	api.GET("/bookcomments", commentsController.ListComments)
	api.POST("/bookcomments", commentsController.CreateComment)
	api.GET("/bookcomments/:id", commentsController.GetComment)
	api.PUT("/bookcomments/:id", commentsController.UpdateComment)
	api.PATCH("/bookcomments/:id", commentsController.UpdateComment)
	api.DELETE("/bookcomments/:id", commentsController.DeleteComment)

	return router
}
