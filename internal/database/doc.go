// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, migrations, error classification
//	├── books/           # Shared book catalog with dedup-on-create
//	├── tracking/        # Per-user reading status, rating and progress
//	└── comments/        # Per-user book comments
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	// Initialize database connection
//	db, err := database.NewDatabase("./app.db")
//
//	// Create domain-specific repositories
//	booksRepo := books.NewRepository(db.DB)
//	trackingRepo := tracking.NewRepository(db.DB)
//
//	// Use repositories
//	book, err := booksRepo.GetByID(123)
//	list, err := trackingRepo.ListByUser(userID)
//
// # Interface Implementations
//
// The HTTP layer consumes the repositories through narrow interfaces:
//
//   - books.Repository: implements http.BooksStore
//   - tracking.Repository: implements http.TrackingStore
//   - comments.Repository: implements http.CommentsStore
//
// Ownership rules live in the repositories: tracking and comments scope
// reads to the owning user and reject mutations from anyone else, while the
// book catalog is shared across all users.
package database
