package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/metadata"
)

// ImportBookCommand fetches a volume from Google Books and adds it to the
// catalog through the same dedup rule as the API.
type ImportBookCommand struct {
	VolumeID     string
	DatabasePath string
}

// NewImportBookCommand creates a new ImportBookCommand
func NewImportBookCommand() *ImportBookCommand {
	return &ImportBookCommand{}
}

// ParseFlags parses command line flags
func (cmd *ImportBookCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("import-book", flag.ExitOnError)

	fs.StringVar(&cmd.VolumeID, "id", "", "Google Books volume ID (required)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s import-book [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Fetch a volume from Google Books and add it to the catalog.\n")
		fmt.Fprintf(os.Stderr, "If a book with the same volume ID already exists, nothing is created.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s import-book -id zyTCAlFPjgYC\n", os.Args[0])
	}

	return fs.Parse(args)
}

// Run executes the command
func (cmd *ImportBookCommand) Run() error {
	if cmd.VolumeID == "" {
		return fmt.Errorf("volume ID is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client := metadata.NewGoogleBooksClient()
	meta, err := client.GetVolume(ctx, cmd.VolumeID)
	if err != nil {
		return fmt.Errorf("fetch volume: %w", err)
	}

	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	repo := books.NewRepository(db.DB)
	book, created, err := repo.GetOrCreate(&entities.Book{
		Title:         meta.Title,
		Author:        meta.Author,
		Description:   meta.Description,
		CoverImageURL: meta.CoverImageURL,
		PublishedDate: meta.PublishedDate,
		GoogleBooksID: meta.GoogleBooksID,
	})
	if err != nil {
		return fmt.Errorf("store book: %w", err)
	}

	if created {
		fmt.Printf("Imported %q by %s (id=%d)\n", book.Title, book.Author, book.ID)
	} else {
		fmt.Printf("Already in catalog: %q (id=%d)\n", book.Title, book.ID)
	}
	return nil
}
