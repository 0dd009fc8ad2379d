package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/mrlokans/bookshelf/internal/auth"
	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/database"
)

// GenerateTokenCommand issues a fresh API token for an existing user,
// replacing any previous token.
type GenerateTokenCommand struct {
	Username     string
	DatabasePath string
	Revoke       bool
}

// NewGenerateTokenCommand creates a new GenerateTokenCommand
func NewGenerateTokenCommand() *GenerateTokenCommand {
	return &GenerateTokenCommand{}
}

// ParseFlags parses command line flags
func (cmd *GenerateTokenCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("generate-token", flag.ExitOnError)

	fs.StringVar(&cmd.Username, "username", "", "Username to issue the token for (required)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")
	fs.BoolVar(&cmd.Revoke, "revoke", false, "Revoke the user's current token instead of issuing one")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s generate-token [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Issue (or revoke) an API token for a user. The token is printed once\n")
		fmt.Fprintf(os.Stderr, "and only its hash is stored.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

// Run executes the command
func (cmd *GenerateTokenCommand) Run() error {
	if cmd.Username == "" {
		return fmt.Errorf("username is required")
	}

	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	cfg := config.NewConfig()
	service := auth.NewService(db.DB, cfg.Auth)

	user, err := service.GetUserByUsername(cmd.Username)
	if err != nil {
		return fmt.Errorf("look up user: %w", err)
	}

	if cmd.Revoke {
		if err := service.RevokeToken(user.ID); err != nil {
			return fmt.Errorf("revoke token: %w", err)
		}
		fmt.Printf("Revoked token for %s\n", user.Username)
		return nil
	}

	token, err := service.GenerateToken(user.ID)
	if err != nil {
		return fmt.Errorf("generate token: %w", err)
	}

	fmt.Printf("Token for %s (store it now, it will not be shown again):\n%s\n", user.Username, token)
	return nil
}
