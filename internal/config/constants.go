package config

const (
	// DefaultDatabasePath is the default path for the application database
	DefaultDatabasePath = "./bookshelf.db"

	// DefaultBcryptCost is the bcrypt work factor for password hashing
	DefaultBcryptCost = 12
)
