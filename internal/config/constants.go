package config

const (
	// DefaultDatabasePath is the default path for the application database
	DefaultDatabasePath = "./bookfinder.db"

	// DefaultGoogleBooksURL is the Google Books API base URL
	DefaultGoogleBooksURL = "https://www.googleapis.com/books/v1"
)
