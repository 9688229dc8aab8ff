package config

// Default paths and lending policy
const (
	// DefaultDatabasePath is the default path for the library database
	DefaultDatabasePath = "./library.db"

	// DefaultLoanPeriodDays is how long a reader may keep a borrowed book
	DefaultLoanPeriodDays = 14
)
