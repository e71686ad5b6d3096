package constants

import "time"

// Context keys
const (
	ContextTokenData = "token_data"
)

// Session / auth
const (
	SessionCookieName = "portal_session"
	SessionCookiePath = "/"
	DefaultSessionTTL = 12 * time.Hour
	RedisKeyBlacklist = "session:blacklist:"
)

// Database defaults
const (
	DatabaseSSLMode         = "disable"
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
)

// Timeouts
const (
	DefaultRequestTimeout  = 15 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
)

// Events
const (
	DefaultUpcomingLimit = 5
	MaxUpcomingLimit     = 20
	DefaultReminderLead  = 15 * time.Minute
)

// Pagination
const (
	DefaultPageNumber = 1
	DefaultPageSize   = 20
	MaxPageSize       = 100
)
