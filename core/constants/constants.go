package constants

import "time"

// Context keys
const (
	ContextTokenData = "token_data"
)

// Request handling
const (
	DefaultRequestTimeout = 10 * time.Second
)

// Database pool defaults
const (
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // in minutes
	DatabaseSSLMode         = "disable"
)

// Pagination
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)
