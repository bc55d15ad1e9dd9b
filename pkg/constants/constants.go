// Package constants defines system-wide constants for the ECN services.
// This package provides type-safe constant definitions used across all modules.
package constants

import "time"

// ================================================================================
// Service Names
// ================================================================================

const (
	// ServiceNameRecords is the name of the earthquake/tsunami record service
	ServiceNameRecords = "ecn-svc"

	// ServiceNamePrediction is the name of the tsunami potential prediction service
	ServiceNamePrediction = "tsunami-potential-svc"
)

// ================================================================================
// Resource Names
// ================================================================================

const (
	// ResourceEarthquakes is the embedded key for earthquake collections
	ResourceEarthquakes = "earthquakes"

	// ResourceTsunamiEvents is the embedded key for tsunami event collections
	ResourceTsunamiEvents = "tsunamiEvents"
)

// ================================================================================
// Record Limits & Formats
// ================================================================================

const (
	// TsunamiEventListLimit caps the number of tsunami events returned by the list endpoint
	TsunamiEventListLimit = 100

	// TimestampLayout renders timestamps as YYYY-MM-DDTHH:MM:SSZ in UTC
	TimestampLayout = "2006-01-02T15:04:05Z"
)

// ================================================================================
// Store & Cache Drivers
// ================================================================================

// StoreDriver selects the record store backend
type StoreDriver string

const (
	// StoreDriverMongoDB reads records from MongoDB collections
	StoreDriverMongoDB StoreDriver = "mongodb"

	// StoreDriverPostgres reads records from PostgreSQL tables
	StoreDriverPostgres StoreDriver = "postgres"

	// StoreDriverSQLite reads records from an embedded SQLite database
	StoreDriverSQLite StoreDriver = "sqlite"
)

// CacheDriver selects the read-through cache backend
type CacheDriver string

const (
	// CacheDriverNone disables record caching
	CacheDriverNone CacheDriver = "none"

	// CacheDriverMemory keeps cached records in process memory
	CacheDriverMemory CacheDriver = "memory"

	// CacheDriverRedis keeps cached records in Redis
	CacheDriverRedis CacheDriver = "redis"
)

const (
	// DefaultStoreURI is the local MongoDB fallback used when no connection string is configured
	DefaultStoreURI = "mongodb://localhost:27017/ecn"

	// DefaultDatabaseName is the database holding the record collections
	DefaultDatabaseName = "ecn"

	// DefaultCacheTTL is the lifetime of a cached record set
	DefaultCacheTTL = 60 * time.Second

	// DefaultModelPath is the model artifact filename, resolved relative to the working directory
	DefaultModelPath = "models/novianty2018.json"

	// TsunamiDecisionThreshold splits raw affinity scores into a yes/no decision
	TsunamiDecisionThreshold = 0.5
)

// ================================================================================
// HTTP Headers
// ================================================================================

const (
	// HeaderRequestID carries the request correlation id
	HeaderRequestID = "X-Request-ID"
)

// ================================================================================
// Context Keys
// ================================================================================

// ContextKey represents keys used in context.Context
type ContextKey string

const (
	// ContextKeyRequestID is the key for request ID in context
	ContextKeyRequestID ContextKey = "request_id"

	// ContextKeyLogger is the key for a request-scoped logger in context
	ContextKeyLogger ContextKey = "logger"
)
