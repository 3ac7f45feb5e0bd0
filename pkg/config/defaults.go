package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "slotbook"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort    = "8080"
	DefaultBaseURL = "http://localhost:8080"

	DefaultLogLevel = "info"

	DefaultCheckoutCurrency = "usd"
	DefaultStorageBucket    = "creative-files"

	DefaultMailFromEmail = "noreply@slotbook.app"
	DefaultMailFromName  = "Slotbook"

	DefaultKafkaBookingTopic = "booking.events"

	DefaultRateLimitRequests = 30
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 8 * 1024 * 1024 // creative uploads ride the intake form
	DefaultSlotHoldTTL    = 30 * time.Minute

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
)
