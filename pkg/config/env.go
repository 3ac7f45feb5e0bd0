package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"
	EnvBaseURL  = "BASE_URL"

	EnvAuthBaseURL = "AUTH_BASE_URL"
	EnvAuthAPIKey  = "AUTH_API_KEY"

	EnvStripeSecretKey = "STRIPE_SECRET_KEY"
	EnvCheckoutCurrency = "CHECKOUT_CURRENCY"

	EnvStorageBucket = "STORAGE_BUCKET"

	EnvMailerSendAPIKey = "MAILERSEND_API_KEY"
	EnvMailFromEmail    = "MAIL_FROM_EMAIL"
	EnvMailFromName     = "MAIL_FROM_NAME"

	EnvKafkaBrokers      = "KAFKA_BROKERS"
	EnvKafkaBookingTopic = "KAFKA_BOOKING_TOPIC"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"
	EnvSlotHoldTTL    = "SLOT_HOLD_TTL"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"
)
