package config

import (
	"errors"
	"fmt"
	"roombook-service/internal/pkg/constvars"
	"roombook-service/internal/pkg/utils"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "roombook"),
			Username: utils.GetEnvString("MONGODB_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MONGODB_PASSWORD", "defaultPassword"),
		},
		PostgresDB: PostgresDB{
			Port:     utils.GetEnvString("POSTGRES_PORT", "5432"),
			Host:     utils.GetEnvString("POSTGRES_HOST", "localhost"),
			DBName:   utils.GetEnvString("POSTGRES_DB_NAME", "roombook"),
			Username: utils.GetEnvString("POSTGRES_USERNAME", "postgres"),
			Password: utils.GetEnvString("POSTGRES_PASSWORD", "defaultPassword"),
			SSLMode:  utils.GetEnvString("POSTGRES_SSL_MODE", "disable"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
			DB:       utils.GetEnvInt("REDIS_DB", 0),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
		Minio: Minio{
			Port:     utils.GetEnvString("MINIO_PORT", "9000"),
			Host:     utils.GetEnvString("MINIO_HOST", "localhost"),
			Username: utils.GetEnvString("MINIO_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MINIO_PASSWORD", "defaultPassword"),
			UseSSL:   utils.GetEnvBool("MINIO_USE_SSL", false),
		},
		Supertoken: Supertoken{
			ConnectionURI:   utils.GetEnvString("SUPERTOKEN_CONNECTION_URI", "http://localhost:3567"),
			APIKey:          utils.GetEnvString("SUPERTOKEN_API_KEY", ""),
			AppName:         utils.GetEnvString("SUPERTOKEN_APP_NAME", "roombook"),
			ApiDomain:       utils.GetEnvString("SUPERTOKEN_API_DOMAIN", "http://localhost:8080"),
			WebsiteDomain:   utils.GetEnvString("SUPERTOKEN_WEBSITE_DOMAIN", "http://localhost:3000"),
			ApiBasePath:     utils.GetEnvString("SUPERTOKEN_API_BASE_PATH", "/auth"),
			WebsiteBasePath: utils.GetEnvString("SUPERTOKEN_WEBSITE_BASE_PATH", "/auth"),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                            utils.GetEnvString("APP_ENV", "development"),
			Port:                           utils.GetEnvString("APP_PORT", ":8080"),
			Version:                        utils.GetEnvString("APP_VERSION", "v1"),
			Timezone:                       utils.GetEnvString("APP_TIMEZONE", "Asia/Jakarta"),
			EndpointPrefix:                 utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			AllowedOrigins:                 utils.GetEnvStringSlice("APP_ALLOWED_ORIGINS", []string{"*"}),
			MaxRequests:                    utils.GetEnvInt("APP_MAX_REQUEST", 10),
			ShutdownTimeoutInSeconds:       utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT_IN_SECONDS", 10),
			RequestTimeoutInSeconds:        utils.GetEnvInt("APP_REQUEST_TIMEOUT_IN_SECONDS", 10),
			LoginSessionExpiredTimeInHours: utils.GetEnvInt("APP_LOGIN_SESSION_EXPIRED_TIME_IN_HOURS", 24),
			LoginMaxAttemptsPerMinute:      utils.GetEnvInt("APP_LOGIN_MAX_ATTEMPTS_PER_MINUTE", 5),
			LoginBlockTimeInMinutes:        utils.GetEnvInt("APP_LOGIN_BLOCK_TIME_IN_MINUTES", 5),
			LiveStatusCronSpec:             utils.GetEnvString("APP_LIVE_STATUS_CRON_SPEC", "@every 1m"),
		},
		Auth: AppAuth{
			Provider: utils.GetEnvString("AUTH_PROVIDER", constvars.AuthProviderLocal),
		},
		JWT: AppJWT{
			Secret:        utils.GetEnvString("JWT_SECRET", "anyjwt"),
			ExpTimeInHour: utils.GetEnvInt("JWT_EXP_TIME_IN_HOUR", 24),
		},
		Supertoken: AppSupertoken{
			TenantID: utils.GetEnvString("SUPERTOKEN_TENANT_ID", "public"),
		},
		Booking: AppBooking{
			StoreDriver:             utils.GetEnvString("BOOKING_STORE_DRIVER", constvars.BookingStoreDriverMongo),
			DateLockTimeInSeconds:   utils.GetEnvInt("BOOKING_DATE_LOCK_TIME_IN_SECONDS", 10),
			SnapshotReloadInSeconds: utils.GetEnvInt("BOOKING_SNAPSHOT_RELOAD_IN_SECONDS", 5),
		},
		Minio: AppMinio{
			BucketName:                               utils.GetEnvString("APP_MINIO_BUCKET_NAME", "roombook"),
			ScheduleExportPreSignedUrlExpiryInMinute: utils.GetEnvInt("APP_MINIO_SCHEDULE_EXPORT_URL_EXPIRY_IN_MINUTE", 60),
		},
		RabbitMQ: AppRabbitMQ{
			EventsExchange: utils.GetEnvString("APP_RABBITMQ_EVENTS_EXCHANGE", "roombook.events"),
		},
	}
}

// Validate reports the first setting the service cannot start with.
func (c *InternalConfig) Validate() error {
	switch c.Booking.StoreDriver {
	case constvars.BookingStoreDriverMongo, constvars.BookingStoreDriverPostgres, constvars.BookingStoreDriverMemory:
	default:
		return fmt.Errorf("BOOKING_STORE_DRIVER must be one of %q, %q or %q, got %q",
			constvars.BookingStoreDriverMongo,
			constvars.BookingStoreDriverPostgres,
			constvars.BookingStoreDriverMemory,
			c.Booking.StoreDriver,
		)
	}

	switch c.Auth.Provider {
	case constvars.AuthProviderLocal, constvars.AuthProviderSupertokens:
	default:
		return fmt.Errorf("AUTH_PROVIDER must be %q or %q, got %q",
			constvars.AuthProviderLocal,
			constvars.AuthProviderSupertokens,
			c.Auth.Provider,
		)
	}

	if _, err := cron.ParseStandard(c.App.LiveStatusCronSpec); err != nil {
		return fmt.Errorf("APP_LIVE_STATUS_CRON_SPEC is invalid: %w", err)
	}

	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.App.Env == "production" && c.JWT.Secret == "anyjwt" {
		return errors.New("JWT_SECRET must be changed in production")
	}

	if c.App.LoginSessionExpiredTimeInHours <= 0 {
		return errors.New("APP_LOGIN_SESSION_EXPIRED_TIME_IN_HOURS must be positive")
	}
	return nil
}
