package config

type (
	DriverConfig struct {
		MongoDB    MongoDB
		PostgresDB PostgresDB
		Redis      Redis
		Logger     Logger
		RabbitMQ   RabbitMQ
		Minio      Minio
		Supertoken Supertoken
	}
	MongoDB struct {
		Port     string
		Host     string
		DbName   string
		Username string
		Password string
	}
	PostgresDB struct {
		Port     string
		Host     string
		DBName   string
		Username string
		Password string
		SSLMode  string
	}
	Redis struct {
		Host     string
		Port     string
		Password string
		DB       int
	}
	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}
	RabbitMQ struct {
		Port     string
		Host     string
		Username string
		Password string
	}
	Minio struct {
		Port     string
		Host     string
		Username string
		Password string
		UseSSL   bool
	}
	Supertoken struct {
		ConnectionURI   string
		APIKey          string
		AppName         string
		ApiDomain       string
		WebsiteDomain   string
		ApiBasePath     string
		WebsiteBasePath string
	}
)

type (
	InternalConfig struct {
		App        App
		Auth       AppAuth
		JWT        AppJWT
		Supertoken AppSupertoken
		Booking    AppBooking
		Minio      AppMinio
		RabbitMQ   AppRabbitMQ
	}

	App struct {
		Env                            string
		Port                           string
		Version                        string
		Timezone                       string
		EndpointPrefix                 string
		AllowedOrigins                 []string
		MaxRequests                    int
		ShutdownTimeoutInSeconds       int
		RequestTimeoutInSeconds        int
		LoginSessionExpiredTimeInHours int
		LoginMaxAttemptsPerMinute      int
		LoginBlockTimeInMinutes        int

		// LiveStatusCronSpec is the robfig/cron schedule of the occupancy worker.
		LiveStatusCronSpec string
	}

	AppAuth struct {
		// Provider selects who checks credentials and issues tokens: local or supertokens.
		Provider string
	}

	AppJWT struct {
		Secret        string
		ExpTimeInHour int
	}

	AppSupertoken struct {
		TenantID string
	}

	AppBooking struct {
		// StoreDriver selects the booking repository: mongo, postgres or memory.
		StoreDriver             string
		DateLockTimeInSeconds   int
		SnapshotReloadInSeconds int
	}

	AppMinio struct {
		BucketName                               string
		ScheduleExportPreSignedUrlExpiryInMinute int
	}

	AppRabbitMQ struct {
		EventsExchange string
	}
)
