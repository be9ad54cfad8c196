package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_SESSION_DATA_KEY         ContextKey = "session_data"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
)

const (
	REQUEST_ID_PREFIX = "RMBK_SVC_"
)

const (
	URLParamBookingID = "bookingID"
	URLQueryDate      = "date"
)

const (
	ResourceAuth     = "auth"
	ResourceBookings = "bookings"
	ResourceSchedule = "schedule"
)

const (
	MongoCollectionBookings = "bookings"
	MongoCollectionUsers    = "users"
	PostgresTableBookings   = "bookings"
)

const (
	BookingStoreDriverMongo    = "mongo"
	BookingStoreDriverPostgres = "postgres"

	// BookingStoreDriverMemory keeps bookings in process memory, for local runs only.
	BookingStoreDriverMemory = "memory"
)

const (
	AuthProviderLocal = "local"

	// AuthProviderSupertokens delegates credentials and tokens to a SuperTokens core.
	AuthProviderSupertokens = "supertokens"
)

const (
	BookingTypeInternal = "internal"
	BookingTypeClient   = "client"
	BookingTypeFocus    = "focus"
	BookingTypeSocial   = "social"
)

const (
	FlowStateIdle       = "idle"
	FlowStateSubmitting = "submitting"
	FlowStateSucceeded  = "succeeded"
	FlowStateFailed     = "failed"
	FlowStateConfirming = "confirming"
	FlowStateDeleting   = "deleting"
)

const (
	BookingSlotMinutes      = 30
	BookingSlotCount        = 19
	BookingFirstSlotMinutes = 9 * 60
)

const (
	DateLayout         = "2006-01-02"
	TimeOfDayLayout    = "15:04"
	ScheduleHeaderFmt  = "Schedule for %s"
	ScheduleDayLayout  = "Jan 2"
	BookedByUnknown    = "Unknown"
	WeekStripToday     = "Today"
	DefaultStartTime   = "10:00"
	DefaultEndTime     = "11:00"
	DefaultBookingType = BookingTypeInternal
)

const (
	RedisKeySessionPrefix       = "session:"
	RedisKeyBookingDateLockFmt  = "roombook:lock:bookings:%s"
	RedisKeyLiveStatus          = "roombook:live_status"
	RedisKeyLiveStatusLeader    = "roombook:live_status:leader"
	RedisChannelBookingsChanged = "roombook:bookings:changed"
)

const (
	EventBookingCreated    = "booking.created"
	EventBookingDeleted    = "booking.deleted"
	EventRoomStatusChanged = "room.status.changed"
)

const (
	MinioScheduleExportPathFmt = "schedules/%s/%s.json"
)

const (
	BookingTypeStyleInternal = "indigo"
	BookingTypeStyleClient   = "emerald"
	BookingTypeStyleFocus    = "amber"
	BookingTypeStyleSocial   = "rose"
)
