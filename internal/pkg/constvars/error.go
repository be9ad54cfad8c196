package constvars

// Validation messages for users, map it with respective tag field
var CustomValidationErrorMessages = map[string]string{
	"required":      "is required",
	"email":         "must be a valid email",
	"min":           "must be at least %s characters long",
	"max":           "maximum at %s characters long",
	"oneof":         "must be one of [%s]",
	"password":      "must be at least 8 characters long, contain at least one special character, and one uppercase letter",
	"slot_time":     "must be a half-hour slot between 09:00 and 18:00",
	"booking_type":  "must be one of [internal, client, focus, social]",
	"calendar_date": "must be a date in YYYY-MM-DD format",
}

var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"oneof": true,
}

// Error kinds surfaced to clients
const (
	ErrKindValidation = "validation_error"
	ErrKindAuth       = "auth_error"
	ErrKindWrite      = "write_error"
	ErrKindInternal   = "internal_error"
)

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientInvalidEmailOrPassword        = "Invalid email or password"
	ErrClientEmailAlreadyExists            = "email already used"
	ErrClientEndBeforeStart                = "End time must be after start time"
	ErrClientDateInPast                    = "date cannot be in the past"
	ErrClientSlotAlreadyReserved           = "This time slot is already reserved"
	ErrClientFailedToSaveBooking           = "Failed to save booking"
	ErrClientPermissionDenied              = "Permission denied"
	ErrClientOnlyOwnersCanDelete           = "Only owners can delete"
	ErrClientBookingNotFound               = "booking not found"
	ErrClientSubmissionInProgress          = "a booking is already being saved"
	ErrClientNoPendingDeletion             = "no cancellation is waiting for confirmation"
	ErrClientTooManyRequests               = "Too many requests, you are blocked temporarily."
)

// Error messages for developers
const (
	ErrDevInvalidInput               = "invalid input"
	ErrDevValidationFailed           = "validation failed"
	ErrDevCannotParseJSON            = "cannot parse JSON"
	ErrDevCannotMarshalJSON          = "cannot marshal JSON"
	ErrDevURLParamValidationFailed   = "failed to validate url param %s"
	ErrDevServerProcess              = "server failed to process the request"
	ErrDevServerDeadlineExceeded     = "server deadline exceeded"
	ErrDevMissingRequestID           = "request id missing from context"
	ErrDevMissingSessionData         = "session data missing from context"
	ErrDevFailedToHashPassword       = "failed to hash password"
	ErrDevInvalidCredentials         = "invalid credentials"
	ErrDevEmailAlreadyExists         = "email already exists"
	ErrDevAuthTokenMissing           = "auth token missing"
	ErrDevAuthTokenInvalidOrExpired  = "auth token invalid or expired"
	ErrDevAuthGenerateToken          = "failed to generate auth token"
	ErrDevSessionNotFound            = "session not found or expired"
	ErrDevSupertokensRequest         = "supertokens core request failed"
	ErrDevInvalidInterval            = "end time is not after start time"
	ErrDevBookingDateInPast          = "booking date is before today"
	ErrDevBookingConflict            = "booking overlaps an existing booking on the same date"
	ErrDevBookingNotOwned            = "acting user is not the booking creator"
	ErrDevBookingNotFound            = "booking not found in snapshot"
	ErrDevBookingStoreWrite          = "booking store rejected the write"
	ErrDevBookingLockNotAcquired     = "booking date lock held by another request"
	ErrDevSubmissionInProgress       = "submission flow is not idle"
	ErrDevDeletionNotPending         = "deletion flow is not confirming this booking"
	ErrDevDBFailedToFindDocument     = "failed to find document"
	ErrDevDBFailedToInsertDocument   = "failed to insert document"
	ErrDevDBFailedToDeleteDocument   = "failed to delete document"
	ErrDevDBFailedToIterateDocuments = "failed to iterate documents"
	ErrDevDBStringNotObjectID        = "string is not a valid object id"
	ErrDevDBFailedToFindData         = "failed to find data"
	ErrDevDBFailedToInsertData       = "failed to insert data"
	ErrDevDBFailedToDeleteData       = "failed to delete data"
	ErrDevRedisGetNoData             = "redis has no data for key %s"
	ErrDevRedisGetData               = "failed to get data from redis"
	ErrDevRedisSetData               = "failed to set data to redis"
	ErrDevRedisDeleteData            = "failed to delete data from redis"
	ErrDevRedisPublish               = "failed to publish to redis channel %s"
	ErrDevRedisSubscribe             = "failed to subscribe to redis channel %s"
	ErrDevRedisUnlock                = "failed to unlock redis lock"
	ErrDevRabbitMQPublishMessage     = "failed to publish message to exchange %s"
	ErrDevMinioFailedToCreateObject  = "failed to create object in bucket %s"
	ErrDevMinioFailedToPresignObject = "failed to presign object in bucket %s"
)
