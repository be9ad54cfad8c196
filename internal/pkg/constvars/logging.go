package constvars

const (
	LoggingRequestIDKey   = "request_id"
	LoggingDataKey        = "data"
	LoggingSessionDataKey = "session_data"
	LoggingRequestKey     = "request"
	LoggingResponseKey    = "response"

	LoggingMethodKey     = "method"
	LoggingEndpointKey   = "endpoint"
	LoggingRemoteAddrKey = "remote_addr"
	LoggingUserAgentKey  = "user_agent"
	LoggingQueryKey      = "query"
	LoggingStatusCodeKey = "status_code"
	LoggingDurationKey   = "duration"
	LoggingSuccessKey    = "success"

	LoggingRedisKey              = "redis_key"
	LoggingRedisChannelKey       = "redis_channel"
	LoggingLockValueKey          = "lock_value"
	LoggingLockStoredValueKey    = "lock_stored_value"
	LoggingLockExpectedValueKey  = "lock_expected_value"
	LoggingLockExpirationTimeKey = "lock_expiration_time"
	LoggingSupertokensUserIDKey  = "supertokens_user_id"

	LoggingUserIDKey       = "user_id"
	LoggingEmailKey        = "email"
	LoggingSessionIDKey    = "session_id"
	LoggingBookingIDKey    = "booking_id"
	LoggingBookingDateKey  = "booking_date"
	LoggingBookingCountKey = "booking_count"
	LoggingSnapshotLoadKey = "snapshot_load"
	LoggingBookingStartKey = "booking_start"
	LoggingBookingEndKey   = "booking_end"
	LoggingFlowStateKey    = "flow_state"
	LoggingFlowEpochKey    = "flow_epoch"
	LoggingSubscriberCount = "subscriber_count"
	LoggingRoutingKey      = "routing_key"
	LoggingExchangeKey     = "exchange"
	LoggingObjectNameKey   = "object_name"
	LoggingBucketNameKey   = "bucket_name"
	LoggingOccupiedKey     = "occupied"
	LoggingEvaluatedAtKey  = "evaluated_at"
	LoggingStoreDriverKey  = "store_driver"
	LoggingSelectedDateKey = "selected_date"
)
