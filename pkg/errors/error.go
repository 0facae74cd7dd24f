package errors

// ErrorCode represents a specific error code in the system.
type ErrorCode string

const (
	// GeneralInternalServerError represents a generic internal error.
	GeneralInternalServerError ErrorCode = "general_internal_server_error"
	// GeneralBadRequestError represents a generic bad request error.
	GeneralBadRequestError ErrorCode = "general_bad_request_error"
	// GeneralNotFoundError represents a generic not found error.
	GeneralNotFoundError ErrorCode = "general_not_found_error"

	// InvalidPrice represents a non-positive or missing price on an order type that requires one.
	InvalidPrice ErrorCode = "invalid_price"
	// InvalidQuantity represents a non-positive quantity, or a quantity below the configured minimum order size.
	InvalidQuantity ErrorCode = "invalid_quantity"
	// PriceNotAlignedToTickSize represents a price that is not a multiple of the configured tick size.
	PriceNotAlignedToTickSize ErrorCode = "price_not_aligned_to_tick_size"
	// WouldCross represents a post-only order that would immediately match.
	WouldCross ErrorCode = "would_cross"
	// OrderNotFound represents a cancel or modify referencing an unknown order id.
	OrderNotFound ErrorCode = "order_not_found"
	// OrderNotCancellable represents a cancel on an order already in a terminal state.
	OrderNotCancellable ErrorCode = "order_not_cancellable"
	// OrderNotModifiable represents a modify on an order already in a terminal state.
	OrderNotModifiable ErrorCode = "order_not_modifiable"
	// FillOrKillUnsatisfiable represents a fill-or-kill order that cannot fully fill against current liquidity.
	FillOrKillUnsatisfiable ErrorCode = "fill_or_kill_unsatisfiable"

	// ConfigError represents an invalid or missing configuration value.
	ConfigError ErrorCode = "config_error"
	// RedisConfigError represents an error when the Redis configuration is invalid or nil.
	RedisConfigError ErrorCode = "redis_config_error"
	// RedisConnectionError represents an error when connecting to Redis.
	RedisConnectionError ErrorCode = "redis_connection_error"
	// RedisDisconnectionError represents an error when disconnecting from Redis.
	RedisDisconnectionError ErrorCode = "redis_disconnection_error"
	// RedisPingError represents an error when pinging Redis.
	RedisPingError ErrorCode = "redis_pinging_error"
	// RedisGetError represents an error when getting a value from Redis.
	RedisGetError ErrorCode = "redis_get_error"
	// RedisSetError represents an error when setting a value in Redis.
	RedisSetError ErrorCode = "redis_set_error"

	// SnapshotMarshalError represents an error serializing a book snapshot.
	SnapshotMarshalError ErrorCode = "snapshot_marshal_error"
	// SnapshotStoreError represents an error persisting a book snapshot.
	SnapshotStoreError ErrorCode = "snapshot_store_error"
	// SnapshotLoadError represents an error loading a book snapshot.
	SnapshotLoadError ErrorCode = "snapshot_load_error"
	// KafkaPublishError represents an error publishing an event to Kafka.
	KafkaPublishError ErrorCode = "kafka_publish_error"
	// KafkaReadError represents an error reading a command from Kafka.
	KafkaReadError ErrorCode = "kafka_read_error"
)

// EngineError is an `error` carrying an ErrorCode so callers can branch on
// the kind of rejection rather than on message text. Every engine rejection
// is an EngineError; none of them are fatal to the engine itself.
type EngineError struct {
	Code    ErrorCode
	Message string
}

// New creates an EngineError with the given code and message.
func New(code ErrorCode, message string) *EngineError {
	return &EngineError{
		Code:    code,
		Message: message,
	}
}

func (e *EngineError) Error() string {
	return e.Message
}

// Is reports whether target is an EngineError with the same code, so that
// sentinel errors created with New keep working with errors.Is after wrapping.
func (e *EngineError) Is(target error) bool {
	t, ok := target.(*EngineError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// CodeOf extracts the ErrorCode from err, unwrapping as needed. It returns
// GeneralInternalServerError when err carries no code.
func CodeOf(err error) ErrorCode {
	for err != nil {
		if coded, ok := err.(*EngineError); ok {
			return coded.Code
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = unwrapper.Unwrap()
	}
	return GeneralInternalServerError
}
