package redis

import "errors"

var (
	ErrNotConfigured = errors.New("redis: connection url is not set")
	ErrInvalidURL    = errors.New("redis: invalid connection url")
	ErrNotReady      = errors.New("redis: server not ready")
	ErrPingFailed    = errors.New("redis: ping failed")
)
