package util

import "errors"

var (
	ErrPathNotFound       = errors.New("knowledge path not found")
	ErrEmptyTopic         = errors.New("topic is required")
	ErrUnsupportedFormat  = errors.New("unsupported export format")
	ErrInvalidProtocol    = errors.New("Invalid protocol")
	ErrNoSearchConfigured = errors.New("content search is not configured")
)
