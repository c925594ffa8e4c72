package model

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for domain operations
var (
	ErrCacheMiss = goerr.New("cache key not found")
)

// Error tags
var (
	ErrTagInvalidTimestamp = goerr.NewTag("invalid_timestamp")
)
