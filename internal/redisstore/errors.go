package redisstore

import "errors"

var (
	ErrRedisConnection = errors.New("redis connection error")
	ErrConflict        = errors.New("concurrent list update, retries exhausted")
)
