package adapter

import "errors"

var (
	ErrUnauthorized = errors.New("client unauthorized")
	ErrNotFound     = errors.New("note not found on server")
	ErrBadRequest   = errors.New("request rejected by server")
	ErrUnavailable  = errors.New("server unavailable")
)
