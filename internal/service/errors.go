package service

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrClientNotFound = errors.New("client not found")
	ErrInvalidInput   = errors.New("invalid input")
)
