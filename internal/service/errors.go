package service

import "errors"

var (
	ErrNotFound     = errors.New("content not found")
	ErrInvalidMode  = errors.New("mode must be suggest or full")
	ErrInvalidType  = errors.New("type must be saint, apparition or all")
	ErrQueryTooLong = errors.New("query is too long")
)
