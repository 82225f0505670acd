package fakeapi

import "errors"

var (
	ErrEmailTaken    = errors.New("fakeapi: email already registered")
	ErrMissingFields = errors.New("fakeapi: missing required fields")
)
