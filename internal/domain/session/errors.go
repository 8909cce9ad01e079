package session

import "errors"

var (
	// ErrNotAuthenticated indicates no unexpired token is stored.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrInvalidInput indicates missing login credentials.
	ErrInvalidInput = errors.New("invalid login input")
	// ErrEmptyToken indicates the backend accepted a login without issuing a token.
	ErrEmptyToken = errors.New("login response carried no token")
)
