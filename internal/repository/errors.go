// Package repository holds the storage errors shared by domain services and
// their persistence implementations. Domain packages declare the repository
// interfaces they consume.
package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)
