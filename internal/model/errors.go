package model

import "errors"

// Common errors used across the application
var (
	// Player list errors
	ErrMalformedPlayerList = errors.New("malformed player list")

	// Notification errors
	ErrUnexpectedStatus = errors.New("unexpected response status")
)
