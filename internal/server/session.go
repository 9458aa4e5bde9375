package server

import "github.com/google/uuid"

// GeneratePlayerID creates a unique player ID.
func GeneratePlayerID() string {
	return uuid.NewString()
}
