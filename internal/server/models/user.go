// Package models holds the persistent data types of the server.
package models

import "time"

// User is a stored account record. PasswordHash never crosses the service
// boundary; transports only ever see the remaining fields.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}
