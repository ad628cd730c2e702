package entity

import (
	"time"
)

// User is the account aggregate. Salt and PasswordHash are hex strings
// produced by helpers.HashPassword and are always replaced together.
type User struct {
	ID           int64
	Username     string
	Salt         string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
