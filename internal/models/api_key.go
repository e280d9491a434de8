package models

import "time"

// APIKey is the api_keys table row.
type APIKey struct {
	APIKeyID   string     `db:"api_key_id"`
	BusinessID string     `db:"business_id"`
	KeyHash    string     `db:"key_hash"`
	RevokedAt  *time.Time `db:"revoked_at"`
	CreatedAt  time.Time  `db:"created_at"`
}

// Business is the businesses table row.
type Business struct {
	BusinessID string    `db:"business_id"`
	Name       string    `db:"name"`
	CreatedAt  time.Time `db:"created_at"`
}
