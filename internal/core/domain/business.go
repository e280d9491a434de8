package domain

import "time"

// Business is a tenant. Every account, transaction and webhook endpoint belongs to one.
type Business struct {
	BusinessID string    `json:"id"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
}

// BusinessContext is the authenticated identity attached to every API request.
type BusinessContext struct {
	BusinessID string
	APIKeyID   string
}
