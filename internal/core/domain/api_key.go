package domain

import "time"

// APIKey is a hashed credential that authenticates requests for one business.
type APIKey struct {
	APIKeyID   string     `json:"id"`
	BusinessID string     `json:"business_id"`
	KeyHash    string     `json:"-"` // Never expose the hash in JSON responses
	RevokedAt  *time.Time `json:"revoked_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// IsRevoked reports whether the key can no longer be used.
func (k *APIKey) IsRevoked() bool {
	return k.RevokedAt != nil
}
