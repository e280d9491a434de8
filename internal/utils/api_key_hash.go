package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// HashAPIKey returns the hex HMAC-SHA256 of a raw API key under secret.
// The hash is deterministic so it can be used as a lookup key.
func HashAPIKey(secret, rawKey string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(rawKey))
	return hex.EncodeToString(mac.Sum(nil))
}

// CompareAPIKeyHash compares a raw API key with its stored hash in constant time.
func CompareAPIKeyHash(secret, rawKey, storedHash string) bool {
	return hmac.Equal([]byte(HashAPIKey(secret, rawKey)), []byte(storedHash))
}
