// Package keystore persists the operator's ParkHub API key. The credential
// itself is opaque: the store only answers get/set/remove/validate.
package keystore

import (
	"context"
	"errors"
	"strings"
)

// ErrNotFound signals that no API key has been stored.
var ErrNotFound = errors.New("api key not found")

// minKeyLength is the shortest key the upstream API issues.
const minKeyLength = 16

// Store is a key-value credential store for a single API key.
type Store interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, apiKey string) error
	Remove(ctx context.Context) error
	// Validate reports whether a well-formed key is currently stored.
	Validate(ctx context.Context) (bool, error)
}

// WellFormed reports whether apiKey looks like a usable credential. It does
// not verify the key against the upstream API.
func WellFormed(apiKey string) bool {
	if len(apiKey) < minKeyLength {
		return false
	}
	return !strings.ContainsAny(apiKey, " \t\r\n")
}
