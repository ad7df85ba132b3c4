// Package sentinel holds sentinel errors for infrastructure facts. Stores
// return these (optionally wrapped) so callers can branch on the fact without
// parsing error text.
//
// These represent factual states about resources, not validation failures:
//   - ErrNotFound: entity or key does not exist in the store
//   - ErrExpired: stored value outlived its TTL
//   - ErrUnavailable: backing store temporarily unreachable
//
// For validation errors (bad input, missing fields), use pkg/domain-errors.
package sentinel

import "errors"

var (
	ErrNotFound    = errors.New("not found")
	ErrExpired     = errors.New("expired")
	ErrUnavailable = errors.New("unavailable")
)
