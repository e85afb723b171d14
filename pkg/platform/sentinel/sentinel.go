package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and token codecs return
// these (optionally wrapped) so services can translate them into domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: entity does not exist in store
// - ErrConflict: entity already exists (duplicate email)
// - ErrExpired: token past its embedded expiry, signature still valid
// - ErrInvalid: token signature, structure, or kind is wrong
// - ErrUnavailable: store or directory temporarily unreachable
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrExpired     = errors.New("expired")
	ErrInvalid     = errors.New("invalid")
	ErrUnavailable = errors.New("unavailable")
)
