// Package common defines shared constants and sentinel errors used across
// FocusFlow components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Store-level errors.
	ErrorNotFound = errors.New("not found")

	// Crypto errors. Wrong password and corrupted ciphertext are deliberately
	// indistinguishable.
	ErrDecryptionFailed  = errors.New("decryption failed")
	ErrInvalidBlobFormat = errors.New("invalid encrypted data format")
	ErrCryptoUnsupported = errors.New("crypto primitives unavailable")

	// Serializer errors.
	ErrValidation = errors.New("validation error")

	// Remote-service errors.
	ErrUnauthorized = errors.New("unauthorized")
	ErrTransport    = errors.New("transport error")
	ErrBackup       = errors.New("backup error")
	ErrSyncInFlight = errors.New("sync already in progress")
	ErrOffline      = errors.New("offline")
)
