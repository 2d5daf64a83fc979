package domain

import "errors"

// ErrSettingsNotFound is returned when a store holds no settings for an extension.
var ErrSettingsNotFound = errors.New("settings not found")

// ErrInvalidSettings is returned when a settings blob cannot be decoded.
var ErrInvalidSettings = errors.New("invalid settings")

// ErrUnknownStore is returned when a store kind is not supported.
var ErrUnknownStore = errors.New("unknown settings store")

var (
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
)
