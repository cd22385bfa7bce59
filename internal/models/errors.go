package models

import "errors"

var (
	ErrRequiredField      = errors.New("required field missing")
	ErrIndexOutOfRange    = errors.New("index out of range")
	ErrSubmitInProgress   = errors.New("submission already in progress")
	ErrPostFailed         = errors.New("posting project failed")
	ErrUnknownService     = errors.New("unknown service category")
	ErrAttachmentTooLarge = errors.New("attachment too large")
	ErrSessionNotFound    = errors.New("session not found")
)
