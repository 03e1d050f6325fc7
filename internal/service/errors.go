package service

import "errors"

var (
	ErrValidation          = errors.New("validation")            // 400
	ErrNotFound            = errors.New("not found")             // 404
	ErrPermissionDenied    = errors.New("permission denied")     // 403
	ErrConflict            = errors.New("conflict")              // 409
	ErrInvalidTransition   = errors.New("invalid transition")    // 400
	ErrInvalidPaymentState = errors.New("invalid payment state") // 400
)
