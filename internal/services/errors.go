package services

import "errors"

var (
	ErrForbidden         = errors.New("forbidden")
	ErrConflict          = errors.New("conflict")
	ErrInvalidInput      = errors.New("invalid input")
	ErrProviderNotFound  = errors.New("provider not found")
	ErrNotMessaged       = errors.New("no message exchange with provider")
	ErrUnknownService    = errors.New("unknown service")
	ErrDuplicateOffering = errors.New("duplicate offering")
)
