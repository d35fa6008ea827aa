package services

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrUnknownIssue       = errors.New("unknown issue")
	ErrUnknownModule      = errors.New("unknown therapy module")
	ErrNoActiveAssessment = errors.New("no active assessment")
	ErrNoPendingPlan      = errors.New("no generated plan awaiting acceptance")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrEmailTaken         = errors.New("user with this email already exists")
)
