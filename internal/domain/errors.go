package domain

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrLessonLocked    = errors.New("lesson locked")
	ErrHintLocked      = errors.New("hint not yet available")
	ErrSessionNotFound = errors.New("no active lesson session")
	ErrEmptyAnswer     = errors.New("answer must not be empty")
	ErrNotCorrectYet   = errors.New("current exercise not answered correctly")
	ErrAlreadyCorrect  = errors.New("current exercise already answered")
	ErrLessonFinished  = errors.New("lesson already finished")
	ErrInvalidRole     = errors.New("invalid role")
)
