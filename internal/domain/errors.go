package domain

import "errors"

// Domain errors.
var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrEmptyTitle       = errors.New("title cannot be empty")
	ErrNotInitialized   = errors.New("secbot not initialized (run 'secbot init' first)")
	ErrConfigExists     = errors.New("config file already exists")
	ErrUnknownStore     = errors.New("unknown task store")
	ErrInvalidCatalog   = errors.New("invalid reply catalog")
	ErrDuplicateTrigger = errors.New("duplicate trigger")
	ErrEmptyQuestionSet = errors.New("question bank is empty")
	ErrNoActiveQuiz     = errors.New("no active quiz")
	ErrSessionNotFound  = errors.New("session not found")
	ErrNoLogFile        = errors.New("no log file")
)
