package service

// The error taxonomy mirrors how failures surface to callers: validation,
// authorization and conflict failures are 400-class, missing entities are
// 404-class. Messages are user-facing.

type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationErr(msg string) error { return &ValidationError{Msg: msg} }

type AuthorizationError struct {
	Msg string
}

func (e *AuthorizationError) Error() string { return e.Msg }

func authorizationErr(msg string) error { return &AuthorizationError{Msg: msg} }

type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string { return e.Msg }

func conflictErr(msg string) error { return &ConflictError{Msg: msg} }

type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string { return e.Entity + " not found" }

func notFoundErr(entity string) error { return &NotFoundError{Entity: entity} }
