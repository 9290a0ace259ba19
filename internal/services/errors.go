package services

import "errors"

// Kind classe une erreur métier pour que les handlers puissent la traduire
// en code HTTP sans inspecter le message.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindNotFound
	KindForbidden
	KindUnauthorized
)

type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func Validation(msg string) error   { return &AppError{Kind: KindValidation, Message: msg} }
func Conflict(msg string) error     { return &AppError{Kind: KindConflict, Message: msg} }
func NotFound(msg string) error     { return &AppError{Kind: KindNotFound, Message: msg} }
func Forbidden(msg string) error    { return &AppError{Kind: KindForbidden, Message: msg} }
func Unauthorized(msg string) error { return &AppError{Kind: KindUnauthorized, Message: msg} }

func Internal(msg string, err error) error {
	return &AppError{Kind: KindInternal, Message: msg, Err: err}
}

// KindOf renvoie la classe d'une erreur, KindInternal par défaut.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}
