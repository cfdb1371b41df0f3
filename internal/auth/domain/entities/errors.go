package entities

import "errors"

// Категории ошибок домена. HTTP слой выбирает статус по категории.
var (
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
)

// Error - ошибка, сообщение которой можно показать клиенту.
// Unwrap возвращает категорию, поэтому errors.Is(err, ErrConflict) работает через обертки.
type Error struct {
	kind    error
	message string
}

// NewError создает клиентскую ошибку категории kind.
func NewError(kind error, message string) *Error {
	return &Error{kind: kind, message: message}
}

func (e *Error) Error() string { return e.message }

func (e *Error) Unwrap() error { return e.kind }

// Message возвращает текст для ответа клиенту.
func (e *Error) Message() string { return e.message }

// Ошибки валидации входных данных.
var (
	ErrUsernameRequired   = NewError(ErrValidation, "Username is required.")
	ErrUsernameTooShort   = NewError(ErrValidation, "Username must be at least 3 characters.")
	ErrInvalidEmail       = NewError(ErrValidation, "A valid email is required.")
	ErrPasswordRequired   = NewError(ErrValidation, "Password is required.")
	ErrPasswordTooShort   = NewError(ErrValidation, "Password must be at least 8 characters.")
	ErrIdentifierRequired = NewError(ErrValidation, "Username or email is required.")
	ErrEmptyUserID        = NewError(ErrValidation, "User ID is required.")
)

// Нарушения уникальности.
var (
	ErrUsernameTaken = NewError(ErrConflict, "Username already taken.")
	ErrEmailTaken    = NewError(ErrConflict, "Email already registered.")
)

// ErrInvalidCredentials одинакова для неизвестного пользователя и неверного пароля.
var ErrInvalidCredentials = NewError(ErrUnauthorized, "Invalid credentials.")

// ErrUserNotFound возвращается хранилищем, когда пользователь не найден.
var ErrUserNotFound = NewError(ErrNotFound, "User not found.")
