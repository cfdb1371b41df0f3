package app

import (
	"strings"
	"unicode/utf8"

	"authgate/internal/auth/domain/entities"
)

// NormalizeEmail обрезает пробелы и приводит email к нижнему регистру.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// LoginIdentifier выбирает идентификатор входа: username, если поле не пустое, иначе email.
// Пробелы обрезаются после выбора, поэтому username из одних пробелов дает пустой идентификатор.
func LoginIdentifier(username, email string) string {
	if username != "" {
		return strings.TrimSpace(username)
	}
	return strings.TrimSpace(email)
}

// ValidateRegistration проверяет уже нормализованные данные. Первая неудачная проверка побеждает.
func ValidateRegistration(username, email, password string) error {
	switch {
	case username == "":
		return entities.ErrUsernameRequired
	case utf8.RuneCountInString(username) < entities.MinUsernameLength:
		return entities.ErrUsernameTooShort
	case email == "" || !strings.Contains(email, "@"):
		return entities.ErrInvalidEmail
	case password == "":
		return entities.ErrPasswordRequired
	case utf8.RuneCountInString(password) < entities.MinPasswordLength:
		return entities.ErrPasswordTooShort
	}
	return nil
}

// ValidateLogin проверяет наличие идентификатора и пароля.
func ValidateLogin(identifier, password string) error {
	if identifier == "" {
		return entities.ErrIdentifierRequired
	}
	if password == "" {
		return entities.ErrPasswordRequired
	}
	return nil
}
