// Package entities содержит сущности домена аутентификации и его ошибки.
package entities

import "time"

// Ограничения на учетные данные.
const (
	MinUsernameLength = 3
	MinPasswordLength = 8
)

// User - учетная запись. После создания поля не меняются.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile - расширение User один к одному. Пока хранит только биографию.
type Profile struct {
	ID        string
	UserID    string
	Bio       *string
	CreatedAt time.Time
}
