// Package dto содержит тела HTTP запросов и ответов сервиса аутентификации.
package dto

import (
	"time"

	"authgate/internal/auth/domain/entities"
)

// Credentials - поля тела signup/login. Отсутствующие и нестроковые значения считаются пустыми.
type Credentials struct {
	Username string
	Email    string
	Password string
}

// CredentialsFromMap извлекает строковые поля из произвольного JSON объекта.
func CredentialsFromMap(body map[string]any) Credentials {
	return Credentials{
		Username: stringField(body, "username"),
		Email:    stringField(body, "email"),
		Password: stringField(body, "password"),
	}
}

func stringField(body map[string]any, key string) string {
	if s, ok := body[key].(string); ok {
		return s
	}
	return ""
}

// UserView - публичное представление пользователя. Хэш пароля не выдается никогда.
type UserView struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserView строит UserView из сущности.
func NewUserView(u *entities.User) UserView {
	return UserView{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// AuthResponse - ответ на успешные signup и login.
type AuthResponse struct {
	Message string   `json:"message"`
	Token   string   `json:"token"`
	User    UserView `json:"user"`
}

// MessageResponse - тело любого ответа об ошибке.
type MessageResponse struct {
	Message string `json:"message"`
}

// ProfileView - профиль пользователя. Для пользователя без профиля id и created_at опущены.
type ProfileView struct {
	ID        string     `json:"id,omitempty"`
	Bio       *string    `json:"bio"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// NewProfileView строит ProfileView из сущности.
func NewProfileView(p *entities.Profile) ProfileView {
	view := ProfileView{ID: p.ID, Bio: p.Bio}
	if !p.CreatedAt.IsZero() {
		createdAt := p.CreatedAt
		view.CreatedAt = &createdAt
	}
	return view
}

// MeResponse - ответ GET /api/me.
type MeResponse struct {
	User    UserView    `json:"user"`
	Profile ProfileView `json:"profile"`
}
