// Package postgres содержит репозитории пользователей и профилей на pgx.
package postgres

import (
	"authgate/internal/auth/ports/repositories"
)

// RepositoryFactory создает репозитории поверх одного пула.
type RepositoryFactory struct {
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
}

// NewRepositoryFactory создает фабрику репозиториев.
func NewRepositoryFactory(pool PgxPoolInterface) *RepositoryFactory {
	return &RepositoryFactory{
		userRepo:    NewUserRepository(pool),
		profileRepo: NewProfileRepository(pool),
	}
}

// UserRepository возвращает репозиторий пользователей.
func (f *RepositoryFactory) UserRepository() repositories.UserRepository {
	return f.userRepo
}

// ProfileRepository возвращает репозиторий профилей.
func (f *RepositoryFactory) ProfileRepository() repositories.ProfileRepository {
	return f.profileRepo
}
