package repository

import "github.com/oksasatya/alumni-network/internal/domain/entity"

// UserRepository defines the interface for identity persistence.
type UserRepository interface {
	Create(u *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(u *entity.User) error
}
