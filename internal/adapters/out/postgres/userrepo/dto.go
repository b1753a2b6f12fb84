// Package userrepo persists marketplace accounts and resolves bearer tokens.
package userrepo

import (
	"github.com/google/uuid"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/user"
)

// UserDTO represents the database structure for accounts.
// The token column carries the bearer credential the transport layers
// authenticate against.
type UserDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name   string    `gorm:"not null"`
	Email  string    `gorm:"uniqueIndex;not null"`
	Role   string    `gorm:"index;not null"`
	Active bool      `gorm:"not null"`
	Token  string    `gorm:"uniqueIndex"`
}

// TableName specifies the database table name for accounts.
func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(u *user.User) UserDTO {
	return UserDTO{
		ID:     u.ID().Bytes(),
		Name:   u.Name(),
		Email:  u.Email(),
		Role:   u.Role().String(),
		Active: u.Active(),
		Token:  u.Token(),
	}
}

func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return user.RestoreUser(id, dto.Name, dto.Email, user.Role(dto.Role), dto.Active, dto.Token)
}
