package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`

	FirstName string `gorm:"type:varchar(100);not null"`
	LastName  string `gorm:"type:varchar(100);not null"`
	Username  string `gorm:"type:varchar(100);not null;uniqueIndex:idx_users_username"`
	Email     string `gorm:"type:varchar(255);not null;uniqueIndex:idx_users_email"`

	Address  string     `gorm:"type:text"`
	Birthday *time.Time `gorm:"type:date"`

	// Role is one of rbac.RoleAdmin, rbac.RoleHR, rbac.RoleUser.
	Role         string `gorm:"type:varchar(20);not null;default:'User'"`
	PasswordHash string `gorm:"type:varchar(255);not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_users_deleted_at"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
