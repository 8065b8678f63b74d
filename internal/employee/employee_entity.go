package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Employee links a user account to its position and salary. The time off
// balance for the employee lives in its own table, created alongside.
type Employee struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_employees_user"`

	PositionID *uuid.UUID `gorm:"type:uuid;index:idx_employees_position"`
	SalaryID   *uuid.UUID `gorm:"type:uuid"`

	HireDate time.Time `gorm:"type:date"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_employees_deleted_at"`
}
