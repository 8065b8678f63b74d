package salary

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Salary struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`

	GrossAmount  float64 `gorm:"type:numeric(12,2);not null"`
	NetAmount    float64 `gorm:"type:numeric(12,2);not null"`
	ContractType string  `gorm:"type:varchar(30);not null;default:'FULL_TIME'"`

	PositionID *uuid.UUID `gorm:"type:uuid;index:idx_salaries_position"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_salaries_deleted_at"`
}
