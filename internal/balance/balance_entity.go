package balance

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TimeoffBalance holds the remaining days per category for one employee.
// One row per employee, created together with the employee record.
type TimeoffBalance struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_timeoff_balances_employee"`

	VacationDays int `gorm:"type:int;not null;default:0"`
	SickDays     int `gorm:"type:int;not null;default:0"`
	PersonalDays int `gorm:"type:int;not null;default:0"`
	OtherDays    int `gorm:"type:int;not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_timeoff_balances_deleted_at"`
}

func (TimeoffBalance) TableName() string {
	return "timeoff_balances"
}

const (
	// TotalTimeoffDays is the yearly allotment used-days are counted against.
	TotalTimeoffDays = 40

	DefaultVacationDays = 20
	DefaultSickDays     = 10
	DefaultPersonalDays = 5
	DefaultOtherDays    = 5
)

// NewDefault builds the initial balance every new employee starts with.
func NewDefault(employeeID uuid.UUID) *TimeoffBalance {
	return &TimeoffBalance{
		ID:           uuid.New(),
		EmployeeID:   employeeID,
		VacationDays: DefaultVacationDays,
		SickDays:     DefaultSickDays,
		PersonalDays: DefaultPersonalDays,
		OtherDays:    DefaultOtherDays,
	}
}
