package timesheet

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TimesheetEntry is one worked interval on one day. Times use HH:MM on a
// 24h clock; overnight shifts are split by the caller.
type TimesheetEntry struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_timesheet_entries_employee"`

	WorkDate    time.Time `gorm:"type:date;not null;index:idx_timesheet_entries_employee"`
	StartTime   string    `gorm:"type:varchar(5);not null"`
	EndTime     string    `gorm:"type:varchar(5);not null"`
	Description string    `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_timesheet_entries_deleted_at"`
}

func (TimesheetEntry) TableName() string {
	return "timesheet_entries"
}

// Hours is the worked span as a decimal number of hours.
func (e *TimesheetEntry) Hours() float64 {
	start, err := time.Parse("15:04", e.StartTime)
	if err != nil {
		return 0
	}
	end, err := time.Parse("15:04", e.EndTime)
	if err != nil {
		return 0
	}
	return end.Sub(start).Hours()
}
