package timeoff

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TimeoffRequest is one leave request. Type matches the balance categories;
// the day count is derived from the dates, never stored.
type TimeoffRequest struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_timeoff_requests_employee"`

	Type      string    `gorm:"type:varchar(20);not null"`
	StartDate time.Time `gorm:"type:date;not null"`
	EndDate   time.Time `gorm:"type:date;not null"`
	Comment   string    `gorm:"type:text"`

	Status string `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_timeoff_requests_status"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_timeoff_requests_deleted_at"`
}

func (TimeoffRequest) TableName() string {
	return "timeoff_requests"
}

// Days is the requested span in calendar days, end date exclusive. A
// same-day request costs zero days.
func (r *TimeoffRequest) Days() int {
	return int(r.EndDate.Sub(r.StartDate).Hours() / 24)
}
