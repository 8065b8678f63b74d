package queuedmail

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusQueued = "QUEUED"
	StatusSent   = "SENT"
	StatusFailed = "FAILED"
)

// QueuedMail is the delivery log for every outgoing notification. Rows are
// written before the first send attempt so a crashed mailer leaves a trace.
type QueuedMail struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Recipient string     `gorm:"type:varchar(255);not null;index" json:"recipient"`
	Subject   string     `gorm:"type:varchar(255);not null" json:"subject"`
	Body      string     `gorm:"type:text;not null" json:"body"`
	SendTries int        `gorm:"not null;default:0" json:"send_tries"`
	Status    string     `gorm:"type:varchar(20);not null;default:'QUEUED'" json:"status"`
	LastError string     `gorm:"type:text" json:"last_error,omitempty"`
	SentAt    *time.Time `json:"sent_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (QueuedMail) TableName() string {
	return "queued_mails"
}
