// Package events defines the topics and payloads exchanged between the api
// and the mailer over Kafka. Payload field names are part of the wire
// contract, do not rename them without migrating both sides.
package events

const (
	// TimeoffRequestUserTopic carries the confirmation sent to the employee
	// who submitted a time off request.
	TimeoffRequestUserTopic = "timeoff-request-user"

	// TimeoffHRTopic carries the review notification sent to HR when a new
	// request is submitted.
	TimeoffHRTopic = "timeoff-hr"

	// TimeoffRequestStatusTopic carries the decision notification sent to the
	// employee when a request is approved or denied.
	TimeoffRequestStatusTopic = "timeoff-request-status"

	// WelcomeUserTopic carries the welcome mail for a newly registered user.
	WelcomeUserTopic = "welcome-user"
)

// TimeoffRequestUserEvent confirms submission to the requesting employee.
type TimeoffRequestUserEvent struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Type      string `json:"type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// TimeoffHREvent asks HR to review a newly submitted request.
type TimeoffHREvent struct {
	UserFirstName string `json:"user_first_name"`
	UserLastName  string `json:"user_last_name"`
	Type          string `json:"type"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	Comment       string `json:"comment"`
}

// TimeoffStatusEvent tells the employee their request changed state.
type TimeoffStatusEvent struct {
	Email         string `json:"email"`
	UserFirstName string `json:"user_first_name"`
	UserLastName  string `json:"user_last_name"`
	Type          string `json:"type"`
	Comment       string `json:"comment"`
	FromStatus    string `json:"from_status"`
	ToStatus      string `json:"to_status"`
}

// WelcomeUserEvent greets a freshly registered user.
type WelcomeUserEvent struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
}
