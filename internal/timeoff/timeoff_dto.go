package timeoff

type ApplyRequest struct {
	Type      string `json:"type" binding:"required"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Comment   string `json:"comment"`
}

// ApplyResult reports whether the request was submitted. A user without an
// employee record gets Submitted=false instead of an error.
type ApplyResult struct {
	Submitted bool   `json:"submitted"`
	RequestID string `json:"request_id,omitempty"`
}

type DecideRequest struct {
	Comment string `json:"comment"`
}

type TimeoffResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Type       string `json:"type"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Days       int    `json:"days"`
	Comment    string `json:"comment,omitempty"`
	Status     string `json:"status"`
}
