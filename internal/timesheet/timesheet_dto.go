package timesheet

type CreateTimesheetRequest struct {
	EmployeeID  string `json:"employee_id" binding:"required,uuid"`
	WorkDate    string `json:"work_date" binding:"required,datetime=2006-01-02"`
	StartTime   string `json:"start_time" binding:"required,datetime=15:04"`
	EndTime     string `json:"end_time" binding:"required,datetime=15:04"`
	Description string `json:"description"`
}

type UpdateTimesheetRequest struct {
	WorkDate    string `json:"work_date" binding:"omitempty,datetime=2006-01-02"`
	StartTime   string `json:"start_time" binding:"omitempty,datetime=15:04"`
	EndTime     string `json:"end_time" binding:"omitempty,datetime=15:04"`
	Description string `json:"description"`
}

type TimesheetResponse struct {
	ID          string  `json:"id"`
	EmployeeID  string  `json:"employee_id"`
	WorkDate    string  `json:"work_date"`
	StartTime   string  `json:"start_time"`
	EndTime     string  `json:"end_time"`
	Hours       float64 `json:"hours"`
	Description string  `json:"description,omitempty"`
}
