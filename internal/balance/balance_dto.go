package balance

type CreateBalanceRequest struct {
	EmployeeID   string `json:"employee_id" binding:"required,uuid"`
	VacationDays int    `json:"vacation_days" binding:"min=0"`
	SickDays     int    `json:"sick_days" binding:"min=0"`
	PersonalDays int    `json:"personal_days" binding:"min=0"`
	OtherDays    int    `json:"other_days" binding:"min=0"`
}

type UpdateBalanceRequest struct {
	VacationDays int `json:"vacation_days"`
	SickDays     int `json:"sick_days"`
	PersonalDays int `json:"personal_days"`
	OtherDays    int `json:"other_days"`
}

type ChangeBalanceRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	Type       string `json:"type" binding:"required"`
	Quantity   int    `json:"quantity" binding:"required"`
}

type BalanceResponse struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	VacationDays int    `json:"vacation_days"`
	SickDays     int    `json:"sick_days"`
	PersonalDays int    `json:"personal_days"`
	OtherDays    int    `json:"other_days"`
}

type UsedDaysResponse struct {
	EmployeeID string `json:"employee_id"`
	UsedDays   int    `json:"used_days"`
}
