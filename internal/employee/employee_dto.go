package employee

type CreateEmployeeRequest struct {
	UserID     string  `json:"user_id" binding:"required,uuid"`
	PositionID *string `json:"position_id" binding:"omitempty,uuid"`
	SalaryID   *string `json:"salary_id" binding:"omitempty,uuid"`
	HireDate   string  `json:"hire_date" binding:"omitempty,datetime=2006-01-02"`
}

type UpdateEmployeeRequest struct {
	PositionID *string `json:"position_id" binding:"omitempty,uuid"`
	SalaryID   *string `json:"salary_id" binding:"omitempty,uuid"`
	HireDate   string  `json:"hire_date" binding:"omitempty,datetime=2006-01-02"`
}

type EmployeeResponse struct {
	ID         string  `json:"id"`
	UserID     string  `json:"user_id"`
	PositionID *string `json:"position_id,omitempty"`
	SalaryID   *string `json:"salary_id,omitempty"`
	HireDate   string  `json:"hire_date,omitempty"`
}
