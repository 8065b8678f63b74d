package salary

type CreateSalaryRequest struct {
	GrossAmount  float64 `json:"gross_amount" binding:"required,gt=0"`
	NetAmount    float64 `json:"net_amount" binding:"required,gt=0"`
	ContractType string  `json:"contract_type"`
	PositionID   *string `json:"position_id" binding:"omitempty,uuid"`
}

type UpdateSalaryRequest struct {
	GrossAmount  float64 `json:"gross_amount" binding:"omitempty,gt=0"`
	NetAmount    float64 `json:"net_amount" binding:"omitempty,gt=0"`
	ContractType string  `json:"contract_type"`
	PositionID   *string `json:"position_id" binding:"omitempty,uuid"`
}

type SalaryResponse struct {
	ID           string  `json:"id"`
	GrossAmount  float64 `json:"gross_amount"`
	NetAmount    float64 `json:"net_amount"`
	ContractType string  `json:"contract_type"`
	PositionID   *string `json:"position_id,omitempty"`
}
