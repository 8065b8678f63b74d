package position

type CreatePositionRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdatePositionRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type PositionResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
