package dto

// SelectClassRequest adds a class to the caller's cart
type SelectClassRequest struct {
	ClassID int64 `json:"classId" binding:"required,gt=0" example:"3"`
}
